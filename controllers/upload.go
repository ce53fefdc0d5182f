// controllers/upload.go
package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nailbook-backend/utils"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 * 1024 * 1024

// UploadImage accepts a profile photo, squares it to a 400x400 thumbnail and
// returns the public URL.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No file provided")
		return
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		utils.RespondWithError(c, http.StatusBadRequest, "File must be an image")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		utils.RespondWithError(c, http.StatusBadRequest, "File size must be less than 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported image format")
		return
	}

	thumb := imaging.Fill(img, 400, 400, imaging.Center, imaging.Lanczos)

	uploadDir := filepath.Join("public", "uploads", "technicians")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	filename := fmt.Sprintf("%d.jpg", time.Now().UnixMilli())
	destination := filepath.Join(uploadDir, filename)
	if err := imaging.Save(thumb, destination, imaging.JPEGQuality(90)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": "/uploads/technicians/" + filename})
}
