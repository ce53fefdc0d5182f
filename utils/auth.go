// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionClaims is the authenticated identity carried by a token. BranchID
// and TechnicianID are empty strings when the account is not linked.
type SessionClaims struct {
	UserID       string
	Role         string
	BranchID     string
	TechnicianID string
	Email        string
	Name         string
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Generate JWT token carrying the full session identity
func GenerateToken(claims SessionClaims) (string, error) {
	expiryHours := 24 // default
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			expiryHours = h
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          claims.UserID,
		"role":         claims.Role,
		"branchId":     claims.BranchID,
		"technicianId": claims.TechnicianID,
		"email":        claims.Email,
		"name":         claims.Name,
		"exp":          time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	return token.SignedString([]byte(secret))
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// Auth middleware: verifies the bearer token and puts the session identity
// on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set("userId", claimString(claims, "sub"))
		c.Set("role", claimString(claims, "role"))
		c.Set("branchId", claimString(claims, "branchId"))
		c.Set("technicianId", claimString(claims, "technicianId"))
		c.Set("email", claimString(claims, "email"))
		c.Set("name", claimString(claims, "name"))

		c.Next()
	}
}

// RequireRoles aborts with 403 unless the session role is one of the given
// roles. Runs after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

// SessionFromContext rebuilds the session identity placed by AuthMiddleware.
func SessionFromContext(c *gin.Context) SessionClaims {
	return SessionClaims{
		UserID:       c.GetString("userId"),
		Role:         c.GetString("role"),
		BranchID:     c.GetString("branchId"),
		TechnicianID: c.GetString("technicianId"),
		Email:        c.GetString("email"),
		Name:         c.GetString("name"),
	}
}
