package main

import (
	"fmt"
	"log"
	"os"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/routes"
	"nailbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Technician{},
		&models.Appointment{},
		&models.AuditLog{},
		&models.ReminderLog{},
		&models.Setting{},
	)
}

func main() {
	services.StartAuditRecorder(config.DB)
	services.NewReminderService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
