package routes

import (
	"os"
	"strings"

	"nailbook-backend/config"
	"nailbook-backend/controllers"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Resized profile photos
	r.Static("/uploads", "./public/uploads")

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		staffOnly := utils.RequireRoles(models.RoleOwner, models.RoleAdmin)
		ownerOnly := utils.RequireRoles(models.RoleOwner)

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/range", controllers.GetAppointmentsRange)
			appointments.POST("", staffOnly, controllers.CreateAppointment)
			appointments.PATCH("/:id", staffOnly, controllers.UpdateAppointment)
			appointments.DELETE("/:id", staffOnly, controllers.DeleteAppointment)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardSummary)
		api.GET("/dashboard/details", controllers.GetDashboardDetails)

		// Branch routes
		branches := api.Group("/branches")
		{
			branches.GET("", controllers.GetBranches)
			branches.POST("", ownerOnly, controllers.CreateBranch)
			branches.PATCH("/:id", ownerOnly, controllers.UpdateBranch)
			branches.DELETE("/:id", ownerOnly, controllers.DeleteBranch)
		}

		// Technician routes
		technicians := api.Group("/technicians")
		{
			technicians.GET("", controllers.GetTechnicians)
			technicians.GET("/:id", controllers.GetTechnician)
			technicians.POST("", staffOnly, controllers.CreateTechnician)
			technicians.PATCH("/:id", controllers.UpdateTechnician) // role checks inside
			technicians.DELETE("/:id", staffOnly, controllers.DeleteTechnician)
		}

		// User routes
		users := api.Group("/users")
		{
			users.PATCH("/profile", controllers.UpdateProfile)
			users.GET("", ownerOnly, controllers.GetUsers)
			users.POST("", ownerOnly, controllers.CreateUser)
			users.PATCH("/:id", ownerOnly, controllers.UpdateUser)
			users.DELETE("/:id", ownerOnly, controllers.DeleteUser)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/status-colors", controllers.GetStatusColors)
			settings.POST("/status-colors", ownerOnly, controllers.UpdateStatusColors)
		}

		// Upload route
		api.POST("/upload", controllers.UploadImage)
	}

	return r
}
