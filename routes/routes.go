package routes

import (
	"os"
	"strings"

	"salonqueue-backend/config"
	"salonqueue-backend/controllers"
	"salonqueue-backend/repository"
	"salonqueue-backend/services"
	"salonqueue-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps carries everything the handlers need.
type Deps struct {
	Users         repository.UserRepository
	Catalog       repository.ServiceRepository
	Products      repository.ProductRepository
	Notifications repository.NotificationRepository
	Bookings      *services.BookingService
	Queue         *services.QueueService
	Log           zerolog.Logger
}

func SetupRouter(deps Deps) *gin.Engine {
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

	r.Use(config.PerformanceLogger(deps.Log))

	authController := controllers.AuthController{Users: deps.Users}
	serviceController := controllers.ServiceController{Catalog: deps.Catalog}
	productController := controllers.ProductController{Products: deps.Products}
	bookingController := controllers.BookingController{Bookings: deps.Bookings, Queue: deps.Queue}
	queueController := controllers.QueueController{Queue: deps.Queue}
	notificationController := controllers.NotificationController{Notifications: deps.Notifications}
	reportController := controllers.ReportController{Products: deps.Products, Queue: deps.Queue}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Catalog routes
		catalog := api.Group("/services")
		{
			catalog.POST("", serviceController.CreateService)
			catalog.GET("", serviceController.GetServices)
			catalog.GET("/:id", serviceController.GetService)
			catalog.PUT("/:id", serviceController.UpdateService)
			catalog.DELETE("/:id", serviceController.DeleteService)
		}

		// Inventory routes
		products := api.Group("/products")
		{
			products.POST("", productController.CreateProduct)
			products.GET("", productController.GetProducts)
			products.GET("/:id", productController.GetProduct)
			products.PUT("/:id", productController.UpdateProduct)
			products.DELETE("/:id", productController.DeleteProduct)
			products.POST("/:id/restock", productController.Restock)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingController.CreateBooking)
			bookings.GET("", bookingController.GetBookings)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.POST("/:id/items", bookingController.AddItem)
			bookings.POST("/:id/confirm", bookingController.ConfirmBooking)
		}

		// Queue routes
		queue := api.Group("/queue")
		{
			queue.GET("", queueController.GetQueue)
			queue.GET("/active", queueController.GetActiveQueue)
			queue.GET("/status", queueController.GetMyStatus)
			queue.GET("/position", queueController.GetMyPosition)
			queue.POST("/:id/start", queueController.StartService)
			queue.POST("/:id/complete", queueController.CompleteService)
			queue.POST("/:id/cancel", queueController.CancelEntry)
			queue.POST("/:id/no-show", queueController.MarkNoShow)
			queue.PATCH("/:id", queueController.UpdateEntry)
		}

		// Notification routes
		api.GET("/notifications", notificationController.GetMyNotifications)

		// Reports routes
		api.GET("/reports", reportController.GetReportAnalytics)
	}

	return r
}
