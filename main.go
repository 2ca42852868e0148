package main

import (
	"fmt"
	"os"

	"salonqueue-backend/config"
	"salonqueue-backend/models"
	"salonqueue-backend/repository"
	"salonqueue-backend/routes"
	"salonqueue-backend/services"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := config.NewLogger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Product{},
		&models.ServiceProduct{},
		&models.Booking{},
		&models.BookingService{},
		&models.QueueEntry{},
		&models.Notification{},
	)

	users := repository.NewGormUsers(config.DB)
	catalog := repository.NewGormServices(config.DB)
	products := repository.NewGormProducts(config.DB)
	bookings := repository.NewGormBookings(config.DB)
	queue := repository.NewGormQueue(config.DB)
	notifications := repository.NewGormNotifications(config.DB)

	var sms services.SMSProvider
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		sms = services.NewTwilioProvider(
			sid,
			os.Getenv("TWILIO_AUTH_TOKEN"),
			os.Getenv("TWILIO_PHONE_NUMBER"),
		)
	} else {
		log.Info().Msg("Twilio not configured; SMS notifications are logged only")
		sms = &services.LogProvider{Log: log}
	}

	dispatcher := services.NewNotificationService(notifications, users, sms, log)
	settler := services.NewSettlementService(catalog, products, users, log)
	bookingService := services.NewBookingService(bookings, queue, catalog, dispatcher, log)
	queueService := services.NewQueueService(queue, settler, dispatcher, log)

	sweeper := utils.StartQueueSweeper(queueService, log)
	defer sweeper.Stop()

	r := routes.SetupRouter(routes.Deps{
		Users:         users,
		Catalog:       catalog,
		Products:      products,
		Notifications: notifications,
		Bookings:      bookingService,
		Queue:         queueService,
		Log:           log,
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
