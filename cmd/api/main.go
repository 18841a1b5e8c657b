package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"taskmarket/internal/database"
	"taskmarket/internal/middleware"
	"taskmarket/internal/modules/auth"
	"taskmarket/internal/modules/bid"
	"taskmarket/internal/modules/booking"
	"taskmarket/internal/modules/message"
	"taskmarket/internal/modules/notification"
	"taskmarket/internal/modules/payment"
	"taskmarket/internal/modules/review"
	"taskmarket/internal/modules/task"
	jwtsvc "taskmarket/internal/pkg/jwt"
	"taskmarket/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	bidRepo := repository.NewBidRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	taskService := task.NewService(taskRepo)
	taskHandler := task.NewHandler(taskService)

	bidService := bid.NewService(bidRepo, taskRepo, notificationService)
	bidHandler := bid.NewHandler(bidService)

	bookingService := booking.NewService(bookingRepo, taskRepo, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, notificationService)
	paymentHandler := payment.NewHandler(paymentService)

	reviewService := review.NewService(reviewRepo, bookingRepo, notificationService)
	reviewHandler := review.NewHandler(reviewService)

	messageService := message.NewService(messageRepo, userRepo, bookingRepo)
	messageHandler := message.NewHandler(messageService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1, nil)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			taskHandler.RegisterRoutes(protected)
			bidHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(nil, protected)
			notificationHandler.RegisterRoutes(protected)
			messageHandler.RegisterRoutes(protected)
		}

		// admin
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			bookingHandler.RegisterAdminRoutes(admin)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
