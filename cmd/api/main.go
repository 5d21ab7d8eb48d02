package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"grandresort/internal/database"
	"grandresort/internal/middleware"
	"grandresort/internal/modules/admin"
	"grandresort/internal/modules/auth"
	"grandresort/internal/modules/booking"
	"grandresort/internal/modules/catalog"
	"grandresort/internal/modules/order"
	"grandresort/internal/modules/payment"
	"grandresort/internal/notification"
	jwtsvc "grandresort/internal/pkg/jwt"
	"grandresort/internal/pkg/refnum"
	"grandresort/internal/pkg/validator"
	"grandresort/internal/repository"
)

func main() {
	_ = godotenv.Load()
	validator.RegisterCustomRules()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "grandresort.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	tableRepo := repository.NewTableRepository(db)
	gardenRepo := repository.NewGardenRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	refs := refnum.NewGenerator()
	notifier := notification.New(notifRepo)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, tableRepo, gardenRepo, menuRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, roomRepo, tableRepo, gardenRepo, notifier, refs)
	bookingHandler := booking.NewHandler(bookingService)

	kitchenFeed := order.NewFeed()
	defer kitchenFeed.Close()

	orderService := order.NewService(orderRepo, menuRepo, kitchenFeed, refs)
	orderHandler := order.NewHandler(orderService)
	feedHandler := order.NewFeedHandler(kitchenFeed, j)

	paymentService := payment.NewService(paymentRepo, bookingRepo, orderRepo, payment.StubGateway{}, refs)
	paymentHandler := payment.NewHandler(paymentService)

	adminService := admin.NewService(bookingRepo, orderRepo, paymentRepo)
	adminHandler := admin.NewHandler(adminService)

	notifHandler := notification.NewHandler(notifRepo)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/ws/kitchen", feedHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		orderHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}

		staff := v1.Group("/staff")
		staff.Use(middleware.Auth(j), middleware.StaffOrAdmin())
		{
			bookingHandler.RegisterStaffRoutes(staff)
			orderHandler.RegisterStaffRoutes(staff)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			paymentHandler.RegisterAdminRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
