package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/therive/therive-backend/src/config"
	"github.com/therive/therive-backend/src/controllers"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/media"
	"github.com/therive/therive-backend/src/middleware"
	"github.com/therive/therive-backend/src/queue"
	"github.com/therive/therive-backend/src/realtime"
	"github.com/therive/therive-backend/src/repository"
	"github.com/therive/therive-backend/src/routes"
	"github.com/therive/therive-backend/src/services"
)

func main() {
	cfg := config.LoadConfig()

	// Connect to the relational store
	db, err := lib.ConnectDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := lib.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	users := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Notifications move to MongoDB when MONGO_URI is set
	if cfg.MongoURI != "" {
		client, mongoDB, err := lib.ConnectMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Disconnect(context.Background())
		if err := repository.EnsureNotificationIndexes(context.Background(), mongoDB); err != nil {
			log.Printf("Warning: notification indexes: %v", err)
		}
		notificationRepo = repository.NewMongoNotificationRepository(mongoDB)
	}

	tokens := lib.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	hub := realtime.NewHub(tokens.ResolveUserID)

	var publisher services.EventPublisher
	if producer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword); producer != nil {
		defer producer.Close()
		publisher = producer
	}

	var uploader services.AvatarUploader
	if cfg.CloudinaryURL != "" {
		cloud, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Printf("Warning: avatar uploads disabled: %v", err)
		} else {
			uploader = cloud
		}
	}

	notifier := services.NewNotifier(notificationRepo, hub, publisher)
	authService := services.NewAuthService(users, tokens, notifier, cfg.BcryptCost)
	userService := services.NewUserService(users, connRepo, notifier, uploader)
	connectionService := services.NewConnectionService(users, connRepo, messageRepo, notifier)
	messageService := services.NewMessageService(connectionService, connRepo, messageRepo, notifier, hub, hub)
	notificationService := services.NewNotificationService(notificationRepo)

	app := fiber.New(fiber.Config{
		AppName:      "therive",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    6 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Register routes
	protect := middleware.ProtectRoute(tokens)
	routes.HealthRoutes(app)
	routes.AuthRoutes(app, controllers.NewAuthController(authService), protect)
	routes.UserRoutes(app, controllers.NewUserController(userService), protect)
	routes.ConnectionRoutes(app, controllers.NewConnectionController(connectionService), protect)
	routes.MessageRoutes(app, controllers.NewMessageController(messageService), protect)
	routes.NotificationRoutes(app, controllers.NewNotificationController(notificationService), protect)
	if !cfg.IsProd() {
		routes.DevRoutes(app, controllers.NewDevController(authService))
	}

	// Websocket push runs on its own listener
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	wsServer := &http.Server{
		Addr:              ":" + cfg.WSPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("WebSocket server is running on port %s", cfg.WSPort)
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		wsServer.Shutdown(ctx)
		app.ShutdownWithContext(ctx)
	}()

	log.Printf("Server is running on port %s (env: %s)", cfg.Port, cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
