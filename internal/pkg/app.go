package pkg

import (
	"context"
	"fmt"

	"arka/internal/app/config"
	"arka/internal/app/dsn"
	"arka/internal/app/handler"
	"arka/internal/app/mailer"
	"arka/internal/app/middleware"
	"arka/internal/app/redis"
	"arka/internal/app/repository"
	"arka/internal/app/services"
	"arka/internal/app/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.APIHandler
	Auth    *middleware.AuthMiddleware
}

// NewApp собирает приложение: конфиг, БД, Redis, MinIO, почту и сервисы
func NewApp(ctx context.Context) (*Application, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	// Без MinIO платежи работают, квитанций просто нет
	var receipts services.ReceiptStorage
	if cfg.MinIO.Endpoint != "" {
		minioClient, err := storage.NewMinIOClient(
			cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey,
			cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("minio error: %w", err)
		}
		receipts = minioClient
	} else {
		logrus.Warn("MINIO_ENDPOINT is not set, receipts are disabled")
	}

	sender := mailer.NewSMTPMailer(cfg.SMTP, cfg.FromEmail)

	notifications := services.NewNotificationService(repo, sender, cfg.DashboardURL, mailer.BuildStatusChangeEmail)
	payments := services.NewPaymentService(repo, receipts, cfg.Razorpay.KeySecret)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg, sender)
	apiHandler := handler.NewAPIHandler(repo, redisClient, cfg, sender, notifications, payments, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()

	// CORS для фронтенда
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	return &Application{
		Config:  cfg,
		Router:  router,
		Handler: apiHandler,
		Auth:    authMiddleware,
	}, nil
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.Auth)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
