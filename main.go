package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"gymAPI/handlers"
	"gymAPI/internal/auth"
	"gymAPI/internal/config"
	"gymAPI/internal/logger"
	"gymAPI/internal/notification"
	"gymAPI/internal/store"
	"gymAPI/middleware"
	"gymAPI/services"

	_ "net/http/pprof"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	if cfg.JWTSecret == "" {
		zlog.Fatal("JWT_SECRET environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := openStore(ctx, cfg)
	if err != nil {
		cancel()
		zlog.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	if err := db.EnsureIndexes(ctx, store.Indexes); err != nil {
		cancel()
		zlog.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancel()
	zlog.Info("Store ready", zap.String("driver", cfg.StoreDriver))

	defer func() {
		zlog.Info("Closing store connection...")
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			zlog.Warn("Store close failed", zap.Error(err))
		}
	}()

	senders := []notification.Sender{notification.NewLogSender(zlog)}

	fcmSender, err := notification.NewFCMSender(context.Background(), cfg.FCMCredentialsJSON, cfg.FCMCredentialsFile)
	if err != nil {
		zlog.Warn("Could not initialize FCM", zap.Error(err))
	} else {
		senders = append(senders, fcmSender)
		zlog.Info("FCM push sender initialized successfully")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaSender := notification.NewKafkaSender(cfg.KafkaBrokers, cfg.KafkaNotificationTopic)
		defer kafkaSender.Close()
		senders = append(senders, kafkaSender)
		zlog.Info("Kafka notification sender initialized", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	dispatcher := services.NewNotificationDispatcher(zlog, cfg.NotificationWorkers, cfg.NotificationQueueSize, senders...)
	defer dispatcher.Stop()
	notificationService := services.NewNotificationService(dispatcher)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)

	badgeService := services.NewBadgeService(db, notificationService, zlog)
	gymService := services.NewGymService(db, notificationService, zlog)
	challengeService := services.NewChallengeService(db, notificationService, zlog)
	participationService := services.NewParticipationService(db, badgeService, notificationService, zlog)

	svc := handlers.Services{
		Accounts:       services.NewAccountService(db, tokens, zlog),
		Gyms:           gymService,
		Exercises:      services.NewExerciseService(db, zlog),
		Challenges:     challengeService,
		Participations: participationService,
		Badges:         badgeService,
		Stats:          services.NewStatsService(db, gymService, challengeService, badgeService, participationService, zlog),
	}

	middleware.InitPrometheus()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeader)
	go rateLimiter.CleanupVisitors(rootCtx)

	r := handlers.NewRouter(svc, handlers.RouterConfig{
		Store:          db,
		Tokens:         tokens,
		RateLimiter:    rateLimiter,
		RequestTimeout: cfg.RequestTimeout,
		MetricsUser:    cfg.MetricsUser,
		MetricsPass:    cfg.MetricsPass,
		PprofSecret:    cfg.PprofSecret,
		Logger:         zlog,
	})

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
	)

	server := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	zlog.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown error", zap.Error(err))
	}

	zlog.Info("Server shutdown complete")
}

func openStore(ctx context.Context, cfg config.Config) (store.Database, error) {
	switch cfg.StoreDriver {
	case "mongo":
		return store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		return store.NewPostgres(ctx, cfg.DatabaseURL)
	case "memory":
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
