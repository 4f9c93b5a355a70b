package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatekeeper/api/routes"
	"gatekeeper/internal/checkins"
	"gatekeeper/internal/shared/config"
	"gatekeeper/internal/shared/database"
	"gatekeeper/pkg/logger"
	"gatekeeper/pkg/ratelimit"

	"github.com/IBM/sarama"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to initialize databases", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Rate limiter (optional, Redis-backed)
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			ScanRequests:    cfg.RateLimit.ScanRequests,
			StatusRequests:  cfg.RateLimit.StatusRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("scan_requests", cfg.RateLimit.ScanRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Admission event producer (optional, Kafka-backed)
	var producer checkins.EventProducer
	if cfg.Kafka.Enabled {
		producer, err = checkins.NewKafkaEventProducer(&checkins.KafkaProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			RetryMax:     3,
			TimeoutMs:    10000,
			RequiredAcks: sarama.WaitForAll,
		})
		if err != nil {
			appLogger.Error("Failed to initialize Kafka producer, continuing without events", slog.Any("error", err))
			producer = nil
		} else {
			defer producer.Close()
			appLogger.Info("Admission event producer started", slog.String("topic", cfg.Kafka.Topic))
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	router := routes.NewRouter(cfg, db, rateLimiter, producer, appLogger)
	router.SetupRoutes(engine)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		appLogger.Info("Admission service listening", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown: in-flight scans finish or roll back whole.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down admission service")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Admission service stopped")
}
