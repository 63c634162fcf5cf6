package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/config"
	"github.com/sajjad-mugdho/frontend/internal/database"
	"github.com/sajjad-mugdho/frontend/internal/handler"
	"github.com/sajjad-mugdho/frontend/internal/middleware"
	"github.com/sajjad-mugdho/frontend/internal/models"
	"github.com/sajjad-mugdho/frontend/internal/repository"
	"github.com/sajjad-mugdho/frontend/internal/router"
	"github.com/sajjad-mugdho/frontend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if cfg.AppEnv == "development" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Submission{}, &models.UserPreference{}, &models.CourseReminder{}, &models.CheckRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		logger.Warn().Msg("redis not configured; content cache and editor sessions disabled")
	}

	publisher := service.NewLogPublisher(logger)
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer conn.Drain()
		publisher = service.NewNATSPublisher(conn, logger)
		probes["nats"] = func(context.Context) error {
			if conn.Status() != nats.CONNECTED {
				return nats.ErrConnectionClosed
			}
			return nil
		}
	}

	content := cms.NewClient(cms.Config{
		BaseURL:     cfg.ContentfulBaseURL,
		SpaceID:     cfg.ContentfulSpaceID,
		Environment: cfg.ContentfulEnv,
		AccessToken: cfg.ContentfulToken,
		Timeout:     cfg.CMSTimeout,
	}, nil, redisClient, cfg.CMSCacheTTL, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	preferenceRepo := repository.NewPreferenceRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	checkRecordRepo := repository.NewCheckRecordRepository(db)

	courseService := service.NewCourseService(content, logger)
	lessonService := service.NewLessonService(content, validate, cfg.DefaultFeedbackURL, logger)
	preferenceService := service.NewPreferenceService(preferenceRepo, reminderRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, logger)

	var editorHandler *handler.EditorHandler
	if redisClient != nil {
		editorService := service.NewEditorService(service.EditorConfig{
			Source:    content,
			Store:     redisClient,
			Checks:    checkRecordRepo,
			Publisher: publisher,
			Validator: validate,
			TTL:       cfg.EditorStateTTL,
			Subject:   cfg.EventSubject,
		}, logger)
		editorHandler = handler.NewEditorHandler(editorService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    8 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.AllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		CourseHandler:         handler.NewCourseHandler(courseService, logger),
		LessonHandler:         handler.NewLessonHandler(lessonService, logger),
		EditorHandler:         editorHandler,
		PreferenceHandler:     handler.NewPreferenceHandler(preferenceService, logger),
		SubmissionHandler:     handler.NewSubmissionHandler(submissionService, logger),
		HealthProbes:          probes,
		JWTMiddleware:         middleware.JWTProtected(cfg.JWTSecret),
		OptionalJWTMiddleware: middleware.JWTOptional(cfg.JWTSecret),
		CheckRateLimiter:      middleware.RateLimit("lesson_check", cfg.CheckRateLimit, cfg.CheckRateWindow),
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Msg("starting http server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
