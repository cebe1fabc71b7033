// @title Volunteer Hub API
// @version 1.0
// @description Events, positions and slots for volunteer coordination, with sign-up and QR check-in.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"volunteerhub/config"
	_ "volunteerhub/docs"
	"volunteerhub/internal/adapters/auth"
	"volunteerhub/internal/adapters/email"
	"volunteerhub/internal/adapters/guard"
	"volunteerhub/internal/adapters/qrcode"
	transport "volunteerhub/internal/delivery/http"
	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/postgres"
	"volunteerhub/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on config, so report with a bare one.
		config.NewLogger(&config.Config{}).Error("config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("migration", "err", err)
		os.Exit(1)
	}
	logger.Info("db: migrations applied")

	var submissions domain.SubmissionGuard = guard.NewLocalGuard()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("redis connect", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		submissions = guard.NewRedisGuard(rdb, 0)
		logger.Info("redis: submission guard enabled", "addr", cfg.RedisAddr)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("mailer", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	positionRepo := postgres.NewPositionRepository(db)
	slotRepo := postgres.NewSlotRepository(db)

	eventSvc := services.NewEventService(eventRepo, cfg.ContextTimeout)
	positionSvc := services.NewPositionService(eventRepo, positionRepo, cfg.ContextTimeout)
	slotSvc := services.NewSlotService(eventRepo, positionRepo, slotRepo, cfg.ContextTimeout)
	checkInSvc := services.NewCheckInService(services.CheckInDeps{
		Events:     eventRepo,
		Positions:  positionRepo,
		Slots:      slotRepo,
		Users:      postgres.NewUserRepository(db),
		Volunteers: postgres.NewVolunteerRepository(db),
		Email:      services.NewEmailService(mailer, email.NewTemplateRenderer(), logger),
		Linker:     qrcode.NewLinker(cfg.PublicBaseURL, cfg.QRCodeSize),
		Guard:      submissions,
		Logger:     logger,
	}, cfg.ContextTimeout)

	handler := transport.NewRouter(transport.RouterDeps{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins,
		DB:             db,
		Events:         controllers.NewEventController(logger, eventSvc),
		Positions:      controllers.NewPositionController(logger, positionSvc),
		Slots:          controllers.NewSlotController(logger, slotSvc),
		CheckIn:        controllers.NewCheckInController(logger, checkInSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
