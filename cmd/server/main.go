// @title NeuroBiomark API
// @version 1.0
// @description Demo requests, news, timeline and the admin back office.
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"neurobiomark/config"
	_ "neurobiomark/docs"
	"neurobiomark/internal/adapters/auth"
	"neurobiomark/internal/adapters/email"
	"neurobiomark/internal/adapters/limiter"
	"neurobiomark/internal/adapters/sheets"
	"neurobiomark/internal/adapters/turnstile"
	"neurobiomark/internal/background"
	deliveryhttp "neurobiomark/internal/delivery/http"
	"neurobiomark/internal/delivery/http/controllers"
	"neurobiomark/internal/delivery/http/middleware"
	"neurobiomark/internal/domain"
	"neurobiomark/internal/repository/postgres"
	"neurobiomark/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load first so LOG_LEVEL from .env reaches the logger.
	cfg, err := config.Load()
	logger := config.NewLogger()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Shared(ctx, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.From,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mail.Region,
			AccessKeyID:     cfg.Mail.AccessKeyID,
			SecretAccessKey: cfg.Mail.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	var sink domain.RowAppender = sheets.Noop{Logger: logger}
	if cfg.Sheets.Enabled() {
		appender, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:       cfg.Sheets.SpreadsheetID,
			Range:               cfg.Sheets.Range,
			ServiceAccountEmail: cfg.Sheets.ServiceAccountEmail,
			PrivateKey:          cfg.Sheets.PrivateKey,
		})
		if err != nil {
			return err
		}
		sink = appender
	} else {
		logger.Info("sheet sync disabled")
	}

	tasks := background.NewGroup(logger, 0)
	g, gctx := errgroup.WithContext(ctx)

	var throttle domain.Limiter
	if cfg.Limits.RedisURL != "" {
		client, redisLimiter, err := limiter.NewRedisFromURL(cfg.Limits.RedisURL, "nbm:ratelimit:", cfg.Limits.RPS, cfg.Limits.Burst)
		if err != nil {
			return fmt.Errorf("create redis limiter: %w", err)
		}
		defer client.Close()
		throttle = redisLimiter
	} else {
		memLimiter := limiter.NewMemory(cfg.Limits.RPS, cfg.Limits.Burst)
		g.Go(func() error {
			memLimiter.RunCleanup(gctx, time.Minute)
			return nil
		})
		throttle = memLimiter
	}

	signer := auth.NewJWTSigner(cfg.Admin.SessionSecret)
	demoRequests := services.NewDemoRequestService(
		postgres.NewDemoRequestRepository(db),
		turnstile.NewClient(cfg.Captcha.SecretKey, "", cfg.RequestTimeout),
		emailService,
		sink,
		tasks,
		services.DemoRequestConfig{
			RequireCaptcha: cfg.IsProduction(),
			NotifyTo:       cfg.Mail.To,
			Timeout:        cfg.RequestTimeout,
		},
	)

	router := deliveryhttp.NewRouter(
		deliveryhttp.Controllers{
			DemoRequests: controllers.NewDemoRequestController(logger, demoRequests),
			News:         controllers.NewNewsController(logger, services.NewNewsService(postgres.NewNewsRepository(db))),
			Timeline:     controllers.NewTimelineController(logger, services.NewTimelineService(postgres.NewTimelineRepository(db))),
			Contact:      controllers.NewContactController(logger, services.NewContactService(emailService, cfg.Mail.To)),
			Admin: controllers.NewAdminController(logger,
				services.NewAdminAuthService(cfg.Admin.Email, cfg.Admin.PasswordHash, auth.NewBcryptVerifier(), signer, cfg.Admin.SessionTTL),
				cfg.IsProduction()),
			Health: controllers.NewHealthController(logger, db),
		},
		&middleware.AdminAuth{Verifier: signer, APIKey: cfg.Admin.APIKey, Logger: logger},
		middleware.RateLimit(throttle, cfg.Limits.TrustedProxies, logger),
		deliveryhttp.RouterConfig{
			AdminPath:      cfg.Admin.Path,
			StaticDir:      cfg.Admin.StaticDir,
			AllowedOrigins: cfg.AllowedOrigins,
		},
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// Requests have drained; let their detached email and sheet tasks finish.
		tasks.Wait()
		logger.Info("shutdown complete")
		return err
	})

	return g.Wait()
}
