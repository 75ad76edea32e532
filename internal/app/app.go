package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/author"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/committee"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/lookup"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/matter"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/protocol"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/session"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/system"
	"github.com/heartmarshall/sapl-backend/internal/auth"
	"github.com/heartmarshall/sapl-backend/internal/config"
	"github.com/heartmarshall/sapl-backend/internal/i18n"
	"github.com/heartmarshall/sapl-backend/internal/realtime"
	"github.com/heartmarshall/sapl-backend/internal/service/appconfig"
	authorsvc "github.com/heartmarshall/sapl-backend/internal/service/author"
	"github.com/heartmarshall/sapl-backend/internal/service/consistency"
	"github.com/heartmarshall/sapl-backend/internal/service/report"
	"github.com/heartmarshall/sapl-backend/internal/transport/dataloader"
	"github.com/heartmarshall/sapl-backend/internal/transport/middleware"
	"github.com/heartmarshall/sapl-backend/internal/transport/rest"
	"github.com/heartmarshall/sapl-backend/internal/transport/ws"
)

// Run is the server entry point. It loads configuration, connects to the
// database and the realtime broker, builds every service and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	txm := postgres.NewTxManager(pool, postgres.WithStatementTimeout(cfg.Database.StatementTimeout))
	sessionRepo := session.New(pool)
	matterRepo := matter.New(pool)
	protocolRepo := protocol.New(pool)
	lookupRepo := lookup.New(pool)
	authorRepo := author.New(pool)
	systemRepo := system.New(pool)
	committeeRepo := committee.New(pool)

	// Services.
	registry := authorsvc.NewRegistry(logger, authorRepo)
	loaderRepos := &dataloader.Repos{Labels: lookupRepo, Authors: registry}
	labels := dataloader.NewSource(loaderRepos, logger)

	appCfg, err := appconfig.Load(ctx, logger, systemRepo)
	if err != nil {
		return err
	}

	reportSvc := report.NewService(logger, sessionRepo, matterRepo, committeeRepo, labels, txm)
	auditSvc := consistency.NewService(logger, protocolRepo, txm)
	loc := i18n.New(cfg.I18n.DefaultLang)

	// Realtime.
	hub := realtime.NewHub(cfg.Realtime.SubscriberBuffer, logger)
	broker, components, err := newBroker(cfg.Realtime, hub, logger)
	if err != nil {
		return err
	}
	defer broker.Close()

	refreshCtx, stopRefresh := context.WithCancel(ctx)
	defer stopRefresh()
	go realtime.RunTimeRefresh(refreshCtx, hub, cfg.Realtime.TimeRefreshInterval, logger)

	// Handlers.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	mux := newRouter(routes{
		health:  rest.NewHealthHandler(pool, BuildVersion(), components...),
		reports: rest.NewReportHandler(reportSvc, labels, lookupRepo, loc, cfg.Reports.MediaURL, logger),
		audit:   rest.NewAuditHandler(auditSvc, loc, cfg.Reports.PageSize, logger),
		system: rest.NewSystemHandler(systemRepo, registry, appCfg, loc, rest.SystemOptions{
			PerPage:     cfg.Reports.PageSize,
			MediaURL:    cfg.Reports.MediaURL,
			DefaultLogo: cfg.Reports.DefaultLogo,
		}, logger),
		panel:    rest.NewPanelHandler(broker, logger),
		ws:       ws.NewHandler(hub, broker, logger),
		limiter:  limiter,
		panelRPM: cfg.Realtime.PanelRateLimit,
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		dataloader.Middleware(loaderRepos, logger),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newBroker connects to NATS when configured and falls back to in-process
// fan-out otherwise. The returned components are probed by /health.
func newBroker(cfg config.RealtimeConfig, hub *realtime.Hub, logger *slog.Logger) (realtime.Broker, []rest.Component, error) {
	if cfg.NATSURL == "" {
		logger.Info("realtime broker: in-process")
		return realtime.NewLocalBroker(hub), nil, nil
	}

	nb, err := realtime.NewNATSBroker(cfg.NATSURL, cfg.SubjectPrefix, hub, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to nats: %w", err)
	}
	logger.Info("realtime broker: nats", slog.String("prefix", cfg.SubjectPrefix))
	return nb, []rest.Component{{Name: "nats", Pinger: nb, Optional: true}}, nil
}
