package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"acont-edge/internal/audit"
	kafkasink "acont-edge/internal/audit/sink/kafka"
	auditpg "acont-edge/internal/audit/store/postgres"
	"acont-edge/internal/gate"
	"acont-edge/internal/locale"
	"acont-edge/internal/platform/config"
	"acont-edge/internal/platform/httpserver"
	"acont-edge/internal/platform/logger"
	"acont-edge/internal/platform/metrics"
	"acont-edge/internal/platform/middleware"
	redisclient "acont-edge/internal/platform/redis"
	"acont-edge/internal/proxy"
	"acont-edge/internal/token"
	"acont-edge/internal/token/revocation"
	httptransport "acont-edge/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Decision logic lives in the gate package.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	locales, err := locale.New(cfg.SupportedLocales, cfg.DefaultLocale)
	if err != nil {
		return err
	}

	upstreamURL, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return err
	}
	backendURL, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return err
	}

	m := metrics.New()
	ctx := context.Background()

	var tokenOpts []token.Option
	if cfg.RedisAddr != "" {
		rdb, err := redisclient.New(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		tokenOpts = append(tokenOpts, token.WithRevocationList(revocation.NewRedis(rdb.Client)))
	}
	verifier := token.New(cfg.JWTSecret, cfg.JWTIssuer, tokenOpts...)

	g := gate.New(verifier, locales, cfg.VerifyTimeout)
	auditor, closeAudit, err := buildAuditor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAudit()

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  m,
		Gate:     g,
		Locales:  locales,
		Auditor:  auditor,
		Upstream: proxy.Upstream(upstreamURL, log, m),
		Backend:  proxy.Backend(backendURL, log, m),
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting acont-edge", "addr", cfg.Addr, "default_locale", cfg.DefaultLocale)

	quitCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(quitCtx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// buildAuditor assembles the security event pipeline from whatever sinks are
// configured. With none, events are carried by logs only and the middleware
// skips auditing.
func buildAuditor(ctx context.Context, cfg config.Server) (middleware.Auditor, func(), error) {
	var stores audit.FanOut
	var closers []func()

	if cfg.DatabaseURL != "" {
		store, err := auditpg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		stores = append(stores, store)
		closers = append(closers, func() { _ = store.Close() })
	}

	if len(cfg.KafkaBrokers) > 0 {
		sink, err := kafkasink.New(ctx, cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, err
		}
		stores = append(stores, sink)
		closers = append(closers, func() { _ = sink.Close(context.Background()) })
	}

	if len(stores) == 0 {
		return nil, func() {}, nil
	}

	publisher := audit.NewPublisher(stores, audit.WithAsyncBuffer(256))
	closeAll := func() {
		publisher.Close()
		for _, c := range closers {
			c()
		}
	}
	return publisher, closeAll, nil
}
