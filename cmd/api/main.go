package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"blog/internal/config"
	"blog/internal/infra/store"
	"blog/internal/observability/logging"
	"blog/internal/observability/tracing"

	artUC "blog/internal/usecase/article"

	hhttp "blog/internal/handler/http"
	harticle "blog/internal/handler/http/article"
	"blog/internal/handler/http/home"
	"blog/internal/handler/http/requestid"
	"blog/pkg/security/csp"
)

const (
	poolStatsInterval = 15 * time.Second
	homeTitle         = "Blog"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires the application and blocks until ctx is canceled or a server fails.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.InitProvider(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Tracing.Environment,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	svc := &artUC.Service{Repo: st.Articles, Authors: st.Authors}
	handler := newHandler(cfg, logger, svc, st.Checks)

	g, gctx := errgroup.WithContext(ctx)
	// Request contexts are detached from gctx so in-flight requests can finish
	// during Shutdown.
	base := context.WithoutCancel(ctx)

	servers := []*http.Server{{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext:       func(net.Listener) context.Context { return base },
	}}
	if cfg.HTTP.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("GET /metrics", hhttp.MetricsHandler())
		servers = append(servers, &http.Server{
			Addr:              cfg.HTTP.MetricsAddr,
			Handler:           metricsMux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("server starting",
				slog.String("addr", srv.Addr),
				slog.String("version", cfg.Version),
				slog.String("store", st.Driver))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		st.ReportPoolStats(gctx, poolStatsInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		logger.Info("server stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}

// newHandler registers every route and applies the middleware chain.
// Middleware order: Request ID → CSP → Tracing → Logging → Recovery → Metrics → Write Rate Limit → Timeout → Body Limit
func newHandler(cfg *config.Config, logger *slog.Logger, svc *artUC.Service, checks map[string]func(context.Context) error) http.Handler {
	health := &hhttp.HealthHandler{
		Checks:  make(map[string]hhttp.CheckFunc, len(checks)),
		Version: cfg.Version,
		Logger:  logger,
	}
	for name, check := range checks {
		health.Checks[name] = check
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", health)
	mux.Handle("GET /live", hhttp.LiveHandler{})
	if cfg.HTTP.MetricsAddr == "" {
		mux.Handle("GET /metrics", hhttp.MetricsHandler())
	}
	harticle.Register(mux, svc)
	home.Register(mux, svc, homeTitle)

	var writeLimiter *hhttp.WriteRateLimiter
	if cfg.HTTP.WriteRateLimit > 0 {
		writeLimiter = hhttp.NewWriteRateLimiter(cfg.HTTP.WriteRateLimit, cfg.HTTP.WriteBurst)
	}

	return hhttp.Chain(mux,
		requestid.Middleware,
		csp.Middleware(csp.APIPolicy()),
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware(mux),
		writeLimiter.Middleware(),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
	)
}
