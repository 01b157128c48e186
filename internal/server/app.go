// Package server wires and runs the HEVA dev backend: an in-memory stand-in
// for the auth REST endpoints the client depends on.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/metrics"
	"github.com/heva-credit/heva/internal/server/config"
	"github.com/heva-credit/heva/internal/server/httpapi"
	"github.com/heva-credit/heva/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	registry    *prometheus.Registry
	userService *users.Service
	handler     http.Handler
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	us := users.NewService(users.NewMemoryRepository())
	h := httpapi.NewRouter(logger, us, metrics.NewHTTP(reg), reg)

	return &App{
		config:      c,
		logger:      logger.With("module", "devserver"),
		registry:    reg,
		userService: us,
		handler:     h,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve runs the HTTP server on ln until ctx is done, then shuts it down
// gracefully.
func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-errCh
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		app.logger.Error(ctx, "listen failed", logging.Err(err))
		cancelFunc()
		return
	}

	if err := app.serve(ctx, ln); err != nil {
		app.logger.Error(ctx, "server stopped with error", logging.Err(err))
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is cancelled, or the listener
// fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.startHTTPServer(ctx, cancelFunc)
}
