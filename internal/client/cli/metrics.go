package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heva-credit/heva/internal/logging"
)

const metricsShutdownTimeout = 2 * time.Second

// StartMetricsServer exposes the auth counters at http://addr/metrics until
// ctx is done. A listen failure is logged and the CLI keeps running.
func (a *App) StartMetricsServer(ctx context.Context, addr string) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		a.log.Error(ctx, "metrics listener failed", "address", addr, logging.Err(err))
		return
	}
	if err := a.serveMetrics(ctx, ln); err != nil {
		a.log.Error(ctx, "metrics server stopped with error", logging.Err(err))
	}
}

func (a *App) serveMetrics(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	a.log.Info(ctx, "serving metrics", "address", ln.Addr().String())

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-errCh
}
