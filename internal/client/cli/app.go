package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heva-credit/heva/internal/client/client"
	"github.com/heva-credit/heva/internal/client/config"
	"github.com/heva-credit/heva/internal/client/services"
	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/metrics"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	metrics  *metrics.Auth
	gatherer prometheus.Gatherer
	auth     services.AuthService
	store    io.Closer
	reader   *bufio.Reader

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the session store, builds the backend client and restores
// the saved session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, m *metrics.Auth) (*App, error) {
	repo, store, err := client.OpenStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, repo, log, m, c.ResetRequestsPerMinute)
	as.Initialize(ctx)

	return &App{
		config:   c,
		log:      log,
		metrics:  m,
		gatherer: prometheus.DefaultGatherer,
		auth:     as,
		store:    store,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(ctx); err != nil {
			a.log.Warn(ctx, "failed to close client", logging.Err(err))
		}
		if err := a.store.Close(); err != nil {
			a.log.Warn(ctx, "failed to close session store", logging.Err(err))
		}
	}()
	a.Root(ctx)
}

// Root prints the greeting, starts the connectivity watcher and runs the REPL.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to HEVA (type 'help' for commands)")
	if u, ok := a.auth.CurrentUser(); ok {
		printlnFn("Signed in as", u.Email)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.HealthCheckInterval)
	if a.config.MetricsAddr != "" {
		go a.StartMetricsServer(ctx, a.config.MetricsAddr)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the backend now and then every interval
// until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.auth.IsAdmin()
}

// getStatus renders the prompt decoration, e.g. "(emma@example.com online)".
func (a *App) getStatus() string {
	s := ""
	if u, ok := a.auth.CurrentUser(); ok {
		s = u.Email + " "
	}
	if m := a.getMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
