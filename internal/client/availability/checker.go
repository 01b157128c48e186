// Package availability runs debounced "is this email free?" lookups for the
// registration form. Only the most recently scheduled email may update the
// visible status; late answers for older input are dropped.
package availability

import (
	"context"
	"sync"
	"time"

	"github.com/heva-credit/heva/internal/client/validation"
	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/metrics"
)

// DefaultDebounce is the quiet period before a lookup is sent.
const DefaultDebounce = 500 * time.Millisecond

// Status is the availability of one email as far as the form knows.
type Status int

const (
	Unknown Status = iota
	Checking
	Available
	Taken
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Available:
		return "available"
	case Taken:
		return "taken"
	}
	return "unknown"
}

// LookupFunc asks the backend whether email is free.
type LookupFunc func(ctx context.Context, email string) (bool, error)

type stopper interface {
	Stop() bool
}

// afterFunc is replaced in tests to drive timers by hand.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Checker debounces lookups for one form. Results are cached for the
// lifetime of the Checker. It is safe for concurrent use.
type Checker struct {
	lookup   LookupFunc
	debounce time.Duration
	log      logging.Logger
	metrics  *metrics.Auth

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	gen      uint64
	current  string
	status   Status
	cache    map[string]bool
	timer    stopper
	closed   bool
	onChange func(email string, s Status)
}

// NewChecker returns a Checker calling lookup after debounce of quiet input.
// A non-positive debounce means DefaultDebounce.
func NewChecker(lookup LookupFunc, debounce time.Duration, log logging.Logger, m *metrics.Auth) *Checker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Checker{
		lookup:   lookup,
		debounce: debounce,
		log:      log,
		metrics:  m,
		ctx:      ctx,
		cancel:   cancel,
		cache:    make(map[string]bool),
	}
}

// OnChange registers fn to be called whenever the status of the current
// email settles. fn runs on the lookup goroutine.
func (c *Checker) OnChange(fn func(email string, s Status)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Schedule makes email the current input. Any pending lookup is cancelled and
// a new one is armed. Malformed emails are never looked up.
func (c *Checker) Schedule(email string) {
	email = validation.NormalizeEmail(email)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.gen++
	gen := c.gen
	c.current = email
	c.stopTimer()

	if !validation.IsEmail(email) {
		c.status = Unknown
		return
	}

	c.status = Checking
	c.wg.Add(1)
	c.timer = afterFunc(c.debounce, func() {
		defer c.wg.Done()
		c.fire(gen, email)
	})
}

// stopTimer must be called with c.mu held.
func (c *Checker) stopTimer() {
	if c.timer != nil && c.timer.Stop() {
		c.wg.Done()
	}
	c.timer = nil
}

func (c *Checker) fire(gen uint64, email string) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	if free, ok := c.cache[email]; ok {
		fn := c.settle(free)
		c.mu.Unlock()
		notify(fn, email, statusOf(free))
		return
	}
	c.mu.Unlock()

	free, err := c.lookup(c.ctx, email)

	c.mu.Lock()
	if err != nil {
		c.metrics.ObserveEmailCheck(metrics.ResultError)
		c.log.Warn(c.ctx, "email availability check failed", "email", email, logging.Err(err))
		var fn func(string, Status)
		if gen == c.gen && !c.closed {
			c.status = Unknown
			fn = c.onChange
		}
		c.mu.Unlock()
		notify(fn, email, Unknown)
		return
	}

	if free {
		c.metrics.ObserveEmailCheck(metrics.ResultAvailable)
	} else {
		c.metrics.ObserveEmailCheck(metrics.ResultTaken)
	}
	c.cache[email] = free

	if gen != c.gen || c.closed {
		c.mu.Unlock()
		c.log.Debug(c.ctx, "dropping stale availability result", "email", email)
		return
	}
	fn := c.settle(free)
	c.mu.Unlock()
	notify(fn, email, statusOf(free))
}

// settle must be called with c.mu held.
func (c *Checker) settle(free bool) func(string, Status) {
	c.status = statusOf(free)
	return c.onChange
}

func statusOf(free bool) Status {
	if free {
		return Available
	}
	return Taken
}

func notify(fn func(string, Status), email string, s Status) {
	if fn != nil {
		fn(email, s)
	}
}

// Status reports what is known about email: the live status when it is the
// current input, otherwise a cached answer or Unknown.
func (c *Checker) Status(email string) Status {
	email = validation.NormalizeEmail(email)

	c.mu.Lock()
	defer c.mu.Unlock()

	if email == c.current {
		return c.status
	}
	if free, ok := c.cache[email]; ok {
		return statusOf(free)
	}
	return Unknown
}

// Available returns the settled answer for the current email, or nil while it
// is unknown or still being checked. The result feeds
// validation.FieldContext.EmailAvailable.
func (c *Checker) Available() *bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var v bool
	switch c.status {
	case Available:
		v = true
	case Taken:
		v = false
	default:
		return nil
	}
	return &v
}

// Close stops pending timers, cancels an in-flight lookup and waits for
// callbacks to return. Schedule is a no-op afterwards.
func (c *Checker) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimer()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
