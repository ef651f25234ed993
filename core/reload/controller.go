package reload

import (
	"context"
	"errors"
	"sync"
	"time"

	"id-check/core/metrics"
	"id-check/core/snapshot"
	"id-check/core/store"

	"go.uber.org/zap"
)

// ErrReloadBusy is returned by Trigger while another reload is still running.
var ErrReloadBusy = errors.New("reload requested while previous reload still active")

// DefaultTimeout bounds how long a single load may take.
const DefaultTimeout = 5 * time.Minute

// Result describes one finished reload.
type Result struct {
	Source   string
	Snapshot *snapshot.Snapshot
	Err      error
	Duration time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTimeout bounds the load step. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// OnComplete registers fn to be called with the result of every reload, before the
// controller returns to Idle.
func OnComplete(fn func(Result)) Option {
	return func(c *Controller) { c.onComplete = fn }
}

// Controller loads new snapshots in the background and publishes them into a store.
// At most one reload runs at a time; extra requests are rejected, not queued.
type Controller struct {
	store      *store.Store
	state      StateMachine
	logger     *zap.Logger
	timeout    time.Duration
	onComplete func(Result)

	mu   sync.Mutex
	done chan struct{}
}

// NewController creates a controller publishing into st.
func NewController(st *store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   st,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current reload state.
func (c *Controller) State() State {
	return c.state.Current()
}

// Trigger starts an asynchronous reload from src. It returns ErrReloadBusy at once if
// a reload is already running. The outcome of the reload itself is logged and passed
// to the OnComplete callback; it is never returned here.
func (c *Controller) Trigger(src snapshot.Source) error {
	// Held across the transition so Wait never sees Reloading with a stale done.
	c.mu.Lock()
	if !c.state.TryBegin() {
		c.mu.Unlock()
		metrics.ReloadsTotal.WithLabelValues(metrics.OutcomeBusy).Inc()
		c.logger.Warn("Reload requested while previous reload still active",
			zap.String("source", src.String()))
		return ErrReloadBusy
	}
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	go c.run(src, done)
	return nil
}

// Wait blocks until the reload in flight, if any, has finished.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) run(src snapshot.Source, done chan struct{}) {
	defer close(done)
	defer c.state.Finish()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	next, err := snapshot.Load(ctx, src)
	res := Result{Source: src.String(), Snapshot: next, Err: err, Duration: time.Since(start)}

	if err != nil {
		metrics.ReloadsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		c.logger.Error("Failed to load configuration", zap.String("source", src.String()), zap.Error(err))
	} else {
		c.store.Publish(next)
		Observe(next)
		metrics.ReloadsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		c.logger.Info("Configuration reloaded",
			zap.String("source", src.String()),
			zap.Int("count", next.Len()),
			zap.Int("skipped", next.Skipped()),
			zap.Duration("duration", next.LoadDuration()),
			zap.Uint64("checksum", next.Checksum()),
		)
		if next.Skipped() > 0 {
			c.logger.Warn("Dropped unparseable tokens", zap.String("source", src.String()), zap.Int("skipped", next.Skipped()))
		}
	}

	if c.onComplete != nil {
		c.onComplete(res)
	}
}

// Observe records the gauges and counters of a newly published snapshot.
func Observe(s *snapshot.Snapshot) {
	metrics.SnapshotIdentifiers.Set(float64(s.Len()))
	metrics.SkippedTokensTotal.Add(float64(s.Skipped()))
	metrics.LoadDurationSeconds.Observe(s.LoadDuration().Seconds())
}
