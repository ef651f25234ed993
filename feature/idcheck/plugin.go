package idcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"id-check/core/args"
	"id-check/core/metrics"
	"id-check/core/reload"
	"id-check/core/snapshot"
	"id-check/core/source"
	"id-check/core/store"

	"go.uber.org/zap"
)

const (
	// PluginName identifies the filter in logs.
	PluginName = "id_check"
	// MessagePrefix is the reserved prefix of control messages addressed to the filter.
	MessagePrefix = "id_check."
	// ReloadCommand follows MessagePrefix to request a reload.
	ReloadCommand = "reload"
)

var (
	// ErrNoSource is returned by New when neither config nor arguments name a source.
	ErrNoSource = errors.New("no source path configured")
	// ErrShutdown is returned by Reload after OnShutdown.
	ErrShutdown = errors.New("filter is shut down")
)

// Filter is the contract the host wires into its request and control paths.
type Filter interface {
	// IsMember reports whether id is in the active list. Safe from any goroutine.
	IsMember(id uint64) bool
	// OnControlMessage handles a host control message tag.
	OnControlMessage(tag string)
	// OnShutdown releases the active list.
	OnShutdown()
}

var _ Filter = (*Plugin)(nil)

// Plugin is the identifier filter: a store of the active snapshot plus the
// controller that reloads it from the configured source.
type Plugin struct {
	store    *store.Store
	reloader *reload.Controller
	source   snapshot.Source
	logger   *zap.Logger
	closed   atomic.Bool
}

// New parses the startup options, loads the source synchronously and returns a
// filter ready to serve lookups. Any error is fatal: no filter is returned.
func New(ctx context.Context, argv []string, cfg Config, deps source.Deps, logger *zap.Logger) (*Plugin, error) {
	opts, err := args.Parse(argv)
	if err != nil {
		return nil, err
	}

	location := cfg.Path
	if opts.Path != "" {
		location = opts.Path
	}
	if location == "" {
		return nil, ErrNoSource
	}

	src, err := source.Resolve(location, deps)
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.SourceTimeout())
	defer cancel()

	snap, err := snapshot.Load(loadCtx, src)
	if err != nil {
		return nil, err
	}
	reload.Observe(snap)

	logger = logger.With(zap.String("plugin", PluginName))
	logger.Info("Configuration loaded",
		zap.String("source", src.String()),
		zap.Int("count", snap.Len()),
		zap.Duration("duration", snap.LoadDuration()),
	)
	if snap.Skipped() > 0 {
		logger.Warn("Dropped unparseable tokens", zap.String("source", src.String()), zap.Int("skipped", snap.Skipped()))
	}

	st := store.New(snap)
	return &Plugin{
		store:    st,
		reloader: reload.NewController(st, reload.WithLogger(logger), reload.WithTimeout(cfg.SourceTimeout())),
		source:   src,
		logger:   logger,
	}, nil
}

// IsMember takes one handle on the active snapshot and searches it.
func (p *Plugin) IsMember(id uint64) bool {
	h := p.store.Current()
	ok := h.Contains(id)
	h.Release()

	if ok {
		metrics.LookupHits.Inc()
	} else {
		metrics.LookupMisses.Inc()
	}
	return ok
}

// OnControlMessage triggers a reload for "id_check.reload" (any case) and ignores
// everything else. Busy and failed reloads are reported through the logger.
func (p *Plugin) OnControlMessage(tag string) {
	_, _ = p.HandleMessage(tag)
}

// HandleMessage is OnControlMessage with the outcome exposed: handled is false for
// tags that are not addressed to the filter, err is the result of Reload otherwise.
func (p *Plugin) HandleMessage(tag string) (handled bool, err error) {
	cmd, ok := Command(tag)
	if !ok || !strings.EqualFold(cmd, ReloadCommand) {
		return false, nil
	}
	return true, p.Reload()
}

// Command returns what follows MessagePrefix in tag, matched case-insensitively.
func Command(tag string) (string, bool) {
	if len(tag) < len(MessagePrefix) || !strings.EqualFold(tag[:len(MessagePrefix)], MessagePrefix) {
		return "", false
	}
	return tag[len(MessagePrefix):], true
}

// Reload starts a background reload from the configured source. It returns
// reload.ErrReloadBusy when one is already running.
func (p *Plugin) Reload() error {
	if p.closed.Load() {
		return ErrShutdown
	}
	return p.reloader.Trigger(p.source)
}

// OnShutdown waits for a running reload, then drops the active snapshot.
// Handles already taken stay valid until released.
func (p *Plugin) OnShutdown() {
	p.closed.Store(true)
	p.reloader.Wait()
	p.store.Reset()
	p.logger.Info("Core shut down")
}

// LiveHandles is the number of snapshot handles currently held.
func (p *Plugin) LiveHandles() int64 { return p.store.Live() }

// Status describes the active snapshot.
type Status struct {
	Source         string    `json:"source"`
	Count          int       `json:"count"`
	Skipped        int       `json:"skipped"`
	Checksum       string    `json:"checksum"`
	LoadedAt       time.Time `json:"loaded_at"`
	LoadDurationMs float64   `json:"load_duration_ms"`
	State          string    `json:"state"`
	LiveHandles    int64     `json:"live_handles"`
}

// Status reports on the active snapshot and the reload state.
func (p *Plugin) Status() Status {
	h := p.store.Current()
	defer h.Release()
	s := h.Snapshot()

	return Status{
		Source:         s.Source(),
		Count:          s.Len(),
		Skipped:        s.Skipped(),
		Checksum:       fmt.Sprintf("%016x", s.Checksum()),
		LoadedAt:       s.LoadedAt(),
		LoadDurationMs: float64(s.LoadDuration().Microseconds()) / 1000,
		State:          p.reloader.State().String(),
		LiveHandles:    p.store.Live() - 1,
	}
}
