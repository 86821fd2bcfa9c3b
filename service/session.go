// Package service runs an engine as a long-lived pointer session: it owns the
// enable/pause state, paces ticks and forwards actions to an input injector.
package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/engine"
	"github.com/mobile-next/facepointer/metrics"
	"github.com/mobile-next/facepointer/settings"
	"github.com/mobile-next/facepointer/types"
	"github.com/mobile-next/facepointer/utils"
)

// DefaultTickInterval is the UI update period the engine is tuned for.
const DefaultTickInterval = 16 * time.Millisecond

var (
	ErrSessionClosed = errors.New("session is closed")
	ErrNotLive       = errors.New("session is not live")
)

// Options configures a new session.
type Options struct {
	Config   engine.Config
	Bindings *engine.Bindings
	Screen   types.Size
	// Injector receives actions; nil keeps actions in tick results only.
	Injector     devices.Injector
	QueueSize    int
	TickInterval time.Duration
	State        State
}

// Snapshot describes a session for clients.
type Snapshot struct {
	ID     string       `json:"id"`
	State  State        `json:"state"`
	Ticks  uint64       `json:"ticks"`
	Live   bool         `json:"live"`
	Engine engine.State `json:"engine"`
}

// Session wraps one Engine. All methods are safe for concurrent use; ticks
// are serialized.
type Session struct {
	mu         sync.Mutex
	id         string
	eng        *engine.Engine
	state      State
	screen     types.Size
	interval   time.Duration
	dispatcher *devices.Dispatcher
	lastTs     int64
	ticks      uint64
	teleport   bool
	closed     bool

	live     *LatestSource
	stopLive context.CancelFunc
}

// NewSession creates a session. A zero Options.Config is replaced by the
// engine defaults.
func NewSession(id string, opts Options) *Session {
	cfg := opts.Config
	if cfg == (engine.Config{}) {
		cfg = engine.DefaultConfig()
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	s := &Session{
		id:       id,
		eng:      engine.New(cfg, opts.Bindings, opts.Screen),
		state:    opts.State,
		screen:   opts.Screen,
		interval: interval,
	}
	if opts.Injector != nil {
		s.dispatcher = devices.NewDispatcher(opts.Injector, opts.QueueSize, func(a types.Action, err error) {
			metrics.ActionsTotal.WithLabelValues(string(a.Kind), metrics.Result(err)).Inc()
		})
	}
	metrics.ActiveSessions.Inc()
	utils.Verbose("session %s created in state %s", id, s.state)
	return s
}

func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState switches the lifecycle state. Leaving ENABLE cancels a pending drag.
func (s *Session) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStateLocked(state)
}

func (s *Session) setStateLocked(state State) {
	if s.state == state {
		return
	}
	if s.state == StateEnable {
		s.eng.CancelDrag()
	}
	utils.Info("session %s: %s -> %s", s.id, s.state, state)
	s.state = state
}

// TogglePause flips between ENABLE and PAUSE. It does nothing while disabled.
func (s *Session) TogglePause() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.togglePauseLocked()
	return s.state
}

func (s *Session) togglePauseLocked() {
	switch s.state {
	case StateEnable:
		s.setStateLocked(StatePause)
	case StatePause:
		s.setStateLocked(StateEnable)
	}
}

// Tick feeds one tracker sample. The gap since the previous sample is derived
// from timestamps. ok is false when the session is disabled or closed.
func (s *Session) Tick(sample Sample) (engine.TickResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sample.Screen != nil {
		s.screen = *sample.Screen
	}
	gap := gapFrames(sample.TimestampMs, s.lastTs, s.interval)
	if sample.TimestampMs > 0 {
		s.lastTs = sample.TimestampMs
	}

	if s.closed || s.state == StateDisable {
		metrics.TicksTotal.WithLabelValues("disabled").Inc()
		return engine.TickResult{}, false
	}

	start := time.Now()
	res := s.eng.Tick(engine.TickInput{
		Head:         sample.Head,
		GapFrames:    gap,
		ScreenWidth:  s.screen.Width,
		ScreenHeight: s.screen.Height,
		Blendshapes:  sample.Blendshapes,
		Paused:       s.state == StatePause,
	})
	s.ticks++
	metrics.TickDuration.Observe(time.Since(start).Seconds())

	if res.Rejected {
		metrics.TicksTotal.WithLabelValues("rejected").Inc()
	} else {
		metrics.TicksTotal.WithLabelValues("ok").Inc()
	}
	if res.Event != engine.EventNone {
		metrics.GesturesFired.WithLabelValues(res.Event.String()).Inc()
		utils.Verbose("session %s: %s fired at (%d,%d)", s.id, res.Event, res.Cursor.X, res.Cursor.Y)
	}
	s.trackTeleport(res.Teleport)

	switch {
	case res.Action.Kind == types.ActionTogglePause:
		s.togglePauseLocked()
	case !res.Action.IsZero() && s.dispatcher != nil:
		if !s.dispatcher.Submit(res.Action) {
			metrics.ActionsDropped.Inc()
		}
	}
	return res, true
}

func (s *Session) trackTeleport(active bool) {
	if active == s.teleport {
		return
	}
	s.teleport = active
	if active {
		metrics.TeleportActive.Inc()
	} else {
		metrics.TeleportActive.Dec()
	}
}

// gapFrames converts the time between two samples into whole tick periods,
// never less than one.
func gapFrames(ts, last int64, interval time.Duration) int {
	if ts <= 0 || last <= 0 {
		return 1
	}
	gapMs := float64(ts - last)
	tickMs := float64(interval) / float64(time.Millisecond)
	return int(math.Round(max(gapMs/tickMs, 1)))
}

// ApplyConfig updates one tunable.
func (s *Session) ApplyConfig(key engine.ConfigKey, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.ApplyConfig(key, value)
}

// ApplyConfigs updates several tunables; unknown keys are logged and skipped.
func (s *Session) ApplyConfigs(values map[engine.ConfigKey]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.ApplyConfigs(values)
}

// SetBindingByName rebinds one event by configuration names. On an unknown
// name the previous binding is kept.
func (s *Session) SetBindingByName(event, shape string, threshold float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.SetBindingByName(event, shape, threshold)
}

// ApplySettings reloads the tunables and bindings written in store. Tunables
// and events the file does not mention keep their current value.
func (s *Session) ApplySettings(store *settings.Store) {
	values := store.StoredValues()
	bindings := store.Bindings()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.ApplyConfigs(values)
	for _, ev := range bindings.Events() {
		b, _ := bindings.Get(ev)
		if err := s.eng.SetBinding(ev, b); err != nil {
			utils.Warn("session %s: %v", s.id, err)
		}
	}
	utils.Verbose("session %s applied settings from %s", s.id, store.Path())
}

// Snapshot returns the session and engine state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:     s.id,
		State:  s.state,
		Ticks:  s.ticks,
		Live:   s.live != nil,
		Engine: s.eng.State(),
	}
}

// Run ticks at the session interval, taking the newest sample from source on
// every tick, until ctx is done or the source is exhausted. Ticks are skipped
// while the source has no sample yet.
func (s *Session) Run(ctx context.Context, source TickSource) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sample, ready, ok := source.Next()
			if !ok {
				utils.Verbose("session %s: source exhausted", s.id)
				return nil
			}
			if ready {
				s.Tick(sample)
			}
		}
	}
}

// StartLive makes the session tick on its own at the session interval from
// samples given to Push. Calling it again is a no-op.
func (s *Session) StartLive() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.live != nil {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	source := &LatestSource{}
	s.live = source
	s.stopLive = cancel
	s.mu.Unlock()

	go func() {
		_ = s.Run(ctx, source)
	}()
	utils.Verbose("session %s is live", s.id)
	return nil
}

// Live reports whether the session ticks on its own.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live != nil
}

// Push hands the newest tracker sample to a live session.
func (s *Session) Push(sample Sample) error {
	s.mu.Lock()
	live, closed := s.live, s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	if live == nil {
		return ErrNotLive
	}
	live.Push(sample)
	return nil
}

// Close stops ticking and action delivery. Queued actions are still delivered.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.trackTeleport(false)
	dispatcher := s.dispatcher
	if s.stopLive != nil {
		s.live.Close()
		s.stopLive()
	}
	s.mu.Unlock()

	if dispatcher != nil {
		dispatcher.Close()
	}
	metrics.ActiveSessions.Dec()
	utils.Verbose("session %s closed", s.id)
	return nil
}
