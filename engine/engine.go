// Package engine implements the cursor control core: motion filtering,
// teleport navigation, gesture edge detection and action dispatch. An Engine
// is driven by a single tick loop and is not safe for concurrent use.
package engine

import (
	"fmt"

	"github.com/mobile-next/facepointer/types"
	"github.com/mobile-next/facepointer/utils"
)

// TickInput is everything the engine consumes on one tick.
type TickInput struct {
	Head         types.Vec2 `json:"head"`
	GapFrames    int        `json:"gapFrames"`
	ScreenWidth  int        `json:"screenWidth"`
	ScreenHeight int        `json:"screenHeight"`
	Blendshapes  []float64  `json:"blendshapes"`
	// Paused is owned by the caller; while set the cursor is frozen and only
	// CURSOR_PAUSE produces an action.
	Paused bool `json:"paused,omitempty"`
}

// Screen returns the screen size carried by the input.
func (in TickInput) Screen() types.Size {
	return types.Size{Width: in.ScreenWidth, Height: in.ScreenHeight}
}

// TickResult is everything the engine produces on one tick.
type TickResult struct {
	Cursor   types.Point      `json:"cursor"`
	Event    EventType        `json:"event"`
	Action   types.Action     `json:"action"`
	Feedback []types.Feedback `json:"feedback,omitempty"`
	Teleport bool             `json:"teleport"`
	// Rejected is set when the screen size was not positive and motion was skipped.
	Rejected bool `json:"rejected,omitempty"`
}

// BindingEntry is one row of the binding table in evaluation order.
type BindingEntry struct {
	Event EventType `json:"event"`
	Binding
}

// State is a read-only snapshot of the engine.
type State struct {
	Cursor   types.Point    `json:"cursor"`
	Exact    types.Vec2     `json:"exact"`
	Screen   types.Size     `json:"screen"`
	Teleport bool           `json:"teleport"`
	Shadow   *types.Vec2    `json:"shadow,omitempty"`
	Drag     *DragSession   `json:"drag,omitempty"`
	Armed    []EventType    `json:"armed"`
	Paused   bool           `json:"paused"`
	Config   Config         `json:"config"`
	Bindings []BindingEntry `json:"bindings"`
}

// Engine owns the cursor, the trigger table and the drag session.
type Engine struct {
	cfg        Config
	bindings   *Bindings
	cursor     *CursorState
	trigger    *GestureTrigger
	dispatcher *ActionDispatcher
	paused     bool
}

// New creates an engine with the cursor centered on screen. A nil bindings
// table starts with nothing bound.
func New(cfg Config, bindings *Bindings, screen types.Size) *Engine {
	if bindings == nil {
		bindings = NewBindings()
	}
	return &Engine{
		cfg:        cfg,
		bindings:   bindings.Clone(),
		cursor:     NewCursorState(screen),
		trigger:    NewGestureTrigger(),
		dispatcher: NewActionDispatcher(),
	}
}

// Tick runs one control step.
func (e *Engine) Tick(in TickInput) TickResult {
	var res TickResult
	screen := in.Screen()

	prev := e.cursor.Screen()
	if screen.Valid() && prev.Valid() && screen != prev {
		utils.Verbose("screen changed from %dx%d to %dx%d", prev.Width, prev.Height, screen.Width, screen.Height)
		res.Feedback = e.cancelDrag(res.Feedback)
	}

	if in.Paused != e.paused {
		res.Feedback = e.cancelDrag(res.Feedback)
		if !in.Paused {
			e.cursor.Filter().Reseed()
		}
		e.paused = in.Paused
	}

	if e.paused {
		res.Rejected = !e.cursor.SetScreen(screen)
	} else {
		res.Rejected = !e.cursor.Update(in.Head, in.GapFrames, screen, e.cfg)
	}

	trig := e.trigger.Evaluate(in.Blendshapes, e.bindings)
	if trig.WasReleased(EventCursorReset) {
		e.cursor.ExitTeleport()
	}
	if trig.Fired == EventCursorReset {
		e.cursor.EnterTeleport()
	}
	res.Event = trig.Fired

	if e.paused {
		if trig.Fired == EventCursorPause {
			res.Action = types.Action{Kind: types.ActionTogglePause}
		} else if trig.Fired != EventNone {
			res.Feedback = e.cancelDrag(res.Feedback)
		}
	} else {
		d := e.dispatcher.Dispatch(trig.Fired, e.cursor.Position(), e.cfg)
		if d.Recenter {
			e.cursor.Recenter()
		}
		res.Action = d.Action
		res.Feedback = append(res.Feedback, d.Feedback...)
	}

	if _, dragging := e.dispatcher.Drag(); dragging && trig.Fired != EventDragToggle {
		res.Feedback = append(res.Feedback, types.Feedback{Kind: types.FeedbackDragLineUpdate, Point: e.cursor.Position()})
	}

	res.Cursor = e.cursor.Position()
	res.Teleport = e.cursor.Teleporting()
	return res
}

func (e *Engine) cancelDrag(fb []types.Feedback) []types.Feedback {
	if clear, ok := e.dispatcher.CancelDrag(); ok {
		utils.Verbose("pending drag cancelled")
		return append(fb, clear)
	}
	return fb
}

// CancelDrag drops any pending drag and reports whether there was one.
func (e *Engine) CancelDrag() bool {
	_, ok := e.dispatcher.CancelDrag()
	return ok
}

// Cursor returns the current integer cursor position.
func (e *Engine) Cursor() types.Point {
	return e.cursor.Position()
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ApplyConfig updates a single tunable.
func (e *Engine) ApplyConfig(key ConfigKey, value float64) error {
	if err := e.cfg.Apply(key, value); err != nil {
		return err
	}
	utils.Verbose("config %s = %v", key, value)
	return nil
}

// ApplyConfigs updates several tunables at once. Unknown keys are logged and
// skipped; keys not present keep their current value.
func (e *Engine) ApplyConfigs(values map[ConfigKey]float64) {
	for key, value := range values {
		if err := e.ApplyConfig(key, value); err != nil {
			utils.Warn("ignoring config update: %v", err)
		}
	}
}

// SetBinding binds event to a gesture. Unbinding an armed event disarms it,
// which also ends teleport mode for CURSOR_RESET.
func (e *Engine) SetBinding(event EventType, binding Binding) error {
	if err := e.bindings.Set(event, binding); err != nil {
		return err
	}
	if !binding.Bound() && e.trigger.Armed(event) {
		e.trigger.Disarm(event)
		if event == EventCursorReset {
			e.cursor.ExitTeleport()
		}
	}
	utils.Verbose("binding %s -> %s > %.2f", event, binding.Shape, binding.Threshold)
	return nil
}

// SetBindingByName binds using configuration names. Unknown names are logged
// and the previous binding is kept.
func (e *Engine) SetBindingByName(event, shape string, threshold float64) error {
	ev, err := ParseEventType(event)
	if err != nil {
		utils.Warn("ignoring binding: %v", err)
		return err
	}
	bs, err := ParseBlendshape(shape)
	if err != nil {
		utils.Warn("ignoring binding for %s: %v", ev, err)
		return err
	}
	if err := e.SetBinding(ev, Binding{Shape: bs, Threshold: threshold}); err != nil {
		return fmt.Errorf("failed to bind %s: %w", ev, err)
	}
	return nil
}

// Bindings returns a copy of the binding table.
func (e *Engine) Bindings() *Bindings {
	return e.bindings.Clone()
}

// State returns a snapshot for inspection and debugging.
func (e *Engine) State() State {
	s := State{
		Cursor:   e.cursor.Position(),
		Exact:    e.cursor.Exact(),
		Screen:   e.cursor.Screen(),
		Teleport: e.cursor.Teleporting(),
		Paused:   e.paused,
		Config:   e.cfg,
		Armed:    []EventType{},
	}
	if s.Teleport {
		shadow := e.cursor.Shadow()
		s.Shadow = &shadow
	}
	if drag, ok := e.dispatcher.Drag(); ok {
		s.Drag = &drag
	}
	for _, ev := range e.bindings.Events() {
		b, _ := e.bindings.Get(ev)
		s.Bindings = append(s.Bindings, BindingEntry{Event: ev, Binding: b})
		if e.trigger.Armed(ev) {
			s.Armed = append(s.Armed, ev)
		}
	}
	return s
}
