package engine

import (
	"math"

	"github.com/mobile-next/facepointer/types"
)

const (
	TapDurationMs   = types.TapDurationMs
	SwipeDurationMs = 100
	SwipeDistance   = 500
)

// DragSession is the pending first half of a DRAG_TOGGLE pair.
type DragSession struct {
	Start    types.Point `json:"start"`
	End      types.Point `json:"end"`
	Dragging bool        `json:"dragging"`
}

// Dispatch is the outcome of turning one fired event into an action.
type Dispatch struct {
	Action   types.Action
	Feedback []types.Feedback
	// Recenter asks the caller to move the cursor to the screen center.
	Recenter bool
}

// ActionDispatcher resolves fired events into actions. Its only state is the
// optional drag session.
type ActionDispatcher struct {
	drag *DragSession
}

// NewActionDispatcher returns a dispatcher with no drag in progress.
func NewActionDispatcher() *ActionDispatcher {
	return &ActionDispatcher{}
}

// Dispatch resolves event at cursor. Any event other than DRAG_TOGGLE cancels
// a pending drag before it is handled.
func (d *ActionDispatcher) Dispatch(event EventType, cursor types.Point, cfg Config) Dispatch {
	var out Dispatch
	if event == EventNone {
		return out
	}
	if event != EventDragToggle {
		if fb, ok := d.CancelDrag(); ok {
			out.Feedback = append(out.Feedback, fb)
		}
	}

	switch event {
	case EventCursorTouch:
		out.Action = types.Action{Kind: types.ActionTap, Start: cursor, DurationMs: TapDurationMs}
		out.Feedback = append(out.Feedback, types.Feedback{Kind: types.FeedbackTouchDot, Point: cursor})
	case EventCursorPause:
		out.Action = types.Action{Kind: types.ActionTogglePause}
	case EventCursorReset:
		out.Recenter = true
	case EventSwipeLeft:
		out.Action = swipe(cursor, -SwipeDistance, 0)
	case EventSwipeRight:
		out.Action = swipe(cursor, SwipeDistance, 0)
	case EventSwipeUp:
		out.Action = swipe(cursor, 0, -SwipeDistance)
	case EventSwipeDown:
		out.Action = swipe(cursor, 0, SwipeDistance)
	case EventDragToggle:
		return d.toggleDrag(cursor, cfg)
	case EventHome:
		out.Action = types.Action{Kind: types.ActionHome}
	case EventBack:
		out.Action = types.Action{Kind: types.ActionBack}
	case EventShowNotification:
		out.Action = types.Action{Kind: types.ActionNotifications}
	case EventShowApps:
		out.Action = types.Action{Kind: types.ActionAllApps}
	}
	return out
}

func (d *ActionDispatcher) toggleDrag(cursor types.Point, cfg Config) Dispatch {
	if d.drag == nil {
		d.drag = &DragSession{Start: cursor, Dragging: true}
		return Dispatch{Feedback: []types.Feedback{
			{Kind: types.FeedbackHoldRadius, Point: cursor, Radius: cfg.HoldRadius},
			{Kind: types.FeedbackDragLineStart, Point: cursor},
		}}
	}

	session := d.drag
	session.End = cursor
	session.Dragging = false
	d.drag = nil

	out := Dispatch{Feedback: []types.Feedback{{Kind: types.FeedbackDragLineClear}}}
	dx := float64(session.End.X - session.Start.X)
	dy := float64(session.End.Y - session.Start.Y)
	if math.Abs(dx) < cfg.HoldRadius && math.Abs(dy) < cfg.HoldRadius {
		out.Action = types.Action{
			Kind:       types.ActionLongPress,
			Start:      session.Start,
			DurationMs: cfg.HoldDurationMs,
		}
		return out
	}
	out.Action = types.Action{
		Kind:       types.ActionDrag,
		Start:      nonNegative(session.Start),
		End:        nonNegative(session.End),
		DurationMs: cfg.DragDurationMs,
	}
	return out
}

// CancelDrag drops a pending drag. It returns the clear feedback and true
// when there was one.
func (d *ActionDispatcher) CancelDrag() (types.Feedback, bool) {
	if d.drag == nil {
		return types.Feedback{}, false
	}
	d.drag = nil
	return types.Feedback{Kind: types.FeedbackDragLineClear}, true
}

// Drag returns a copy of the pending drag session, if any.
func (d *ActionDispatcher) Drag() (DragSession, bool) {
	if d.drag == nil {
		return DragSession{}, false
	}
	return *d.drag, true
}

func swipe(from types.Point, dx, dy int) types.Action {
	return types.Action{
		Kind:       types.ActionSwipe,
		Start:      nonNegative(from),
		End:        nonNegative(types.Point{X: from.X + dx, Y: from.Y + dy}),
		DurationMs: SwipeDurationMs,
	}
}

func nonNegative(p types.Point) types.Point {
	return types.Point{X: max(p.X, 0), Y: max(p.Y, 0)}
}
