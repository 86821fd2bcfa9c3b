package types

// ActionKind identifies what the input injector should perform.
type ActionKind string

const (
	ActionNone          ActionKind = ""
	ActionTap           ActionKind = "tap"
	ActionLongPress     ActionKind = "longpress"
	ActionSwipe         ActionKind = "swipe"
	ActionDrag          ActionKind = "drag"
	ActionTogglePause   ActionKind = "toggle_pause"
	ActionHome          ActionKind = "home"
	ActionBack          ActionKind = "back"
	ActionNotifications ActionKind = "notifications"
	ActionAllApps       ActionKind = "all_apps"
)

// TapDurationMs is how long a tap stroke presses the screen.
const TapDurationMs = 250

// Action is a discrete user action decided by the engine on one tick.
// Start is the touch point; End is only meaningful for swipe and drag.
type Action struct {
	Kind       ActionKind `json:"kind"`
	Start      Point      `json:"start"`
	End        Point      `json:"end,omitempty"`
	DurationMs int        `json:"durationMs,omitempty"`
}

// IsZero reports whether no action was produced.
func (a Action) IsZero() bool {
	return a.Kind == ActionNone
}

// FeedbackKind identifies a visual feedback signal for the overlay renderer.
type FeedbackKind string

const (
	FeedbackDragLineStart  FeedbackKind = "drag_line_start"
	FeedbackDragLineUpdate FeedbackKind = "drag_line_update"
	FeedbackDragLineClear  FeedbackKind = "drag_line_clear"
	FeedbackHoldRadius     FeedbackKind = "hold_radius"
	FeedbackTouchDot       FeedbackKind = "touch_dot"
)

// Feedback is a rendering hint emitted alongside the cursor position.
type Feedback struct {
	Kind   FeedbackKind `json:"kind"`
	Point  Point        `json:"point,omitempty"`
	Radius float64      `json:"radius,omitempty"`
}
