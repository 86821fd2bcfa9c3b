package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrUnknownBlendshape = errors.New("unknown blendshape")
)

// EventType is a logical action a user can bind to a facial gesture.
type EventType int

const (
	EventNone EventType = iota
	EventCursorTouch
	EventCursorPause
	EventCursorReset
	EventSwipeLeft
	EventSwipeRight
	EventSwipeUp
	EventSwipeDown
	EventDragToggle
	EventHome
	EventBack
	EventShowNotification
	EventShowApps

	numEventTypes
)

var eventTypeNames = [numEventTypes]string{
	"NONE",
	"CURSOR_TOUCH",
	"CURSOR_PAUSE",
	"CURSOR_RESET",
	"SWIPE_LEFT",
	"SWIPE_RIGHT",
	"SWIPE_UP",
	"SWIPE_DOWN",
	"DRAG_TOGGLE",
	"HOME",
	"BACK",
	"SHOW_NOTIFICATION",
	"SHOW_APPS",
}

func (e EventType) String() string {
	if e < 0 || e >= numEventTypes {
		return fmt.Sprintf("EventType(%d)", int(e))
	}
	return eventTypeNames[e]
}

// MarshalText encodes the event by name.
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an event name, case-insensitively.
func (e *EventType) UnmarshalText(text []byte) error {
	parsed, err := ParseEventType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEventType resolves a configuration name such as "SWIPE_LEFT".
func ParseEventType(name string) (EventType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range eventTypeNames {
		if n == upper {
			return EventType(i), nil
		}
	}
	return EventNone, fmt.Errorf("%w: %q", ErrUnknownEventType, name)
}

// EventTypes returns every event type except NONE, in declaration order.
func EventTypes() []EventType {
	events := make([]EventType, 0, numEventTypes-1)
	for e := EventNone + 1; e < numEventTypes; e++ {
		events = append(events, e)
	}
	return events
}

// BlendshapeCount is the length of the score vector produced by the face model.
const BlendshapeCount = 52

// Blendshape is one of the facial expression primitives the engine recognizes.
type Blendshape int

const (
	BlendshapeNone Blendshape = iota
	OpenMouth
	MouthLeft
	MouthRight
	RollLowerMouth
	RaiseLeftEyebrow
	LowerLeftEyebrow
	RaiseRightEyebrow
	LowerRightEyebrow

	numBlendshapes
)

var blendshapeNames = [numBlendshapes]string{
	"NONE",
	"OPEN_MOUTH",
	"MOUTH_LEFT",
	"MOUTH_RIGHT",
	"ROLL_LOWER_MOUTH",
	"RAISE_LEFT_EYEBROW",
	"LOWER_LEFT_EYEBROW",
	"RAISE_RIGHT_EYEBROW",
	"LOWER_RIGHT_EYEBROW",
}

// blendshapeIndex maps each kind to its slot in the model's score vector.
var blendshapeIndex = [numBlendshapes]int{-1, 25, 39, 33, 40, 5, 2, 4, 1}

func (b Blendshape) String() string {
	if b < 0 || b >= numBlendshapes {
		return fmt.Sprintf("Blendshape(%d)", int(b))
	}
	return blendshapeNames[b]
}

// Index returns the score vector slot, or -1 for NONE.
func (b Blendshape) Index() int {
	if b < 0 || b >= numBlendshapes {
		return -1
	}
	return blendshapeIndex[b]
}

func (b Blendshape) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Blendshape) UnmarshalText(text []byte) error {
	parsed, err := ParseBlendshape(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBlendshape resolves a configuration name such as "OPEN_MOUTH".
func ParseBlendshape(name string) (Blendshape, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range blendshapeNames {
		if n == upper {
			return Blendshape(i), nil
		}
	}
	return BlendshapeNone, fmt.Errorf("%w: %q", ErrUnknownBlendshape, name)
}

// Blendshapes returns every recognized kind except NONE.
func Blendshapes() []Blendshape {
	shapes := make([]Blendshape, 0, numBlendshapes-1)
	for b := BlendshapeNone + 1; b < numBlendshapes; b++ {
		shapes = append(shapes, b)
	}
	return shapes
}
