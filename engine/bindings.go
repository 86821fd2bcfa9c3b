package engine

import "fmt"

// Binding maps an event to the blendshape that fires it and the score it must exceed.
type Binding struct {
	Shape     Blendshape `json:"shape" yaml:"shape"`
	Threshold float64    `json:"threshold" yaml:"threshold"`
}

// Bound reports whether the binding names a real blendshape.
func (b Binding) Bound() bool {
	return b.Shape != BlendshapeNone
}

// Bindings is the event to gesture table. Entries are evaluated in the order
// they were first set; updating an existing entry keeps its position.
type Bindings struct {
	order []EventType
	table [numEventTypes]Binding
	set   [numEventTypes]bool
}

// NewBindings returns an empty table.
func NewBindings() *Bindings {
	return &Bindings{}
}

// Set binds an event. Thresholds outside [0,1] are clamped.
func (b *Bindings) Set(event EventType, binding Binding) error {
	if event <= EventNone || event >= numEventTypes {
		return fmt.Errorf("%w: %v", ErrUnknownEventType, event)
	}
	if binding.Shape < 0 || binding.Shape >= numBlendshapes {
		return fmt.Errorf("%w: %v", ErrUnknownBlendshape, binding.Shape)
	}
	binding.Threshold = clamp(binding.Threshold, 0, 1)

	if !b.set[event] {
		b.set[event] = true
		b.order = append(b.order, event)
	}
	b.table[event] = binding
	return nil
}

// Get returns the binding for an event and whether one was ever set.
func (b *Bindings) Get(event EventType) (Binding, bool) {
	if event <= EventNone || event >= numEventTypes {
		return Binding{}, false
	}
	return b.table[event], b.set[event]
}

// Events returns the bound events in evaluation order.
func (b *Bindings) Events() []EventType {
	out := make([]EventType, len(b.order))
	copy(out, b.order)
	return out
}

// Len returns how many events have an entry.
func (b *Bindings) Len() int {
	return len(b.order)
}

// Clone returns an independent copy.
func (b *Bindings) Clone() *Bindings {
	c := &Bindings{table: b.table, set: b.set}
	c.order = b.Events()
	return c
}
