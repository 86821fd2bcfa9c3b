package engine

// TriggerResult describes the edges seen on one evaluation.
type TriggerResult struct {
	// Fired is the single event that crossed above its threshold, or EventNone.
	Fired EventType
	// Released lists events whose score fell back to or below the threshold.
	Released []EventType
}

// WasReleased reports whether event was released on this evaluation.
func (r TriggerResult) WasReleased(event EventType) bool {
	for _, e := range r.Released {
		if e == event {
			return true
		}
	}
	return false
}

// GestureTrigger is a per-event hysteresis edge detector over blendshape scores.
type GestureTrigger struct {
	armed [numEventTypes]bool
}

// NewGestureTrigger returns a trigger with every event disarmed.
func NewGestureTrigger() *GestureTrigger {
	return &GestureTrigger{}
}

// Evaluate scans bindings in order. An event fires only on the tick its score
// rises above the threshold; it can fire again only after the score has been
// at or below the threshold. Evaluation stops at the first event that fires,
// so a second gesture crossing on the same tick fires on the next one.
// Releases seen before that point are applied and reported.
func (t *GestureTrigger) Evaluate(scores []float64, bindings *Bindings) TriggerResult {
	var res TriggerResult
	for _, event := range bindings.order {
		b := bindings.table[event]
		if !b.Bound() {
			continue
		}
		idx := b.Shape.Index()
		if idx < 0 || idx >= len(scores) {
			continue
		}
		score := scores[idx]

		switch {
		case !t.armed[event] && score > b.Threshold:
			t.armed[event] = true
			res.Fired = event
			return res
		case t.armed[event] && score <= b.Threshold:
			t.armed[event] = false
			res.Released = append(res.Released, event)
		}
	}
	return res
}

// Armed reports whether event is currently held above its threshold.
func (t *GestureTrigger) Armed(event EventType) bool {
	if event < 0 || event >= numEventTypes {
		return false
	}
	return t.armed[event]
}

// Disarm clears the armed flag of one event, e.g. after its binding changed.
func (t *GestureTrigger) Disarm(event EventType) {
	if event >= 0 && event < numEventTypes {
		t.armed[event] = false
	}
}
