package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoresWith(values map[Blendshape]float64) []float64 {
	scores := make([]float64, BlendshapeCount)
	for shape, v := range values {
		scores[shape.Index()] = v
	}
	return scores
}

func TestGestureTrigger_FiresOncePerCrossing(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Set(EventCursorTouch, Binding{Shape: OpenMouth, Threshold: 0.5}))

	trigger := NewGestureTrigger()
	sequence := []float64{0.2, 0.6, 0.7, 0.9, 0.5, 0.6, 0.4, 0.8, 0.8}

	var fired []int
	for i, score := range sequence {
		res := trigger.Evaluate(scoresWith(map[Blendshape]float64{OpenMouth: score}), bindings)
		if res.Fired == EventCursorTouch {
			fired = append(fired, i)
		}
	}

	assert.Equal(t, []int{1, 5, 7}, fired)
}

func TestGestureTrigger_OneEventPerTick(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Set(EventCursorTouch, Binding{Shape: OpenMouth, Threshold: 0.5}))
	require.NoError(t, bindings.Set(EventHome, Binding{Shape: MouthLeft, Threshold: 0.5}))

	trigger := NewGestureTrigger()
	both := scoresWith(map[Blendshape]float64{OpenMouth: 0.9, MouthLeft: 0.9})

	assert.Equal(t, EventCursorTouch, trigger.Evaluate(both, bindings).Fired)
	assert.Equal(t, EventHome, trigger.Evaluate(both, bindings).Fired, "deferred crossing fires next tick")
	assert.Equal(t, EventNone, trigger.Evaluate(both, bindings).Fired)
}

func TestGestureTrigger_EvaluatesInInsertionOrder(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Set(EventBack, Binding{Shape: MouthRight, Threshold: 0.3}))
	require.NoError(t, bindings.Set(EventCursorTouch, Binding{Shape: OpenMouth, Threshold: 0.3}))
	// rebinding keeps its slot
	require.NoError(t, bindings.Set(EventBack, Binding{Shape: MouthRight, Threshold: 0.4}))

	assert.Equal(t, []EventType{EventBack, EventCursorTouch}, bindings.Events())

	trigger := NewGestureTrigger()
	res := trigger.Evaluate(scoresWith(map[Blendshape]float64{OpenMouth: 0.9, MouthRight: 0.9}), bindings)
	assert.Equal(t, EventBack, res.Fired)
}

func TestGestureTrigger_ReleasesAreReported(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Set(EventCursorReset, Binding{Shape: RaiseLeftEyebrow, Threshold: 0.5}))
	require.NoError(t, bindings.Set(EventCursorTouch, Binding{Shape: OpenMouth, Threshold: 0.5}))

	trigger := NewGestureTrigger()
	trigger.Evaluate(scoresWith(map[Blendshape]float64{RaiseLeftEyebrow: 0.9}), bindings)
	assert.True(t, trigger.Armed(EventCursorReset))
	// reading the flag does not change it
	assert.True(t, trigger.Armed(EventCursorReset))

	res := trigger.Evaluate(scoresWith(map[Blendshape]float64{OpenMouth: 0.9}), bindings)
	assert.Equal(t, EventCursorTouch, res.Fired)
	assert.True(t, res.WasReleased(EventCursorReset))
	assert.False(t, trigger.Armed(EventCursorReset))
}

func TestGestureTrigger_SkipsUnboundAndMissingScores(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Set(EventHome, Binding{Shape: BlendshapeNone, Threshold: 0}))
	require.NoError(t, bindings.Set(EventBack, Binding{Shape: RollLowerMouth, Threshold: 0.1}))

	trigger := NewGestureTrigger()
	res := trigger.Evaluate(make([]float64, 10), bindings)
	assert.Equal(t, EventNone, res.Fired)
	assert.Empty(t, res.Released)
}

func TestBindings_RejectsUnknown(t *testing.T) {
	bindings := NewBindings()
	assert.ErrorIs(t, bindings.Set(EventNone, Binding{Shape: OpenMouth}), ErrUnknownEventType)
	assert.ErrorIs(t, bindings.Set(EventHome, Binding{Shape: Blendshape(99)}), ErrUnknownBlendshape)

	require.NoError(t, bindings.Set(EventHome, Binding{Shape: OpenMouth, Threshold: 1.7}))
	b, ok := bindings.Get(EventHome)
	assert.True(t, ok)
	assert.Equal(t, 1.0, b.Threshold)
}

func TestParseNames(t *testing.T) {
	ev, err := ParseEventType("swipe_left")
	require.NoError(t, err)
	assert.Equal(t, EventSwipeLeft, ev)

	_, err = ParseEventType("JUMP")
	assert.ErrorIs(t, err, ErrUnknownEventType)

	shape, err := ParseBlendshape("LOWER_RIGHT_EYEBROW")
	require.NoError(t, err)
	assert.Equal(t, 1, shape.Index())
	assert.Equal(t, -1, BlendshapeNone.Index())

	_, err = ParseBlendshape("WINK")
	assert.ErrorIs(t, err, ErrUnknownBlendshape)

	assert.Len(t, EventTypes(), 12)
	assert.Len(t, Blendshapes(), 8)
}
