package devices

import (
	"errors"
	"sync"
	"testing"

	"github.com/mobile-next/facepointer/types"
	"github.com/stretchr/testify/assert"
)

// blockingInjector holds every call until release is closed.
type blockingInjector struct {
	recorder
	release chan struct{}
}

func (b *blockingInjector) Tap(x, y int) error {
	<-b.release
	return b.recorder.Tap(x, y)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	rec := &recorder{id: "rec"}
	var mu sync.Mutex
	var results []error
	d := NewDispatcher(rec, 4, func(_ types.Action, err error) {
		mu.Lock()
		results = append(results, err)
		mu.Unlock()
	})

	assert.True(t, d.Submit(types.Action{Kind: types.ActionTap, Start: types.Point{X: 1, Y: 2}}))
	assert.True(t, d.Submit(types.Action{Kind: types.ActionHome}))
	assert.True(t, d.Submit(types.Action{}), "empty actions are accepted and ignored")
	d.Close()

	assert.Equal(t, []string{"tap 1 2", "button home"}, rec.Calls())
	assert.Len(t, results, 2)
	assert.False(t, d.Submit(types.Action{Kind: types.ActionBack}), "closed dispatcher rejects")
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	inj := &blockingInjector{recorder: recorder{id: "slow"}, release: make(chan struct{})}
	d := NewDispatcher(inj, 1, nil)

	tap := types.Action{Kind: types.ActionTap}
	// the first may already be picked up by the worker, so fill until a drop
	accepted := 0
	for i := 0; i < 5; i++ {
		if d.Submit(tap) {
			accepted++
		}
	}
	assert.LessOrEqual(t, accepted, 2)
	assert.Equal(t, uint64(5-accepted), d.Dropped())

	close(inj.release)
	d.Close()
	assert.Len(t, inj.Calls(), accepted)
}

func TestDispatcher_ReportsErrors(t *testing.T) {
	failure := errors.New("adb gone")
	rec := &recorder{id: "rec", err: failure}

	got := make(chan error, 1)
	d := NewDispatcher(rec, 0, func(_ types.Action, err error) { got <- err })
	d.Submit(types.Action{Kind: types.ActionBack})
	d.Close()

	assert.ErrorIs(t, <-got, failure)
}
