package devices

import (
	"sync"
	"sync/atomic"

	"github.com/mobile-next/facepointer/types"
	"github.com/mobile-next/facepointer/utils"
)

// DefaultQueueSize bounds how many actions may wait for the injector.
const DefaultQueueSize = 8

// ResultFunc observes each delivered action and its outcome.
type ResultFunc func(action types.Action, err error)

// Dispatcher delivers actions to an Injector on its own goroutine so the tick
// loop never waits on device I/O. When the queue is full the newest action is
// dropped.
type Dispatcher struct {
	injector Injector
	queue    chan types.Action
	done     chan struct{}
	onResult ResultFunc
	dropped  atomic.Uint64
	wg       sync.WaitGroup
	once     sync.Once
}

// NewDispatcher starts a dispatcher. size < 1 uses DefaultQueueSize.
func NewDispatcher(injector Injector, size int, onResult ResultFunc) *Dispatcher {
	if size < 1 {
		size = DefaultQueueSize
	}
	d := &Dispatcher{
		injector: injector,
		queue:    make(chan types.Action, size),
		done:     make(chan struct{}),
		onResult: onResult,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Submit queues an action without blocking. It returns false if the action
// was dropped.
func (d *Dispatcher) Submit(action types.Action) bool {
	if action.IsZero() {
		return true
	}

	select {
	case <-d.done:
		return false
	default:
	}

	select {
	case d.queue <- action:
		return true
	default:
		d.dropped.Add(1)
		utils.Warn("injector %s busy, dropping %s", d.injector.ID(), action.Kind)
		return false
	}
}

// Dropped returns how many actions were discarded because the queue was full.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Close delivers what is already queued and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case action := <-d.queue:
			d.deliver(action)
		case <-d.done:
			for {
				select {
				case action := <-d.queue:
					d.deliver(action)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(action types.Action) {
	err := Perform(d.injector, action)
	if err != nil {
		utils.Warn("failed to perform %s on %s: %v", action.Kind, d.injector.ID(), err)
	} else {
		utils.Verbose("performed %s on %s", action.Kind, d.injector.ID())
	}
	if d.onResult != nil {
		d.onResult(action, err)
	}
}
