package timing

import (
	"log"
	"math"
	"reflect"
	"sync"

	"github.com/sarchlab/sumpaxi/sim/hooking"
)

// A SerialEngine handles events one at a time in time order. At equal time,
// primary events go before secondary ones.
//
// Schedule, Now, Pause and Continue may be called from other goroutines
// while Run is in progress.
type SerialEngine struct {
	hooking.HookableBase

	mu        sync.Mutex
	now       VTimeInSec
	primary   EventQueue
	secondary EventQueue
	handled   uint64

	// gate is held while an event is handled and by a paused engine.
	gate     sync.Mutex
	paused   bool
	pausedMu sync.Mutex

	running sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		primary:   NewEventQueue(),
		secondary: NewEventQueue(),
	}
}

// Name returns the name of the engine.
func (e *SerialEngine) Name() string {
	return "SerialEngine"
}

// Schedule registers an event to happen in the future.
func (e *SerialEngine) Schedule(evt Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if evt.Time() < e.now {
		log.Panicf("event %s scheduled at %.10f, before now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.now)
	}

	if evt.IsSecondary() {
		e.secondary.Push(evt)
		return
	}

	e.primary.Push(evt)
}

// Run handles events until none is left or a handler fails.
func (e *SerialEngine) Run() error {
	return e.RunUntil(math.Inf(1))
}

// RunUntil handles the events scheduled no later than deadline. Later events
// stay queued, and the engine time does not move past the last handled
// event.
func (e *SerialEngine) RunUntil(deadline VTimeInSec) error {
	e.running.Lock()
	defer e.running.Unlock()

	for {
		e.gate.Lock()

		evt := e.pop(deadline)
		if evt == nil {
			e.gate.Unlock()
			return nil
		}

		err := e.handle(evt)

		e.gate.Unlock()

		if err != nil {
			return err
		}
	}
}

func (e *SerialEngine) handle(evt Event) error {
	ctx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return err
}

// pop removes the next event and advances the time to it. It returns nil if
// there is no event due by deadline.
func (e *SerialEngine) pop(deadline VTimeInSec) Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.nextQueue()
	if q == nil || q.Peek().Time() > deadline {
		return nil
	}

	evt := q.Pop()
	e.now = evt.Time()
	e.handled++

	return evt
}

func (e *SerialEngine) nextQueue() EventQueue {
	switch {
	case e.primary.Len() == 0 && e.secondary.Len() == 0:
		return nil
	case e.secondary.Len() == 0:
		return e.primary
	case e.primary.Len() == 0:
		return e.secondary
	case e.primary.Peek().Time() <= e.secondary.Peek().Time():
		return e.primary
	default:
		return e.secondary
	}
}

// Pending returns the number of events waiting to be handled.
func (e *SerialEngine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.primary.Len() + e.secondary.Len()
}

// EventCount returns the number of events handled so far.
func (e *SerialEngine) EventCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.handled
}

// Pause stops the engine after the event being handled.
func (e *SerialEngine) Pause() {
	e.pausedMu.Lock()
	defer e.pausedMu.Unlock()

	if e.paused {
		return
	}

	e.gate.Lock()
	e.paused = true
}

// Continue resumes a paused engine.
func (e *SerialEngine) Continue() {
	e.pausedMu.Lock()
	defer e.pausedMu.Unlock()

	if !e.paused {
		return
	}

	e.paused = false
	e.gate.Unlock()
}

// Now returns the time of the event being handled, or of the last one.
func (e *SerialEngine) Now() VTimeInSec {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.now
}
