package tracing

import (
	"sync"

	"github.com/sarchlab/sumpaxi/sim/timing"
)

// BusyTimeTracer measures how long a domain has at least one task in flight.
// Overlapping tasks count once.
type BusyTimeTracer struct {
	lock          sync.Mutex
	timeTeller    timing.TimeTeller
	filter        TaskFilter
	inflightTasks map[string]bool
	busySince     timing.VTimeInSec
	busyTime      timing.VTimeInSec
}

// NewBusyTimeTracer creates a new BusyTimeTracer. A nil filter accepts all
// tasks.
func NewBusyTimeTracer(
	timeTeller timing.TimeTeller,
	filter TaskFilter,
) *BusyTimeTracer {
	return &BusyTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]bool),
	}
}

// BusyTime returns the busy time of the periods that have ended.
func (t *BusyTimeTracer) BusyTime() timing.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.busyTime
}

// BusyTimeAt returns the busy time up to now, counting a period that is
// still open.
func (t *BusyTimeTracer) BusyTimeAt(now timing.VTimeInSec) timing.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.inflightTasks) == 0 || now < t.busySince {
		return t.busyTime
	}

	return t.busyTime + now - t.busySince
}

// TerminateAllTasks ends every task in flight at the given time.
func (t *BusyTimeTracer) TerminateAllTasks(now timing.VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.inflightTasks) == 0 {
		return
	}

	t.busyTime += now - t.busySince
	t.inflightTasks = make(map[string]bool)
}

// StartTask opens a busy period if the domain was idle.
func (t *BusyTimeTracer) StartTask(task Task) {
	if t.filter != nil && !t.filter(task) {
		return
	}

	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.inflightTasks) == 0 {
		t.busySince = now
	}

	t.inflightTasks[task.ID] = true
}

// StepTask does nothing.
func (t *BusyTimeTracer) StepTask(_ Task) {}

// EndTask closes the busy period when the last task ends.
func (t *BusyTimeTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.inflightTasks[task.ID] {
		return
	}

	delete(t.inflightTasks, task.ID)

	if len(t.inflightTasks) == 0 {
		t.busyTime += t.timeTeller.Now() - t.busySince
	}
}
