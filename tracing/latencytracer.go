package tracing

import (
	"math"
	"sort"
	"sync"

	"github.com/sarchlab/sumpaxi/sim/timing"
)

// LatencyStats summarizes the tasks that share the same What.
type LatencyStats struct {
	Count    uint64
	Total    timing.VTimeInSec
	Min      timing.VTimeInSec
	Max      timing.VTimeInSec
	Outcomes map[string]uint64
}

// Average returns the mean latency, or 0 if no task finished.
func (s LatencyStats) Average() timing.VTimeInSec {
	if s.Count == 0 {
		return 0
	}

	return s.Total / timing.VTimeInSec(s.Count)
}

// LatencyTracer measures how long tasks take, grouped by What. Overlapping
// tasks are measured independently.
type LatencyTracer struct {
	lock          sync.Mutex
	timeTeller    timing.TimeTeller
	filter        TaskFilter
	inflightTasks map[string]Task
	stats         map[string]*LatencyStats
}

// NewLatencyTracer creates a new LatencyTracer.
func NewLatencyTracer(
	timeTeller timing.TimeTeller,
	filter TaskFilter,
) *LatencyTracer {
	return &LatencyTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]Task),
		stats:         make(map[string]*LatencyStats),
	}
}

// StartTask records the task start time.
func (t *LatencyTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	task.StartTime = t.timeTeller.Now()

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// StepTask does nothing.
func (t *LatencyTracer) StepTask(_ Task) {}

// EndTask accounts the latency of a finished task.
func (t *LatencyTracer) EndTask(task Task) {
	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	original, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	delete(t.inflightTasks, task.ID)

	s, ok := t.stats[original.What]
	if !ok {
		s = &LatencyStats{
			Min:      timing.VTimeInSec(math.Inf(1)),
			Outcomes: make(map[string]uint64),
		}
		t.stats[original.What] = s
	}

	latency := now - original.StartTime
	s.Count++
	s.Total += latency
	s.Min = min(s.Min, latency)
	s.Max = max(s.Max, latency)
	s.Outcomes[task.Outcome]++
}

// Stats returns a copy of the statistics of one kind of task.
func (t *LatencyTracer) Stats(what string) (LatencyStats, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	s, ok := t.stats[what]
	if !ok {
		return LatencyStats{}, false
	}

	c := *s
	c.Outcomes = make(map[string]uint64, len(s.Outcomes))
	for k, v := range s.Outcomes {
		c.Outcomes[k] = v
	}

	return c, true
}

// Whats lists the task names that have statistics, sorted.
func (t *LatencyTracer) Whats() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	whats := make([]string, 0, len(t.stats))
	for w := range t.stats {
		whats = append(whats, w)
	}

	sort.Strings(whats)

	return whats
}

// InflightCount returns the number of tasks started but not ended.
func (t *LatencyTracer) InflightCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.inflightTasks)
}
