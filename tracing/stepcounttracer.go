package tracing

import (
	"sync"
)

// StepCountTracer counts the steps that tasks go through. For the wrapper,
// where every phase change is a step, it tells how often each phase is
// visited and by how many commands.
type StepCountTracer struct {
	lock          sync.Mutex
	filter        TaskFilter
	inflightTasks map[string]map[string]bool
	stepNames     []string
	stepCount     map[string]uint64
	taskCount     map[string]uint64
}

// NewStepCountTracer creates a new StepCountTracer.
func NewStepCountTracer(filter TaskFilter) *StepCountTracer {
	return &StepCountTracer{
		filter:        filter,
		inflightTasks: make(map[string]map[string]bool),
		stepCount:     make(map[string]uint64),
		taskCount:     make(map[string]uint64),
	}
}

// StepNames returns the step names in the order they were first seen.
func (t *StepCountTracer) StepNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]string(nil), t.stepNames...)
}

// StepCount returns how many times a step was reached.
func (t *StepCountTracer) StepCount(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.stepCount[what]
}

// TaskCount returns how many tasks reached a step at least once.
func (t *StepCountTracer) TaskCount(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.taskCount[what]
}

// StartTask starts following a task.
func (t *StepCountTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = make(map[string]bool)
	t.lock.Unlock()
}

// StepTask counts the step if the task is followed.
func (t *StepCountTracer) StepTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	seen, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	for _, step := range task.Steps {
		if _, known := t.stepCount[step.What]; !known {
			t.stepNames = append(t.stepNames, step.What)
		}

		t.stepCount[step.What]++

		if !seen[step.What] {
			seen[step.What] = true
			t.taskCount[step.What]++
		}
	}
}

// EndTask stops following a task.
func (t *StepCountTracer) EndTask(task Task) {
	t.lock.Lock()
	delete(t.inflightTasks, task.ID)
	t.lock.Unlock()
}
