package host

import (
	"fmt"
	"log"

	"github.com/sarchlab/sumpaxi/monitoring"
	"github.com/sarchlab/sumpaxi/sim/modeling"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
)

// Target is the register interface the agent drives.
type Target interface {
	ReadReg(offset uint32) (uint32, error)
	WriteReg(offset, value uint32) error
}

// Outcomes of a command as seen by the host.
const (
	OutcomeDone    = "done"
	OutcomeError   = "error"
	OutcomeAborted = "aborted"
)

// Result is what the host observed for one command.
type Result struct {
	Command Command
	Outcome string
	Status  uint32
	Data    uint32
	Cycles  uint64

	// Mismatch is set when the result differs from the expectation of the
	// command.
	Mismatch error
}

type phase int

const (
	phaseIssue phase = iota
	phasePoll
	phaseAck
)

// Agent is a ticking component that executes commands one at a time.
type Agent struct {
	*modeling.TickingComponent

	target Target
	useIRQ bool
	bar    *monitoring.ProgressBar

	queue    []Command
	phase    phase
	issuedAt uint64
	aborted  bool
	results  []Result
}

// Tick advances the current command by one host action.
func (a *Agent) Tick() bool {
	if len(a.queue) == 0 {
		return false
	}

	switch a.phase {
	case phaseIssue:
		a.issue(a.queue[0])
	case phasePoll:
		a.poll(a.queue[0])
	case phaseAck:
		a.waitAck()
	}

	return true
}

func (a *Agent) ctrlBits() uint32 {
	if a.useIRQ {
		return regfile.CtrlIRQEnable
	}

	return 0
}

func (a *Agent) issue(c Command) {
	a.write(regfile.OffsetCmd, uint32(c.Opcode))
	a.write(regfile.OffsetAddr, uint32(c.Address))
	a.write(regfile.OffsetWData, c.Data)
	a.write(regfile.OffsetCtrl, regfile.CtrlStart|a.ctrlBits())

	a.issuedAt = a.CurrentCycle()
	a.aborted = false
	a.phase = phasePoll

	if a.bar != nil {
		a.bar.IncrementInProgress(1)
	}
}

func (a *Agent) poll(c Command) {
	status := a.read(regfile.OffsetStatus)

	if status&regfile.StatusBusy != 0 {
		elapsed := a.CurrentCycle() - a.issuedAt
		if c.AbortAfter > 0 && !a.aborted && elapsed >= c.AbortAfter {
			a.write(regfile.OffsetCtrl, regfile.CtrlAbort|a.ctrlBits())
			a.aborted = true
		}

		return
	}

	a.finish(c, status, a.read(regfile.OffsetRData))

	if status&regfile.StatusIRQPending != 0 {
		a.write(regfile.OffsetIRQStatus, regfile.IRQStatusPending)
		a.phase = phaseAck

		return
	}

	a.next()
}

func (a *Agent) waitAck() {
	if a.read(regfile.OffsetIRQStatus)&regfile.IRQStatusPending == 0 {
		a.next()
	}
}

func (a *Agent) next() {
	a.queue = a.queue[1:]
	a.phase = phaseIssue
}

func (a *Agent) finish(c Command, status, data uint32) {
	r := Result{
		Command: c,
		Status:  status,
		Data:    data,
		Cycles:  a.CurrentCycle() - a.issuedAt,
	}

	switch {
	case status&regfile.StatusDone != 0:
		r.Outcome = OutcomeDone
	case status&regfile.StatusError != 0:
		r.Outcome = OutcomeError
	default:
		r.Outcome = OutcomeAborted
	}

	r.Mismatch = check(c, r)
	a.results = append(a.results, r)

	if a.bar != nil {
		a.bar.MoveInProgressToFinished(1)
	}
}

func check(c Command, r Result) error {
	switch {
	case c.ExpectError && r.Outcome != OutcomeError:
		return fmt.Errorf("step %d (%s): expected error, got %s",
			c.Index, c.Name(), r.Outcome)
	case !c.ExpectError && c.AbortAfter == 0 && r.Outcome != OutcomeDone:
		return fmt.Errorf("step %d (%s): ended with %s",
			c.Index, c.Name(), r.Outcome)
	case c.Expect != nil && r.Outcome == OutcomeDone && r.Data != *c.Expect:
		return fmt.Errorf("step %d (%s): read 0x%08X, expected 0x%08X",
			c.Index, c.Name(), r.Data, *c.Expect)
	}

	return nil
}

func (a *Agent) read(offset uint32) uint32 {
	v, err := a.target.ReadReg(offset)
	if err != nil {
		log.Panic(err)
	}

	return v
}

func (a *Agent) write(offset, value uint32) {
	err := a.target.WriteReg(offset, value)
	if err != nil {
		log.Panic(err)
	}
}

// Enqueue adds commands to execute and wakes the agent.
func (a *Agent) Enqueue(cmds ...Command) {
	a.queue = append(a.queue, cmds...)
	a.TickLater()
}

// Results returns what the agent observed so far.
func (a *Agent) Results() []Result {
	return a.results
}

// Mismatches returns the results that did not meet their expectation.
func (a *Agent) Mismatches() []error {
	var errs []error

	for _, r := range a.results {
		if r.Mismatch != nil {
			errs = append(errs, r.Mismatch)
		}
	}

	return errs
}

// A Builder can build agents.
type Builder struct {
	engine timing.Engine
	freq   timing.Freq
	target Target
	useIRQ bool
	bar    *monitoring.ProgressBar
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: 100 * timing.MHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency, which should match the wrapper's.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithTarget sets the register interface to drive.
func (b Builder) WithTarget(t Target) Builder {
	b.target = t
	return b
}

// WithIRQ makes the agent enable and acknowledge interrupts.
func (b Builder) WithIRQ(useIRQ bool) Builder {
	b.useIRQ = useIRQ
	return b
}

// WithProgressBar reports progress to a monitor progress bar.
func (b Builder) WithProgressBar(bar *monitoring.ProgressBar) Builder {
	b.bar = bar
	return b
}

// Build creates an agent. The agent ticks after the wrapper within a cycle
// so that it observes the registers the wrapper has just updated.
func (b Builder) Build(name string) *Agent {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.target == nil {
		log.Panic("target is not set")
	}

	a := &Agent{
		target: b.target,
		useIRQ: b.useIRQ,
		bar:    b.bar,
	}
	a.TickingComponent = modeling.NewSecondaryTickingComponent(
		name, b.engine, b.freq, a)

	return a
}
