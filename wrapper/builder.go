package wrapper

import (
	"log"

	"github.com/sarchlab/sumpaxi/sim/modeling"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

// A Builder can build wrapper components.
type Builder struct {
	engine   timing.Engine
	freq     timing.Freq
	device   Device
	budgets  sequencer.Budgets
	timeout  uint16
	revision uint8
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:     100 * timing.MHz,
		budgets:  sequencer.DefaultBudgets(),
		timeout:  regfile.DefaultTimeout,
		revision: 0x01,
	}
}

// WithEngine sets the engine that drives the wrapper.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithDevice sets the downstream collaborator.
func (b Builder) WithDevice(device Device) Builder {
	b.device = device
	return b
}

// WithBudgets sets the settle budgets.
func (b Builder) WithBudgets(budgets sequencer.Budgets) Builder {
	b.budgets = budgets
	return b
}

// WithTimeout sets the reset value of the TIMEOUT register.
func (b Builder) WithTimeout(ticks uint16) Builder {
	b.timeout = ticks
	return b
}

// WithRevision sets the revision byte of HW_INFO.
func (b Builder) WithRevision(revision uint8) Builder {
	b.revision = revision
	return b
}

// Build creates a wrapper. The device is sampled once with an idle bus so
// that HW_INFO and CAP_STATUS are valid before the first tick.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.device == nil {
		log.Panic("device is not set")
	}

	c := &Comp{
		regs:    regfile.New(b.timeout, b.revision),
		budgets: b.budgets,
		device:  b.device,
	}
	c.TickingComponent = modeling.NewTickingComponent(name, b.engine, b.freq, c)

	sig := c.device.Exchange(sequencer.Bus{})
	c.regs.Update(c.core, sequencer.Effects{}, passthrough(sig))

	return c
}
