// Package wrapper binds the front-end register file, the command sequencer
// and a downstream device into one ticking component.
package wrapper

import (
	"errors"

	"github.com/sarchlab/sumpaxi/sim/hooking"
	"github.com/sarchlab/sumpaxi/sim/id"
	"github.com/sarchlab/sumpaxi/sim/modeling"
	"github.com/sarchlab/sumpaxi/tracing"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

// Hook positions of the wrapper.
var (
	// HookPosStateChange is invoked with a Transition as the item whenever
	// the sequencer changes phase.
	HookPosStateChange = &hooking.HookPos{Name: "StateChange"}

	// HookPosStartRejected is invoked with the rejected request as the item
	// when START is written while a command is in flight.
	HookPosStartRejected = &hooking.HookPos{Name: "StartRejected"}
)

// Task kind and outcomes of traced commands.
const (
	TaskKindCmd = "cmd"

	OutcomeDone    = "done"
	OutcomeError   = "error"
	OutcomeAborted = "aborted"
)

// Transition describes one phase change.
type Transition struct {
	From  sequencer.State
	To    sequencer.State
	Cycle uint64
}

// Comp is the command sequencer wrapper. It ticks while a command is in
// flight or a control bit is waiting and sleeps otherwise.
type Comp struct {
	*modeling.TickingComponent

	regs    *regfile.RegFile
	core    sequencer.Core
	budgets sequencer.Budgets
	device  Device

	cmdID    string
	rejected uint64
}

// Tick samples the register file and the device, steps the sequencer and
// publishes the result. It returns true while there is more work to do.
func (c *Comp) Tick() bool {
	c.Lock()

	if !c.core.Busy() && !c.regs.Pending() {
		c.Unlock()
		return false
	}

	prev := c.core
	eff := c.step()
	next := c.core
	progress := next.Busy() || c.regs.Pending()

	c.Unlock()

	c.report(prev, next, eff)

	return progress
}

func (c *Comp) step() sequencer.Effects {
	in := c.regs.Inputs()

	sig := c.device.Exchange(sequencer.BusOf(c.core))
	in.ReadReady = sig.ReadReady
	in.ReadData = sig.ReadData

	next, eff := sequencer.Step(c.core, in, c.budgets)
	c.core = next
	c.regs.Update(next, eff, passthrough(sig))

	return eff
}

func passthrough(sig Signals) regfile.Passthrough {
	return regfile.Passthrough{
		Armed:    sig.Armed,
		Awake:    sig.Awake,
		HubCount: sig.HubCount,
	}
}

func (c *Comp) report(prev, next sequencer.Core, eff sequencer.Effects) {
	if eff.StartTaken {
		c.cmdID = id.Generate()
		tracing.StartTask(c.cmdID, "", c, TaskKindCmd,
			CommandName(next), next.Request)
	}

	if prev.State != next.State {
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosStateChange,
			Item: Transition{
				From:  prev.State,
				To:    next.State,
				Cycle: c.CurrentCycle(),
			},
		})

		if c.cmdID != "" {
			tracing.AddTaskStep(c.cmdID, c, next.State.String())
		}
	}

	if c.cmdID == "" {
		return
	}

	switch {
	case eff.AbortTaken:
		c.endCmd(OutcomeAborted)
	case next.State == sequencer.Done:
		c.endCmd(OutcomeDone)
	case next.State == sequencer.Error:
		c.endCmd(OutcomeError)
	}
}

func (c *Comp) endCmd(outcome string) {
	tracing.EndTask(c.cmdID, c, outcome)
	c.cmdID = ""
}

// CommandName returns the opcode name of the command latched in a core, or
// its hexadecimal value if the opcode is unnamed.
func CommandName(core sequencer.Core) string {
	if core.Entry.Name != "" {
		return core.Entry.Name
	}

	return core.Request.Opcode.String()
}

// ReadReg reads a front-end register.
func (c *Comp) ReadReg(offset uint32) (uint32, error) {
	c.Lock()
	defer c.Unlock()

	return c.regs.Read(offset)
}

// WriteReg writes a front-end register and wakes the component. A START
// written while busy is dropped and reported through HookPosStartRejected.
func (c *Comp) WriteReg(offset, value uint32) error {
	c.Lock()
	err := c.regs.Write(offset, value)
	req := c.regs.Inputs().Request
	c.Unlock()

	if errors.Is(err, regfile.ErrStartWhileBusy) {
		c.Lock()
		c.rejected++
		c.Unlock()

		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosStartRejected,
			Item:   req,
		})

		err = nil
	}

	if err != nil {
		return err
	}

	c.TickLater()

	return nil
}

// Core returns a copy of the sequencer state.
func (c *Comp) Core() sequencer.Core {
	c.Lock()
	defer c.Unlock()

	return c.core
}

// Status returns the status flags as of the last tick.
func (c *Comp) Status() sequencer.Status {
	c.Lock()
	defer c.Unlock()

	return c.regs.Status()
}

// IRQ returns the level of the interrupt line.
func (c *Comp) IRQ() bool {
	c.Lock()
	defer c.Unlock()

	return c.regs.IRQ()
}

// Budgets returns the settle budgets in use.
func (c *Comp) Budgets() sequencer.Budgets {
	return c.budgets
}

// RejectedStarts returns how many START writes were dropped while busy.
func (c *Comp) RejectedStarts() uint64 {
	c.Lock()
	defer c.Unlock()

	return c.rejected
}
