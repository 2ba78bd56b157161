package sequencer

import "github.com/sarchlab/sumpaxi/wrapper/opcode"

// successor is the phase that follows a timed phase once its settle timer
// expires. SerialCmdHold branches on the category and is not listed.
var successor = map[State]State{
	StateAssert: StateHold,
	StateHold:   Done,

	LocalReadAssert: LocalReadHold,
	LocalReadHold:   LocalReadIssue,
	LocalReadIssue:  LocalReadAwait,

	LocalWriteAssert: LocalWriteHold,
	LocalWriteHold:   LocalWriteIssue,
	LocalWriteIssue:  LocalWriteSettle,
	LocalWriteSettle: Done,

	SerialAddrAssert: SerialAddrHold,
	SerialAddrHold:   SerialAddrWrite,
	SerialAddrWrite:  SerialAddrSettle,
	SerialAddrSettle: SerialCmdAssert,
	SerialCmdAssert:  SerialCmdHold,

	SerialWriteIssue:  SerialWriteSettle,
	SerialWriteSettle: Done,

	SerialReadTrigger:     SerialReadTriggerHold,
	SerialReadTriggerHold: SerialReadSettle,
	SerialReadSettle:      SerialReadIssue,
	SerialReadIssue:       SerialReadAwait,
}

// FirstPhase returns the phase a command of the given entry starts in.
// Entries without a native code go straight to Error, so NativeNone never
// reaches the bus.
func FirstPhase(e opcode.Entry) State {
	if e.NoOp {
		return Done
	}

	if e.Native == opcode.NativeNone {
		return Error
	}

	switch e.Category {
	case opcode.StateCommand:
		return StateAssert
	case opcode.LocalRead:
		return LocalReadAssert
	case opcode.LocalWrite:
		return LocalWriteAssert
	case opcode.SerialRead, opcode.SerialWrite:
		return SerialAddrAssert
	default:
		return Error
	}
}

// Step advances the sequencer by one tick. It is pure: the returned core is
// computed only from the given core, inputs and budgets.
//
// Within a tick the rules apply in this order: IRQ acknowledgment, dispatch
// or phase progress, terminal flag updates, data capture, and finally abort,
// which overrides every next-state decision but not the capture.
func Step(c Core, in Inputs, budgets Budgets) (Core, Effects) {
	next := c
	eff := Effects{Bus: BusOf(c)}

	if in.IRQAck {
		next.IRQPending = false
	}

	switch {
	case c.State == Idle:
		next.Timeout.Load(uint32(in.TimeoutBudget))

		if in.Start {
			dispatch(&next, in, budgets)
			eff.StartTaken = true
		}
	case c.State.IsTerminal():
		next.State = Idle
	default:
		advance(&next, c, in, budgets)
	}

	if c.State.CaptureEnabled() && in.ReadReady {
		next.Result = in.ReadData
		eff.Captured = true
	}

	if in.Abort && c.State != Idle {
		next.State = Idle
		next.Done = c.Done
		next.Error = c.Error
		next.LastError = c.LastError
		next.IRQPending = c.IRQPending && !in.IRQAck
		eff.AbortTaken = true
	}

	return next, eff
}

func dispatch(next *Core, in Inputs, budgets Budgets) {
	next.Request = in.Request
	next.Entry = opcode.Lookup(in.Request.Opcode)
	next.IRQEnable = in.IRQEnable
	next.Done = false
	next.Error = false
	next.LastError = ErrorNone

	first := FirstPhase(next.Entry)
	switch {
	case first != Error:
	case next.Entry.Category == opcode.Unknown:
		next.LastError = ErrorUnknownOpcode
	default:
		next.LastError = ErrorUnassignedOpcode
	}

	enter(next, first, budgets)
}

func advance(next *Core, c Core, in Inputs, budgets Budgets) {
	next.Timeout.Tick()
	next.Settle.Tick()

	if c.State.CaptureEnabled() && in.ReadReady {
		enter(next, Done, budgets)
		return
	}

	if next.Timeout.Expired() {
		next.LastError = ErrorTimeout
		enter(next, Error, budgets)

		return
	}

	if c.State.IsAwait() || !next.Settle.Expired() {
		return
	}

	enter(next, phaseAfter(c), budgets)
}

func phaseAfter(c Core) State {
	if c.State == SerialCmdHold {
		if c.Entry.Category == opcode.SerialWrite {
			return SerialWriteIssue
		}

		return SerialReadTrigger
	}

	return successor[c.State]
}

func enter(next *Core, s State, budgets Budgets) {
	next.State = s
	next.Settle.Load(budgets.Of(s))

	switch s {
	case Done:
		next.Done = true
	case Error:
		next.Error = true
	default:
		return
	}

	if next.IRQEnable {
		next.IRQPending = true
	}
}
