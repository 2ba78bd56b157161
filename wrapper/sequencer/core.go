package sequencer

import "github.com/sarchlab/sumpaxi/wrapper/opcode"

// Core is the complete state of the sequencer. The zero value is an idle
// sequencer with no result.
type Core struct {
	State   State
	Request Request
	Entry   opcode.Entry

	Settle  Timer
	Timeout Timer

	IRQEnable bool

	Result     uint32
	Done       bool
	Error      bool
	IRQPending bool
	LastError  ErrorKind
}

// Busy tells if a command is in flight.
func (c Core) Busy() bool {
	return c.State != Idle
}

// Status returns the status flags.
func (c Core) Status() Status {
	return Status{
		Busy:       c.Busy(),
		Done:       c.Done,
		Error:      c.Error,
		IRQPending: c.IRQPending,
	}
}

// BusOf returns the downstream bus value driven in the core's current phase.
// It depends only on the phase and the latched request.
func BusOf(c Core) Bus {
	var b Bus

	switch c.State {
	case StateAssert, LocalReadAssert, LocalWriteAssert, SerialCmdAssert:
		b.CtrlCS = true
		b.CtrlWrite = true
		b.CtrlData = c.Entry.Native
	case SerialAddrAssert:
		b.CtrlCS = true
		b.CtrlWrite = true
		b.CtrlData = opcode.NativeSetTarget
	case StateHold, LocalReadHold, LocalWriteHold, SerialCmdHold:
		b.CtrlCS = true
		b.CtrlData = c.Entry.Native
	case SerialAddrHold:
		b.CtrlCS = true
		b.CtrlData = opcode.NativeSetTarget
	case SerialAddrWrite:
		b.DataCS = true
		b.DataWrite = true
		b.DataOut = c.Request.Address.Downstream()
	case LocalWriteIssue, SerialWriteIssue:
		b.DataCS = true
		b.DataWrite = true
		b.DataOut = c.Request.WriteData
	case LocalReadIssue, SerialReadTrigger, SerialReadIssue:
		b.DataCS = true
		b.DataRead = true
	}

	return b
}
