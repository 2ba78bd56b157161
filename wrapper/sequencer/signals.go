package sequencer

import "github.com/sarchlab/sumpaxi/wrapper/opcode"

// Request is the command snapshot taken at dispatch.
type Request struct {
	Opcode    opcode.Opcode
	Address   opcode.Address
	WriteData uint32
}

// Bus is what the sequencer drives onto the downstream bus during one tick.
type Bus struct {
	CtrlCS    bool
	CtrlWrite bool
	CtrlData  opcode.NativeCode

	DataCS    bool
	DataWrite bool
	DataRead  bool
	DataOut   uint32
}

// Inputs is everything the sequencer samples in one tick.
type Inputs struct {
	Start     bool
	Abort     bool
	IRQEnable bool
	IRQAck    bool
	Request   Request

	TimeoutBudget uint16

	ReadReady bool
	ReadData  uint32
}

// Effects reports what happened in one tick besides the state update.
type Effects struct {
	// Bus is the value driven downstream during the tick.
	Bus Bus

	// StartTaken is set when a command was dispatched from Idle.
	StartTaken bool

	// AbortTaken is set when an abort forced a busy sequencer back to Idle.
	AbortTaken bool

	// Captured is set when the result register was written.
	Captured bool
}

// ErrorKind records why the last command ended in Error.
type ErrorKind int

// Error kinds.
const (
	ErrorNone ErrorKind = iota
	ErrorUnknownOpcode
	ErrorTimeout
	// ErrorUnassignedOpcode is an opcode inside a band that names no
	// downstream command.
	ErrorUnassignedOpcode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorUnknownOpcode:
		return "UnknownOpcode"
	case ErrorTimeout:
		return "Timeout"
	case ErrorUnassignedOpcode:
		return "UnassignedOpcode"
	default:
		return "None"
	}
}

// Status is the flag set exposed through the STATUS register.
type Status struct {
	Busy       bool
	Done       bool
	Error      bool
	IRQPending bool
}
