// Package opcode enumerates the wrapper command opcodes and classifies them
// into command categories and native downstream command codes.
package opcode

import "fmt"

// Opcode is the 8-bit command written to the CMD register.
type Opcode uint8

// State commands.
const (
	Nop   Opcode = 0x00
	Arm   Opcode = 0x01
	Reset Opcode = 0x02
	Init  Opcode = 0x03
	Idle  Opcode = 0x04
	Sleep Opcode = 0x05
)

// Local reads.
const (
	RdHWID        Opcode = 0x10
	RdHubCount    Opcode = 0x11
	RdStatus      Opcode = 0x12
	RdAnaRAMCfg   Opcode = 0x13
	RdTickFreq    Opcode = 0x14
	RdAnaFirstPtr Opcode = 0x15
	RdRAMData     Opcode = 0x16
	RdDigFirstPtr Opcode = 0x17
	RdDigCkFreq   Opcode = 0x18
	RdDigRAMCfg   Opcode = 0x19
	RdRecProfile  Opcode = 0x1A
	RdTrigSrc     Opcode = 0x1B
	RdViewROMKB   Opcode = 0x1C
)

// Local writes.
const (
	WrUserCtrl     Opcode = 0x20
	WrRecConfig    Opcode = 0x21
	WrTickDivisor  Opcode = 0x22
	WrTrigType     Opcode = 0x23
	WrTrigDigField Opcode = 0x24
	WrTrigAnaField Opcode = 0x25
	WrAnaPostTrig  Opcode = 0x26
	WrTrigDelay    Opcode = 0x27
	WrTrigNth      Opcode = 0x28
	WrRAMRdPtr     Opcode = 0x29
	WrDigPostTrig  Opcode = 0x2A
	WrRAMPage      Opcode = 0x2B
)

// Serial bus reads.
const (
	RdHubFreq     Opcode = 0x30
	RdPodCount    Opcode = 0x31
	RdPodReg      Opcode = 0x32
	RdTrigSrcPod  Opcode = 0x33
	RdHubHWCfg    Opcode = 0x34
	RdHubInstance Opcode = 0x35
	RdHubName0_3  Opcode = 0x36
	RdHubName4_7  Opcode = 0x37
	RdHubName8_11 Opcode = 0x38
)

// Serial bus writes.
const (
	WrPodReg    Opcode = 0x40
	WrTrigWidth Opcode = 0x41
)

// String returns the opcode name, or its hex value if it is unnamed.
func (o Opcode) String() string {
	e := Lookup(o)
	if e.Name != "" {
		return e.Name
	}

	return fmt.Sprintf("0x%02X", uint8(o))
}

// Category is the command family an opcode belongs to.
type Category int

// Command categories.
const (
	Unknown Category = iota
	StateCommand
	LocalRead
	LocalWrite
	SerialRead
	SerialWrite
)

func (c Category) String() string {
	switch c {
	case StateCommand:
		return "StateCommand"
	case LocalRead:
		return "LocalRead"
	case LocalWrite:
		return "LocalWrite"
	case SerialRead:
		return "SerialRead"
	case SerialWrite:
		return "SerialWrite"
	default:
		return "Unknown"
	}
}

// IsRead tells if the category ends with a data capture.
func (c Category) IsRead() bool {
	return c == LocalRead || c == SerialRead
}

// IsSerial tells if the category addresses a far-end hub or pod.
func (c Category) IsSerial() bool {
	return c == SerialRead || c == SerialWrite
}
