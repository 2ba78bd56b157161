// Package regfile implements the front-end register file of the command
// sequencer: 32-bit registers at byte offsets, sampled by the sequencer once
// per tick and refreshed from its state after each tick.
package regfile

import (
	"errors"
	"fmt"

	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

// Register byte offsets.
const (
	OffsetCmd       uint32 = 0x00
	OffsetAddr      uint32 = 0x04
	OffsetWData     uint32 = 0x08
	OffsetCtrl      uint32 = 0x0C
	OffsetStatus    uint32 = 0x10
	OffsetRData     uint32 = 0x14
	OffsetIRQStatus uint32 = 0x18
	OffsetHWInfo    uint32 = 0x1C
	OffsetCapStatus uint32 = 0x20
	OffsetTimeout   uint32 = 0x24
)

// CTRL bits.
const (
	CtrlStart uint32 = 1 << iota
	CtrlIRQEnable
	CtrlAbort
)

// STATUS bits.
const (
	StatusBusy uint32 = 1 << iota
	StatusDone
	StatusError
	StatusIRQPending
)

// CAP_STATUS bits.
const (
	CapArmed uint32 = 1 << iota
	CapAwake
)

// IRQStatusPending is the W1C bit of IRQ_STATUS.
const IRQStatusPending uint32 = 1

// HWInfoID is the identity in the upper half of HW_INFO ("S" 3).
const HWInfoID uint32 = 0x5303

// DefaultTimeout is the reset value of the TIMEOUT register.
const DefaultTimeout uint16 = 4096

var (
	// ErrInvalidOffset is returned for unmapped or unaligned offsets.
	ErrInvalidOffset = errors.New("invalid register offset")

	// ErrReadOnly is returned when writing a read-only register.
	ErrReadOnly = errors.New("register is read-only")

	// ErrStartWhileBusy is returned when a CTRL write sets START while a
	// command is in flight or an earlier START is still pending. The START bit
	// is dropped; the other CTRL bits are applied.
	ErrStartWhileBusy = errors.New("start ignored while busy")
)

var names = map[uint32]string{
	OffsetCmd:       "CMD",
	OffsetAddr:      "ADDR",
	OffsetWData:     "WDATA",
	OffsetCtrl:      "CTRL",
	OffsetStatus:    "STATUS",
	OffsetRData:     "RDATA",
	OffsetIRQStatus: "IRQ_STATUS",
	OffsetHWInfo:    "HW_INFO",
	OffsetCapStatus: "CAP_STATUS",
	OffsetTimeout:   "TIMEOUT",
}

// Name returns the register name at an offset, or "" if it is unmapped.
func Name(offset uint32) string {
	return names[offset]
}

// Offsets returns all mapped offsets in ascending order.
func Offsets() []uint32 {
	out := make([]uint32, 0, len(names))
	for off := OffsetCmd; off <= OffsetTimeout; off += 4 {
		out = append(out, off)
	}

	return out
}

// ParseOffset converts a register name into its offset.
func ParseOffset(name string) (uint32, error) {
	for off, n := range names {
		if n == name {
			return off, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, name)
}

// Passthrough is what the downstream collaborator reports for HW_INFO and
// CAP_STATUS.
type Passthrough struct {
	Armed    bool
	Awake    bool
	HubCount uint8
}

// RegFile holds the front-end registers.
type RegFile struct {
	cmd     uint8
	addr    uint32
	wdata   uint32
	timeout uint16

	start     bool
	irqEnable bool
	abort     bool
	irqAck    bool

	revision uint8
	status   sequencer.Status
	result   uint32
	pass     Passthrough
}

// New creates a register file with the given TIMEOUT reset value and
// hardware revision.
func New(timeout uint16, revision uint8) *RegFile {
	return &RegFile{
		timeout:  timeout,
		revision: revision,
	}
}

// Read returns the value of the register at offset.
func (r *RegFile) Read(offset uint32) (uint32, error) {
	switch offset {
	case OffsetCmd:
		return uint32(r.cmd), nil
	case OffsetAddr:
		return r.addr, nil
	case OffsetWData:
		return r.wdata, nil
	case OffsetCtrl:
		return r.ctrl(), nil
	case OffsetStatus:
		return StatusBits(r.status), nil
	case OffsetRData:
		return r.result, nil
	case OffsetIRQStatus:
		if r.status.IRQPending {
			return IRQStatusPending, nil
		}

		return 0, nil
	case OffsetHWInfo:
		return HWInfoID<<16 | uint32(r.pass.HubCount)<<8 | uint32(r.revision), nil
	case OffsetCapStatus:
		return CapStatusBits(r.pass), nil
	case OffsetTimeout:
		return uint32(r.timeout), nil
	}

	return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidOffset, offset)
}

// Write changes the register at offset.
func (r *RegFile) Write(offset, value uint32) error {
	switch offset {
	case OffsetCmd:
		r.cmd = uint8(value)
	case OffsetAddr:
		r.addr = value
	case OffsetWData:
		r.wdata = value
	case OffsetCtrl:
		return r.writeCtrl(value)
	case OffsetIRQStatus:
		if value&IRQStatusPending != 0 {
			r.irqAck = true
		}
	case OffsetTimeout:
		if value > 0xFFFF {
			value = 0xFFFF
		}

		r.timeout = uint16(value)
	case OffsetStatus, OffsetRData, OffsetHWInfo, OffsetCapStatus:
		return fmt.Errorf("%w: %s", ErrReadOnly, names[offset])
	default:
		return fmt.Errorf("%w: 0x%02X", ErrInvalidOffset, offset)
	}

	return nil
}

func (r *RegFile) writeCtrl(value uint32) error {
	r.irqEnable = value&CtrlIRQEnable != 0

	if value&CtrlAbort != 0 {
		r.abort = true
	}

	if value&CtrlStart == 0 {
		return nil
	}

	if r.status.Busy {
		return ErrStartWhileBusy
	}

	r.start = true
	r.status = accepted(r.status)

	return nil
}

// accepted is the status view of a taken START that the sequencer has not
// dispatched yet.
func accepted(s sequencer.Status) sequencer.Status {
	s.Busy = true
	s.Done = false
	s.Error = false

	return s
}

func (r *RegFile) ctrl() uint32 {
	var v uint32

	if r.start {
		v |= CtrlStart
	}

	if r.irqEnable {
		v |= CtrlIRQEnable
	}

	if r.abort {
		v |= CtrlAbort
	}

	return v
}

// Inputs returns the front-end part of the sequencer inputs for the next
// tick.
func (r *RegFile) Inputs() sequencer.Inputs {
	return sequencer.Inputs{
		Start:     r.start,
		Abort:     r.abort,
		IRQEnable: r.irqEnable,
		IRQAck:    r.irqAck,
		Request: sequencer.Request{
			Opcode:    opcode.Opcode(r.cmd),
			Address:   opcode.Address(r.addr),
			WriteData: r.wdata,
		},
		TimeoutBudget: r.timeout,
	}
}

// Update refreshes the read-only registers after a tick and retires the
// one-shot control bits the tick consumed.
func (r *RegFile) Update(
	core sequencer.Core,
	eff sequencer.Effects,
	pass Passthrough,
) {
	if eff.StartTaken {
		r.start = false
	}

	r.abort = false
	r.irqAck = false

	r.status = core.Status()
	if r.start {
		r.status = accepted(r.status)
	}

	r.result = core.Result
	r.pass = pass
}

// Pending tells if a control bit is waiting to be sampled.
func (r *RegFile) Pending() bool {
	return r.start || r.abort || r.irqAck
}

// IRQ returns the level of the interrupt line.
func (r *RegFile) IRQ() bool {
	return r.status.IRQPending
}

// Status returns the flags as of the last tick, with an accepted START
// reported as busy.
func (r *RegFile) Status() sequencer.Status {
	return r.status
}

// StatusBits encodes status flags as the STATUS register value.
func StatusBits(s sequencer.Status) uint32 {
	var v uint32

	if s.Busy {
		v |= StatusBusy
	}

	if s.Done {
		v |= StatusDone
	}

	if s.Error {
		v |= StatusError
	}

	if s.IRQPending {
		v |= StatusIRQPending
	}

	return v
}

// CapStatusBits encodes the passthrough status as the CAP_STATUS value.
func CapStatusBits(p Passthrough) uint32 {
	var v uint32

	if p.Armed {
		v |= CapArmed
	}

	if p.Awake {
		v |= CapAwake
	}

	return v
}
