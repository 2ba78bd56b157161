// Package responder provides a scripted downstream device. It answers the
// command sequences of the wrapper with configured values after a configured
// delay, without modeling what hubs and pods do with the commands.
package responder

import (
	"sync"

	"github.com/sarchlab/sumpaxi/wrapper"
	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

type podKey struct {
	hub, pod uint8
}

// Responder is a scripted wrapper.Device.
type Responder struct {
	lock sync.Mutex
	name string

	latency  int
	silent   bool
	hubCount uint8

	armed bool
	awake bool

	ctrl   opcode.NativeCode
	target opcode.Address

	local   map[opcode.NativeCode]uint32
	written map[opcode.NativeCode]uint32
	hubs    map[uint8]map[opcode.NativeCode]uint32
	pods    map[podKey]map[opcode.PodReg]uint32

	countdown int
	pending   bool
	reply     uint32

	strobes uint64
}

// Name returns the name of the responder.
func (r *Responder) Name() string {
	return r.name
}

// Exchange implements wrapper.Device.
func (r *Responder) Exchange(bus sequencer.Bus) wrapper.Signals {
	r.lock.Lock()
	defer r.lock.Unlock()

	if bus.CtrlCS && bus.CtrlWrite {
		r.control(bus.CtrlData)
	}

	if bus.DataCS && bus.DataWrite {
		r.write(bus.DataOut)
	}

	if bus.DataCS && bus.DataRead {
		r.strobes++
		r.pending = !r.silent
		r.countdown = r.latency
		r.reply = r.read()
	}

	sig := wrapper.Signals{
		Armed:    r.armed,
		Awake:    r.awake,
		HubCount: r.hubCount,
	}

	if !r.pending {
		return sig
	}

	if r.countdown > 0 {
		r.countdown--
		return sig
	}

	r.pending = false
	sig.ReadReady = true
	sig.ReadData = r.reply

	return sig
}

func (r *Responder) control(code opcode.NativeCode) {
	r.ctrl = code

	switch code {
	case opcode.NativeArm:
		r.armed = true
		r.awake = true
	case opcode.NativeIdle:
		r.armed = false
	case opcode.NativeReset, opcode.NativeInit:
		r.armed = false
		r.awake = true
	case opcode.NativeSleep:
		r.armed = false
		r.awake = false
	}
}

func (r *Responder) write(v uint32) {
	switch r.ctrl {
	case opcode.NativeSetTarget:
		r.target = opcode.Address(v)
	case opcode.NativeRdWrPodData:
		r.podRegs(r.target.Hub(), r.target.Pod())[r.target.Reg()] = v
	case opcode.NativeWrTrigWidth:
		r.hubRegs(r.target.Hub())[r.ctrl] = v
	default:
		r.written[r.ctrl] = v
	}
}

func (r *Responder) read() uint32 {
	switch {
	case r.ctrl == opcode.NativeRdWrPodData:
		return r.podRegs(r.target.Hub(), r.target.Pod())[r.target.Reg()]
	case r.ctrl >= opcode.NativeRdHubFreq && r.ctrl <= opcode.NativeRdHubName2:
		return r.hubRegs(r.target.Hub())[r.ctrl]
	case r.ctrl == opcode.NativeRdHubCount:
		return uint32(r.hubCount)
	case r.ctrl == opcode.NativeRdStatus:
		return r.statusWord()
	default:
		return r.local[r.ctrl]
	}
}

func (r *Responder) statusWord() uint32 {
	var v uint32

	if r.armed {
		v |= 1
	}

	if r.awake {
		v |= 2
	}

	return v
}

func (r *Responder) hubRegs(hub uint8) map[opcode.NativeCode]uint32 {
	m, ok := r.hubs[hub]
	if !ok {
		m = make(map[opcode.NativeCode]uint32)
		r.hubs[hub] = m
	}

	return m
}

func (r *Responder) podRegs(hub, pod uint8) map[opcode.PodReg]uint32 {
	k := podKey{hub: hub, pod: pod}

	m, ok := r.pods[k]
	if !ok {
		m = make(map[opcode.PodReg]uint32)
		r.pods[k] = m
	}

	return m
}

// Armed tells if the last state command armed the capture.
func (r *Responder) Armed() bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.armed
}

// Target returns the last address selected with a set-target write.
func (r *Responder) Target() opcode.Address {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.target
}

// Written returns the last value written with a local write command.
func (r *Responder) Written(code opcode.NativeCode) (uint32, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	v, ok := r.written[code]

	return v, ok
}

// PodReg returns the value of a pod register.
func (r *Responder) PodReg(hub, pod uint8, reg opcode.PodReg) uint32 {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.podRegs(hub, pod)[reg]
}

// HubValue returns a hub-level register addressed by its native code.
func (r *Responder) HubValue(hub uint8, code opcode.NativeCode) uint32 {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.hubRegs(hub)[code]
}

// ReadStrobes returns how many read strobes the responder has seen.
func (r *Responder) ReadStrobes() uint64 {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.strobes
}

// SetSilent turns answering read strobes off or back on.
func (r *Responder) SetSilent(silent bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.silent = silent
	if silent {
		r.pending = false
	}
}
