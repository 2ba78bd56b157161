package responder

import (
	"github.com/sarchlab/sumpaxi/wrapper/opcode"
)

// DefaultHWID is the value returned for RD_HW_ID unless configured.
const DefaultHWID uint32 = 0x53030001

type hubValue struct {
	hub  uint8
	code opcode.NativeCode
	v    uint32
}

type podValue struct {
	hub, pod uint8
	reg      opcode.PodReg
	v        uint32
}

// A Builder can build responders.
type Builder struct {
	latency  int
	silent   bool
	hubCount uint8
	local    map[opcode.NativeCode]uint32
	hubs     []hubValue
	pods     []podValue
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		hubCount: 2,
		local: map[opcode.NativeCode]uint32{
			opcode.NativeRdHWID: DefaultHWID,
		},
	}
}

// WithReadLatency sets the number of exchanges between a read strobe and
// the ready pulse.
func (b Builder) WithReadLatency(n int) Builder {
	b.latency = n
	return b
}

// WithSilent makes the responder never answer read strobes.
func (b Builder) WithSilent(silent bool) Builder {
	b.silent = silent
	return b
}

// WithHubCount sets the hub count reported to HW_INFO and RD_HUB_COUNT.
func (b Builder) WithHubCount(n uint8) Builder {
	b.hubCount = n
	return b
}

// WithLocalValue sets the value returned for a local read command.
func (b Builder) WithLocalValue(code opcode.NativeCode, v uint32) Builder {
	local := make(map[opcode.NativeCode]uint32, len(b.local)+1)
	for k, val := range b.local {
		local[k] = val
	}

	local[code] = v
	b.local = local

	return b
}

// WithHubValue sets a hub-level value returned for a serial read command.
func (b Builder) WithHubValue(
	hub uint8,
	code opcode.NativeCode,
	v uint32,
) Builder {
	b.hubs = append(b.hubs[:len(b.hubs):len(b.hubs)],
		hubValue{hub: hub, code: code, v: v})
	return b
}

// WithPodReg sets the initial value of a pod register.
func (b Builder) WithPodReg(hub, pod uint8, reg opcode.PodReg, v uint32) Builder {
	b.pods = append(b.pods[:len(b.pods):len(b.pods)],
		podValue{hub: hub, pod: pod, reg: reg, v: v})
	return b
}

// Build creates a responder.
func (b Builder) Build(name string) *Responder {
	r := &Responder{
		name:     name,
		latency:  b.latency,
		silent:   b.silent,
		hubCount: b.hubCount,
		awake:    true,
		local:    make(map[opcode.NativeCode]uint32, len(b.local)),
		written:  make(map[opcode.NativeCode]uint32),
		hubs:     make(map[uint8]map[opcode.NativeCode]uint32),
		pods:     make(map[podKey]map[opcode.PodReg]uint32),
	}

	for k, v := range b.local {
		r.local[k] = v
	}

	for _, h := range b.hubs {
		r.hubRegs(h.hub)[h.code] = h.v
	}

	for _, p := range b.pods {
		r.podRegs(p.hub, p.pod)[p.reg] = p.v
	}

	return r
}
