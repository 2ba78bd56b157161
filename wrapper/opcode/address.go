package opcode

import (
	"fmt"
	"strconv"
	"strings"
)

// PodReg is a register number inside a far-end pod.
type PodReg uint8

// Pod registers.
const (
	PodHWCfg       PodReg = 0x00
	PodTrigLat     PodReg = 0x02
	PodTrigCfg     PodReg = 0x03
	PodTrigEn      PodReg = 0x04
	PodRLEMask     PodReg = 0x05
	PodCompValue   PodReg = 0x07
	PodRAMPtr      PodReg = 0x08
	PodRAMData     PodReg = 0x09
	PodRAMCfg      PodReg = 0x0A
	PodUserCtrl    PodReg = 0x0B
	PodTriggerable PodReg = 0x0E
	PodTrigSrc     PodReg = 0x0F
	PodInstance    PodReg = 0x1C
	PodName0_3     PodReg = 0x1D
	PodName4_7     PodReg = 0x1E
	PodName8_11    PodReg = 0x1F
)

var podRegNames = map[string]PodReg{
	"HW_CFG":      PodHWCfg,
	"TRIG_LAT":    PodTrigLat,
	"TRIG_CFG":    PodTrigCfg,
	"TRIG_EN":     PodTrigEn,
	"RLE_MASK":    PodRLEMask,
	"COMP_VALUE":  PodCompValue,
	"RAM_PTR":     PodRAMPtr,
	"RAM_DATA":    PodRAMData,
	"RAM_CFG":     PodRAMCfg,
	"USER_CTRL":   PodUserCtrl,
	"TRIGGERABLE": PodTriggerable,
	"TRIG_SRC":    PodTrigSrc,
	"INSTANCE":    PodInstance,
	"NAME_0_3":    PodName0_3,
	"NAME_4_7":    PodName4_7,
	"NAME_8_11":   PodName8_11,
}

// ParsePodReg converts a pod register name or number into a PodReg.
func ParsePodReg(s string) (PodReg, error) {
	s = strings.TrimSpace(s)

	if r, ok := podRegNames[strings.ToUpper(s)]; ok {
		return r, nil
	}

	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown pod register %q", s)
	}

	return PodReg(v), nil
}

// TriggerType selects the trigger condition written with WR_TRIG_TYPE.
type TriggerType uint8

// Trigger types.
const (
	TrigAndRising TriggerType = iota
	TrigAndFalling
	TrigOrRising
	TrigOrFalling
	TrigAnaRising
	TrigAnaFalling
	TrigExtRising
	TrigExtFalling
)

// AddressMask keeps the 24 bits of an address that are driven downstream.
const AddressMask = 0x00FFFFFF

// Address is the packed {hub, pod, reg} triple used by serial commands.
type Address uint32

// MakeAddress packs a hub, pod and register number.
func MakeAddress(hub, pod uint8, reg PodReg) Address {
	return Address(uint32(hub)<<16 | uint32(pod)<<8 | uint32(reg))
}

// Hub returns the hub number.
func (a Address) Hub() uint8 { return uint8(a >> 16) }

// Pod returns the pod number.
func (a Address) Pod() uint8 { return uint8(a >> 8) }

// Reg returns the pod register number.
func (a Address) Reg() PodReg { return PodReg(a) }

// Downstream returns the address with the reserved top byte cleared.
func (a Address) Downstream() uint32 { return uint32(a) & AddressMask }

func (a Address) String() string {
	return fmt.Sprintf("hub%d.pod%d.reg0x%02X", a.Hub(), a.Pod(), uint8(a.Reg()))
}
