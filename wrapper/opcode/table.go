package opcode

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Entry is the classification of one opcode.
type Entry struct {
	Opcode   Opcode
	Name     string
	Category Category
	Native   NativeCode

	// NoOp entries complete without touching the downstream bus.
	NoOp bool
}

// band is a 16-opcode range sharing one category.
type band struct {
	base     Opcode
	category Category
}

var bands = []band{
	{0x00, StateCommand},
	{0x10, LocalRead},
	{0x20, LocalWrite},
	{0x30, SerialRead},
	{0x40, SerialWrite},
}

var named = []Entry{
	{Opcode: Nop, Name: "NOP", Category: StateCommand, Native: NativeIdle, NoOp: true},
	{Opcode: Arm, Name: "ARM", Category: StateCommand, Native: NativeArm},
	{Opcode: Reset, Name: "RESET", Category: StateCommand, Native: NativeReset},
	{Opcode: Init, Name: "INIT", Category: StateCommand, Native: NativeInit},
	{Opcode: Idle, Name: "IDLE", Category: StateCommand, Native: NativeIdle},
	{Opcode: Sleep, Name: "SLEEP", Category: StateCommand, Native: NativeSleep},

	{Opcode: RdHWID, Name: "RD_HW_ID", Category: LocalRead, Native: NativeRdHWID},
	{Opcode: RdHubCount, Name: "RD_HUB_COUNT", Category: LocalRead, Native: NativeRdHubCount},
	{Opcode: RdStatus, Name: "RD_STATUS", Category: LocalRead, Native: NativeRdStatus},
	{Opcode: RdAnaRAMCfg, Name: "RD_ANA_RAM_CFG", Category: LocalRead, Native: NativeRdAnaRAMCfg},
	{Opcode: RdTickFreq, Name: "RD_TICK_FREQ", Category: LocalRead, Native: NativeRdTickFreq},
	{Opcode: RdAnaFirstPtr, Name: "RD_ANA_FIRST_PTR", Category: LocalRead, Native: NativeRdAnaFirstPtr},
	{Opcode: RdRAMData, Name: "RD_RAM_DATA", Category: LocalRead, Native: NativeRdRAMData},
	{Opcode: RdDigFirstPtr, Name: "RD_DIG_FIRST_PTR", Category: LocalRead, Native: NativeRdDigFirstPtr},
	{Opcode: RdDigCkFreq, Name: "RD_DIG_CK_FREQ", Category: LocalRead, Native: NativeRdDigCkFreq},
	{Opcode: RdDigRAMCfg, Name: "RD_DIG_RAM_CFG", Category: LocalRead, Native: NativeRdDigRAMCfg},
	{Opcode: RdRecProfile, Name: "RD_REC_PROFILE", Category: LocalRead, Native: NativeRdRecProfile},
	{Opcode: RdTrigSrc, Name: "RD_TRIG_SRC", Category: LocalRead, Native: NativeRdTrigSrc},
	{Opcode: RdViewROMKB, Name: "RD_VIEW_ROM_KB", Category: LocalRead, Native: NativeRdViewROMKB},

	{Opcode: WrUserCtrl, Name: "WR_USER_CTRL", Category: LocalWrite, Native: NativeWrUserCtrl},
	{Opcode: WrRecConfig, Name: "WR_REC_CONFIG", Category: LocalWrite, Native: NativeWrRecConfig},
	{Opcode: WrTickDivisor, Name: "WR_TICK_DIVISOR", Category: LocalWrite, Native: NativeWrTickDivisor},
	{Opcode: WrTrigType, Name: "WR_TRIG_TYPE", Category: LocalWrite, Native: NativeWrTrigType},
	{Opcode: WrTrigDigField, Name: "WR_TRIG_DIG_FIELD", Category: LocalWrite, Native: NativeWrTrigDigField},
	{Opcode: WrTrigAnaField, Name: "WR_TRIG_ANA_FIELD", Category: LocalWrite, Native: NativeWrTrigAnaField},
	{Opcode: WrAnaPostTrig, Name: "WR_ANA_POST_TRIG", Category: LocalWrite, Native: NativeWrAnaPostTrig},
	{Opcode: WrTrigDelay, Name: "WR_TRIG_DELAY", Category: LocalWrite, Native: NativeWrTrigDelay},
	{Opcode: WrTrigNth, Name: "WR_TRIG_NTH", Category: LocalWrite, Native: NativeWrTrigNth},
	{Opcode: WrRAMRdPtr, Name: "WR_RAM_RD_PTR", Category: LocalWrite, Native: NativeWrRAMPtr},
	{Opcode: WrDigPostTrig, Name: "WR_DIG_POST_TRIG", Category: LocalWrite, Native: NativeWrDigPostTrig},
	{Opcode: WrRAMPage, Name: "WR_RAM_PAGE", Category: LocalWrite, Native: NativeWrRAMPtr},

	{Opcode: RdHubFreq, Name: "RD_HUB_FREQ", Category: SerialRead, Native: NativeRdHubFreq},
	{Opcode: RdPodCount, Name: "RD_POD_COUNT", Category: SerialRead, Native: NativeRdPodCount},
	{Opcode: RdPodReg, Name: "RD_POD_REG", Category: SerialRead, Native: NativeRdWrPodData},
	{Opcode: RdTrigSrcPod, Name: "RD_TRIG_SRC_POD", Category: SerialRead, Native: NativeRdTrigSrcPod},
	{Opcode: RdHubHWCfg, Name: "RD_HUB_HW_CFG", Category: SerialRead, Native: NativeRdHubHWCfg},
	{Opcode: RdHubInstance, Name: "RD_HUB_INSTANCE", Category: SerialRead, Native: NativeRdHubInstance},
	{Opcode: RdHubName0_3, Name: "RD_HUB_NAME_0_3", Category: SerialRead, Native: NativeRdHubName0},
	{Opcode: RdHubName4_7, Name: "RD_HUB_NAME_4_7", Category: SerialRead, Native: NativeRdHubName1},
	{Opcode: RdHubName8_11, Name: "RD_HUB_NAME_8_11", Category: SerialRead, Native: NativeRdHubName2},

	{Opcode: WrPodReg, Name: "WR_POD_REG", Category: SerialWrite, Native: NativeRdWrPodData},
	{Opcode: WrTrigWidth, Name: "WR_TRIG_WIDTH", Category: SerialWrite, Native: NativeWrTrigWidth},
}

var (
	table  [256]Entry
	byName = make(map[string]Opcode)
)

func init() {
	for i := range table {
		op := Opcode(i)
		table[i] = Entry{
			Opcode:   op,
			Category: bandCategory(op),
			Native:   NativeNone,
		}
	}

	for _, e := range named {
		if bandCategory(e.Opcode) != e.Category {
			panic(fmt.Sprintf("opcode %s is outside its band", e.Name))
		}

		table[e.Opcode] = e
		byName[e.Name] = e.Opcode
	}
}

func bandCategory(op Opcode) Category {
	for _, b := range bands {
		if op >= b.base && op < b.base+0x10 {
			return b.category
		}
	}

	return Unknown
}

// Lookup returns the classification of an opcode. Every opcode has exactly
// one entry. Unnamed opcodes inside a band carry the band category and
// NativeNone; the sequencer fails them before any bus cycle.
func Lookup(op Opcode) Entry {
	return table[op]
}

// Classify returns the category and native code of an opcode.
func Classify(op Opcode) (Category, NativeCode) {
	e := table[op]
	return e.Category, e.Native
}

// Named returns the entries of all named opcodes, ordered by opcode.
func Named() []Entry {
	out := make([]Entry, len(named))
	copy(out, named)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Opcode < out[j].Opcode
	})

	return out
}

// ErrUnknownName is returned when parsing a name that is not an opcode.
var ErrUnknownName = errors.New("unknown opcode name")

// Parse converts an opcode name (case-insensitive) or a number in any Go
// integer literal form into an Opcode.
func Parse(s string) (Opcode, error) {
	s = strings.TrimSpace(s)

	if op, ok := byName[strings.ToUpper(s)]; ok {
		return op, nil
	}

	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, s)
	}

	return Opcode(v), nil
}
