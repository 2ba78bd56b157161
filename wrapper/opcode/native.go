package opcode

// NativeCode is a command code understood by the downstream bus. It is driven
// on the control channel during the assert phases.
type NativeCode uint8

// Native downstream command codes.
const (
	NativeIdle  NativeCode = 0x00
	NativeArm   NativeCode = 0x01
	NativeReset NativeCode = 0x02
	NativeInit  NativeCode = 0x03
	NativeSleep NativeCode = 0x05

	NativeRdHWID        NativeCode = 0x0B
	NativeRdAnaRAMCfg   NativeCode = 0x0C
	NativeRdTickFreq    NativeCode = 0x0D
	NativeRdAnaFirstPtr NativeCode = 0x0E
	NativeRdRAMData     NativeCode = 0x0F
	NativeRdDigFirstPtr NativeCode = 0x10
	NativeRdDigCkFreq   NativeCode = 0x11
	NativeRdDigRAMCfg   NativeCode = 0x12
	NativeRdRecProfile  NativeCode = 0x13
	NativeRdTrigSrc     NativeCode = 0x14
	NativeRdViewROMKB   NativeCode = 0x15
	NativeRdHubCount    NativeCode = 0x16
	NativeRdStatus      NativeCode = 0x17

	NativeWrUserCtrl     NativeCode = 0x20
	NativeWrRecConfig    NativeCode = 0x21
	NativeWrTickDivisor  NativeCode = 0x22
	NativeWrTrigType     NativeCode = 0x23
	NativeWrTrigDigField NativeCode = 0x24
	NativeWrTrigAnaField NativeCode = 0x25
	NativeWrAnaPostTrig  NativeCode = 0x26
	NativeWrTrigDelay    NativeCode = 0x27
	NativeWrTrigNth      NativeCode = 0x28
	NativeWrRAMPtr       NativeCode = 0x29
	NativeWrDigPostTrig  NativeCode = 0x2A

	NativeRdHubFreq     NativeCode = 0x30
	NativeRdPodCount    NativeCode = 0x31
	NativeSetTarget     NativeCode = 0x32
	NativeRdWrPodData   NativeCode = 0x33
	NativeRdTrigSrcPod  NativeCode = 0x34
	NativeRdHubHWCfg    NativeCode = 0x35
	NativeRdHubInstance NativeCode = 0x36
	NativeRdHubName0    NativeCode = 0x37
	NativeRdHubName1    NativeCode = 0x38
	NativeRdHubName2    NativeCode = 0x39
	NativeWrTrigWidth   NativeCode = 0x3A

	// NativeNone marks an opcode without a downstream command.
	NativeNone NativeCode = 0xFF
)
