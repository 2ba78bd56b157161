package wrapper

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/sumpaxi/sim/hooking"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/tracing"
	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

var _ = Describe("Comp", func() {
	var (
		mockCtrl    *gomock.Controller
		engine      *timing.SerialEngine
		device      *MockDevice
		comp        *Comp
		transitions []Transition
		rejected    []sequencer.Request
		latency     *tracing.LatencyTracer
		readData    uint32
		readReady   bool
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = timing.NewSerialEngine()
		device = NewMockDevice(mockCtrl)
		transitions = nil
		rejected = nil
		readData = 0
		readReady = true

		device.EXPECT().
			Exchange(gomock.Any()).
			DoAndReturn(func(bus sequencer.Bus) Signals {
				sig := Signals{Armed: true, HubCount: 2}
				if bus.DataRead && readReady {
					sig.ReadReady = true
					sig.ReadData = readData
				}

				return sig
			}).
			AnyTimes()

		comp = MakeBuilder().
			WithEngine(engine).
			WithDevice(device).
			Build("Wrapper")

		comp.AcceptHook(hooking.NewHookFunc(func(ctx hooking.HookCtx) {
			switch ctx.Pos {
			case HookPosStateChange:
				transitions = append(transitions, ctx.Item.(Transition))
			case HookPosStartRejected:
				rejected = append(rejected, ctx.Item.(sequencer.Request))
			}
		}))

		latency = tracing.NewLatencyTracer(engine, tracing.KindIs(TaskKindCmd))
		tracing.CollectTrace(comp, latency)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	issue := func(op opcode.Opcode, ctrl uint32) {
		Expect(comp.WriteReg(regfile.OffsetCmd, uint32(op))).To(Succeed())
		Expect(comp.WriteReg(regfile.OffsetCtrl, ctrl)).To(Succeed())
	}

	readReg := func(offset uint32) uint32 {
		v, err := comp.ReadReg(offset)
		Expect(err).NotTo(HaveOccurred())

		return v
	}

	It("should sample the device at build", func() {
		Expect(readReg(regfile.OffsetHWInfo)).To(Equal(uint32(0x53030201)))
		Expect(readReg(regfile.OffsetCapStatus)).To(Equal(regfile.CapArmed))
		Expect(readReg(regfile.OffsetStatus)).To(BeZero())
	})

	It("should not tick when there is nothing to do", func() {
		Expect(comp.Tick()).To(BeFalse())
	})

	It("should run a state command to done", func() {
		issue(opcode.Arm, regfile.CtrlStart)

		Expect(engine.Run()).To(Succeed())

		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusDone))
		Expect(readReg(regfile.OffsetCtrl)).To(BeZero())
		Expect(transitions).To(HaveLen(4))
		Expect(transitions[0].From).To(Equal(sequencer.Idle))
		Expect(transitions[0].To).To(Equal(sequencer.StateAssert))
		Expect(transitions[2].To).To(Equal(sequencer.Done))
		Expect(transitions[3].To).To(Equal(sequencer.Idle))
		Expect(transitions[3].Cycle).To(BeNumerically(">", transitions[0].Cycle))

		s, ok := latency.Stats("ARM")
		Expect(ok).To(BeTrue())
		Expect(s.Outcomes).To(Equal(map[string]uint64{OutcomeDone: 1}))
	})

	It("should capture the result of a local read", func() {
		readData = 0x53000001
		issue(opcode.RdHWID, regfile.CtrlStart)

		Expect(engine.Run()).To(Succeed())

		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusDone))
		Expect(readReg(regfile.OffsetRData)).To(Equal(uint32(0x53000001)))
	})

	It("should raise an error when the device never answers", func() {
		readReady = false
		Expect(comp.WriteReg(regfile.OffsetTimeout, 100)).To(Succeed())
		issue(opcode.RdPodReg, regfile.CtrlStart)

		Expect(engine.Run()).To(Succeed())

		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusError))
		Expect(comp.Core().LastError).To(Equal(sequencer.ErrorTimeout))

		s, _ := latency.Stats("RD_POD_REG")
		Expect(s.Outcomes).To(Equal(map[string]uint64{OutcomeError: 1}))
	})

	It("should name unnamed opcodes by value", func() {
		issue(0x0F, regfile.CtrlStart)

		Expect(engine.Run()).To(Succeed())

		Expect(latency.Whats()).To(Equal([]string{"0x0F"}))
		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusError))
		Expect(comp.Core().LastError).To(Equal(sequencer.ErrorUnassignedOpcode))
	})

	It("should hold the interrupt until acknowledged", func() {
		issue(opcode.Arm, regfile.CtrlStart|regfile.CtrlIRQEnable)
		Expect(engine.Run()).To(Succeed())

		Expect(comp.IRQ()).To(BeTrue())
		Expect(readReg(regfile.OffsetIRQStatus)).To(Equal(regfile.IRQStatusPending))

		Expect(comp.WriteReg(regfile.OffsetIRQStatus, 1)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(comp.IRQ()).To(BeFalse())
		Expect(comp.Status().Done).To(BeTrue())
	})

	It("should ignore START while busy and honor abort", func() {
		readReady = false
		issue(opcode.RdPodReg, regfile.CtrlStart)

		Expect(comp.Tick()).To(BeTrue())
		Expect(comp.Core().State).To(Equal(sequencer.SerialAddrAssert))

		Expect(comp.WriteReg(regfile.OffsetCtrl, regfile.CtrlStart)).To(Succeed())
		Expect(comp.RejectedStarts()).To(Equal(uint64(1)))
		Expect(rejected).To(HaveLen(1))
		Expect(rejected[0].Opcode).To(Equal(opcode.RdPodReg))
		Expect(readReg(regfile.OffsetCtrl)).To(BeZero())

		Expect(comp.Tick()).To(BeTrue())
		Expect(comp.Core().State).To(Equal(sequencer.SerialAddrHold))

		Expect(comp.WriteReg(regfile.OffsetCtrl, regfile.CtrlAbort)).To(Succeed())
		Expect(comp.Tick()).To(BeFalse())

		Expect(comp.Core().State).To(Equal(sequencer.Idle))
		Expect(readReg(regfile.OffsetStatus)).To(BeZero())

		s, _ := latency.Stats("RD_POD_REG")
		Expect(s.Outcomes).To(Equal(map[string]uint64{OutcomeAborted: 1}))
	})

	It("should show BUSY right after START follows a finished command", func() {
		issue(opcode.Nop, regfile.CtrlStart)
		Expect(engine.Run()).To(Succeed())
		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusDone))

		issue(opcode.Arm, regfile.CtrlStart)
		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusBusy))
		Expect(comp.Status().Busy).To(BeTrue())

		Expect(engine.Run()).To(Succeed())
		Expect(readReg(regfile.OffsetStatus)).To(Equal(regfile.StatusDone))
		Expect(comp.Core().Request.Opcode).To(Equal(opcode.Arm))
	})

	It("should reject writes to read-only registers", func() {
		err := comp.WriteReg(regfile.OffsetStatus, 1)

		Expect(err).To(MatchError(regfile.ErrReadOnly))
	})

	It("should log transitions", func() {
		buf := new(bytes.Buffer)
		comp.AcceptHook(NewStateLogger(log.New(buf, "", 0)))

		issue(opcode.Nop, regfile.CtrlStart)
		Expect(engine.Run()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Wrapper@1 Idle -> Done"))
		Expect(buf.String()).To(ContainSubstring("Done -> Idle"))
	})
})

var _ = Describe("Builder", func() {
	It("should panic without an engine or a device", func() {
		Expect(func() { MakeBuilder().Build("W") }).To(Panic())
		Expect(func() {
			MakeBuilder().WithEngine(timing.NewSerialEngine()).Build("W")
		}).To(Panic())
	})
})
