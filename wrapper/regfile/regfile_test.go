package regfile

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

var _ = Describe("RegFile", func() {
	var r *RegFile

	BeforeEach(func() {
		r = New(DefaultTimeout, 0x02)
	})

	mustRead := func(offset uint32) uint32 {
		v, err := r.Read(offset)
		Expect(err).NotTo(HaveOccurred())

		return v
	}

	It("should hold request registers", func() {
		Expect(r.Write(OffsetCmd, 0x132)).To(Succeed())
		Expect(r.Write(OffsetAddr, 0x00010203)).To(Succeed())
		Expect(r.Write(OffsetWData, 0x22)).To(Succeed())

		Expect(mustRead(OffsetCmd)).To(Equal(uint32(0x32)))
		Expect(mustRead(OffsetAddr)).To(Equal(uint32(0x00010203)))

		in := r.Inputs()
		Expect(in.Request).To(Equal(sequencer.Request{
			Opcode:    opcode.RdPodReg,
			Address:   opcode.MakeAddress(1, 2, opcode.PodTrigCfg),
			WriteData: 0x22,
		}))
		Expect(in.TimeoutBudget).To(Equal(DefaultTimeout))
	})

	It("should clamp the timeout to 16 bits", func() {
		Expect(r.Write(OffsetTimeout, 0x12345)).To(Succeed())
		Expect(mustRead(OffsetTimeout)).To(Equal(uint32(0xFFFF)))

		Expect(r.Write(OffsetTimeout, 100)).To(Succeed())
		Expect(r.Inputs().TimeoutBudget).To(Equal(uint16(100)))
	})

	It("should clear START only once taken", func() {
		Expect(r.Write(OffsetCtrl, CtrlStart|CtrlIRQEnable)).To(Succeed())
		Expect(r.Inputs().Start).To(BeTrue())
		Expect(r.Inputs().IRQEnable).To(BeTrue())

		r.Update(sequencer.Core{}, sequencer.Effects{}, Passthrough{})
		Expect(r.Inputs().Start).To(BeTrue())

		busy := sequencer.Core{State: sequencer.StateAssert}
		r.Update(busy, sequencer.Effects{StartTaken: true}, Passthrough{})
		Expect(r.Inputs().Start).To(BeFalse())
		Expect(mustRead(OffsetCtrl)).To(Equal(CtrlIRQEnable))
		Expect(mustRead(OffsetStatus)).To(Equal(StatusBusy))
	})

	It("should report an accepted START as busy before it is taken", func() {
		r.Update(sequencer.Core{Done: true, IRQPending: true},
			sequencer.Effects{}, Passthrough{})
		Expect(mustRead(OffsetStatus)).To(Equal(StatusDone | StatusIRQPending))

		Expect(r.Write(OffsetCtrl, CtrlStart)).To(Succeed())
		Expect(mustRead(OffsetStatus)).To(Equal(StatusBusy | StatusIRQPending))

		r.Update(sequencer.Core{Done: true}, sequencer.Effects{}, Passthrough{})
		Expect(mustRead(OffsetStatus)).To(Equal(StatusBusy))

		Expect(r.Write(OffsetCtrl, CtrlStart)).To(MatchError(ErrStartWhileBusy))
		Expect(r.Inputs().Start).To(BeTrue())
	})

	It("should drop START while busy", func() {
		busy := sequencer.Core{State: sequencer.SerialReadSettle}
		r.Update(busy, sequencer.Effects{}, Passthrough{})

		err := r.Write(OffsetCtrl, CtrlStart|CtrlIRQEnable)

		Expect(err).To(MatchError(ErrStartWhileBusy))
		Expect(r.Inputs().Start).To(BeFalse())
		Expect(r.Inputs().IRQEnable).To(BeTrue())
		Expect(r.Pending()).To(BeFalse())
	})

	It("should pulse ABORT for one tick", func() {
		Expect(r.Write(OffsetCtrl, CtrlAbort)).To(Succeed())
		Expect(r.Inputs().Abort).To(BeTrue())
		Expect(r.Pending()).To(BeTrue())

		r.Update(sequencer.Core{}, sequencer.Effects{AbortTaken: true}, Passthrough{})
		Expect(r.Inputs().Abort).To(BeFalse())
	})

	It("should acknowledge the interrupt with write-one-to-clear", func() {
		pending := sequencer.Core{Done: true, IRQPending: true}
		r.Update(pending, sequencer.Effects{}, Passthrough{})
		Expect(r.IRQ()).To(BeTrue())
		Expect(mustRead(OffsetIRQStatus)).To(Equal(IRQStatusPending))
		Expect(mustRead(OffsetStatus)).To(Equal(StatusDone | StatusIRQPending))

		Expect(r.Write(OffsetIRQStatus, 0)).To(Succeed())
		Expect(r.Inputs().IRQAck).To(BeFalse())

		Expect(r.Write(OffsetIRQStatus, IRQStatusPending)).To(Succeed())
		Expect(r.Inputs().IRQAck).To(BeTrue())

		r.Update(sequencer.Core{Done: true}, sequencer.Effects{}, Passthrough{})
		Expect(r.Inputs().IRQAck).To(BeFalse())
		Expect(r.IRQ()).To(BeFalse())
	})

	It("should pass through identity and capture status", func() {
		r.Update(sequencer.Core{Result: 0x99}, sequencer.Effects{},
			Passthrough{Armed: true, Awake: true, HubCount: 2})

		Expect(mustRead(OffsetHWInfo)).To(Equal(uint32(0x53030202)))
		Expect(mustRead(OffsetHWInfo) >> 16).To(Equal(HWInfoID))
		Expect(mustRead(OffsetCapStatus)).To(Equal(CapArmed | CapAwake))
		Expect(mustRead(OffsetRData)).To(Equal(uint32(0x99)))
	})

	It("should reject bad offsets and read-only writes", func() {
		_, err := r.Read(0x28)
		Expect(err).To(MatchError(ErrInvalidOffset))

		_, err = r.Read(0x02)
		Expect(err).To(MatchError(ErrInvalidOffset))

		Expect(r.Write(0x03, 1)).To(MatchError(ErrInvalidOffset))

		for _, off := range []uint32{
			OffsetStatus, OffsetRData, OffsetHWInfo, OffsetCapStatus,
		} {
			Expect(r.Write(off, 1)).To(MatchError(ErrReadOnly))
		}
	})

	It("should name every offset", func() {
		offsets := Offsets()

		Expect(offsets).To(HaveLen(10))
		for _, off := range offsets {
			back, err := ParseOffset(Name(off))
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(off))
		}

		_, err := ParseOffset("BOGUS")
		Expect(err).To(MatchError(ErrInvalidOffset))
	})
})
