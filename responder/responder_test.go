package responder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sumpaxi/responder"
	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

func ctrlWrite(code opcode.NativeCode) sequencer.Bus {
	return sequencer.Bus{CtrlCS: true, CtrlWrite: true, CtrlData: code}
}

func dataWrite(v uint32) sequencer.Bus {
	return sequencer.Bus{DataCS: true, DataWrite: true, DataOut: v}
}

var dataRead = sequencer.Bus{DataCS: true, DataRead: true}

var _ = Describe("Responder", func() {
	It("should answer a local read after the latency", func() {
		r := responder.MakeBuilder().WithReadLatency(3).Build("R")

		r.Exchange(ctrlWrite(opcode.NativeRdHWID))
		sig := r.Exchange(dataRead)
		Expect(sig.ReadReady).To(BeFalse())

		for i := 0; i < 2; i++ {
			Expect(r.Exchange(sequencer.Bus{}).ReadReady).To(BeFalse())
		}

		sig = r.Exchange(sequencer.Bus{})
		Expect(sig.ReadReady).To(BeTrue())
		Expect(sig.ReadData).To(Equal(responder.DefaultHWID))

		Expect(r.Exchange(sequencer.Bus{}).ReadReady).To(BeFalse())
		Expect(r.ReadStrobes()).To(Equal(uint64(1)))
	})

	It("should answer in the strobe exchange without latency", func() {
		r := responder.MakeBuilder().
			WithLocalValue(opcode.NativeRdTickFreq, 100).
			Build("R")

		r.Exchange(ctrlWrite(opcode.NativeRdTickFreq))
		sig := r.Exchange(dataRead)

		Expect(sig.ReadReady).To(BeTrue())
		Expect(sig.ReadData).To(Equal(uint32(100)))
	})

	It("should stay silent when asked to", func() {
		r := responder.MakeBuilder().WithSilent(true).Build("R")

		r.Exchange(ctrlWrite(opcode.NativeRdHWID))
		for i := 0; i < 10; i++ {
			Expect(r.Exchange(dataRead).ReadReady).To(BeFalse())
		}

		r.SetSilent(false)
		Expect(r.Exchange(dataRead).ReadReady).To(BeTrue())
	})

	It("should report the hub count", func() {
		r := responder.MakeBuilder().WithHubCount(3).Build("R")

		Expect(r.Exchange(sequencer.Bus{}).HubCount).To(Equal(uint8(3)))

		r.Exchange(ctrlWrite(opcode.NativeRdHubCount))
		Expect(r.Exchange(dataRead).ReadData).To(Equal(uint32(3)))
	})

	It("should track armed and awake from state commands", func() {
		r := responder.MakeBuilder().Build("R")

		sig := r.Exchange(ctrlWrite(opcode.NativeArm))
		Expect(sig.Armed).To(BeTrue())
		Expect(sig.Awake).To(BeTrue())

		sig = r.Exchange(ctrlWrite(opcode.NativeSleep))
		Expect(sig.Armed).To(BeFalse())
		Expect(sig.Awake).To(BeFalse())

		sig = r.Exchange(ctrlWrite(opcode.NativeReset))
		Expect(sig.Awake).To(BeTrue())
		Expect(r.Armed()).To(BeFalse())
	})

	It("should store local writes", func() {
		r := responder.MakeBuilder().Build("R")

		r.Exchange(ctrlWrite(opcode.NativeWrUserCtrl))
		r.Exchange(dataWrite(0x55))

		v, ok := r.Written(opcode.NativeWrUserCtrl)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint32(0x55)))
	})

	It("should read and write pod registers at the target", func() {
		addr := opcode.MakeAddress(1, 2, opcode.PodTrigCfg)
		r := responder.MakeBuilder().
			WithPodReg(1, 2, opcode.PodRAMCfg, 0x77).
			Build("R")

		r.Exchange(ctrlWrite(opcode.NativeSetTarget))
		r.Exchange(dataWrite(addr.Downstream()))
		r.Exchange(ctrlWrite(opcode.NativeRdWrPodData))
		r.Exchange(dataWrite(0xAB))

		Expect(r.Target()).To(Equal(addr))
		Expect(r.PodReg(1, 2, opcode.PodTrigCfg)).To(Equal(uint32(0xAB)))
		Expect(r.PodReg(1, 2, opcode.PodRAMCfg)).To(Equal(uint32(0x77)))

		Expect(r.Exchange(dataRead).ReadData).To(Equal(uint32(0xAB)))
	})

	It("should serve hub-level values by hub", func() {
		r := responder.MakeBuilder().
			WithHubValue(1, opcode.NativeRdHubFreq, 80_000_000).
			Build("R")

		r.Exchange(ctrlWrite(opcode.NativeSetTarget))
		r.Exchange(dataWrite(opcode.MakeAddress(1, 0, 0).Downstream()))
		r.Exchange(ctrlWrite(opcode.NativeRdHubFreq))

		Expect(r.Exchange(dataRead).ReadData).To(Equal(uint32(80_000_000)))

		r.Exchange(ctrlWrite(opcode.NativeWrTrigWidth))
		r.Exchange(dataWrite(9))
		Expect(r.HubValue(1, opcode.NativeWrTrigWidth)).To(Equal(uint32(9)))
		Expect(r.Name()).To(Equal("R"))
	})
})
