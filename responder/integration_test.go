package responder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sumpaxi/responder"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/wrapper"
	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
)

var _ = Describe("Wrapper with responder", func() {
	var (
		engine *timing.SerialEngine
		dev    *responder.Responder
		comp   *wrapper.Comp
	)

	build := func(b responder.Builder) {
		engine = timing.NewSerialEngine()
		dev = b.Build("Responder")
		comp = wrapper.MakeBuilder().
			WithEngine(engine).
			WithDevice(dev).
			Build("Wrapper")
	}

	run := func(op opcode.Opcode, addr opcode.Address, data uint32) uint32 {
		Expect(comp.WriteReg(regfile.OffsetCmd, uint32(op))).To(Succeed())
		Expect(comp.WriteReg(regfile.OffsetAddr, uint32(addr))).To(Succeed())
		Expect(comp.WriteReg(regfile.OffsetWData, data)).To(Succeed())
		Expect(comp.WriteReg(regfile.OffsetCtrl, regfile.CtrlStart)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		status, err := comp.ReadReg(regfile.OffsetStatus)
		Expect(err).NotTo(HaveOccurred())

		return status
	}

	readReg := func(offset uint32) uint32 {
		v, err := comp.ReadReg(offset)
		Expect(err).NotTo(HaveOccurred())

		return v
	}

	It("should read the hardware id", func() {
		build(responder.MakeBuilder().WithReadLatency(5))

		Expect(run(opcode.RdHWID, 0, 0)).To(Equal(regfile.StatusDone))
		Expect(readReg(regfile.OffsetRData)).To(Equal(responder.DefaultHWID))
	})

	It("should write then read back a pod register", func() {
		build(responder.MakeBuilder().WithReadLatency(20))
		addr := opcode.MakeAddress(0, 1, opcode.PodTrigCfg)

		Expect(run(opcode.WrPodReg, addr, 0xC0FFEE)).To(Equal(regfile.StatusDone))
		Expect(dev.PodReg(0, 1, opcode.PodTrigCfg)).To(Equal(uint32(0xC0FFEE)))

		Expect(run(opcode.RdPodReg, addr, 0)).To(Equal(regfile.StatusDone))
		Expect(readReg(regfile.OffsetRData)).To(Equal(uint32(0xC0FFEE)))
	})

	It("should reflect state commands in CAP_STATUS", func() {
		build(responder.MakeBuilder())

		Expect(run(opcode.Arm, 0, 0)).To(Equal(regfile.StatusDone))
		Expect(readReg(regfile.OffsetCapStatus)).
			To(Equal(regfile.CapArmed | regfile.CapAwake))

		Expect(run(opcode.Sleep, 0, 0)).To(Equal(regfile.StatusDone))
		Expect(readReg(regfile.OffsetCapStatus)).To(BeZero())
	})

	It("should time out against a silent responder", func() {
		build(responder.MakeBuilder().WithSilent(true))
		Expect(comp.WriteReg(regfile.OffsetTimeout, 1000)).To(Succeed())

		Expect(run(opcode.RdHWID, 0, 0)).To(Equal(regfile.StatusError))
		Expect(dev.ReadStrobes()).To(Equal(uint64(1)))
	})

	It("should report the hub count in HW_INFO", func() {
		build(responder.MakeBuilder().WithHubCount(4))

		Expect(readReg(regfile.OffsetHWInfo) >> 8 & 0xFF).To(Equal(uint32(4)))
	})
})
