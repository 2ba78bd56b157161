package simulation

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sumpaxi/datarecording"
	"github.com/sarchlab/sumpaxi/responder"
	"github.com/sarchlab/sumpaxi/tracing"
	"github.com/sarchlab/sumpaxi/wrapper"
	"github.com/sarchlab/sumpaxi/wrapper/opcode"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
)

var _ = Describe("Simulation", func() {
	var (
		dir        string
		simulation *Simulation
		comp       *wrapper.Comp
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "sumpaxi")
		Expect(err).NotTo(HaveOccurred())

		simulation = MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(filepath.Join(dir, "sim")).
			Build()

		comp = wrapper.MakeBuilder().
			WithEngine(simulation.GetEngine()).
			WithDevice(responder.MakeBuilder().Build("Responder")).
			Build("Wrapper")
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should register a component once", func() {
		simulation.RegisterComponent(comp)

		Expect(simulation.GetComponentByName("Wrapper")).To(BeIdenticalTo(comp))
		Expect(simulation.GetComponentByName("Other")).To(BeNil())
		Expect(simulation.Components()).To(HaveLen(1))
		Expect(func() { simulation.RegisterComponent(comp) }).To(Panic())

		simulation.Terminate()
	})

	It("should record executed commands", func() {
		simulation.RegisterComponent(comp)

		Expect(comp.WriteReg(regfile.OffsetCmd, uint32(opcode.Arm))).To(Succeed())
		Expect(comp.WriteReg(regfile.OffsetCtrl, regfile.CtrlStart)).To(Succeed())
		Expect(simulation.GetEngine().Run()).To(Succeed())

		simulation.Terminate()

		reader, err := datarecording.NewReader(simulation.OutputFile())
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		reader.MapTable(tracing.TaskTable, tracing.TaskEntry{})
		rows, err := reader.Query(context.Background(), tracing.TaskTable,
			datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))

		task := rows[0].(*tracing.TaskEntry)
		Expect(task.What).To(Equal("ARM"))
		Expect(task.Location).To(Equal("Wrapper"))
		Expect(task.Outcome).To(Equal(wrapper.OutcomeDone))
		Expect(task.EndTime).To(BeNumerically(">", task.StartTime))

		reader.MapTable(tracing.StepTable, tracing.StepEntry{})
		steps, err := reader.Query(context.Background(), tracing.StepTable,
			datarecording.QueryParams{OrderBy: "Time"})
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(3))
	})

	It("should refuse monitor options without a monitor", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
		}).To(Panic())

		simulation.Terminate()
	})
})
