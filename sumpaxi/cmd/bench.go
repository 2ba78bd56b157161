package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/sumpaxi/host"
	"github.com/sarchlab/sumpaxi/responder"
	"github.com/sarchlab/sumpaxi/simulation"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/tracing"
	"github.com/sarchlab/sumpaxi/wrapper"
	"github.com/sarchlab/sumpaxi/wrapper/regfile"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

// deviceOptions configure the scripted far end.
type deviceOptions struct {
	latency  int
	hubCount uint8
	silent   bool
}

// bench is a wrapper, its far end and a host agent on one simulation.
type bench struct {
	sim     *simulation.Simulation
	device  *responder.Responder
	wrapper *wrapper.Comp
	agent   *host.Agent
	latency *tracing.LatencyTracer
	steps   *tracing.StepCountTracer
	busy    *tracing.BusyTimeTracer
}

func loadBudgets() (sequencer.Budgets, error) {
	budgets := sequencer.DefaultBudgets()
	if budgetsFile == "" {
		return budgets, nil
	}

	f, err := os.Open(budgetsFile)
	if err != nil {
		return budgets, err
	}
	defer f.Close()

	return sequencer.LoadBudgets(f, budgets)
}

func buildBench(
	simBuilder simulation.Builder,
	dev deviceOptions,
	script host.Script,
) (*bench, error) {
	budgets, err := loadBudgets()
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}

	b := &bench{sim: simBuilder.Build()}
	engine := b.sim.GetEngine()
	freq := timing.Freq(freqMHz) * timing.MHz

	b.device = responder.MakeBuilder().
		WithReadLatency(dev.latency).
		WithHubCount(dev.hubCount).
		WithSilent(dev.silent).
		Build("Responder")

	b.wrapper = wrapper.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithDevice(b.device).
		WithBudgets(budgets).
		WithTimeout(timeout).
		Build("Wrapper")
	b.sim.RegisterComponent(b.wrapper)

	if script.Timeout != 0 {
		err = b.wrapper.WriteReg(regfile.OffsetTimeout, uint32(script.Timeout))
		if err != nil {
			return nil, err
		}
	}

	if logTransitions {
		b.wrapper.AcceptHook(wrapper.NewStateLogger(log.New(os.Stderr, "", 0)))
	}

	cmds := tracing.KindIs(wrapper.TaskKindCmd)
	b.latency = tracing.NewLatencyTracer(engine, cmds)
	b.steps = tracing.NewStepCountTracer(cmds)
	b.busy = tracing.NewBusyTimeTracer(engine, cmds)
	tracing.CollectTrace(b.wrapper, b.latency)
	tracing.CollectTrace(b.wrapper, b.steps)
	tracing.CollectTrace(b.wrapper, b.busy)

	agentBuilder := host.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithTarget(b.wrapper).
		WithIRQ(script.IRQ)

	if m := b.sim.GetMonitor(); m != nil {
		bar := m.CreateProgressBar("script", uint64(len(script.Steps)))
		agentBuilder = agentBuilder.WithProgressBar(bar)
	}

	b.agent = agentBuilder.Build("Host")
	b.sim.RegisterComponent(b.agent)

	return b, nil
}

func loadScript(path string) (host.Script, []host.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return host.Script{}, nil, err
	}
	defer f.Close()

	script, err := host.LoadScript(f)
	if err != nil {
		return script, nil, err
	}

	cmds, err := script.Commands()

	return script, cmds, err
}
