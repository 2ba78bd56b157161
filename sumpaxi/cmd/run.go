package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sumpaxi/host"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/simulation"
	"github.com/sarchlab/sumpaxi/tracing"
)

var (
	runDevice  deviceOptions
	runOutput  string
	runMaxTime float64
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a YAML command script.",
	Long: "`run SCRIPT` executes the commands of a script one by one, " +
		"prints what the host observed, and fails if any expectation " +
		"is not met. Commands are traced into a SQLite file.",
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		script, cmds, err := loadScript(args[0])
		if err != nil {
			return err
		}

		b, err := buildBench(
			simulation.MakeBuilder().
				WithoutMonitoring().
				WithOutputFileName(runOutput),
			runDevice, script)
		if err != nil {
			return err
		}
		defer b.sim.Terminate()

		b.agent.Enqueue(cmds...)

		stopped := runEngine(b.sim.GetEngine(), runMaxTime)
		if stopped != nil && !errors.Is(stopped, errStopped) {
			return stopped
		}

		printResults(os.Stdout, b.agent.Results())
		printLatency(os.Stdout, b.latency)
		printPhases(os.Stdout, b.steps)
		printBusy(os.Stdout, b.busy, b.sim.GetEngine().Now())

		return errors.Join(append([]error{stopped}, b.agent.Mismatches()...)...)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addDeviceFlags(runCmd, &runDevice)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "",
		"Trace file name without extension")
	runCmd.Flags().Float64Var(&runMaxTime, "max-time", 0,
		"Stop after this much simulated time, in seconds; 0 runs to the end")
}

var errStopped = errors.New("simulation stopped before the script finished")

// runEngine runs the engine to the end, or up to maxTime if it is positive.
func runEngine(engine timing.Engine, maxTime float64) error {
	if maxTime <= 0 {
		return engine.Run()
	}

	err := engine.RunUntil(maxTime)
	if err != nil {
		return err
	}

	if n := engine.Pending(); n > 0 {
		return fmt.Errorf("%w: %d events pending at %.9fs",
			errStopped, n, engine.Now())
	}

	return nil
}

func addDeviceFlags(c *cobra.Command, dev *deviceOptions) {
	c.Flags().IntVar(&dev.latency, "latency", 5,
		"Ticks between a read strobe and the ready pulse")
	c.Flags().Uint8Var(&dev.hubCount, "hubs", 2,
		"Hub count reported by the far end")
	c.Flags().BoolVar(&dev.silent, "silent", false,
		"Never answer read strobes")
}

func printResults(w io.Writer, results []host.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tCMD\tOUTCOME\tRDATA\tCYCLES\tCHECK")

	for _, r := range results {
		check := "ok"
		if r.Mismatch != nil {
			check = "FAIL"
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t0x%08X\t%d\t%s\n",
			r.Command.Index, r.Command.Name(), r.Outcome, r.Data,
			r.Cycles, check)
	}

	tw.Flush()
}

func printLatency(w io.Writer, t *tracing.LatencyTracer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCMD\tCOUNT\tAVG(s)\tMIN(s)\tMAX(s)")

	for _, what := range t.Whats() {
		s, _ := t.Stats(what)
		fmt.Fprintf(tw, "%s\t%d\t%.3g\t%.3g\t%.3g\n",
			what, s.Count, s.Average(), s.Min, s.Max)
	}

	tw.Flush()
}

func printPhases(w io.Writer, t *tracing.StepCountTracer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nPHASE\tVISITS\tCMDS")

	for _, what := range t.StepNames() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n",
			what, t.StepCount(what), t.TaskCount(what))
	}

	tw.Flush()
}

func printBusy(w io.Writer, t *tracing.BusyTimeTracer, now timing.VTimeInSec) {
	busy := t.BusyTimeAt(now)

	occupancy := 0.0
	if now > 0 {
		occupancy = busy / now * 100
	}

	fmt.Fprintf(w, "\nBUSY %.3gs of %.3gs (%.1f%%)\n", busy, now, occupancy)
}
