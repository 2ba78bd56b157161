package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sumpaxi/host"
	"github.com/sarchlab/sumpaxi/simulation"
)

var (
	serveDevice  deviceOptions
	servePort    int
	serveBrowser bool
	serveOutput  string
)

var serveCmd = &cobra.Command{
	Use:   "serve [SCRIPT]",
	Short: "Serve the simulation over HTTP.",
	Long: "`serve [SCRIPT]` starts the monitoring server, runs the script " +
		"if one is given, and keeps serving until interrupted. Registers " +
		"can be read and written through /api/reg/{component}/{register}; " +
		"each write resumes the simulation, so a command started that way " +
		"runs to completion without a call to /api/run.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		script := host.Script{}

		var cmds []host.Command

		if len(args) == 1 {
			var err error

			script, cmds, err = loadScript(args[0])
			if err != nil {
				return err
			}
		}

		simBuilder := simulation.MakeBuilder().
			WithMonitorPort(servePort).
			WithOutputFileName(serveOutput)
		if serveBrowser {
			simBuilder = simBuilder.WithBrowser()
		}

		b, err := buildBench(simBuilder, serveDevice, script)
		if err != nil {
			return err
		}
		defer b.sim.Terminate()

		b.sim.GetMonitor().WithRunOnWrite(true)
		b.agent.Enqueue(cmds...)

		err = b.sim.GetEngine().Run()
		if err != nil {
			return err
		}

		printResults(os.Stdout, b.agent.Results())
		fmt.Fprintf(os.Stderr, "Serving at %s, press Ctrl-C to stop\n",
			b.sim.MonitorURL())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-ctx.Done()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addDeviceFlags(serveCmd, &serveDevice)
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"Port of the monitoring server, random if unset")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser", false,
		"Open the monitor in a browser")
	serveCmd.Flags().StringVarP(&serveOutput, "output", "o", "",
		"Trace file name without extension")
}
