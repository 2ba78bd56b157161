// Package cmd provides the command-line interface of sumpaxi.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	envFile        string
	timeout        uint16
	freqMHz        float64
	budgetsFile    string
	logTransitions bool
)

// envBindings maps persistent flags to the environment variables that can
// set their defaults.
var envBindings = map[string]string{
	"timeout":  "SUMPAXI_TIMEOUT",
	"freq-mhz": "SUMPAXI_FREQ_MHZ",
	"budgets":  "SUMPAXI_BUDGETS",
	"port":     "SUMPAXI_MONITOR_PORT",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sumpaxi",
	Short: "Simulate the SUMP3 AXI command sequencer.",
	Long: `sumpaxi simulates the command sequencer that bridges a register ` +
		`interface to the slow serial bus of a SUMP3 logic analyzer. It runs ` +
		`command scripts against a scripted far end and can serve the ` +
		`simulation over HTTP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env",
		"File with environment variables to load")
	flags.Uint16Var(&timeout, "timeout", 4096,
		"Reset value of the TIMEOUT register, in ticks")
	flags.Float64Var(&freqMHz, "freq-mhz", 100,
		"Clock frequency of the wrapper, in MHz")
	flags.StringVar(&budgetsFile, "budgets", "",
		"YAML file overriding the settle budgets")
	flags.BoolVar(&logTransitions, "log-transitions", false,
		"Print every sequencer phase change")
}

// loadEnv reads the env file, if any, and applies the environment to the
// flags the user did not set.
func loadEnv(cmd *cobra.Command, _ []string) error {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	return applyEnv(cmd.Flags())
}

func applyEnv(flags *pflag.FlagSet) error {
	for name, env := range envBindings {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}

		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}
