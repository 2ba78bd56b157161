package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sumpaxi/wrapper/opcode"
)

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "Print the opcode table.",
	Run: func(_ *cobra.Command, _ []string) {
		printOpcodes(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(opcodesCmd)
}

func printOpcodes(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPCODE\tNAME\tCATEGORY\tNATIVE")

	for _, e := range opcode.Named() {
		native := fmt.Sprintf("0x%02X", uint8(e.Native))
		if e.Native == opcode.NativeNone {
			native = "-"
		}

		fmt.Fprintf(tw, "0x%02X\t%s\t%s\t%s\n",
			uint8(e.Opcode), e.Name, e.Category, native)
	}

	tw.Flush()
}
