// Command sumpaxi runs command scripts against a simulated SUMP3 AXI
// command sequencer.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/sumpaxi/sumpaxi/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
