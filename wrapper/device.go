package wrapper

import "github.com/sarchlab/sumpaxi/wrapper/sequencer"

// Signals is what the downstream collaborator returns in one tick.
type Signals struct {
	ReadReady bool
	ReadData  uint32

	Armed    bool
	Awake    bool
	HubCount uint8
}

// A Device sits at the far end of the downstream bus. Exchange is called
// once per tick with the bus value the sequencer drives in that tick.
type Device interface {
	Exchange(bus sequencer.Bus) Signals
}
