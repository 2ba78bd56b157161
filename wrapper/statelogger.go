package wrapper

import (
	"log"

	"github.com/sarchlab/sumpaxi/sim/hooking"
	"github.com/sarchlab/sumpaxi/sim/modeling"
	"github.com/sarchlab/sumpaxi/wrapper/sequencer"
)

// StateLogger is a hook that prints phase changes and rejected starts.
type StateLogger struct {
	*log.Logger
}

// NewStateLogger creates a StateLogger that writes through logger.
func NewStateLogger(logger *log.Logger) *StateLogger {
	return &StateLogger{Logger: logger}
}

// Func writes one line per hook invocation it understands.
func (h *StateLogger) Func(ctx hooking.HookCtx) {
	name := "?"
	if n, ok := ctx.Domain.(modeling.Named); ok {
		name = n.Name()
	}

	switch ctx.Pos {
	case HookPosStateChange:
		tr := ctx.Item.(Transition)
		h.Printf("%s@%d %s -> %s", name, tr.Cycle, tr.From, tr.To)
	case HookPosStartRejected:
		req := ctx.Item.(sequencer.Request)
		h.Printf("%s START ignored while busy, cmd %s", name, req.Opcode)
	}
}
