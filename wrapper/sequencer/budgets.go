package sequencer

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// MaxBudget is the largest settle budget a phase can take.
const MaxBudget = 1<<24 - 1

var (
	// ErrUnknownPhase is returned when a budget names a phase that does not
	// exist or does not take a settle budget.
	ErrUnknownPhase = errors.New("unknown timed phase")

	// ErrBudgetRange is returned when a budget exceeds MaxBudget.
	ErrBudgetRange = errors.New("settle budget out of range")
)

// Budgets holds the settle budget, in ticks, that each phase loads on entry.
// A phase with budget b lasts max(b, 1) ticks.
type Budgets [NumStates]uint32

// DefaultBudgets returns the budgets sized for a downstream bus whose serial
// control channel needs 40 ticks to shift a command and whose far end needs
// 256 ticks for a full read round trip.
func DefaultBudgets() Budgets {
	var b Budgets

	b[StateAssert] = 1
	b[StateHold] = 16

	b[LocalReadAssert] = 1
	b[LocalReadHold] = 8
	b[LocalReadIssue] = 1

	b[LocalWriteAssert] = 1
	b[LocalWriteHold] = 8
	b[LocalWriteIssue] = 1
	b[LocalWriteSettle] = 8

	b[SerialAddrAssert] = 1
	b[SerialAddrHold] = 40
	b[SerialAddrWrite] = 1
	b[SerialAddrSettle] = 64
	b[SerialCmdAssert] = 1
	b[SerialCmdHold] = 40

	b[SerialWriteIssue] = 1
	b[SerialWriteSettle] = 64

	b[SerialReadTrigger] = 1
	b[SerialReadTriggerHold] = 8
	b[SerialReadSettle] = 256
	b[SerialReadIssue] = 1

	return b
}

// Of returns the budget of a state.
func (b Budgets) Of(s State) uint32 {
	return b[s]
}

// Set changes the budget of a timed phase.
func (b *Budgets) Set(s State, ticks uint32) error {
	if s < 0 || s >= NumStates || !s.IsTimed() {
		return fmt.Errorf("%w: %s", ErrUnknownPhase, s)
	}

	if ticks > MaxBudget {
		return fmt.Errorf("%w: %s=%d", ErrBudgetRange, s, ticks)
	}

	b[s] = ticks

	return nil
}

// Ticks returns how many ticks a timed phase lasts.
func (b Budgets) Ticks(s State) uint32 {
	if b[s] == 0 {
		return 1
	}

	return b[s]
}

// Profile maps phase names to settle budgets. It is the YAML form of Budgets.
type Profile map[string]uint32

// Apply returns a copy of base with the budgets named in the profile
// replaced.
func (p Profile) Apply(base Budgets) (Budgets, error) {
	out := base

	for name, ticks := range p {
		s, ok := ParseState(name)
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrUnknownPhase, name)
		}

		if err := out.Set(s, ticks); err != nil {
			return base, err
		}
	}

	return out, nil
}

// Profile returns the budgets of all timed phases keyed by phase name.
func (b Budgets) Profile() Profile {
	p := make(Profile)

	for s := Idle; s < NumStates; s++ {
		if s.IsTimed() {
			p[s.String()] = b[s]
		}
	}

	return p
}

// LoadBudgets reads a YAML budget profile and applies it on top of base.
//
//	SerialReadSettle: 512
//	SerialAddrHold: 80
func LoadBudgets(r io.Reader, base Budgets) (Budgets, error) {
	var p Profile

	err := yaml.NewDecoder(r).Decode(&p)
	if err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decoding budget profile: %w", err)
	}

	return p.Apply(base)
}
