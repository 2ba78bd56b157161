// Package sequencer implements the command sequencer as a pure step function
// over an explicit core state.
package sequencer

import "fmt"

// State is the execution phase of the sequencer.
type State int

// Execution phases.
const (
	Idle State = iota

	StateAssert
	StateHold

	LocalReadAssert
	LocalReadHold
	LocalReadIssue
	LocalReadAwait

	LocalWriteAssert
	LocalWriteHold
	LocalWriteIssue
	LocalWriteSettle

	SerialAddrAssert
	SerialAddrHold
	SerialAddrWrite
	SerialAddrSettle
	SerialCmdAssert
	SerialCmdHold

	SerialWriteIssue
	SerialWriteSettle

	SerialReadTrigger
	SerialReadTriggerHold
	SerialReadSettle
	SerialReadIssue
	SerialReadAwait

	Done
	Error

	// NumStates is the number of execution phases.
	NumStates
)

var stateNames = [NumStates]string{
	Idle:                  "Idle",
	StateAssert:           "StateAssert",
	StateHold:             "StateHold",
	LocalReadAssert:       "LocalReadAssert",
	LocalReadHold:         "LocalReadHold",
	LocalReadIssue:        "LocalReadIssue",
	LocalReadAwait:        "LocalReadAwait",
	LocalWriteAssert:      "LocalWriteAssert",
	LocalWriteHold:        "LocalWriteHold",
	LocalWriteIssue:       "LocalWriteIssue",
	LocalWriteSettle:      "LocalWriteSettle",
	SerialAddrAssert:      "SerialAddrAssert",
	SerialAddrHold:        "SerialAddrHold",
	SerialAddrWrite:       "SerialAddrWrite",
	SerialAddrSettle:      "SerialAddrSettle",
	SerialCmdAssert:       "SerialCmdAssert",
	SerialCmdHold:         "SerialCmdHold",
	SerialWriteIssue:      "SerialWriteIssue",
	SerialWriteSettle:     "SerialWriteSettle",
	SerialReadTrigger:     "SerialReadTrigger",
	SerialReadTriggerHold: "SerialReadTriggerHold",
	SerialReadSettle:      "SerialReadSettle",
	SerialReadIssue:       "SerialReadIssue",
	SerialReadAwait:       "SerialReadAwait",
	Done:                  "Done",
	Error:                 "Error",
}

func (s State) String() string {
	if s < 0 || s >= NumStates {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// ParseState returns the state with the given name.
func ParseState(name string) (State, bool) {
	for s, n := range stateNames {
		if n == name {
			return State(s), true
		}
	}

	return Idle, false
}

// IsTerminal tells if the state is Done or Error.
func (s State) IsTerminal() bool {
	return s == Done || s == Error
}

// IsAwait tells if the state waits for a downstream ready pulse rather than
// for its settle timer.
func (s State) IsAwait() bool {
	return s == LocalReadAwait || s == SerialReadAwait
}

// IsTimed tells if the state loads a settle budget on entry.
func (s State) IsTimed() bool {
	return s != Idle && !s.IsTerminal() && !s.IsAwait()
}

// CaptureEnabled tells if a downstream ready pulse observed in this state
// updates the result register.
func (s State) CaptureEnabled() bool {
	switch s {
	case LocalReadIssue, LocalReadAwait, SerialReadIssue, SerialReadAwait:
		return true
	default:
		return false
	}
}
