package intcode

import (
	"strconv"
)

// State is the status a machine reports after executing.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING    = State(0) // running
	STATE_OUTPUT     = State(1) // output
	STATE_NEED_INPUT = State(2) // need-input
	STATE_HALTED     = State(3) // halted
)

// Result is the outcome of Run or Tick.
type Result struct {
	State State // Why execution stopped.
	Value Cell  // Output value, valid only when State is STATE_OUTPUT.
}

// String returns the result as text.
func (result Result) String() string {
	if result.State == STATE_OUTPUT {
		return result.State.String() + "(" + strconv.FormatInt(int64(result.Value), 10) + ")"
	}
	return result.State.String()
}
