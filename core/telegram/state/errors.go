package state

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when advancing a key with no live session.
var ErrNoSession = errors.New("state: no active session")

// InvalidStateError reports an attempt to use a state a group never
// declared. It signals a programming error in flow wiring, not bad input.
type InvalidStateError struct {
	Group string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("state: %q is not declared in group %q", e.State, e.Group)
}

// Code identifies the error class for logging and summaries.
func (e *InvalidStateError) Code() string { return "invalid_state" }

// TerminalStateError reports an Advance past the last state of a group.
// Flows must Finish or Cancel at their terminal state instead.
type TerminalStateError struct {
	Group string
	State State
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("state: %q is the terminal state of group %q", e.State, e.Group)
}

// Code identifies the error class for logging and summaries.
func (e *TerminalStateError) Code() string { return "terminal_state" }

// ValidationError rejects user input for the current state. The dispatcher
// re-prompts with Message instead of advancing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("state: input rejected: %s", e.Message)
}

// Code identifies the error class for logging and summaries.
func (e *ValidationError) Code() string { return "validation" }
