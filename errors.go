package endgame

import (
	"github.com/pkg/errors"
)

// SolverError is the reason a solve did not produce a winning action.
type SolverError uint8

const (
	_ SolverError = iota
	// ErrUnwinnable means a complete search proved no line reaches the
	// max score. It is a trustworthy answer, not a failure to search.
	ErrUnwinnable
	// ErrTooMuchHiddenInformation means too many identities were unseen
	// to enumerate the solving player's hand.
	ErrTooMuchHiddenInformation
	// ErrTimedOut means the deadline passed before the search finished.
	ErrTimedOut
)

var solverErrorStr = [...]string{
	"invalid solver error",
	"no line reaches the max score",
	"too much hidden information",
	"timed out",
}

func (e SolverError) Error() string {
	return "endgame: " + solverErrorStr[e]
}

// Unsolved returns whether the error means the solver has no answer,
// as opposed to proving the game cannot be won.
func (e SolverError) Unsolved() bool {
	return e != ErrUnwinnable
}

// IsUnsolved reports whether err, or any error it wraps, is a SolverError
// meaning the solver could not reach an answer.
func IsUnsolved(err error) bool {
	var se SolverError
	return errors.As(err, &se) && se.Unsolved()
}
