package sim

import (
	"errors"
	"fmt"
)

// ErrDefect is matched by every engine defect. A defect means the state is
// no longer trustworthy and the level must not continue.
var ErrDefect = errors.New("engine defect")

// DefectError describes a broken engine invariant.
type DefectError struct {
	Op      string
	Message string
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Op, ErrDefect, e.Message)
}

func (e *DefectError) Unwrap() error {
	return ErrDefect
}

// fail records the first defect of the tick.
func (s *State) fail(op, format string, args ...any) {
	if s.defect != nil {
		return
	}
	s.defect = &DefectError{Op: op, Message: fmt.Sprintf(format, args...)}
}
