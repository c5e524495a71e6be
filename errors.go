package zx0

import "fmt"

// InvalidArgumentError reports a precondition violation in a call to
// Optimize. It is a programmer error, not a recoverable one: given
// well-formed inputs Optimize always terminates and returns a block.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "zx0: " + e.Message
}

func invalidArgument(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}
