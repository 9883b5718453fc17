package tooldispatch

import "fmt"

// DuplicateRegistrationError reports an attempt to bind a second tool under a
// name that is already taken. It is a startup-time configuration bug, not a
// runtime condition to recover from.
type DuplicateRegistrationError struct {
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// UnknownToolError reports a call name that resolves to no registered tool.
// The dispatcher converts it into a normalized failure response; it is
// exported so callers resolving names directly can detect the condition.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}
