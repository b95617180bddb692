package coord

import "fmt"

// InvalidInputTypeError is returned by the Resolve functions when an argument
// is neither a recognized literal form nor a recognized external handle.
type InvalidInputTypeError struct {
	Argument string
	Value    interface{}
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("coord: %s has unsupported type %T", e.Argument, e.Value)
}
