package criteria

import "fmt"

// MalformedError rejects a whole query: an unknown field, an operator the
// field's type does not support, or a value that does not parse.
type MalformedError struct {
	Param  string
	Value  string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed criteria %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("malformed criteria %s=%q: %s", e.Param, e.Value, e.Reason)
}

func malformed(param, value, format string, args ...any) *MalformedError {
	return &MalformedError{Param: param, Value: value, Reason: fmt.Sprintf(format, args...)}
}
