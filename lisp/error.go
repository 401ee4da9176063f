package lisp

import "fmt"

// Error conditions used by the runtime.  Conditions classify errors by what
// went wrong rather than by a Go type.  ErrorConditionUser marks values
// raised deliberately with ``throw'' and is kept distinct from
// ErrorConditionInternal, which marks contract violations inside the runtime
// itself.
const (
	ErrorConditionError    = "error"
	ErrorConditionUnbound  = "unbound-symbol"
	ErrorConditionType     = "type-mismatch"
	ErrorConditionIndex    = "index-out-of-range"
	ErrorConditionIO       = "io-error"
	ErrorConditionUser     = "user-raised"
	ErrorConditionInternal = "internal"
)

// ErrorVal implements the error interface so that lisp errors can cross into
// Go code as first class errors.  The condition is stored in the Str field
// and the payload in Cells[0].
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	if len(e.Cells) == 0 {
		return e.Str
	}
	payload := e.Cells[0]
	if payload.Type == LString {
		return payload.Str
	}
	return PrintString(payload, true)
}

// Condition returns the error condition classifying e.
func (e *ErrorVal) Condition() string {
	return e.Str
}

// Unwrap returns an underlying Go error when one exists, as with failures
// raised at the I/O boundary.
func (e *ErrorVal) Unwrap() error {
	return e.Native
}

// Error returns an LVal wrapping err under the given condition.
func Error(condition string, err error) *LVal {
	return &LVal{
		Type:   LError,
		Str:    condition,
		Native: err,
		Cells:  []*LVal{String(err.Error())},
	}
}

// ErrorCondition returns an error LVal carrying payload under the given
// condition.  The payload of a user-raised error may be any value.
func ErrorCondition(condition string, payload *LVal) *LVal {
	return &LVal{
		Type:  LError,
		Str:   condition,
		Cells: []*LVal{payload},
	}
}

// ErrorConditionf returns an error LVal with a formatted message under the
// given condition.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return ErrorCondition(condition, String(fmt.Sprintf(format, v...)))
}

// Errorf returns an error LVal under the general error condition.
func Errorf(format string, v ...interface{}) *LVal {
	return ErrorConditionf(ErrorConditionError, format, v...)
}
