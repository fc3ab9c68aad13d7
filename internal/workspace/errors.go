package workspace

import "fmt"

// ErrorKind separates the two error classes the API surfaces: authorization
// failures (bad token, missing role or membership) and validation failures
// (malformed input, missing entity, state precondition).
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthorization
)

// Error is the typed result every operation returns instead of the string
// sentinels the service grew up with.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func authorizationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}
