package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking coordinator. All of them except
// CodeStorageUnavailable are expected, recoverable results the caller acts
// on; CodeStorageUnavailable is a hard failure of the current operation only.
const (
	CodeNotFound           = "notFound"
	CodeConflict           = "conflict"
	CodeForbidden          = "forbidden"
	CodeIdentityRequired   = "identityRequired"
	CodeAlreadyIdentified  = "alreadyIdentified"
	CodeStorageUnavailable = "storageUnavailable"
)

// Error is a coded booking failure.
type Error struct {
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NewIdentityRequiredError() error {
	return &Error{Code: CodeIdentityRequired, Message: "an identified user is required for this operation"}
}

func NewAlreadyIdentifiedError() error {
	return &Error{Code: CodeAlreadyIdentified, Message: "session is already identified as a different user"}
}

// NewStorageError wraps an underlying storage fault. The cause is preserved
// for logs but never exposed to the end user.
func NewStorageError(cause error) error {
	return &Error{Code: CodeStorageUnavailable, Message: "backing store unreachable or timed out", cause: cause}
}

// CodeOf extracts the booking error code, or an empty string for other errors.
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsCode reports whether err carries the given booking error code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
