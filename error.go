package diffscraper

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT  = "conflict"
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ETOKENIZE  = "tokenize"
	ESEGMENT   = "segment_not_found"
	ELENGTH    = "length_mismatch"
	EAMBIGUOUS = "ambiguous"
	EINTEGRITY = "integrity"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("diffscraper error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return EINTEGRITY
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie.Error()
	}
	return "Internal error."
}

// Integrity checks run when a data object is decoded against a template.
const (
	CheckTemplate = "template"
	CheckData     = "data"
	CheckDocument = "document"
)

// IntegrityError reports which verification check failed along with the
// digest that was computed and the one that was recorded.
type IntegrityError struct {
	Check    string
	Actual   Digest
	Expected Digest
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s hash mismatch: actual=%s expected=%s", e.Check, e.Actual, e.Expected)
}
