package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InputUnreadable indicates the expectations file is missing or cannot be read
	InputUnreadable ErrorCode = "INPUT_UNREADABLE"
	// InputInvalid indicates the expectations file is not valid JSON
	InputInvalid ErrorCode = "INPUT_INVALID"
	// InputNotObject indicates the expectations file is valid JSON but not an object
	InputNotObject ErrorCode = "INPUT_NOT_OBJECT"
	// ConfigInvalid indicates a bad flag, environment override or config file value
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// ErrorKind groups codes into the two failure classes a run can end with.
type ErrorKind string

const (
	IOError    ErrorKind = "IOError"
	ParseError ErrorKind = "ParseError"
)

var codeKinds = map[ErrorCode]ErrorKind{
	InputUnreadable: IOError,
	InputInvalid:    ParseError,
	InputNotObject:  ParseError,
}

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description"`
}

// Error is a coded error carrying the input path it relates to.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new Error
func New(code ErrorCode, message string, path string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Path:    path,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Kind returns the failure class of e.
func (e *Error) Kind() ErrorKind {
	return codeKinds[e.Code]
}

// CodeOf extracts the code from anywhere in err's chain.
// Returns "" when err carries no code.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf classifies err as IOError or ParseError, or "" for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return ""
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	InputUnreadable: {
		{
			Description: "Run from the repository root or pass the expectations file path",
			Command:     "expectgroup path/to/expectations.json",
		},
	},
	InputInvalid: {
		{
			Description: "Check the file is well-formed JSON",
		},
	},
	InputNotObject: {
		{
			Description: "The top-level JSON value must be an object mapping test paths to outcomes",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
