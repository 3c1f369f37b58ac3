package core

import (
	"fmt"
	"time"
)

const OneDayDuration time.Duration = 24 * time.Hour

// FieldError is a failed constraint over one field of a model.
type FieldError struct {
	// Field is the name (and only the name) of the failing field.
	Field string

	// Tag is the condition that have failed.
	Tag string

	// Param is the tag parameter, if any (ex: 100 in max=100).
	Param string

	// Message is a human readable description of the failure.
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Validator checks a model and returns its field errors in field declaration order.
// An empty result means the model is valid.
type Validator func(any) []FieldError

type Cypher interface {
	Encrypt(data []byte) ([]byte, error)
	UnEncrypt(data []byte) ([]byte, error)
}

// UseCaseError is a failure shown to the user. Code is the key of its
// localized message.
type UseCaseError struct {
	Code   uint16
	Reason string
}

func (caseErr UseCaseError) Error() string {
	return fmt.Sprintf("UseCaseError -> [%d] %s", caseErr.Code, caseErr.Reason)
}

var (
	ErrListing = UseCaseError{Code: 100, Reason: "cannot load listing"}
	ErrExport  = UseCaseError{Code: 101, Reason: "cannot export listing"}
)
