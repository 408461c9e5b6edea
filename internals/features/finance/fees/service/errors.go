package service

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation                  ErrorKind = "ValidationError"
	KindDomainMismatch              ErrorKind = "DomainMismatch"
	KindDuplicateEmail              ErrorKind = "DuplicateEmail"
	KindDuplicateRegistrationNumber ErrorKind = "DuplicateRegistrationNumber"
	KindNotFound                    ErrorKind = "NotFound"
	KindExceedsDue                  ErrorKind = "ExceedsDue"
	KindInvalidAmount               ErrorKind = "InvalidAmount"
	KindWrite                       ErrorKind = "WriteError"
	KindStore                       ErrorKind = "StoreError"
)

// Sentinels for errors.Is; a *FeeError matches the sentinel of its Kind.
var (
	ErrValidation                  = &FeeError{Kind: KindValidation}
	ErrDomainMismatch              = &FeeError{Kind: KindDomainMismatch}
	ErrDuplicateEmail              = &FeeError{Kind: KindDuplicateEmail}
	ErrDuplicateRegistrationNumber = &FeeError{Kind: KindDuplicateRegistrationNumber}
	ErrNotFound                    = &FeeError{Kind: KindNotFound}
	ErrExceedsDue                  = &FeeError{Kind: KindExceedsDue}
	ErrInvalidAmount               = &FeeError{Kind: KindInvalidAmount}
	ErrWrite                       = &FeeError{Kind: KindWrite}
	ErrStore                       = &FeeError{Kind: KindStore}
)

type FeeError struct {
	Kind    ErrorKind
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *FeeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FeeError) Unwrap() error { return e.Err }

func (e *FeeError) Is(target error) bool {
	t, ok := target.(*FeeError)
	return ok && t.Kind == e.Kind
}

// IsBusiness reports whether the failure is the caller's to fix, as opposed
// to an infrastructure failure.
func (e *FeeError) IsBusiness() bool {
	switch e.Kind {
	case KindWrite, KindStore, KindNotFound:
		return false
	}
	return true
}

func newError(kind ErrorKind, msg string, err error) *FeeError {
	return &FeeError{Kind: kind, Message: msg, Err: err}
}

func validationError(msg string, fields map[string]string) *FeeError {
	return &FeeError{Kind: KindValidation, Message: msg, Fields: fields}
}

func notFound(msg string) *FeeError {
	return &FeeError{Kind: KindNotFound, Message: msg}
}

func storeError(msg string, err error) *FeeError {
	return &FeeError{Kind: KindStore, Message: msg, Err: err}
}

func writeError(msg string, err error) *FeeError {
	return &FeeError{Kind: KindWrite, Message: msg, Err: err}
}

// AsFeeError unwraps err into a *FeeError, if it carries one.
func AsFeeError(err error) (*FeeError, bool) {
	var fe *FeeError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
