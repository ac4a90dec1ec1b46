package domain

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindPayment         ErrorKind = "payment"
	KindUpstream        ErrorKind = "upstream"
	KindInternal        ErrorKind = "internal"
)

// Error is the tagged error returned by services. Code identifies the
// variant; errors.Is compares codes so wrapped copies still match the sentinel.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// WithFields returns a copy of e naming the offending input fields.
func (e *Error) WithFields(fields ...string) *Error {
	cp := *e
	cp.Fields = append([]string(nil), fields...)
	return &cp
}

var (
	ErrValidation    = &Error{Kind: KindValidation, Code: "validation", Message: "invalid input"}
	ErrMissingParams = &Error{Kind: KindValidation, Code: "missing_params", Message: "missing parameters"}

	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated, Code: "unauthenticated", Message: "missing credentials"}
	ErrInvalidCredential = &Error{Kind: KindUnauthenticated, Code: "invalid_credential", Message: "invalid credentials"}
	ErrForbidden         = &Error{Kind: KindForbidden, Code: "forbidden", Message: "forbidden"}

	ErrNotFound = &Error{Kind: KindNotFound, Code: "not_found", Message: "not found"}

	ErrConflict          = &Error{Kind: KindConflict, Code: "conflict", Message: "conflict"}
	ErrAlreadyRegistered = &Error{Kind: KindConflict, Code: "already_registered", Message: "user already registered"}
	ErrEmailTaken        = &Error{Kind: KindConflict, Code: "email_taken", Message: "email already in use"}
	ErrUsernameTaken     = &Error{Kind: KindConflict, Code: "username_taken", Message: "username already in use"}
	ErrDuplicateRequest  = &Error{Kind: KindConflict, Code: "duplicate_request", Message: "cash payment request already exists"}
	ErrInvalidReferral   = &Error{Kind: KindUnauthenticated, Code: "invalid_referral", Message: "invalid referral code"}

	ErrPaymentNotCompleted = &Error{Kind: KindPayment, Code: "payment_not_completed", Message: "payment not completed"}
	ErrPaymentMismatch     = &Error{Kind: KindPayment, Code: "payment_mismatch", Message: "payment does not match the expected charge"}
	ErrPaymentRequired     = &Error{Kind: KindPayment, Code: "payment_required", Message: "payment required"}

	ErrAllocationExhausted = &Error{Kind: KindInternal, Code: "allocation_exhausted", Message: "could not allocate a unique referral code"}
	ErrUpstream            = &Error{Kind: KindUpstream, Code: "upstream", Message: "upstream service failure"}
	ErrInternal            = &Error{Kind: KindInternal, Code: "internal", Message: "internal error"}
)
