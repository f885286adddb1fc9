package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The transport layer maps kinds to HTTP
// status codes; nothing in this package knows about HTTP.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindValidation covers malformed value object or entity construction input.
	KindValidation
	// KindNotFound means the referenced resource does not exist or was deleted.
	KindNotFound
	// KindConflict is a uniqueness violation (duplicate email, duplicate slug).
	KindConflict
	// KindPolicy is a business-rule rejection distinct from structural validation.
	KindPolicy
	// KindUnauthorized means the credential is missing, invalid, or not verifiable.
	KindUnauthorized
	// KindForbidden means the caller is authenticated but not permitted.
	KindForbidden
	// KindIntegrity signals an unexpected read-after-write miss; a server-side
	// defect, not user-correctable.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPolicy:
		return "policy"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindIntegrity:
		return "integrity"
	}
	return "unknown"
}

// Error is a typed domain failure raised by use cases and guards.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func Validation(msg string) *Error   { return New(KindValidation, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Conflict(msg string) *Error     { return New(KindConflict, msg) }
func Policy(msg string) *Error       { return New(KindPolicy, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(KindForbidden, msg) }
func Integrity(msg string) *Error    { return New(KindIntegrity, msg) }

// KindOf extracts the Kind from err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsPolicy(err error) bool       { return KindOf(err) == KindPolicy }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsForbidden(err error) bool    { return KindOf(err) == KindForbidden }
func IsIntegrity(err error) bool    { return KindOf(err) == KindIntegrity }
