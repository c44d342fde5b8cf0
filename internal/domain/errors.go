package domain

import "fmt"

// Kind classifies a domain failure. Adapters map kinds to user-facing
// responses; the core never formats those responses itself.
type Kind uint8

const (
	// KindAlreadyExists — a uniqueness constraint was violated.
	KindAlreadyExists Kind = iota + 1
	// KindNotFound — a referenced entity id does not exist.
	KindNotFound
	// KindEmpty — a required value was missing or blank.
	KindEmpty
	// KindUnauthorized — the caller lacks the required credential or role.
	KindUnauthorized
	// KindInvalid — a business rule or format check failed.
	KindInvalid
	// KindNonPositive — a numeric value that must be positive was not.
	KindNonPositive
	// KindDatabase — the underlying store reported a failure. The detail is
	// for logs only and must never be exposed verbatim to end users.
	KindDatabase
)

// DomainError is the single error type crossing entity, gateway and use-case
// boundaries. Reason carries the human-readable diagnostic for Invalid and
// Database kinds.
type DomainError struct {
	Kind   Kind
	Reason string
}

func (e *DomainError) Error() string {
	switch e.Kind {
	case KindAlreadyExists:
		return "already exists"
	case KindNotFound:
		return "not found"
	case KindEmpty:
		return "required value is empty"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalid:
		return fmt.Sprintf("invalid: %s", e.Reason)
	case KindNonPositive:
		return "value must be positive"
	case KindDatabase:
		return fmt.Sprintf("database error: %s", e.Reason)
	default:
		return "unknown domain error"
	}
}

// Is matches any DomainError of the same kind, so callers can test against
// the exported sentinels regardless of the attached reason.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks. Invalid and Database errors carry a reason,
// so they are produced through the constructors below instead.
var (
	ErrAlreadyExists = &DomainError{Kind: KindAlreadyExists}
	ErrNotFound      = &DomainError{Kind: KindNotFound}
	ErrEmpty         = &DomainError{Kind: KindEmpty}
	ErrUnauthorized  = &DomainError{Kind: KindUnauthorized}
	ErrInvalid       = &DomainError{Kind: KindInvalid}
	ErrNonPositive   = &DomainError{Kind: KindNonPositive}
	ErrDatabase      = &DomainError{Kind: KindDatabase}
)

// Invalid builds a business-rule violation with a diagnostic reason.
func Invalid(reason string) error {
	return &DomainError{Kind: KindInvalid, Reason: reason}
}

// Invalidf is Invalid with formatting.
func Invalidf(format string, args ...any) error {
	return &DomainError{Kind: KindInvalid, Reason: fmt.Sprintf(format, args...)}
}

// DatabaseError wraps a store-level failure. The detail stays in logs.
func DatabaseError(detail string) error {
	return &DomainError{Kind: KindDatabase, Reason: detail}
}
