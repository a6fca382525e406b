package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidScenario     = NewDomainError("INVALID_SCENARIO", "Payment request does not match any allocation scenario")
	ErrNothingToCharge     = NewDomainError("NOTHING_TO_CHARGE", "No outstanding balance to charge")
)

// IsNotFound reports whether err is the NOT_FOUND domain error
func IsNotFound(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == "NOT_FOUND"
}

// IsCode reports whether err is a DomainError carrying the given code
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
