package model

import "errors"

// Failure classes shared across handlers. Local validation problems never
// reach the payment processor; processor-side failures keep the order pending.
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderNotPending        = errors.New("order is not pending")
	ErrOrgNotConfigured       = errors.New("organization has no payment processor configured")
	ErrProcessorUnavailable   = errors.New("payment processor unavailable")
	ErrHashMismatch           = errors.New("response hash does not match payment session")
	ErrPaymentNotApproved     = errors.New("transaction was not approved")
	ErrInvalidStateTransition = errors.New("invalid order state transition")
)

// ValidationError marks bad monetary or quantity input caught before any
// external call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a local input validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
