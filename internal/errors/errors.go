package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// ConflictError reports a precondition on existing state that the request
// cannot satisfy, e.g. a user without a default shipping address.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// InsufficientStockError carries enough detail for the caller to decide
// whether a retry with a smaller quantity makes sense.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func NewInsufficientStockError(productID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func IsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	if ise, ok := err.(*InsufficientStockError); ok {
		return ise, true
	}
	return nil, false
}

type PaymentFailureReason string

const (
	PaymentRejected    PaymentFailureReason = "REJECTED"
	PaymentUnavailable PaymentFailureReason = "UNAVAILABLE"
)

// PaymentError is terminal for the current checkout attempt. OrderID is set
// once the order row has been persisted so the caller can resume payment
// without re-reserving stock.
type PaymentError struct {
	OrderID uint
	Reason  PaymentFailureReason
	Cause   error
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payment %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("payment %s", e.Reason)
}

func (e *PaymentError) Unwrap() error {
	return e.Cause
}

func NewPaymentError(reason PaymentFailureReason, cause error) *PaymentError {
	return &PaymentError{Reason: reason, Cause: cause}
}

func IsPaymentError(err error) (*PaymentError, bool) {
	if pe, ok := err.(*PaymentError); ok {
		return pe, true
	}
	return nil, false
}

type InvalidStatusError struct {
	From string
	To   string
}

func (e *InvalidStatusError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("unknown order status %q", e.To)
	}
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func NewInvalidStatusError(from, to string) *InvalidStatusError {
	return &InvalidStatusError{From: from, To: to}
}

func IsInvalidStatusError(err error) (*InvalidStatusError, bool) {
	if ise, ok := err.(*InvalidStatusError); ok {
		return ise, true
	}
	return nil, false
}

type ConcurrentModificationError struct {
	Message string
}

func (e *ConcurrentModificationError) Error() string {
	return e.Message
}

func NewConcurrentModificationError(message string) *ConcurrentModificationError {
	return &ConcurrentModificationError{Message: message}
}

func IsConcurrentModificationError(err error) (*ConcurrentModificationError, bool) {
	if cme, ok := err.(*ConcurrentModificationError); ok {
		return cme, true
	}
	return nil, false
}

// UnavailableError wraps a transport failure (including timeouts) from any
// remote collaborator.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

func NewUnavailableError(message string, cause error) *UnavailableError {
	return &UnavailableError{Message: message, Cause: cause}
}

func IsUnavailableError(err error) (*UnavailableError, bool) {
	if ue, ok := err.(*UnavailableError); ok {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
