package subscribers

import "errors"

// Error kinds returned by the service.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("subscriber not found")
	ErrStore      = errors.New("record store failure")
)

// Repository errors.
var (
	ErrInvalidID = errors.New("invalid subscriber id")
)

// Caller-facing messages.
const (
	msgRequiredFields = "Name and subscribedChannel are required"
	msgNotFound       = "Subscriber not found"
	msgListNames      = "Error retrieving subscriber names"
	msgList           = "Error retrieving subscribers"
	msgGet            = "Error retrieving subscriber"
	msgCreate         = "Error creating subscriber"
)

// Error is returned by every Service operation that fails.
// It matches its Kind and its underlying cause with errors.Is.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// PublicMessage returns the message safe to show to API callers.
func (e *Error) PublicMessage() string {
	return e.Message
}

// Cause returns the underlying error, if any.
func (e *Error) Cause() error {
	return e.Err
}

func validationError() error {
	return &Error{Kind: ErrValidation, Message: msgRequiredFields}
}

func notFoundError() error {
	return &Error{Kind: ErrNotFound, Message: msgNotFound}
}

func storeError(message string, err error) error {
	return &Error{Kind: ErrStore, Message: message, Err: err}
}
