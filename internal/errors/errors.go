package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password. The two cases must stay indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user row no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoChanges is returned when an update request carries no fields.
	ErrNoChanges = errors.New("no changes provided")
	// ErrPasswordMismatch is returned when a password confirmation pair disagrees.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidResetToken covers both unknown and expired reset tokens.
	ErrInvalidResetToken = errors.New("reset link is invalid or has expired")
	// ErrResetLinkUsed is returned when a reset token was already redeemed.
	ErrResetLinkUsed = errors.New("this reset link has already been used")
	// ErrProjectNotFound is returned when a project is missing or not owned by the caller.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTicketNotFound is returned when a ticket is missing or not owned by the caller.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrInvoiceNotFound is returned when an invoice is missing or not owned by the caller.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Response is the stable envelope for every API reply. Failures carry
// success=false and a human-readable message; nothing internal leaks out.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Fail builds a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// OK builds a success envelope with a payload.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage builds a success envelope with a message only.
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}

// HTTPError pairs a domain error with the status code it maps to.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become an
// opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrNoChanges),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrInvalidResetToken),
		errors.Is(err, ErrResetLinkUsed):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrTicketNotFound),
		errors.Is(err, ErrInvoiceNotFound):
		status = http.StatusNotFound
	default:
		return &HTTPError{StatusCode: status, Message: "internal server error"}
	}
	return &HTTPError{StatusCode: status, Message: err.Error()}
}
