package domain

import "errors"

// Error kinds. The HTTP layer maps each kind to one status code.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRepository   = errors.New("repository error")
	ErrStorage      = errors.New("media storage error")
)

// Error is a user-facing failure: Msg is safe to show, Kind classifies it.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrProductNotFound    = &Error{Kind: ErrNotFound, Msg: "Product not found"}
	ErrCommentNotFound    = &Error{Kind: ErrNotFound, Msg: "Comment not found"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Msg: "User not found"}
	ErrNotOwner           = &Error{Kind: ErrForbidden, Msg: "Not authorized"}
	ErrOwnProductLike     = &Error{Kind: ErrForbidden, Msg: "You cannot like your own product"}
	ErrEmailTaken         = &Error{Kind: ErrConflict, Msg: "User already exists"}
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Msg: "Invalid credentials"}
	ErrUnsupportedImage   = &Error{Kind: ErrInvalidInput, Msg: "Only images are allowed"}
)

// InvalidInput builds a validation error with a custom message.
func InvalidInput(msg string) error {
	return &Error{Kind: ErrInvalidInput, Msg: msg}
}
