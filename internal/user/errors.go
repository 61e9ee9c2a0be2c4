package user

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserInactive       = errors.New("user is not active")
)

// AnonymousName is shown for videos whose owner cannot be resolved.
const AnonymousName = "Anonymous"
