package app

import "errors"

// Sentinel errors returned by the services. Handlers match them with
// errors.Is and translate them into the response envelope; nothing below the
// transport layer writes HTTP status codes.
var (
	// ErrWeakCredential rejects passwords shorter than the minimum length.
	ErrWeakCredential = errors.New("password must be at least 8 characters")

	// ErrDuplicateIdentity rejects an email already held by another account.
	ErrDuplicateIdentity = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately without saying which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means no valid session accompanies the request.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound means the requested user record does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrUnsupportedFileType rejects uploads outside the allowed image set.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
