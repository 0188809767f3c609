package service

import (
	"errors"
)

var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrConflict            = errors.New("conflict")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrSelfActionForbidden = errors.New("self action forbidden")
	ErrConflictDetected    = errors.New("concurrent modification detected")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// DetailError pairs a sentinel with the message shown to the client.
type DetailError struct {
	Kind   error
	Detail string
}

func (e *DetailError) Error() string {
	return e.Kind.Error() + ": " + e.Detail
}

func (e *DetailError) Unwrap() error {
	return e.Kind
}

func withDetail(kind error, detail string) error {
	return &DetailError{Kind: kind, Detail: detail}
}

const (
	msgSignupConflict     = "User with email or username provided exists already."
	msgInvalidCredentials = "User with such credentials does not exist"
	msgSelfFollow         = "You can't follow your channels"

	msgChannelNotFound = "Channel not found"
	msgPostNotFound    = "Post not found"
	msgCommentNotFound = "Comment not found"
	msgUserNotFound    = "User not found"
)
