// Package apperrors defines the error taxonomy shared by request handlers.
//
// Every failure a handler can report is classified by a Kind, which decides the
// HTTP status and whether the message may be shown to the user.
//
//	if err := svc.Login(ctx, name, password); err != nil {
//		status, msg := apperrors.StatusOf(err), apperrors.MessageOf(err)
//	}
package apperrors

import (
	"context"
	"errors"
	"net/http"

	"github.com/mrlokans/bookreviews/internal/database"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindStoreFailure
	KindMetadataUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindStoreFailure:
		return "store_failure"
	case KindMetadataUnavailable:
		return "metadata_unavailable"
	default:
		return "internal"
	}
}

// Status maps a kind to its HTTP status code.
// MetadataUnavailable never reaches a response on its own, it maps to 502 for completeness.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindStoreFailure:
		return http.StatusServiceUnavailable
	case KindMetadataUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure with a message safe to show to users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinels for the authentication flow.
var (
	ErrUsernameTaken   = &Error{Kind: KindValidation, Message: "Username already taken"}
	ErrNoSuchUser      = &Error{Kind: KindValidation, Message: "No such user with this username"}
	ErrInvalidPassword = &Error{Kind: KindValidation, Message: "Invalid password"}
	ErrAlreadyReviewed = &Error{Kind: KindValidation, Message: "You have already reviewed this book"}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
)

const (
	storeFailureMessage = "Database error"
	internalMessage     = "Internal server error"
)

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func StoreFailure(err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: storeFailureMessage, Err: err}
}

func MetadataUnavailable(err error) *Error {
	return &Error{Kind: KindMetadataUnavailable, Message: "External metadata unavailable", Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Err: err}
}

// KindOf classifies err. Unclassified store errors and deadline overruns count as store failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	var storeErr *database.StoreError
	if errors.As(err, &storeErr) || errors.Is(err, context.DeadlineExceeded) {
		return KindStoreFailure
	}
	return KindInternal
}

func StatusOf(err error) int {
	return KindOf(err).Status()
}

// MessageOf returns the text a user may see for err.
// Store and internal failures never leak the underlying error.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindStoreFailure:
			return storeFailureMessage
		case KindInternal:
			return internalMessage
		}
		return appErr.Message
	}
	if KindOf(err) == KindStoreFailure {
		return storeFailureMessage
	}
	return internalMessage
}
