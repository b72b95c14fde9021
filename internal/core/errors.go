// AngelaMos | 2026
// errors.go

package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrNoEffect       = errors.New("no rows affected")
	ErrInsertFailed   = errors.New("insert reported no rows")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrInfrastructure = errors.New("infrastructure fault")
	ErrLockOrder      = errors.New("lock order violation")
)

// AppError is a caller-facing error: it carries the status code and the
// message that ends up in the response envelope.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(
	err error,
	message string,
	statusCode int,
	code string,
) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func BadRequestError(message string, cause error) *AppError {
	return NewAppError(cause, message, http.StatusBadRequest, "BAD_REQUEST")
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound, "NOT_FOUND")
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrConflict, message, http.StatusConflict, "CONFLICT")
}

// NoEffectError reports a mutation that matched its target but changed
// nothing.
func NoEffectError(message string) *AppError {
	return NewAppError(ErrNoEffect, message, http.StatusBadRequest, "NO_EFFECT")
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"token has expired",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}

func TokenRevokedError() *AppError {
	return NewAppError(
		ErrTokenRevoked,
		"token has been revoked",
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"invalid token",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func InternalError(cause error) *AppError {
	return NewAppError(
		cause,
		"internal server error",
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
	)
}

// Fault records an infrastructure failure with its operation tag and
// category, then hides it behind the generic internal error.
func Fault(ctx context.Context, op, category string, err error) error {
	event := zerolog.Ctx(ctx).Error().
		Err(err).
		Str("op", op).
		Str("category", category)
	if traceID := TraceID(ctx); traceID != "" {
		event = event.Str("trace_id", traceID)
	}
	event.Msg("infrastructure fault")
	RecordFault(ctx, op, err)

	return InternalError(
		errors.Join(ErrInfrastructure, fmt.Errorf("%s: %w", op, err)),
	)
}

// Surface passes caller-correctable errors through untouched and turns
// everything else into a logged Fault.
func Surface(ctx context.Context, op, category string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok &&
		appErr.StatusCode < http.StatusInternalServerError {
		return appErr
	}
	return Fault(ctx, op, category, err)
}
