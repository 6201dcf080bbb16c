package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindBadRequest
	KindNotFound
	KindConflict
)

// Error is a handler failure that is surfaced to the caller as-is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

func BadRequest(format string, args ...interface{}) *Error {
	return newError(KindBadRequest, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf reports the kind of err, KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaiseUnauthorizedError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "authorization required", data)
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict", data)
}

// Respond writes the error envelope matching err's kind. Errors of unknown
// origin are logged and reported as internal.
func Respond(context *fiber.Ctx, log *zap.Logger, err error) error {
	var appErr *Error
	if !stderrors.As(err, &appErr) {
		if log != nil {
			log.Error("request failed",
				zap.String("method", context.Method()),
				zap.String("path", context.Path()),
				zap.Error(err))
		}
		return RaiseInternalServerError(context, "server side problem occured while handling the request")
	}

	switch appErr.Kind {
	case KindUnauthorized:
		return RaiseUnauthorizedError(context, appErr.Message)
	case KindForbidden:
		return RaisePermissionsError(context, appErr.Message)
	case KindBadRequest:
		return RaiseBadRequestError(context, appErr.Message)
	case KindNotFound:
		return RaiseNotFoundError(context, appErr.Message)
	case KindConflict:
		return RaiseConflictError(context, appErr.Message)
	default:
		return RaiseInternalServerError(context, appErr.Message)
	}
}
