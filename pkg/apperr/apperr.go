// Package apperr is the error taxonomy shared by all four services. Service
// code returns *Error values (or wraps them with %w); handlers hand whatever
// they got to Respond, which maps the kind to an HTTP status and writes the
// uniform error envelope. Unknown errors never leak internals to the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	Internal Kind = iota
	Unauthenticated
	Unauthorized
	NotFound
	InvalidInput
	Conflict
	InsufficientStock
	RemoteUnavailable
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, unwrapping as needed. Errors that are not
// *Error are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is lets callers test kinds with errors.Is against a bare kind sentinel,
// e.g. errors.Is(err, apperr.New(apperr.NotFound, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func httpStatus(kind Kind) int {
	switch kind {
	case Unauthenticated, Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case InvalidInput, Conflict, InsufficientStock:
		return http.StatusBadRequest
	case RemoteUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// envelope matches the error body every service returns at its boundary.
type envelope struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}

// Respond writes the error envelope for err and aborts the request. Internal
// faults get a generic message; the real error stays in the logs.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	message := err.Error()
	if kind == Internal {
		message = http.StatusText(http.StatusInternalServerError)
	}
	c.AbortWithStatusJSON(httpStatus(kind), envelope{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Details:   c.Request.URL.Path,
	})
}
