package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Messages returned to callers
const (
	MsgMissingPostID   = "The function must be called with a 'postId'."
	MsgUpdateFailed    = "Failed to update view count."
	MsgInvalidBody     = "Request body must be a JSON object."
	MsgTooManyRequests = "Too many requests, please retry later."
)

// CallableError is a failure reported to a remote caller.
// Code is the remote-call status; Cause is kept server-side only.
type CallableError struct {
	Code    codes.Code
	Message string
	Cause   error
}

func (e *CallableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CallableError) Unwrap() error {
	return e.Cause
}

// GRPCStatus lets status.FromError and status.Code read the code and message
func (e *CallableError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Message)
}

// InvalidArgument creates a client error
func InvalidArgument(message string) *CallableError {
	return &CallableError{Code: codes.InvalidArgument, Message: message}
}

// Internal creates an opaque infrastructure error that keeps cause for logging
func Internal(message string, cause error) *CallableError {
	return &CallableError{Code: codes.Internal, Message: message, Cause: cause}
}

// CodeOf extracts the status code of err, defaulting to Internal
func CodeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var ce *CallableError
	if errors.As(err, &ce) {
		return ce.Code
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Internal
}

// ErrorBody is the inner object of the callable error envelope
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorEnvelope is the callable-protocol error response
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// statusNames maps codes to the callable-protocol status strings
var statusNames = map[codes.Code]string{
	codes.InvalidArgument:   "INVALID_ARGUMENT",
	codes.Internal:          "INTERNAL",
	codes.ResourceExhausted: "RESOURCE_EXHAUSTED",
	codes.NotFound:          "NOT_FOUND",
	codes.Unavailable:       "UNAVAILABLE",
}

// httpStatuses maps codes to HTTP statuses
var httpStatuses = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Internal:          http.StatusInternalServerError,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.NotFound:          http.StatusNotFound,
	codes.Unavailable:       http.StatusServiceUnavailable,
}

// StatusName returns the envelope status string for code
func StatusName(code codes.Code) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return "INTERNAL"
}

// HTTPStatus returns the HTTP status for code
func HTTPStatus(code codes.Code) int {
	if s, ok := httpStatuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// NewEnvelope builds the envelope for err. Only the public message is exposed.
func NewEnvelope(err error) (int, ErrorEnvelope) {
	code := CodeOf(err)
	message := MsgUpdateFailed
	var ce *CallableError
	if errors.As(err, &ce) {
		message = ce.Message
	} else if s, ok := status.FromError(err); ok && code != codes.Internal {
		message = s.Message()
	}
	return HTTPStatus(code), ErrorEnvelope{Error: ErrorBody{Status: StatusName(code), Message: message}}
}

// HandleCallableError writes the envelope for err
func HandleCallableError(c *fiber.Ctx, err error) error {
	httpStatus, envelope := NewEnvelope(err)
	return c.Status(httpStatus).JSON(envelope)
}

// ToStatus converts err to a gRPC status error
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var ce *CallableError
	if errors.As(err, &ce) {
		return status.Error(ce.Code, ce.Message)
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, MsgUpdateFailed)
}
