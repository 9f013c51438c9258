// Package domainerrors defines the gateway's normalized error taxonomy.
// Every failure surfaced to a client is reduced to one of these errors; the
// HTTP transport layer owns the single place where they are rendered.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a normalized error independently of HTTP.
type Code string

const (
	CodeBadRequest      Code = "bad_request"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodePayloadTooLarge Code = "payload_too_large"
	CodeBadGateway      Code = "bad_gateway"
	CodeGatewayTimeout  Code = "gateway_timeout"
	CodeInternal        Code = "internal_error"
)

// Error is the gateway's uniform failure shape. Message is safe for clients:
// it never carries stack traces or internal addresses. Origin names the
// downstream service the failure came from, when there is one. Status, when
// non-zero, overrides the code-to-status mapping so downstream rejections
// pass through with their exact status code.
type Error struct {
	Code    Code
	Message string
	Origin  string
	Status  int
}

func (e *Error) Error() string {
	if e.Origin != "" {
		return e.Origin + ": " + e.Message
	}
	return e.Message
}

// New builds a normalized error with no origin service.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewFrom builds a normalized error tagged with the downstream service it
// originated from.
func NewFrom(code Code, message, origin string) *Error {
	return &Error{Code: code, Message: message, Origin: origin}
}

// FromStatus translates a downstream HTTP status into a normalized error
// that preserves the status exactly on the way back out.
func FromStatus(status int, message, origin string) *Error {
	return &Error{Code: codeForStatus(status), Message: message, Origin: origin, Status: status}
}

func codeForStatus(status int) Code {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusRequestEntityTooLarge:
		return CodePayloadTooLarge
	case status >= 400 && status < 500:
		return CodeBadRequest
	case status == http.StatusGatewayTimeout:
		return CodeGatewayTimeout
	case status == http.StatusBadGateway:
		return CodeBadGateway
	default:
		return CodeInternal
	}
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeBadGateway:
		return http.StatusBadGateway
	case CodeGatewayTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// HTTPStatus resolves the status an error should be rendered with. The
// explicit Status on a pass-through error wins over the code mapping.
// Non-normalized errors render as 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Status != 0 {
		return e.Status
	}
	return ToHTTPStatus(e.Code)
}

// As unwraps err into a normalized *Error when it is one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
