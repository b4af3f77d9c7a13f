package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/buger/jsonparser"
)

// Sentinels for errors.Is against *Error.
var (
	ErrNetwork      = errors.New("network failure")
	ErrUnauthorized = errors.New("authentication failed")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrRejected     = errors.New("request rejected")
	ErrServer       = errors.New("server error")
)

type Kind int

const (
	KindNetwork Kind = iota
	KindUnauthorized
	KindValidation
	KindNotFound
	KindRejected
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRejected:
		return "rejected"
	default:
		return "server"
	}
}

// Error is a failed request: either a transport failure (StatusCode 0, Err
// set) or a non-2xx response (StatusCode and Body set).
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ResponseBody exposes the raw error body for message extraction.
func (e *Error) ResponseBody() []byte {
	return e.Body
}

// Message is the top-level "message" string of the error body, if any.
func (e *Error) Message() string {
	msg, err := jsonparser.GetString(e.Body, "message")
	if err != nil {
		return ""
	}
	return msg
}

func (e *Error) Kind() Kind {
	switch {
	case e.StatusCode == 0:
		return KindNetwork
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return KindUnauthorized
	case e.StatusCode == http.StatusBadRequest:
		return KindValidation
	case e.StatusCode == http.StatusNotFound:
		return KindNotFound
	case e.StatusCode < 500:
		return KindRejected
	default:
		return KindServer
	}
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind() == KindNetwork
	case ErrUnauthorized:
		return e.Kind() == KindUnauthorized
	case ErrValidation:
		return e.Kind() == KindValidation
	case ErrNotFound:
		return e.Kind() == KindNotFound
	case ErrRejected:
		return e.Kind() == KindRejected
	case ErrServer:
		return e.Kind() == KindServer
	}
	return false
}

// StatusCode returns the HTTP status of err, or 0 when err is not a response
// error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
