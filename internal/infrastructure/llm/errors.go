package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"oficina_assistant/internal/usecase/interfaces"
)

type ErrorKind string

const (
	ErrorKindNotConfigured ErrorKind = "not_configured"
	ErrorKindAuth          ErrorKind = "auth"
	ErrorKindQuota         ErrorKind = "quota"
	ErrorKindTimeout       ErrorKind = "timeout"
	ErrorKindUnknown       ErrorKind = "unknown"
)

// Error is a classified completion failure. It matches the interfaces
// ErrCompletion* sentinels with errors.Is.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s HTTP %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case ErrorKindNotConfigured:
		return target == interfaces.ErrCompletionNotConfigured
	case ErrorKindAuth:
		return target == interfaces.ErrCompletionUnauthorized
	case ErrorKindQuota:
		return target == interfaces.ErrCompletionQuota
	case ErrorKindTimeout:
		return target == interfaces.ErrCompletionTimeout
	}
	return false
}

// ClassifyError maps go-openai and transport errors to an *Error.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	kind := ErrorKindUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrorKindAuth
	case status == http.StatusTooManyRequests:
		kind = ErrorKindQuota
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrorKindTimeout
	}
	return &Error{Kind: kind, StatusCode: status, Cause: err}
}
