package rsiapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind categorizes a failed dataset fetch. It doubles as the metrics label.
type Kind string

const (
	KindNetwork  Kind = "network"
	KindTimeout  Kind = "timeout"
	KindCanceled Kind = "canceled"
	KindClient   Kind = "client"
	KindServer   Kind = "server"
	KindDecode   Kind = "decode"
)

// FetchError describes why the RSI dataset could not be fetched.
type FetchError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("rsi fetch %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("rsi fetch %s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("rsi fetch %s error: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of a fetch error, or "" when err is not one.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// classifyTransport maps an error returned before any response was read.
func classifyTransport(err error) *FetchError {
	switch {
	case errors.Is(err, context.Canceled):
		return &FetchError{Kind: KindCanceled, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Kind: KindTimeout, Message: "request timed out", Cause: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &FetchError{Kind: KindTimeout, Message: "request timed out", Cause: err}
	}
	return &FetchError{Kind: KindNetwork, Message: "network request failed", Cause: err}
}

// classifyStatus maps a non-2xx HTTP status.
func classifyStatus(status int) *FetchError {
	if status >= http.StatusInternalServerError {
		return &FetchError{Kind: KindServer, StatusCode: status, Message: "server returned an error"}
	}
	return &FetchError{Kind: KindClient, StatusCode: status, Message: http.StatusText(status)}
}
