package errors

// Search-engine helpers: map Elasticsearch HTTP statuses and transport
// failures onto project ErrorCodes so callers never branch on raw statuses

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// SearchErrorCode maps an engine response status to an ErrorCode
func SearchErrorCode(status int) ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return ErrorCodeNotFound
	case status == http.StatusBadRequest:
		return ErrorCodeInvalidArgument
	case status == http.StatusConflict:
		return ErrorCodeConflict
	case status == http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorCodeTimeout
	case status >= http.StatusInternalServerError:
		return ErrorCodeUnavailable
	default:
		return ErrorCodeSearch
	}
}

// FromSearchStatus builds an *Error for a non-2xx engine response
func FromSearchStatus(status int, msg string) error {
	return Newf(SearchErrorCode(status), "%s: engine status %d", msg, status)
}

// FromSearch wraps a transport-level engine error (connection refused, DNS,
// TLS, timeouts). If err is nil, returns nil
func FromSearch(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeTimeout, msg)
	}
	var nerr net.Error
	if stderrs.As(err, &nerr) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeSearch, msg)
}

// FromSearchf is the formatted variant of FromSearch
func FromSearchf(err error, format string, a ...any) error {
	return FromSearch(err, fmt.Sprintf(format, a...))
}

// IsTransientSearch reports whether the error looks like a transient engine
// condition worth retrying (node restarting, queue full, connection churn)
func IsTransientSearch(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeTooManyRequests, ErrorCodeTimeout:
		return true
	}

	var nerr net.Error
	if stderrs.As(Root(err), &nerr) {
		return true
	}

	s := strings.ToLower(Root(err).Error())
	switch {
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "connection reset"),
		strings.Contains(s, "no available connection"),
		strings.Contains(s, "i/o timeout"),
		strings.Contains(s, "eof"):
		return true
	default:
		return false
	}
}
