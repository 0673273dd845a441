package provider

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"sumarena/internal/domain"
)

// classifyTransportError maps client-side call failures to an ErrorKind.
// Backend-reported HTTP statuses are classified by the adapters themselves.
func classifyTransportError(err error) (domain.ErrorKind, string) {
	if err == nil {
		return domain.ErrorBackend, ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorTimeout, "request deadline exceeded"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrorTimeout, "request deadline exceeded"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.ErrorUnreachable, urlErr.Error()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return domain.ErrorUnreachable, opErr.Error()
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") {
		return domain.ErrorUnreachable, msg
	}

	return domain.ErrorBackend, msg
}

// classifyStatusCode maps a backend-reported HTTP status to an ErrorKind.
func classifyStatusCode(statusCode int) domain.ErrorKind {
	switch {
	case statusCode == 401 || statusCode == 403:
		return domain.ErrorUnauthorized
	case statusCode == 429:
		return domain.ErrorRateLimited
	case statusCode == 408 || statusCode == 504:
		return domain.ErrorTimeout
	case statusCode == 502 || statusCode == 503:
		return domain.ErrorUnreachable
	default:
		return domain.ErrorBackend
	}
}
