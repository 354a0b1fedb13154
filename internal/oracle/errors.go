package oracle

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrMalformedResponse = errors.New("oracle: malformed response")
	ErrInvalidBaseURL    = errors.New("oracle: invalid base url")
)

// StatusError 后端返回非 2xx
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("oracle %s: unexpected status %d: %s", e.Endpoint, e.Code, e.Body)
}

// IsTimeout 判断是否为超时（包括 context 超时与网络层超时）
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "http_error"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case IsTimeout(err):
		return "timeout"
	default:
		return "network"
	}
}
