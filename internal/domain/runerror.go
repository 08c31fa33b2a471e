package domain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
)

// NewRunError classifies a transport-level error into a RunError.
// The message is prefixed with "request error:" so that a failed check
// reports the cause uniformly regardless of the error kind.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	return &RunError{
		Kind:    classifyRunError(err),
		Message: fmt.Sprintf("request error: %v", err),
	}
}

func classifyRunError(err error) RunErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return RunErrorTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return RunErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return RunErrorDNS
	}

	var recErr tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &recErr) || errors.As(err, &certErr) {
		return RunErrorTLS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return RunErrorConn
	}

	// url.Error wraps most client failures; look one level deeper.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && urlErr.Err != err {
		return classifyRunError(urlErr.Err)
	}

	return RunErrorUnknown
}
