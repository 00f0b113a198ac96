package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"NavSentinel/internal/model"
)

// Fetcher retrieves the fund status document.
type Fetcher interface {
	FetchStatus(ctx context.Context) (*model.Status, error)
	Name() string
}

// Short diagnostic codes carried by FetchError.
const (
	CodeTimeout    = "ETIMEDOUT"
	CodeRefused    = "ECONNREFUSED"
	CodeReset      = "ECONNRESET"
	CodeNotFound   = "ENOTFOUND"
	CodeParse      = "EPARSE"
	CodeNetwork    = "ENETWORK"
	codeHTTPPrefix = "HTTP_"
)

// FetchError is a transient failure to retrieve or parse the status.
type FetchError struct {
	Code string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// networkError wraps a transport failure with the closest diagnostic code.
func networkError(err error) *FetchError {
	var (
		netErr net.Error
		dnsErr *net.DNSError
	)
	code := CodeNetwork
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		code = CodeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		code = CodeRefused
	case errors.Is(err, syscall.ECONNRESET):
		code = CodeReset
	case errors.As(err, &dnsErr):
		code = CodeNotFound
	}
	return &FetchError{Code: code, Err: err}
}

func parseError(err error) *FetchError {
	return &FetchError{Code: CodeParse, Err: err}
}
