package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ListFetchFailure: the provider could not be reached or its body could not be read.
	ErrListFetch = errors.New("proxy list fetch failed")
	// NoProxyAvailable: the rotator holds an empty list.
	ErrNoProxy = errors.New("no proxy available")
	// ProxyRequestFailure: the proxied request itself failed.
	ErrProxyRequest = errors.New("proxy request failed")

	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrDB              = errors.New("database error")
	ErrJournalDisabled = errors.New("journal disabled")
)

func Wrap(err error, msg string) error {
	return fmt.Errorf("%w: %s", err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
