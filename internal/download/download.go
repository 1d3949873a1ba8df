// Package download streams release assets from an HTTP URL into a file.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// ErrNetwork matches every transport-level or HTTP status failure.
var ErrNetwork = errors.New("network failure")

// NetworkError describes a failed GET. It matches ErrNetwork with errors.Is.
type NetworkError struct {
	URL string
	// StatusCode is zero when the request never got a response.
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("downloading %s: unexpected status %d %s",
			e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Fetcher downloads url into the file at dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// HTTPClient is the subset of *http.Client the sink needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sink is the HTTP-backed Fetcher.
type Sink struct {
	client HTTPClient
	logger zerolog.Logger
}

// Option configures a Sink.
type Option func(*Sink)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(client HTTPClient) Option {
	return func(s *Sink) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets the logger used for per-download diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// NewSink returns a Sink using http.DefaultClient, which has no timeout.
func NewSink(opts ...Option) *Sink {
	s := &Sink{
		client: http.DefaultClient,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch performs a GET on url and streams the body into dest, creating or
// truncating it. The parent directory of dest must already exist.
//
// Transport and status failures are returned as *NetworkError; filesystem
// failures keep their native error so fs.ErrPermission and fs.ErrNotExist
// remain detectable.
func (s *Sink) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}

	s.logger.Debug().
		Str("operation", "fetch").
		Str("url", url).
		Str("dest", dest).
		Msg("downloading asset")

	resp, err := s.client.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	file, err := os.Create(dest)
	if err != nil {
		return err
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		var pathErr *os.PathError
		if errors.As(copyErr, &pathErr) {
			return copyErr
		}
		return &NetworkError{URL: url, Err: copyErr}
	}
	if closeErr != nil {
		return closeErr
	}

	s.logger.Debug().
		Str("operation", "fetch").
		Str("dest", dest).
		Int64("bytes", written).
		Msg("asset downloaded")

	return nil
}
