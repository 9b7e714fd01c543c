// Package source provides the two certificate origins the pipeline can
// read from: a local PEM file or a live TLS endpoint. Both yield the
// same raw text stream, so the pipeline never knows which one it got.
package source

import (
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	certerrors "github.com/tk-ops/certops/internal/errors"
	"github.com/tk-ops/certops/internal/logger"
	"github.com/tk-ops/certops/internal/openssl"
)

// DefaultPort is used when a server address carries no port.
const DefaultPort = "443"

// Source produces a raw certificate text stream.
type Source interface {
	// Open returns the stream. Callers own the close.
	Open() (io.ReadCloser, error)

	// Name identifies the origin in errors and logs.
	Name() string
}

// FileSource reads certificates from a local PEM file.
type FileSource struct {
	Path string
}

// NewFileSource creates a source over a local file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.Path
}

// Open opens the file for reading. A missing or unreadable path is a
// source failure for the whole run.
func (s *FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, certerrors.Source(s.Path, "", err)
	}
	return f, nil
}

// RemoteSource captures the certificate chain presented by a live TLS
// endpoint via openssl s_client.
type RemoteSource struct {
	Host string
	Port string

	// retries is the number of additional capture attempts after a
	// failure. Endpoint flaps during rotation windows are common
	// enough that a couple of retries beat an immediate abort.
	retries uint64
}

// NewRemoteSource creates a source over a host[:port] address.
// The port defaults to 443 when absent.
func NewRemoteSource(addr string) (*RemoteSource, error) {
	host, port, err := splitAddr(addr)
	if err != nil {
		return nil, err
	}
	return &RemoteSource{Host: host, Port: port, retries: 2}, nil
}

// Name returns the host:port address.
func (s *RemoteSource) Name() string {
	return s.Host + ":" + s.Port
}

// Open performs the chain capture, retrying transient failures with
// exponential backoff. The captured text is buffered in memory; the
// returned stream replays it for the splitter.
func (s *RemoteSource) Open() (io.ReadCloser, error) {
	var captured string

	attempt := 0
	capture := func() error {
		attempt++
		out, err := openssl.CaptureChain(s.Host, s.Port)
		if err != nil {
			if uint64(attempt) <= s.retries {
				logger.Warn("capture attempt %d for %s failed, retrying: %v", attempt, s.Name(), err)
			}
			return err
		}
		captured = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	if err := backoff.Retry(capture, backoff.WithMaxRetries(bo, s.retries)); err != nil {
		return nil, err
	}

	return io.NopCloser(strings.NewReader(captured)), nil
}

// splitAddr splits host[:port], defaulting the port to 443. A bare
// IPv6 address is treated as a host with the default port.
func splitAddr(addr string) (host, port string, err error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", "", certerrors.Config("server address is empty")
	}

	host, port, splitErr := net.SplitHostPort(addr)
	if splitErr != nil {
		return addr, DefaultPort, nil
	}
	if host == "" {
		return "", "", certerrors.Config("server address has no host: " + addr)
	}
	if port == "" {
		port = DefaultPort
	}
	return host, port, nil
}
