// Package openssl wraps the external openssl binary.
//
// certops never parses DER itself: chain capture and field extraction
// are delegated to openssl, and this package owns the two invocations
// (s_client for live endpoints, x509 for per-certificate dumps). The
// executor is injectable so command-level behavior can be tested
// without openssl installed.
package openssl

import (
	"strings"

	certerrors "github.com/tk-ops/certops/internal/errors"
	"github.com/tk-ops/certops/internal/executor"
	"github.com/tk-ops/certops/internal/logger"
	"github.com/tk-ops/certops/internal/pemsplit"
)

// cmdExecutor is the command executor (can be replaced for testing)
var cmdExecutor executor.CommandExecutor = executor.NewSystemExecutor()

// binary is the openssl executable name, overridable via config for
// appliances that ship a vendored build.
var binary = "openssl"

// SetExecutor allows tests to inject a mock executor
func SetExecutor(exec executor.CommandExecutor) {
	cmdExecutor = exec
}

// ResetExecutor resets the executor to the default system executor
func ResetExecutor() {
	cmdExecutor = executor.NewSystemExecutor()
}

// SetBinary overrides the openssl executable name.
func SetBinary(name string) {
	if name != "" {
		binary = name
	}
}

// Binary returns the configured openssl executable name.
func Binary() string {
	return binary
}

// IsInstalled checks if openssl is on PATH
func IsInstalled() bool {
	_, err := cmdExecutor.LookPath(binary)
	return err == nil
}

// Version returns the openssl version line, e.g. "OpenSSL 3.0.13 30 Jan 2024".
func Version() (string, error) {
	out, errOut, err := cmdExecutor.Run(nil, binary, "version")
	if err != nil {
		return "", certerrors.Tool(binary+" version", strings.TrimSpace(string(errOut)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CaptureChain connects to host:port and returns the raw s_client
// output, certificate chain included. A "Q" on stdin closes the
// connection once the handshake completes.
//
// s_client can exit non-zero when the peer tears the connection down
// during the close; if certificate material was captured anyway the
// exit status is logged and ignored. A non-zero exit with nothing
// captured is a source failure carrying the tool's stderr.
func CaptureChain(host, port string) (string, error) {
	addr := host + ":" + port
	args := []string{
		"s_client",
		"-connect", addr,
		"-servername", host,
		"-showcerts",
	}

	out, errOut, err := cmdExecutor.Run(strings.NewReader("Q\n"), binary, args...)
	if err != nil {
		if !strings.Contains(string(out), pemsplit.BeginMarker) {
			return "", certerrors.Source(addr, strings.TrimSpace(string(errOut)), err)
		}
		logger.Warn("s_client exited non-zero after capturing chain from %s: %v", addr, err)
	}
	return string(out), nil
}

// DumpFields feeds one PEM block to openssl x509 and returns the
// textual field dump parsed by the inspect package.
func DumpFields(block pemsplit.Block) (string, error) {
	args := []string{
		"x509",
		"-noout",
		"-dates",
		"-subject",
		"-subject_hash",
		"-ext", "subjectAltName",
		"-issuer",
		"-issuer_hash",
	}

	out, errOut, err := cmdExecutor.Run(strings.NewReader(string(block)), binary, args...)
	if err != nil {
		return "", certerrors.Tool(binary+" x509", strings.TrimSpace(string(errOut)), err)
	}
	return string(out), nil
}
