// Package executor runs external commands for the certops CLI tool.
//
// Every certificate inspected means one short-lived child process, with
// a PEM block written to its stdin and two output pipes to drain. The
// stdout and stderr pipes are read concurrently while waiting for exit:
// reading one pipe to exhaustion before starting the other deadlocks as
// soon as the child fills the unread pipe's buffer.
package executor

import (
	"bytes"
	"io"
	"os/exec"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Run executes a command, feeding stdin (may be nil) to the child
	// and returning its stdout and stderr separately.
	Run(stdin io.Reader, name string, args ...string) (stdout, stderr []byte, err error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Run executes a command with separate stdout/stderr capture.
// Both pipes are drained concurrently while waiting for the child to
// exit, so a chatty child can never block on a full pipe buffer.
func (e *SystemExecutor) Run(stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.Command(name, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	// exec.Cmd copies each pipe to its writer from a dedicated
	// goroutine, so both channels drain independently.
	err := cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	RunFunc      func(stdin io.Reader, name string, args ...string) ([]byte, []byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name  string
	Args  []string
	Stdin []byte
}

// Run calls the mock function
func (m *MockExecutor) Run(stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	call := CommandCall{Name: name, Args: args}
	if stdin != nil {
		call.Stdin, _ = io.ReadAll(stdin)
		stdin = bytes.NewReader(call.Stdin)
	}
	m.Calls = append(m.Calls, call)
	if m.RunFunc != nil {
		return m.RunFunc(stdin, name, args...)
	}
	return []byte(""), []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}
