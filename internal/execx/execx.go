package execx

import (
	"bytes"
	"os/exec"
)

// Runner abstracts command execution so packages can be unit-tested
// without invoking the real measurement tool.
type Runner interface {
	// CombinedOutput runs the command and returns its combined
	// stdout/stderr text. The captured text is returned even when the
	// command exits non-zero, alongside the error.
	CombinedOutput(name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}

// OSRunner executes commands on the host via os/exec.
type OSRunner struct{}

func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) CombinedOutput(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}

func (r *OSRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
