package netquality

import (
	"fmt"

	"vpnbench/internal/execx"
)

// Measure invokes the external measurement command and returns its
// combined output. A non-zero exit is not treated as a failure when the
// command produced text: networkQuality prints diagnostics on partial
// runs and those still carry parseable metrics. Only a command that
// produced no output at all (typically a spawn failure) is an error.
func Measure(r execx.Runner, command []string) (string, error) {
	if len(command) == 0 {
		return "", fmt.Errorf("measurement command is empty")
	}
	out, err := r.CombinedOutput(command[0], command[1:]...)
	if err != nil && out == "" {
		return "", fmt.Errorf("run %s: %w", command[0], err)
	}
	return out, nil
}
