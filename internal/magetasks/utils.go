package magetasks

import (
	"errors"
	"os/exec"
	"strings"
)

// toolMissing reports whether err means an optional lint tool is not
// installed. sh.RunV formats the exec error with %v, so the sentinel is
// lost and only its text remains.
func toolMissing(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	if strings.Contains(msg, exec.ErrNotFound.Error()) {
		return true
	}
	// A tool given by path, like ./bin/golangci-lint, fails in fork/exec.
	// The same text from the tool's own output must not count.
	return strings.Contains(msg, "fork/exec ") && strings.Contains(msg, "no such file or directory")
}
