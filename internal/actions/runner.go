// Package actions implements the viewer's share, save-a-copy, and print
// operations. Each service hands the document buffer to a system facility
// and reports completion through the logger; none of them mutate the bytes
// they are given.
package actions

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands. The seam exists so tests can observe
// spool and share invocations without shelling out.
type Runner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) error
}

// NewRunner returns the exec-backed Runner used outside tests.
func NewRunner() Runner { return execRunner{} }

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(stdin) > 0 {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// SafeFileName turns a display title into something the filesystem accepts.
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "document"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '-'
		}
		return r
	}, name)
}
