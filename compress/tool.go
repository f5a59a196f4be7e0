package compress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// maxToolOutput caps how much tool output is kept for diagnostics.
const maxToolOutput = 4096

// toolWaitDelay bounds how long a killed tool may keep its output pipes open.
const toolWaitDelay = 5 * time.Second

// ToolError describes a failed external tool invocation.
type ToolError struct {
	Tool   string   // resolved executable path
	Args   []string // arguments passed to the tool
	Output string   // trimmed stderr, or stdout when stderr was empty
	Err    error    // exit error or context error
}

func (e *ToolError) Error() string {
	var sb strings.Builder
	sb.WriteString(filepath.Base(e.Tool))
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	if e.Output != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Output)
	}

	return sb.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

// ToolLocator resolves an external executable from a list of candidate names,
// first on PATH and then in a fixed list of install directories.
type ToolLocator struct {
	Names []string // executable names tried in order, e.g. "7z", "7zz"
	Dirs  []string // well-known install directories searched after PATH

	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

// Locate returns the first resolvable executable or ErrToolNotFound.
func (l ToolLocator) Locate() (string, error) {
	lookPath := l.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	stat := l.stat
	if stat == nil {
		stat = os.Stat
	}

	for _, name := range l.Names {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	for _, dir := range l.Dirs {
		for _, name := range l.Names {
			for _, candidate := range executableNames(name) {
				p := filepath.Join(dir, candidate)
				if fi, err := stat(p); err == nil && fi.Mode().IsRegular() {
					return p, nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrToolNotFound, strings.Join(l.Names, ", "))
}

func executableNames(name string) []string {
	if filepath.Ext(name) != "" {
		return []string{name}
	}

	return []string{name, name + ".exe"}
}

// runTool runs tool with args and captures its output. Cancellation of ctx
// kills the process.
func runTool(ctx context.Context, tool string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.WaitDelay = toolWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w (%v)", ctxErr, err)
	}

	out := strings.TrimSpace(stderr.String())
	if out == "" {
		out = strings.TrimSpace(stdout.String())
	}

	return &ToolError{Tool: tool, Args: args, Output: truncateOutput(out), Err: err}
}

func truncateOutput(s string) string {
	if len(s) <= maxToolOutput {
		return s
	}

	return s[len(s)-maxToolOutput:]
}

// IsTimeout reports whether err was caused by a codec exceeding its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
