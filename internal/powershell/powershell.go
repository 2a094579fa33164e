// Package powershell locates a PowerShell interpreter and manages the
// PSScriptAnalyzer module dependency. Every external call is bounded by a
// timeout and attempted exactly once.
package powershell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Executables is the probe order for interpreter discovery.
var Executables = []string{"pwsh", "pwsh-lts", "powershell"}

// ModuleName is the analyzer module this tool delegates to.
const ModuleName = "PSScriptAnalyzer"

const (
	// ProbeTimeout bounds a single version probe during discovery.
	ProbeTimeout = 10 * time.Second
	// ModuleCheckTimeout bounds the Get-Module availability check.
	ModuleCheckTimeout = 30 * time.Second
	// InstallTimeout bounds the one-shot Install-Module attempt.
	InstallTimeout = 120 * time.Second
	// AnalysisTimeout bounds the analyze/format invocation.
	AnalysisTimeout = 300 * time.Second
)

// ErrNotFound is returned by Find when no candidate interpreter answers the
// version probe.
var ErrNotFound = errors.New("PowerShell not found")

// runCommand is the captured-output execution path. Replaced in tests.
var runCommand = runCaptured

// Interpreter is a discovered PowerShell binary.
type Interpreter struct {
	Cmd string
}

// Name returns the executable name the probe succeeded with.
func (p *Interpreter) Name() string { return p.Cmd }

// Find probes the candidate executables in order and returns the first one
// whose version check exits 0. A missing binary and a timed-out probe are
// treated the same: move on to the next candidate.
func Find(ctx context.Context) (*Interpreter, error) {
	for _, name := range Executables {
		_, code, err := runCommand(ctx, ProbeTimeout, name, "-Command", "$PSVersionTable.PSVersion")
		if err != nil {
			continue
		}
		if code == 0 {
			return &Interpreter{Cmd: name}, nil
		}
	}
	return nil, ErrNotFound
}

// ModuleInstalled reports whether PSScriptAnalyzer is listed as available.
// A timeout counts as "not installed".
func (p *Interpreter) ModuleInstalled(ctx context.Context) bool {
	out, code, err := runCommand(ctx, ModuleCheckTimeout, p.Cmd,
		"-Command", "Get-Module -ListAvailable -Name "+ModuleName)
	if err != nil || code != 0 {
		return false
	}
	return strings.Contains(out, ModuleName)
}

// InstallModule attempts a user-scoped force install of PSScriptAnalyzer.
// Best effort: failure and timeout both return false, nothing is retried.
func (p *Interpreter) InstallModule(ctx context.Context) bool {
	_, code, err := runCommand(ctx, InstallTimeout, p.Cmd,
		"-Command", "Install-Module -Name "+ModuleName+" -Force -Scope CurrentUser")
	return err == nil && code == 0
}

// Invoke runs the given script text as a single -Command invocation under
// AnalysisTimeout. With capture set, stdout is returned for parsing;
// otherwise the subprocess writes straight to the console. The returned
// error is context.DeadlineExceeded on timeout.
func (p *Interpreter) Invoke(ctx context.Context, scriptText string, capture bool) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, AnalysisTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.Cmd, "-Command", scriptText)
	var out bytes.Buffer
	if capture {
		cmd.Stdout = &out
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", 1, context.DeadlineExceeded
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), exitErr.ExitCode(), nil
		}
		return "", 1, err
	}
	return out.String(), 0, nil
}

// runCaptured executes a command with captured stdout and a hard timeout.
func runCaptured(ctx context.Context, timeout time.Duration, name string, args ...string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", 1, context.DeadlineExceeded
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), exitErr.ExitCode(), nil
		}
		return "", 1, err
	}
	return out.String(), 0, nil
}
