// Package analyzer drives one analyze or format invocation end to end:
// synthesize the script, run the interpreter once, and relay or translate
// the results.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pslint/pslint/internal/report"
	"github.com/pslint/pslint/internal/script"
	"github.com/pslint/pslint/internal/types"
)

// Invoker runs synthesized script text in a PowerShell process.
// *powershell.Interpreter is the production implementation.
type Invoker interface {
	Invoke(ctx context.Context, scriptText string, capture bool) (stdout string, exitCode int, err error)
}

// Params bundles one invocation's configuration. Immutable once built.
type Params struct {
	Files        []string
	Format       bool
	Options      script.Options
	OutputFormat string // text | json | sarif
	OutputFile   string

	// Out and Errout default to os.Stdout / os.Stderr.
	Out    io.Writer
	Errout io.Writer
}

func (p *Params) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p *Params) errout() io.Writer {
	if p.Errout != nil {
		return p.Errout
	}
	return os.Stderr
}

// captures reports whether stdout must be captured for post-processing.
func (p *Params) captures() bool {
	return !p.Format && (p.OutputFormat == "json" || p.OutputFormat == "sarif")
}

// BuildScript synthesizes the script text for the given parameters without
// running anything. The CLI uses it for --show-script.
func BuildScript(p Params) string {
	filesParam := script.BuildFileArray(p.Files)
	if p.Format {
		return script.Format(filesParam)
	}
	opts := p.Options
	opts.JSONOutput = p.captures()
	return script.Analysis(filesParam, opts)
}

// Run executes one invocation and returns the process exit code for the
// whole tool: 0 clean, 1 findings or failure, 250 passed through from the
// delegated analyzer on host-runtime errors.
func Run(ctx context.Context, ps Invoker, p Params) int {
	if len(p.Files) == 0 {
		return 0
	}

	stdout, code, err := ps.Invoke(ctx, BuildScript(p), p.captures())
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(p.errout(), "Timeout while running PSScriptAnalyzer")
		return 1
	case err != nil:
		fmt.Fprintf(p.errout(), "Error processing results: %v\n", err)
		return 1
	}

	if !p.captures() {
		return code
	}

	findings, err := DecodeFindings(stdout)
	if err != nil {
		fmt.Fprintln(p.errout(), "Error parsing JSON output from PSScriptAnalyzer")
		return 1
	}

	var buf bytes.Buffer
	if p.OutputFormat == "sarif" {
		if err := report.Write(&buf, report.Convert(findings, p.Files)); err != nil {
			fmt.Fprintf(p.errout(), "Error processing results: %v\n", err)
			return 1
		}
	} else {
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			fmt.Fprintf(p.errout(), "Error processing results: %v\n", err)
			return 1
		}
	}

	if p.OutputFile != "" {
		if err := os.WriteFile(p.OutputFile, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(p.errout(), "Error processing results: %v\n", err)
			return 1
		}
	} else {
		_, _ = io.Copy(p.out(), &buf)
	}

	return code
}

// DecodeFindings parses captured analyzer output. ConvertTo-Json collapses a
// one-element array into a bare object, so both shapes are accepted; empty
// output means no findings.
func DecodeFindings(stdout string) ([]types.Finding, error) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return []types.Finding{}, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var one types.Finding
		if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
			return nil, err
		}
		return []types.Finding{one}, nil
	}
	var many []types.Finding
	if err := json.Unmarshal([]byte(trimmed), &many); err != nil {
		return nil, err
	}
	if many == nil {
		many = []types.Finding{}
	}
	return many, nil
}
