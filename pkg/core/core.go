package core

import (
	"context"

	"github.com/pslint/pslint/internal/analyzer"
	"github.com/pslint/pslint/internal/powershell"
	"github.com/pslint/pslint/internal/report"
	"github.com/pslint/pslint/internal/script"
	"github.com/pslint/pslint/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Finding = types.Finding
type Severity = types.Severity
type Options = script.Options
type Params = analyzer.Params
type Interpreter = powershell.Interpreter

// FindPowerShell locates an interpreter, probing candidates in order.
func FindPowerShell(ctx context.Context) (*Interpreter, error) {
	return powershell.Find(ctx)
}

// Analyze runs one analyze/format invocation and returns the exit code.
func Analyze(ctx context.Context, ps *Interpreter, p Params) int {
	return analyzer.Run(ctx, ps, p)
}

// ConvertToSARIF translates findings into a SARIF 2.1.0 document.
func ConvertToSARIF(findings []Finding, files []string) *report.Document {
	return report.Convert(findings, files)
}
