// Package core provides a small, stable facade over pslint's internal
// packages for external integrations. It deliberately re-exports a narrow API
// surface so editor plugins and CI tooling can depend on a stable import path
// without reaching into internal implementation packages.
//
// Example:
//
//	ps, err := core.FindPowerShell(ctx)
//	if err != nil { /* handle */ }
//	code := core.Analyze(ctx, ps, core.Params{Files: []string{"deploy.ps1"}})
//	_ = code
package core
