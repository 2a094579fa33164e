// Package pslint provides the command-line interface for the pslint tool.
// It wires flags and subcommands (rules, ci, update, completion), locates a
// PowerShell interpreter, and delegates analysis and formatting to
// PSScriptAnalyzer.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/pslint/pslint/cmd/pslint"
//	func main() { pslint.Execute() }
package pslint
