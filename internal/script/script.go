// Package script synthesizes the PowerShell source handed to the interpreter
// in a single -Command invocation. Analysis and formatting never run any
// PowerShell from here; callers feed the generated text to
// internal/powershell.
package script

import (
	"fmt"
	"strings"
)

// Options selects what the generated analysis script filters and emits.
type Options struct {
	// Severity is one of All, Information, Warning, Error.
	Severity string

	// Category switches. Checked in the order of Categories; the first
	// one set wins and the rest are ignored.
	SecurityOnly      bool
	StyleOnly         bool
	PerformanceOnly   bool
	BestPracticesOnly bool
	DSCOnly           bool
	CompatibilityOnly bool

	// IncludeRules keeps only the named rules; ExcludeRules drops them.
	// When both are set the exclude list wins, matching the assignment
	// order of the upstream tool.
	IncludeRules []string
	ExcludeRules []string

	// JSONOutput emits the surviving findings as JSON on stdout instead
	// of human-readable text.
	JSONOutput bool
}

// EscapePath escapes a path for embedding in a single-quoted PowerShell
// string literal: single quotes are doubled.
func EscapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}

// UnescapePath reverses EscapePath. Used only to verify round-trips in tests
// and debugging output.
func UnescapePath(path string) string {
	return strings.ReplaceAll(path, "''", "'")
}

// BuildFileArray renders a file list as the body of a PowerShell array
// literal: 'a.ps1','b.ps1'.
func BuildFileArray(files []string) string {
	quoted := make([]string, 0, len(files))
	for _, f := range files {
		quoted = append(quoted, "'"+EscapePath(f)+"'")
	}
	return strings.Join(quoted, ",")
}

// Format returns a script that runs Invoke-Formatter over each file and
// rewrites it only when the formatted text differs. A per-file failure sets
// the script's exit code to 1 but does not stop the loop.
func Format(filesParam string) string {
	return fmt.Sprintf(`
$files = @(%s)
$exitCode = 0
foreach ($file in $files) {
    try {
        $originalContent = Get-Content -Path $file -Raw
        $formatted = Invoke-Formatter -ScriptDefinition $originalContent
        if ($formatted -ne $originalContent) {
            Set-Content -Path $file -Value $formatted -NoNewline
            Write-Host "Formatted: $file"
        }
    } catch {
        Write-Error "Failed to format ${file}: $($_.Exception.Message)"
        $exitCode = 1
    }
}
exit $exitCode
`, filesParam)
}

// Analysis returns a script that runs Invoke-ScriptAnalyzer over each file,
// applies the severity policy and filters from opts, and reports findings.
// Script exit codes: 0 none, 1 findings, 250 host-runtime failure.
func Analysis(filesParam string, opts Options) string {
	var b strings.Builder

	b.WriteString("try {\n")
	fmt.Fprintf(&b, "    $files = @(%s)\n", filesParam)
	b.WriteString("    $issues = @()\n")
	b.WriteString("    foreach ($file in $files) {\n")
	fmt.Fprintf(&b, "        $result = Invoke-ScriptAnalyzer -Path $file%s\n", severityArg(opts.Severity))
	b.WriteString("        if ($result) {\n")
	b.WriteString("            $issues += $result\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")

	// Warning is the only level that needs a post-filter: the analyzer's
	// -Severity flag selects exactly one level, but "Warning" here means
	// Warning-or-worse.
	if opts.Severity == "Warning" {
		b.WriteString("    $issues = @($issues | Where-Object { $_.Severity -eq 'Warning' -or $_.Severity -eq 'Error' })\n")
	}

	if cat, ok := selectedCategory(opts); ok {
		writeCategoryFilter(&b, cat)
	}

	switch {
	case len(opts.ExcludeRules) > 0:
		b.WriteString("    # Filter to exclude specific rules\n")
		fmt.Fprintf(&b, "    $excludeRules = @(%s)\n", quoteRules(opts.ExcludeRules))
		b.WriteString("    $issues = @($issues | Where-Object { $excludeRules -notcontains $_.RuleName })\n")
	case len(opts.IncludeRules) > 0:
		b.WriteString("    # Filter to include only specific rules\n")
		fmt.Fprintf(&b, "    $includeRules = @(%s)\n", quoteRules(opts.IncludeRules))
		b.WriteString("    $issues = @($issues | Where-Object { $includeRules -contains $_.RuleName })\n")
	}

	if opts.JSONOutput {
		writeJSONReport(&b)
	} else {
		writeTextReport(&b)
	}

	b.WriteString(errorTrailer)
	return b.String()
}

// severityArg returns the -Severity argument for the analyzer call. Only
// Error restricts at the source; All and Information run unfiltered, and
// Warning filters after the fact.
func severityArg(severity string) string {
	if severity == "Error" {
		return " -Severity Error"
	}
	return ""
}

func selectedCategory(opts Options) (Category, bool) {
	flags := []bool{
		opts.SecurityOnly,
		opts.StyleOnly,
		opts.PerformanceOnly,
		opts.BestPracticesOnly,
		opts.DSCOnly,
		opts.CompatibilityOnly,
	}
	for i, set := range flags {
		if set {
			return Categories[i], true
		}
	}
	return Category{}, false
}

func writeCategoryFilter(b *strings.Builder, cat Category) {
	fmt.Fprintf(b, "    # Filter to include only %s\n", categoryComment(cat.Name))
	fmt.Fprintf(b, "    $categoryRules = @(%s)\n", quoteRules(cat.Rules))
	b.WriteString("    $issues = @($issues | Where-Object { $categoryRules -contains $_.RuleName })\n")
	b.WriteString("    foreach ($issue in $issues) {\n")
	if cat.Security {
		b.WriteString("        $issue | Add-Member -NotePropertyName IsSecurityRule -NotePropertyValue $true -Force\n")
	}
	fmt.Fprintf(b, "        $issue | Add-Member -NotePropertyName RuleCategory -NotePropertyValue '%s' -Force\n", cat.Marker)
	b.WriteString("    }\n")
}

func categoryComment(name string) string {
	switch name {
	case "best-practices":
		return "best practices rules"
	case "dsc":
		return "DSC-related rules"
	default:
		return name + "-related rules"
	}
}

func quoteRules(rules []string) string {
	quoted := make([]string, 0, len(rules))
	for _, r := range rules {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		quoted = append(quoted, "'"+EscapePath(r)+"'")
	}
	return strings.Join(quoted, ",")
}

func writeJSONReport(b *strings.Builder) {
	b.WriteString(`    if ($issues.Count -gt 0) {
        $issues | Select-Object RuleName, Severity, Message, ScriptName, ScriptPath, Line, Column, IsSecurityRule, RuleCategory | ConvertTo-Json -Depth 3
        exit 1
    } else {
        exit 0
    }
`)
}

func writeTextReport(b *strings.Builder) {
	b.WriteString(`    if ($issues.Count -gt 0) {
        Write-Host ""

        # Check if running in GitHub Actions
        $isGitHubActions = $env:GITHUB_ACTIONS -eq "true"
        foreach ($issue in $issues) {
            $fileName = Split-Path -Leaf $issue.ScriptName
            $location = "$($fileName): Line $($issue.Line):1"

            if ($isGitHubActions) {
                $annotationType = switch ($issue.Severity) {
                    "Error" { "error" }
                    "Warning" { "warning" }
                    "Information" { "notice" }
                    default { "error" }
                }
                $displaySeverity = switch ($issue.Severity) {
                    "Error" { "Error" }
                    "Warning" { "Warning" }
                    "Information" { "Notice" }
                    default { "Error" }
                }
                $annotation = "::" + $annotationType + " file=" + $issue.ScriptName + ",line=" + $issue.Line + ",title=" + $issue.RuleName + "::" + $issue.Message
                Write-Host $annotation

                $header = "$($displaySeverity): $($location): $($issue.RuleName)"
                Write-Host $header
                Write-Host "  $($issue.Message)"
                Write-Host ""
            } else {
                $severityColor = switch ($issue.Severity) {
                    "Error" { "Red" }
                    "Warning" { "DarkYellow" }
                    "Information" { "Cyan" }
                    default { "Red" }
                }

                $header = "$($issue.Severity): $($location): $($issue.RuleName)"
                Write-Host $header -ForegroundColor $severityColor
                Write-Host "  $($issue.Message)" -ForegroundColor Gray
                Write-Host ""
            }
        }
        Write-Host "Found $($issues.Count) issue(s)" -ForegroundColor Yellow
        exit 1
    } else {
        Write-Host "No issues found" -ForegroundColor Green
        exit 0
    }
`)
}

const errorTrailer = `} catch [System.IO.FileLoadException] {
    Write-Error "Assembly loading error: $($_.Exception.Message)"
    Write-Error "This may be due to .NET runtime compatibility issues."
    Write-Error "Try updating PowerShell or reinstalling PSScriptAnalyzer."
    exit 250
} catch {
    Write-Error "Unexpected error: $($_.Exception.Message)"
    exit 250
}
`
