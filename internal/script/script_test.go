package script

import (
	"strings"
	"testing"
)

func TestEscapePath_DoublesSingleQuotes(t *testing.T) {
	got := EscapePath("it's a file.ps1")
	if got != "it''s a file.ps1" {
		t.Fatalf("EscapePath: got %q", got)
	}
}

func TestEscapePath_RoundTrip(t *testing.T) {
	for _, p := range []string{
		"plain.ps1",
		"o'brien.ps1",
		"a''b.ps1",
		"'''",
		"C:\\Scripts\\deploy's.ps1",
	} {
		if got := UnescapePath(EscapePath(p)); got != p {
			t.Fatalf("round trip %q: got %q", p, got)
		}
	}
}

func TestBuildFileArray(t *testing.T) {
	got := BuildFileArray([]string{"a.ps1", "b's.psm1"})
	want := "'a.ps1','b''s.psm1'"
	if got != want {
		t.Fatalf("BuildFileArray: got %q want %q", got, want)
	}
}

func TestAnalysis_SeverityAllAndInformation_Unfiltered(t *testing.T) {
	for _, sev := range []string{"All", "Information"} {
		s := Analysis("'test.ps1'", Options{Severity: sev})
		if strings.Contains(s, "-Severity") {
			t.Fatalf("severity %s: script should not restrict severity:\n%s", sev, s)
		}
		if strings.Contains(s, "Where-Object") {
			t.Fatalf("severity %s: script should not post-filter:\n%s", sev, s)
		}
	}
}

func TestAnalysis_SeverityWarning_PostFilters(t *testing.T) {
	s := Analysis("'test.ps1'", Options{Severity: "Warning"})
	if strings.Contains(s, "-Severity") {
		t.Fatalf("Warning must not pass a -Severity argument:\n%s", s)
	}
	if !strings.Contains(s, "Where-Object { $_.Severity -eq 'Warning' -or $_.Severity -eq 'Error' }") {
		t.Fatalf("Warning must keep only Warning and Error findings:\n%s", s)
	}
}

func TestAnalysis_SeverityError_RestrictsAtSource(t *testing.T) {
	s := Analysis("'test.ps1'", Options{Severity: "Error"})
	if !strings.Contains(s, "-Severity Error") {
		t.Fatalf("Error must pass -Severity Error:\n%s", s)
	}
	if strings.Contains(s, "Where-Object") {
		t.Fatalf("Error must not add a post-filter:\n%s", s)
	}
}

func TestAnalysis_SecurityFilter(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All", SecurityOnly: true})
	if !strings.Contains(s, "# Filter to include only security-related rules") {
		t.Fatalf("missing security filter comment:\n%s", s)
	}
	if !strings.Contains(s, "$categoryRules = @(") {
		t.Fatalf("missing category allow-list:\n%s", s)
	}
	if !strings.Contains(s, "IsSecurityRule") {
		t.Fatalf("security findings must be tagged with IsSecurityRule:\n%s", s)
	}
	if !strings.Contains(s, "-NotePropertyValue 'Security'") {
		t.Fatalf("security findings must carry the Security marker:\n%s", s)
	}
}

func TestAnalysis_CategoryFilters_EachTagsMarker(t *testing.T) {
	cases := []struct {
		opts   Options
		marker string
	}{
		{Options{StyleOnly: true}, "Style"},
		{Options{PerformanceOnly: true}, "Performance"},
		{Options{BestPracticesOnly: true}, "BestPractices"},
		{Options{DSCOnly: true}, "DSC"},
		{Options{CompatibilityOnly: true}, "Compatibility"},
	}
	for _, tc := range cases {
		tc.opts.Severity = "All"
		s := Analysis("$files", tc.opts)
		if !strings.Contains(s, "$categoryRules = @(") {
			t.Fatalf("%s: missing allow-list:\n%s", tc.marker, s)
		}
		if !strings.Contains(s, "-NotePropertyName RuleCategory -NotePropertyValue '"+tc.marker+"'") {
			t.Fatalf("%s: missing category marker:\n%s", tc.marker, s)
		}
	}
}

func TestAnalysis_CategoryFilters_FirstWins(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All", SecurityOnly: true, StyleOnly: true})
	if !strings.Contains(s, "security-related rules") {
		t.Fatalf("security must win when both switches are set:\n%s", s)
	}
	if strings.Contains(s, "'Style'") {
		t.Fatalf("style filter must not apply alongside security:\n%s", s)
	}
	// exactly one category filter block
	if strings.Count(s, "$categoryRules = @(") != 1 {
		t.Fatalf("expected exactly one category filter:\n%s", s)
	}
}

func TestAnalysis_IncludeRules(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All", IncludeRules: []string{"Rule1", "Rule2"}})
	if !strings.Contains(s, "# Filter to include only specific rules") {
		t.Fatalf("missing include filter comment:\n%s", s)
	}
	if !strings.Contains(s, "$includeRules = @('Rule1','Rule2')") {
		t.Fatalf("missing include list:\n%s", s)
	}
}

func TestAnalysis_ExcludeRules(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All", ExcludeRules: []string{"Rule1", "Rule2"}})
	if !strings.Contains(s, "# Filter to exclude specific rules") {
		t.Fatalf("missing exclude filter comment:\n%s", s)
	}
	if !strings.Contains(s, "$excludeRules = @('Rule1','Rule2')") {
		t.Fatalf("missing exclude list:\n%s", s)
	}
	if !strings.Contains(s, "-notcontains") {
		t.Fatalf("exclude filter must drop listed rules:\n%s", s)
	}
}

func TestAnalysis_ExcludeWinsOverInclude(t *testing.T) {
	s := Analysis("$files", Options{
		Severity:     "All",
		IncludeRules: []string{"Rule1"},
		ExcludeRules: []string{"Rule2"},
	})
	if !strings.Contains(s, "$excludeRules") {
		t.Fatalf("exclude list must apply:\n%s", s)
	}
	if strings.Contains(s, "$includeRules") {
		t.Fatalf("include list must not apply when exclude is set:\n%s", s)
	}
}

func TestAnalysis_JSONOutput(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All", JSONOutput: true})
	if !strings.Contains(s, "ConvertTo-Json") {
		t.Fatalf("JSON mode must serialize findings:\n%s", s)
	}
	if strings.Contains(s, "GITHUB_ACTIONS") {
		t.Fatalf("JSON mode must not emit annotation output:\n%s", s)
	}
}

func TestAnalysis_TextOutput(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All"})
	for _, want := range []string{
		`$isGitHubActions = $env:GITHUB_ACTIONS -eq "true"`,
		"No issues found",
		"Found $($issues.Count) issue(s)",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("text report missing %q:\n%s", want, s)
		}
	}
}

func TestAnalysis_ErrorTrailer(t *testing.T) {
	s := Analysis("$files", Options{Severity: "All"})
	if !strings.Contains(s, "System.IO.FileLoadException") {
		t.Fatalf("missing assembly-load handler:\n%s", s)
	}
	if strings.Count(s, "exit 250") != 2 {
		t.Fatalf("expected host-error exits for both catch blocks:\n%s", s)
	}
}

func TestFormat_Script(t *testing.T) {
	s := Format("'a.ps1'")
	for _, want := range []string{
		"foreach ($file in $files)",
		"Invoke-Formatter",
		"if ($formatted -ne $originalContent)",
		"Set-Content -Path $file -Value $formatted -NoNewline",
		"exit $exitCode",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("format script missing %q:\n%s", want, s)
		}
	}
}

func TestCategories_CoverAllSwitches(t *testing.T) {
	if len(Categories) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(Categories))
	}
	for _, cat := range Categories {
		if len(cat.Rules) == 0 {
			t.Fatalf("category %s has an empty allow-list", cat.Name)
		}
		if cat.Security != (cat.Name == "security") {
			t.Fatalf("only the security category may set the security flag: %s", cat.Name)
		}
	}
}
