package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pslint/pslint/internal/types"
)

func TestConvert_EmptyFindings(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		files := make([]string, n)
		for i := range files {
			files[i] = filepath.Join("scripts", "f.ps1")
		}
		doc := Convert(nil, files)
		if doc.Version != "2.1.0" {
			t.Fatalf("version: got %q", doc.Version)
		}
		if !strings.Contains(doc.Schema, "sarif-2.1.0") {
			t.Fatalf("schema: got %q", doc.Schema)
		}
		if len(doc.Runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(doc.Runs))
		}
		run := doc.Runs[0]
		if len(run.Results) != 0 {
			t.Fatalf("expected no results, got %d", len(run.Results))
		}
		if len(run.Artifacts) != n {
			t.Fatalf("expected %d artifacts, got %d", n, len(run.Artifacts))
		}
	}
}

func TestConvert_DriverDescribesDelegatedTool(t *testing.T) {
	doc := Convert(nil, nil)
	d := doc.Runs[0].Tool.Driver
	if d.Name != "PSScriptAnalyzer" {
		t.Fatalf("driver name: got %q", d.Name)
	}
	if d.SemanticVersion != "1.x" {
		t.Fatalf("driver semanticVersion: got %q", d.SemanticVersion)
	}
	if !strings.Contains(d.InformationURI, "PSScriptAnalyzer") {
		t.Fatalf("driver informationUri: got %q", d.InformationURI)
	}
}

func TestConvert_RuleDedup(t *testing.T) {
	findings := []types.Finding{
		{RuleName: "PSAvoidUsingWriteHost", Severity: types.SevWarning, ScriptPath: "a.ps1", Line: 1, Column: 1, RuleCategory: "BestPractices"},
		{RuleName: "PSAvoidUsingWriteHost", Severity: types.SevWarning, ScriptPath: "a.ps1", Line: 9, Column: 2, RuleCategory: "Style"},
	}
	doc := Convert(findings, []string{"a.ps1"})
	run := doc.Runs[0]
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	rules := run.Tool.Driver.Rules
	if len(rules) != 1 {
		t.Fatalf("expected 1 deduplicated rule, got %d", len(rules))
	}
	// first-seen metadata wins; the second finding's category is ignored
	if rules[0].Properties.Category != "BestPractices" {
		t.Fatalf("rule metadata must come from the first finding, got %q", rules[0].Properties.Category)
	}
}

func TestConvert_SecurityAndCategoryTags(t *testing.T) {
	findings := []types.Finding{
		{RuleName: "PSAvoidUsingPlainTextForPassword", Severity: types.SevError, ScriptPath: "a.ps1", Line: 3, Column: 1, IsSecurityRule: true, RuleCategory: "Security"},
		{RuleName: "PSAlignAssignmentStatement", Severity: types.SevWarning, ScriptPath: "a.ps1", Line: 5, Column: 2, RuleCategory: "Style"},
	}
	doc := Convert(findings, []string{"a.ps1"})
	rules := doc.Runs[0].Tool.Driver.Rules
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	secTags := rules[0].Properties.Tags
	if len(secTags) != 1 || secTags[0] != "security" {
		t.Fatalf("security tags: got %v (lower-cased category must not duplicate the security tag)", secTags)
	}
	style := rules[1]
	if len(style.Properties.Tags) != 1 || style.Properties.Tags[0] != "style" {
		t.Fatalf("style tags: got %v", style.Properties.Tags)
	}
	if style.Properties.Category != "Style" {
		t.Fatalf("style category: got %q", style.Properties.Category)
	}
}

func TestConvert_LocationsUseAbsoluteFileURIs(t *testing.T) {
	findings := []types.Finding{
		{RuleName: "PSUseApprovedVerbs", Severity: types.SevWarning, ScriptPath: "rel/x.ps1", Line: 7, Column: 4},
	}
	doc := Convert(findings, []string{"rel/x.ps1"})
	run := doc.Runs[0]
	uri := run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI
	if !strings.HasPrefix(uri, "file://") {
		t.Fatalf("result uri: got %q", uri)
	}
	abs, _ := filepath.Abs("rel/x.ps1")
	if uri != "file://"+abs {
		t.Fatalf("result uri: got %q want file://%s", uri, abs)
	}
	if run.Artifacts[0].Location.URI != uri {
		t.Fatalf("artifact uri %q differs from result uri %q", run.Artifacts[0].Location.URI, uri)
	}
	region := run.Results[0].Locations[0].PhysicalLocation.Region
	if region.StartLine != 7 || region.StartColumn != 4 {
		t.Fatalf("region: got %+v", region)
	}
}

func TestLevel_Mapping(t *testing.T) {
	cases := map[types.Severity]string{
		"Error":         "error",
		"Warning":       "warning",
		"Information":   "note",
		"2":             "error",
		"1":             "warning",
		"0":             "note",
		"ParseWarning":  "warning",
		"":              "warning",
		"somethingelse": "warning",
	}
	for in, want := range cases {
		if got := Level(in); got != want {
			t.Fatalf("Level(%q): got %q want %q", in, got, want)
		}
	}
}

func TestWrite_EmitsIndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	doc := Convert(nil, []string{"a.ps1"})
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if _, ok := decoded["$schema"]; !ok {
		t.Fatalf("expected $schema key, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatalf("expected indented output")
	}
}
