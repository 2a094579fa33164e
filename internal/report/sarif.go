// Package report translates captured analyzer findings into SARIF 2.1.0.
package report

import (
	"encoding/json"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pslint/pslint/internal/types"
)

// Version is the pinned SARIF schema version.
const Version = "2.1.0"

// Schema is the schema URI embedded in every document.
const Schema = "https://schemastore.azurewebsites.net/schemas/json/sarif-" + Version + ".json"

// Document is the top-level SARIF structure.
type Document struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run is a single analysis run.
type Run struct {
	Tool      Tool       `json:"tool"`
	Results   []Result   `json:"results"`
	Artifacts []Artifact `json:"artifacts"`
}

// Tool wraps the driver descriptor.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver identifies the delegated analyzer, not this wrapper.
type Driver struct {
	Name            string `json:"name"`
	SemanticVersion string `json:"semanticVersion"`
	InformationURI  string `json:"informationUri"`
	Rules           []Rule `json:"rules"`
}

// Rule is deduplicated metadata for one distinct rule id.
type Rule struct {
	ID               string         `json:"id"`
	ShortDescription Message        `json:"shortDescription"`
	Properties       RuleProperties `json:"properties"`
}

// RuleProperties carries category tags for a rule.
type RuleProperties struct {
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// Message holds finding or description text.
type Message struct {
	Text string `json:"text"`
}

// Result is one finding.
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Location points a result at a file region.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation is a file URI plus region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation is an absolute file URI.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is a 1-based start position.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

// Artifact is one analyzed input file.
type Artifact struct {
	Location ArtifactLocation `json:"location"`
}

// Level maps an analyzer severity to a SARIF level. Numeric aliases follow
// PowerShell's DiagnosticSeverity enum; anything unrecognized is a warning.
func Level(s types.Severity) string {
	switch s {
	case types.SevError, "2":
		return "error"
	case types.SevWarning, "1":
		return "warning"
	case types.SevInformation, "0":
		return "note"
	default:
		return "warning"
	}
}

// Convert builds a SARIF document from raw findings and the original input
// file list. Rule metadata is recorded once per distinct rule id, using the
// first finding seen for that id; later findings never update it.
func Convert(findings []types.Finding, files []string) *Document {
	run := Run{
		Tool: Tool{Driver: Driver{
			Name:            "PSScriptAnalyzer",
			SemanticVersion: "1.x",
			InformationURI:  "https://github.com/PowerShell/PSScriptAnalyzer",
			Rules:           []Rule{},
		}},
		Results:   []Result{},
		Artifacts: []Artifact{},
	}

	for _, f := range files {
		run.Artifacts = append(run.Artifacts, Artifact{
			Location: ArtifactLocation{URI: fileURI(f)},
		})
	}

	rulesAdded := map[string]bool{}
	for _, f := range findings {
		if f.RuleName != "" && !rulesAdded[f.RuleName] {
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, ruleMetadata(f))
			rulesAdded[f.RuleName] = true
		}

		line, col := f.Line, f.Column
		if line < 1 {
			line = 1
		}
		if col < 1 {
			col = 1
		}
		run.Results = append(run.Results, Result{
			RuleID:  f.RuleName,
			Level:   Level(f.Severity),
			Message: Message{Text: f.Message},
			Locations: []Location{{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: fileURI(f.ScriptPath)},
					Region:           Region{StartLine: line, StartColumn: col},
				},
			}},
		})
	}

	return &Document{
		Schema:  Schema,
		Version: Version,
		Runs:    []Run{run},
	}
}

func ruleMetadata(f types.Finding) Rule {
	tags := []string{}
	if f.IsSecurityRule {
		tags = append(tags, "security")
	}
	if cat := strings.ToLower(f.RuleCategory); cat != "" && !slices.Contains(tags, cat) {
		tags = append(tags, cat)
	}
	return Rule{
		ID:               f.RuleName,
		ShortDescription: Message{Text: f.RuleName},
		Properties:       RuleProperties{Tags: tags, Category: f.RuleCategory},
	}
}

// Write emits the document as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + abs
}
