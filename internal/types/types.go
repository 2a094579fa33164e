package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Severity is a PSScriptAnalyzer diagnostic severity.
type Severity string

const (
	SevInformation Severity = "Information"
	SevWarning     Severity = "Warning"
	SevError       Severity = "Error"
)

// Levels accepted by the CLI, in the order they are documented.
// "All" is not a real severity; it means "do not restrict".
var Levels = []string{"All", "Information", "Warning", "Error"}

// ValidLevel reports whether s is one of the accepted CLI severity levels.
func ValidLevel(s string) bool {
	for _, l := range Levels {
		if s == l {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts both the string form ("Warning") and the numeric
// enum PowerShell emits when it serializes DiagnosticSeverity (0/1/2).
func (s *Severity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty severity")
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Severity(str)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	switch n {
	case 0:
		*s = SevInformation
	case 1:
		*s = SevWarning
	case 2:
		*s = SevError
	default:
		*s = Severity(fmt.Sprintf("%d", n))
	}
	return nil
}

// Finding is one PSScriptAnalyzer diagnostic record. Field names follow the
// JSON that Invoke-ScriptAnalyzer emits, so the captured output of the
// generated script decodes directly into this type.
type Finding struct {
	RuleName       string   `json:"RuleName"`
	Severity       Severity `json:"Severity"`
	Message        string   `json:"Message"`
	ScriptName     string   `json:"ScriptName,omitempty"`
	ScriptPath     string   `json:"ScriptPath"`
	Line           int      `json:"Line"`
	Column         int      `json:"Column"`
	IsSecurityRule bool     `json:"IsSecurityRule,omitempty"`
	RuleCategory   string   `json:"RuleCategory,omitempty"`
}
