package internal

import (
	"github.com/implint/implint/internal/imports"
	"github.com/implint/implint/internal/lints"
	tt "github.com/implint/implint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given source and returns a slice of Issues.
	Check(filename string, src []byte) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type baseRule struct {
	severity tt.Severity
}

func (b *baseRule) Severity() tt.Severity     { return b.severity }
func (b *baseRule) SetSeverity(s tt.Severity) { b.severity = s }

// ShortestImportRule reports import specifiers for which a shorter
// equivalent form exists under the configured alias table.
type ShortestImportRule struct {
	baseRule
	Table  imports.Table
	Opts   imports.Options
	Policy imports.Policy
}

func (r *ShortestImportRule) Check(filename string, src []byte) ([]tt.Issue, error) {
	return lints.DetectShortestImport(filename, src, r.Table, r.Opts, r.Policy)
}

func (r *ShortestImportRule) Name() string {
	return "shortest-import"
}

// UselessPathSegmentsRule reports relative specifiers with removable
// `.`/`..` detours or trailing slashes.
type UselessPathSegmentsRule struct {
	baseRule
}

func (r *UselessPathSegmentsRule) Check(filename string, src []byte) ([]tt.Issue, error) {
	return lints.DetectUselessPathSegments(filename, src)
}

func (r *UselessPathSegmentsRule) Name() string {
	return "useless-path-segments"
}
