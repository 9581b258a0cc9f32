package internal

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/implint/implint/internal/imports"
	"github.com/implint/implint/internal/nolint"
	tt "github.com/implint/implint/internal/types"
)

// Engine manages the linting process. The alias table is built once
// at construction and never mutated, so one engine may serve any
// number of concurrent Run calls.
type Engine struct {
	table        imports.Table
	opts         imports.Options
	policy       imports.Policy
	rules        map[string]LintRule
	ignoredRules map[string]bool
	ignoredPaths []string
}

// NewEngine creates a new lint engine over the given alias table.
func NewEngine(
	table imports.Table,
	opts imports.Options,
	policy imports.Policy,
	rules map[string]tt.ConfigRule,
) (*Engine, error) {
	engine := &Engine{
		table:        table,
		opts:         opts,
		policy:       policy,
		ignoredRules: make(map[string]bool),
	}
	engine.applyRules(rules)

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func(e *Engine) LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"shortest-import": func(e *Engine) LintRule {
		return &ShortestImportRule{Table: e.table, Opts: e.opts, Policy: e.policy}
	},
	"useless-path-segments": func(e *Engine) LintRule {
		return &UselessPathSegmentsRule{}
	},
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r, ok := e.rules[key]
		if !ok {
			// Unknown rule, continue to the next one
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRule := range allRuleConstructors {
		e.rules[key] = newRule(e)
	}
}

// IgnoreRule excludes the named rule from all subsequent runs.
func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// IgnorePath excludes files under the given path prefix.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

// Table exposes the read-only alias table the engine runs on.
func (e *Engine) Table() imports.Table {
	return e.table
}

// Extensions exposes the source file extensions the engine lints.
func (e *Engine) Extensions() []string {
	return e.opts.Extensions
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.pathIgnored(filename) {
		return nil, nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return e.runSource(filename, src)
}

// RunSource applies all lint rules to in-memory source.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.runSource("source.ts", source)
}

func (e *Engine) runSource(filename string, src []byte) ([]tt.Issue, error) {
	nolintMgr := nolint.Parse(src)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for name, rule := range e.rules {
		if e.ignoredRules[name] {
			continue
		}
		if rule.Severity() == tt.SeverityOff {
			continue
		}

		wg.Add(1)
		go func(rule LintRule) {
			defer wg.Done()
			issues, err := rule.Check(filename, src)
			if err != nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for _, issue := range issues {
				if nolintMgr.IsSuppressed(issue.Start.Line, issue.Rule) {
					continue
				}
				issue.Severity = rule.Severity()
				allIssues = append(allIssues, issue)
			}
		}(rule)
	}
	wg.Wait()

	sort.Slice(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Line != allIssues[j].Start.Line {
			return allIssues[i].Start.Line < allIssues[j].Start.Line
		}
		if allIssues[i].Start.Column != allIssues[j].Start.Column {
			return allIssues[i].Start.Column < allIssues[j].Start.Column
		}
		return allIssues[i].Rule < allIssues[j].Rule
	})

	return allIssues, nil
}

func (e *Engine) pathIgnored(path string) bool {
	for _, ignored := range e.ignoredPaths {
		if strings.HasPrefix(path, ignored) {
			return true
		}
	}
	return false
}
