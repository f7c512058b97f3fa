// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reporters holds the abbreviation tables the citation grammar
// depends on: case reporters, statutory codes, and law journals. The
// tables ship embedded as YAML; extending coverage means editing
// tables.yaml, not code.
package reporters

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// Entry describes one abbreviation: the canonical cite form, the
// spellings accepted in text, and a human-readable name.
type Entry struct {
	// Name is the full name of the reporter, code, or journal.
	Name string `json:"name" yaml:"name"`

	// Cite is the canonical abbreviation (e.g. "U.S.", "F. Supp.").
	Cite string `json:"cite" yaml:"cite"`

	// Variants lists the spellings recognized in text, including Cite.
	Variants []string `json:"variants" yaml:"variants"`
}

// Table groups the three abbreviation families.
type Table struct {
	Reporters []Entry `json:"reporters" yaml:"reporters"`
	Laws      []Entry `json:"laws" yaml:"laws"`
	Journals  []Entry `json:"journals" yaml:"journals"`
}

// Load parses the embedded tables. It fails if any family is empty or
// any entry lacks a cite or variants.
func Load() (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(tablesYAML, &t); err != nil {
		return nil, fmt.Errorf("parsing embedded tables: %w", err)
	}

	for family, entries := range map[string][]Entry{
		"reporters": t.Reporters,
		"laws":      t.Laws,
		"journals":  t.Journals,
	} {
		if len(entries) == 0 {
			return nil, fmt.Errorf("embedded tables: %s family is empty", family)
		}
		for _, e := range entries {
			if e.Cite == "" || len(e.Variants) == 0 {
				return nil, fmt.Errorf("embedded tables: %s entry %q missing cite or variants", family, e.Name)
			}
		}
	}

	return &t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table, parsed once. The embedded data is
// part of the binary, so a parse failure is a build defect and panics.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load()
		if err != nil {
			panic(fmt.Sprintf("reporters: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// ReporterAlternation returns a regex alternation matching any reporter
// variant, longest spelling first.
func (t *Table) ReporterAlternation() string {
	return alternation(t.Reporters)
}

// LawAlternation returns a regex alternation matching any statutory
// code variant, longest spelling first.
func (t *Table) LawAlternation() string {
	return alternation(t.Laws)
}

// JournalAlternation returns a regex alternation matching any journal
// variant, longest spelling first.
func (t *Table) JournalAlternation() string {
	return alternation(t.Journals)
}

// alternation quotes every variant and joins them into a non-capturing
// alternation. Longer variants sort first so "F. Supp. 2d" wins over
// "F. Supp." when both could match.
func alternation(entries []Entry) string {
	var variants []string
	for _, e := range entries {
		variants = append(variants, e.Variants...)
	}
	sort.Slice(variants, func(i, j int) bool {
		if len(variants[i]) != len(variants[j]) {
			return len(variants[i]) > len(variants[j])
		}
		return variants[i] < variants[j]
	})

	quoted := make([]string, len(variants))
	for i, v := range variants {
		quoted[i] = regexp.QuoteMeta(v)
	}

	return "(?:" + strings.Join(quoted, "|") + ")"
}
