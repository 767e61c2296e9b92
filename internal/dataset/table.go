// Package dataset holds the read-only insurance plan table and its lookup
// operations.
package dataset

import (
	"strings"
)

// Well-known column headers.
const (
	ColCompanyName = "COMPANY NAME"
	ColPlanName    = "PLAN NAME"
	ColCoverage    = "COVERAGE"
)

// Row is a single plan record keyed by column header.
type Row map[string]string

// Table is a read-only tabular dataset. Built once at load time and never
// mutated, so it is safe for concurrent readers.
type Table struct {
	Headers []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// LookupPlans returns rows whose company or plan name contains name,
// case-insensitively. No fuzzy matching or ranking.
func (t *Table) LookupPlans(name string) []Row {
	if t == nil || name == "" {
		return nil
	}
	q := strings.ToLower(name)
	var out []Row
	for _, r := range t.Rows {
		if strings.Contains(strings.ToLower(r[ColCompanyName]), q) ||
			strings.Contains(strings.ToLower(r[ColPlanName]), q) {
			out = append(out, r)
		}
	}
	return out
}

// MatchPlansByDrugs returns rows whose coverage column contains any of the
// given drug names, case-insensitively.
func (t *Table) MatchPlansByDrugs(drugs []string) []Row {
	if t == nil || len(drugs) == 0 {
		return nil
	}
	var out []Row
	for _, r := range t.Rows {
		cov := strings.ToLower(r[ColCoverage])
		for _, d := range drugs {
			if d == "" {
				continue
			}
			if strings.Contains(cov, strings.ToLower(d)) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Documents renders each row as a "HEADER: value" text block for the
// retrieval fallback.
func (t *Table) Documents() []string {
	if t == nil {
		return nil
	}
	docs := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		var b strings.Builder
		for _, h := range t.Headers {
			if v := strings.TrimSpace(r[h]); v != "" {
				b.WriteString(h)
				b.WriteString(": ")
				b.WriteString(v)
				b.WriteString("\n")
			}
		}
		docs = append(docs, strings.TrimRight(b.String(), "\n"))
	}
	return docs
}
