package diag

import (
	"cmp"
	"slices"
)

// Counts tallies diagnostics by severity.
type Counts struct {
	Errors   int
	Warnings int
	Infos    int
}

// Total returns the number of diagnostics counted.
func (c Counts) Total() int {
	return c.Errors + c.Warnings + c.Infos
}

// Add folds other into c.
func (c *Counts) Add(other Counts) {
	c.Errors += other.Errors
	c.Warnings += other.Warnings
	c.Infos += other.Infos
}

// Count tallies diags by severity.
func Count(diags []Diagnostic) Counts {
	var c Counts
	for i := range diags {
		switch diags[i].Severity {
		case SevError:
			c.Errors++
		case SevWarn:
			c.Warnings++
		default:
			c.Infos++
		}
	}
	return c
}

// Worst returns the highest severity in diags and false if diags is empty.
func Worst(diags []Diagnostic) (Severity, bool) {
	if len(diags) == 0 {
		return SevInfo, false
	}
	worst := SevInfo
	for i := range diags {
		worst = max(worst, diags[i].Severity)
	}
	return worst, true
}

// SortBySpan orders diagnostics by anchor start, anchor end, then lint ID.
// The sort is stable, so equal keys keep their emission order.
func SortBySpan(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Span().Start, b.Span().Start),
			cmp.Compare(a.Span().End, b.Span().End),
			cmp.Compare(a.Lint, b.Lint),
		)
	})
}
