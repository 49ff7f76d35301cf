package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER — One-line status for the current view
// ============================================================================

// WelcomeMessage is shown before any file has been loaded.
const WelcomeMessage = "Welcome to your data dashboard. Upload a file to get started."

// BuildSummary describes what the dashboard is showing, e.g.
// "Showing 3 of 12 rows (2 numeric, 1 categorical) filtered by region: west".
func BuildSummary(visible, total int, sch Schema, filters Filters) string {
	if total == 0 && sch.IsEmpty() {
		return WelcomeMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d %s", visible, total, plural(total, "row", "rows"))
	fmt.Fprintf(&b, " (%d numeric, %d categorical)", len(sch.Numeric()), len(sch.Categorical()))
	if !filters.IsEmpty() {
		b.WriteString(" filtered by ")
		b.WriteString(filters.Label())
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
