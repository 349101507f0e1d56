package deck

import (
	"fmt"
	"strings"
)

// Warning records a non-fatal fault encountered while processing a single
// shape or paragraph. Warnings never abort a pass; the affected element is
// skipped and processing continues.
type Warning struct {
	Stage   string // pass that produced the warning: "analyze", "design", "content"
	Slide   int    // 0-indexed slide
	Element string // shape or paragraph description
	Message string
}

// String returns the warning as a single human-readable line.
func (w Warning) String() string {
	return fmt.Sprintf("%s: slide %d, %s: %s", w.Stage, w.Slide+1, w.Element, w.Message)
}

// FormatWarnings joins warnings into a newline-separated block for display.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
