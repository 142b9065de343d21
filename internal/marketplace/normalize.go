package marketplace

import "strings"

// DefaultLabel is applied to entries that declare no labels.
const DefaultLabel = "general"

// KnownLabels is the label vocabulary offered for filtering.
var KnownLabels = []string{
	"general",
	"frontend",
	"backend",
	"devops",
	"data",
	"security",
	"testing",
	"mobile",
	"architecture",
	"documentation",
	"ai-ml",
	"code-generation",
	"code-review",
	"debugging",
	"monitoring",
	"refactoring",
}

// NormalizedEntry is a manifest entry reduced to what the index needs.
// Labels is never empty.
type NormalizedEntry struct {
	Name   string
	Labels []string
}

// Normalize resolves an entry to a name and a non-empty label list. Blank
// labels are dropped; if none remain the entry gets DefaultLabel.
func Normalize(e ComponentEntry) NormalizedEntry {
	labels := make([]string, 0, len(e.Labels))
	for _, l := range e.Labels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		labels = []string{DefaultLabel}
	}
	return NormalizedEntry{Name: strings.TrimSpace(e.Name), Labels: labels}
}
