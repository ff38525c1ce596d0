// Package differ compares two normalized page texts as sets of lines.
package differ

import (
	"fmt"
	"strings"

	"github.com/Houeta/rival-watch/internal/models"
)

const (
	highRatio        = 0.30
	mediumRatio      = 0.10
	manyChangedLines = 20
	noChangesSummary = "No changes detected."
)

// Compare returns the line-set difference between oldText and newText.
// Order and duplicate counts inside a side are ignored.
func Compare(oldText, newText string) models.DiffResult {
	oldLines := lines(oldText)
	newLines := lines(newText)

	oldSet := toSet(oldLines)
	newSet := toSet(newLines)

	added := difference(newLines, oldSet)
	removed := difference(oldLines, newSet)

	changed := len(added) + len(removed)

	return models.DiffResult{
		Added:        added,
		Removed:      removed,
		AddedCount:   len(added),
		RemovedCount: len(removed),
		OldLines:     len(oldLines),
		NewLines:     len(newLines),
		ChangeRatio:  float64(changed) / float64(max(len(oldLines), len(newLines), 1)),
		HasChanges:   changed > 0,
	}
}

// Significance classifies a diff on its own, before any price or analyzer input.
func Significance(d models.DiffResult) models.Significance {
	switch {
	case !d.HasChanges:
		return models.SignificanceNone
	case d.ChangeRatio > highRatio:
		return models.SignificanceHigh
	case d.ChangeRatio > mediumRatio:
		return models.SignificanceMedium
	case d.AddedCount+d.RemovedCount > manyChangedLines:
		return models.SignificanceMedium
	default:
		return models.SignificanceLow
	}
}

// Summary renders a one-line, human-readable description of the diff.
func Summary(d models.DiffResult) string {
	if !d.HasChanges {
		return noChangesSummary
	}

	parts := make([]string, 0, 3)
	if d.AddedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) added", d.AddedCount))
	}
	if d.RemovedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) removed", d.RemovedCount))
	}

	parts = append(parts, fmt.Sprintf("(%.1f%% change)", d.ChangeRatio*100))

	return strings.Join(parts, ", ")
}

func lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}

	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}

	return set
}

// difference keeps the distinct items of from that are missing in other,
// in first-appearance order.
func difference(from []string, other map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range from {
		if _, ok := other[it]; ok {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}

	return out
}
