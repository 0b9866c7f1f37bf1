package regions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/codearena/internal/models"
)

// Change is a proposed replacement of the whole buffer
type Change struct {
	Old string
	New string
}

// Decision is the outcome of authorizing a change
type Decision struct {
	// Allowed is false when any changed line falls outside the permitted spans
	Allowed bool

	// ChangedLines are the 1-based line numbers that differ
	ChangedLines []int

	// Violations are the changed lines that were not permitted
	Violations []int

	// AllowedRegions names the regions the editor could have changed
	AllowedRegions []string

	// Reason is a human readable explanation when the change is rejected
	Reason string
}

// ChangedLines returns the 1-based indexes where old and new differ, comparing
// line by line at the same index. A line present on only one side counts as
// changed.
func ChangedLines(oldText, newText string) []int {
	if oldText == newText {
		return nil
	}

	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}

	var changed []int
	for i := 0; i < n; i++ {
		if i >= len(oldLines) || i >= len(newLines) || oldLines[i] != newLines[i] {
			changed = append(changed, i+1)
		}
	}
	return changed
}

// Authorize checks change against the editor's own region and the shared
// regions. spans must describe the text the change starts from. A region
// without a span cannot be enforced, so lines outside every resolved span are
// allowed while any region is unresolved.
func Authorize(change Change, myRegionID string, spans map[string]models.RegionSpan, regions []models.Region) Decision {
	changed := ChangedLines(change.Old, change.New)
	decision := Decision{
		Allowed:      true,
		ChangedLines: changed,
	}
	if len(changed) == 0 || len(regions) == 0 {
		return decision
	}

	var permitted []models.RegionSpan
	unresolved := false
	for _, r := range regions {
		span, ok := spans[r.ID]
		if !ok {
			unresolved = true
			continue
		}
		if r.ID == myRegionID && myRegionID != "" {
			permitted = append(permitted, span)
			decision.AllowedRegions = append(decision.AllowedRegions, describe(r, span, "yours"))
			continue
		}
		if r.Shared() {
			permitted = append(permitted, span)
			decision.AllowedRegions = append(decision.AllowedRegions, describe(r, span, "shared"))
		}
	}

	for _, line := range changed {
		if inAny(permitted, line) {
			continue
		}
		if unresolved && !coveredByResolved(line, spans, regions) {
			continue
		}
		decision.Violations = append(decision.Violations, line)
	}

	if len(decision.Violations) == 0 {
		return decision
	}

	decision.Allowed = false
	decision.Reason = rejectionReason(decision.Violations, decision.AllowedRegions, owners(decision.Violations, spans, regions))
	return decision
}

func inAny(spans []models.RegionSpan, line int) bool {
	for _, s := range spans {
		if s.Contains(line) {
			return true
		}
	}
	return false
}

func coveredByResolved(line int, spans map[string]models.RegionSpan, regions []models.Region) bool {
	for _, r := range regions {
		if span, ok := spans[r.ID]; ok && span.Contains(line) {
			return true
		}
	}
	return false
}

// owners lists who holds the regions the violating lines fall in
func owners(lines []int, spans map[string]models.RegionSpan, regions []models.Region) []string {
	seen := make(map[string]bool)
	var out []string
	for _, line := range lines {
		for _, r := range regions {
			span, ok := spans[r.ID]
			if !ok || !span.Contains(line) || seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			holder := r.AssignedName
			if holder == "" {
				holder = r.AssignedTo
			}
			out = append(out, fmt.Sprintf("%s (%s)", r.Name, holder))
		}
	}
	sort.Strings(out)
	return out
}

func describe(r models.Region, span models.RegionSpan, kind string) string {
	return fmt.Sprintf("%s [%s, lines %d-%d]", r.Name, kind, span.Start, span.End)
}

func rejectionReason(violations []int, allowed []string, held []string) string {
	parts := make([]string, len(violations))
	for i, l := range violations {
		parts[i] = fmt.Sprintf("%d", l)
	}

	var b strings.Builder
	if len(violations) == 1 {
		fmt.Fprintf(&b, "line %s is outside the regions you may edit", parts[0])
	} else {
		fmt.Fprintf(&b, "lines %s are outside the regions you may edit", strings.Join(parts, ", "))
	}
	if len(held) > 0 {
		fmt.Fprintf(&b, "; owned by %s", strings.Join(held, ", "))
	}
	if len(allowed) > 0 {
		fmt.Fprintf(&b, "; you may edit %s", strings.Join(allowed, ", "))
	} else {
		b.WriteString("; you have no editable region yet")
	}
	return b.String()
}
