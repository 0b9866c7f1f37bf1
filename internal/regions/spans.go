package regions

import (
	"strings"

	"github.com/KirkDiggler/codearena/internal/models"
)

// RecomputeSpans locates every region in text. A region whose start marker is
// missing or whose braces never balance gets no entry.
func RecomputeSpans(text string, defs []models.RegionDef) map[string]models.RegionSpan {
	lines := strings.Split(text, "\n")
	spans := make(map[string]models.RegionSpan, len(defs))

	for _, def := range defs {
		if span, ok := locate(lines, def); ok {
			spans[def.ID] = span
		}
	}

	return spans
}

func locate(lines []string, def models.RegionDef) (models.RegionSpan, bool) {
	if def.StartMarker == "" {
		return models.RegionSpan{}, false
	}

	start := -1
	for i, line := range lines {
		if strings.Contains(line, def.StartMarker) {
			start = i
			break
		}
	}
	if start < 0 {
		return models.RegionSpan{}, false
	}

	closing := def.EndMarker
	if closing == 0 {
		closing = '}'
	}
	opening := openerFor(closing)

	depth := 0
	for i := start; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case opening:
				depth++
			case closing:
				depth--
			}
		}
		if depth == 0 && strings.ContainsRune(lines[i], closing) {
			return models.RegionSpan{Start: start + 1, End: i + 1}, true
		}
	}

	return models.RegionSpan{}, false
}

func openerFor(closing rune) rune {
	switch closing {
	case ')':
		return '('
	case ']':
		return '['
	case '>':
		return '<'
	default:
		return '{'
	}
}
