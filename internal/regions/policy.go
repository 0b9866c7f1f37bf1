package regions

import (
	"sync"

	"github.com/KirkDiggler/codearena/internal/models"
)

// Policy holds one room's region state: the assignments and the spans located
// in the buffer text it was last given.
type Policy struct {
	mu      sync.RWMutex
	defs    []models.RegionDef
	regions []models.Region
	spans   map[string]models.RegionSpan
	text    string
}

// NewPolicy creates a policy for a challenge's region definitions
func NewPolicy(defs []models.RegionDef) *Policy {
	return &Policy{
		defs:    append([]models.RegionDef(nil), defs...),
		regions: FromDefs(defs),
		spans:   map[string]models.RegionSpan{},
	}
}

// Reset swaps in a new challenge. Assignments and spans start over.
func (p *Policy) Reset(defs []models.RegionDef, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.defs = append([]models.RegionDef(nil), defs...)
	p.regions = FromDefs(defs)
	p.text = text
	p.spans = RecomputeSpans(text, p.defs)
}

// SetRegions replaces the assignment state, typically with the persisted copy
func (p *Policy) SetRegions(regions []models.Region) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.regions = Clone(regions)
	defs := make([]models.RegionDef, len(regions))
	for i, r := range regions {
		defs[i] = r.RegionDef
	}
	p.defs = defs
	p.spans = RecomputeSpans(p.text, p.defs)
}

// SetText recomputes spans for the current buffer
func (p *Policy) SetText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.text = text
	p.spans = RecomputeSpans(text, p.defs)
}

// Regions returns a copy of the current assignments
func (p *Policy) Regions() []models.Region {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Clone(p.regions)
}

// Spans returns a copy of the current spans
func (p *Policy) Spans() map[string]models.RegionSpan {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]models.RegionSpan, len(p.spans))
	for k, v := range p.spans {
		out[k] = v
	}
	return out
}

// RegionFor returns a copy of the region held by participantID
func (p *Policy) RegionFor(participantID string) (models.Region, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r := RegionFor(p.regions, participantID)
	if r == nil {
		return models.Region{}, false
	}
	return *r, true
}

// Assign runs AssignNextRegion against the policy's own state
func (p *Policy) Assign(participant models.Participant, teamSize int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AssignNextRegion(p.regions, participant, teamSize)
}

// Authorize checks a change made by editorID against the current spans
func (p *Policy) Authorize(editorID, oldText, newText string) Decision {
	p.mu.RLock()
	defer p.mu.RUnlock()

	myRegionID := ""
	if r := RegionFor(p.regions, editorID); r != nil {
		myRegionID = r.ID
	}

	spans := p.spans
	if oldText != p.text {
		spans = RecomputeSpans(oldText, p.defs)
	}

	return Authorize(Change{Old: oldText, New: newText}, myRegionID, spans, p.regions)
}
