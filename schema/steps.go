package schema

import "strings"

// StepGroup is an ordered bucket of fields presented together as one wizard
// step. Field order inside a group follows catalog order.
type StepGroup struct {
	StepKey   string
	StepTitle string
	Fields    []FieldDefinition
}

// canonicalSteps is the fixed presentation order for known step keys.
// Fields without a step key fall into the last entry.
var canonicalSteps = []StepGroup{
	{StepKey: "applicant", StepTitle: "申請者情報"},
	{StepKey: "business", StepTitle: "事業計画"},
	{StepKey: "vehicle", StepTitle: "車両・車庫"},
	{StepKey: "funds", StepTitle: "資金・損害賠償"},
	{StepKey: "other", StepTitle: "その他・添付書類"},
}

// GroupFieldsForWizard partitions the field catalog into wizard steps.
// Canonical steps come first in their fixed order; step keys outside the
// canon are appended in first-seen order. Groups that end up with no fields
// are dropped. A field's declared step title, when present, overrides the
// default title for its group.
func GroupFieldsForWizard(fields []FieldDefinition) []StepGroup {
	groups := make(map[string]*StepGroup, len(canonicalSteps))
	order := make([]string, 0, len(canonicalSteps))
	for _, s := range canonicalSteps {
		g := s
		groups[s.StepKey] = &g
		order = append(order, s.StepKey)
	}

	fallback := canonicalSteps[len(canonicalSteps)-1].StepKey
	for _, f := range fields {
		key := strings.TrimSpace(f.StepKey)
		if key == "" {
			key = fallback
		}
		g, ok := groups[key]
		if !ok {
			g = &StepGroup{StepKey: key, StepTitle: key}
			groups[key] = g
			order = append(order, key)
		}
		if title := strings.TrimSpace(f.StepTitle); title != "" {
			g.StepTitle = title
		}
		g.Fields = append(g.Fields, f)
	}

	out := make([]StepGroup, 0, len(order))
	for _, key := range order {
		if g := groups[key]; len(g.Fields) > 0 {
			out = append(out, *g)
		}
	}
	return out
}
