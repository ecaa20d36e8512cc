package stepbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mizuki/greenplate/schema"
	"github.com/mizuki/greenplate/tui/shared"
	"github.com/mizuki/greenplate/wizard"
)

// Model renders the step chips, including the trailing review chip. Chips
// are numbered so they can be jumped to with alt+1..9 (review is alt+0).
type Model struct {
	groups  []schema.StepGroup
	active  int
	answers map[string]string
	width   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w int) {
	m.width = w
}

// SetState updates what the chips display: the navigable groups, the active
// step index (len(groups) selects the review chip) and the live answers used
// for the per-step answered counts.
func (m *Model) SetState(groups []schema.StepGroup, active int, answers map[string]string) {
	m.groups = groups
	m.active = active
	m.answers = answers
}

func (m Model) View() string {
	if len(m.groups) == 0 {
		return ""
	}

	chips := make([]string, 0, len(m.groups)+1)
	for i, g := range m.groups {
		done := wizard.AnsweredInGroup(g, m.answers)
		label := fmt.Sprintf("%d %s %d/%d", i+1, g.StepTitle, done, len(g.Fields))
		switch {
		case i == m.active:
			chips = append(chips, shared.ChipActiveStyle.Render(label))
		case done == len(g.Fields):
			chips = append(chips, shared.ChipDoneStyle.Render(label))
		default:
			chips = append(chips, shared.ChipStyle.Render(label))
		}
	}

	review := "0 確認・出力"
	if m.active >= len(m.groups) {
		chips = append(chips, shared.ChipActiveStyle.Render(review))
	} else {
		chips = append(chips, shared.ChipStyle.Render(review))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(chips)...)
	return " " + row
}

func joinWithGap(chips []string) []string {
	out := make([]string, 0, len(chips)*2)
	for i, c := range chips {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}
