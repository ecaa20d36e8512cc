// Package wizard holds the navigation state machine and the local progress
// computations for the guided intake flow. It is UI-free: the tui packages
// render whatever this package says is active.
package wizard

import "github.com/mizuki/greenplate/schema"

// Nav tracks the user's position in the wizard: which step group is active
// and, per group, which field within it. The position one past the last
// group is the review pseudo-step, where no single field is active.
//
// Nav is the only writer of its own state; callers mutate it exclusively
// through Advance, Retreat and JumpToStep.
type Nav struct {
	groups      []schema.StepGroup
	stepIndex   int
	fieldCursor map[string]int
}

// NewNav starts at the first field of the first step. With no groups at all
// the wizard begins directly in review mode.
func NewNav(groups []schema.StepGroup) *Nav {
	return &Nav{
		groups:      groups,
		fieldCursor: make(map[string]int, len(groups)),
	}
}

// Groups returns the navigable step groups.
func (n *Nav) Groups() []schema.StepGroup { return n.groups }

// StepIndex returns the active step index; len(groups) means review mode.
func (n *Nav) StepIndex() int { return n.stepIndex }

// ReviewMode reports whether the terminal review pseudo-step is active.
func (n *Nav) ReviewMode() bool { return n.stepIndex >= len(n.groups) }

// ActiveGroup returns the active step group, or false in review mode.
func (n *Nav) ActiveGroup() (schema.StepGroup, bool) {
	if n.ReviewMode() {
		return schema.StepGroup{}, false
	}
	return n.groups[n.stepIndex], true
}

// FieldIndex returns the active group's field cursor, clamped into range.
// Returns 0 in review mode.
func (n *Nav) FieldIndex() int {
	g, ok := n.ActiveGroup()
	if !ok || len(g.Fields) == 0 {
		return 0
	}
	cur := n.fieldCursor[g.StepKey]
	if cur < 0 {
		return 0
	}
	if cur >= len(g.Fields) {
		return len(g.Fields) - 1
	}
	return cur
}

// ActiveField returns the field the wizard is currently asking about, or
// false in review mode and on an empty catalog.
func (n *Nav) ActiveField() (schema.FieldDefinition, bool) {
	g, ok := n.ActiveGroup()
	if !ok || len(g.Fields) == 0 {
		return schema.FieldDefinition{}, false
	}
	return g.Fields[n.FieldIndex()], true
}

// Advance moves to the next field, then to the next step, and finally into
// review mode. Calling it in review mode is a no-op.
func (n *Nav) Advance() {
	g, ok := n.ActiveGroup()
	if !ok {
		return
	}
	cur := n.FieldIndex()
	if cur+1 < len(g.Fields) {
		n.fieldCursor[g.StepKey] = cur + 1
		return
	}
	// Entering the next group resumes wherever its cursor last was.
	n.stepIndex++
}

// Retreat moves backwards: out of review mode onto the last step, then field
// by field, then step by step. At the very start it is a no-op.
func (n *Nav) Retreat() {
	if n.ReviewMode() {
		if len(n.groups) == 0 {
			n.stepIndex = 0
			return
		}
		n.stepIndex = len(n.groups) - 1
		return
	}
	g := n.groups[n.stepIndex]
	if cur := n.FieldIndex(); cur > 0 {
		n.fieldCursor[g.StepKey] = cur - 1
		return
	}
	if n.stepIndex > 0 {
		n.stepIndex--
	}
}

// JumpToStep assigns the step index directly, clamped into
// [0, len(groups)]; the top of the range selects review mode. Field cursors
// are left untouched so each step resumes where it was.
func (n *Nav) JumpToStep(index int) {
	if index < 0 {
		index = 0
	}
	if index > len(n.groups) {
		index = len(n.groups)
	}
	n.stepIndex = index
}

// JumpToReview enters the terminal review pseudo-step.
func (n *Nav) JumpToReview() { n.stepIndex = len(n.groups) }
