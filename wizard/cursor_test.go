package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuki/greenplate/schema"
)

func testGroups() []schema.StepGroup {
	return []schema.StepGroup{
		{StepKey: "applicant", StepTitle: "申請者情報", Fields: []schema.FieldDefinition{
			{FieldID: "a1"}, {FieldID: "a2"},
		}},
		{StepKey: "vehicle", StepTitle: "車両・車庫", Fields: []schema.FieldDefinition{
			{FieldID: "v1"}, {FieldID: "v2"}, {FieldID: "v3"},
		}},
	}
}

func activeID(t *testing.T, n *Nav) string {
	t.Helper()
	f, ok := n.ActiveField()
	require.True(t, ok, "expected an active field")
	return f.FieldID
}

func TestNav_InitialState(t *testing.T) {
	n := NewNav(testGroups())

	assert.Equal(t, 0, n.StepIndex())
	assert.False(t, n.ReviewMode())
	assert.Equal(t, "a1", activeID(t, n))
}

func TestNav_AdvanceWalksFieldsThenStepsThenReview(t *testing.T) {
	n := NewNav(testGroups())

	want := []string{"a1", "a2", "v1", "v2", "v3"}
	for i, id := range want {
		assert.Equal(t, id, activeID(t, n), "position %d", i)
		n.Advance()
	}

	assert.True(t, n.ReviewMode())
	_, ok := n.ActiveField()
	assert.False(t, ok, "no field is active in review mode")
}

func TestNav_AdvanceFromReviewIsNoOp(t *testing.T) {
	n := NewNav(testGroups())
	for i := 0; i < 10; i++ {
		n.Advance()
	}

	assert.True(t, n.ReviewMode())
	assert.Equal(t, len(n.Groups()), n.StepIndex())

	n.Advance()
	assert.Equal(t, len(n.Groups()), n.StepIndex(), "advance in review mode is idempotent")
}

func TestNav_RetreatFromInitialIsNoOp(t *testing.T) {
	n := NewNav(testGroups())

	n.Retreat()

	assert.Equal(t, 0, n.StepIndex())
	assert.Equal(t, "a1", activeID(t, n))
}

func TestNav_RetreatFromReviewLandsOnLastStep(t *testing.T) {
	n := NewNav(testGroups())
	n.JumpToReview()

	n.Retreat()

	assert.False(t, n.ReviewMode())
	assert.Equal(t, 1, n.StepIndex())
}

func TestNav_RetreatPreservesOtherStepCursor(t *testing.T) {
	n := NewNav(testGroups())
	// Walk to v2: a1 -> a2 -> v1 -> v2.
	n.Advance()
	n.Advance()
	n.Advance()
	require.Equal(t, "v2", activeID(t, n))

	// Back across the step boundary lands on a2 (the applicant cursor
	// stayed where it was), not on a1.
	n.Retreat()
	require.Equal(t, "v1", activeID(t, n))
	n.Retreat()
	assert.Equal(t, "a2", activeID(t, n))

	// Forward again: vehicle resumes where its cursor last was.
	n.Advance()
	assert.Equal(t, "v2", activeID(t, n))
}

func TestNav_JumpToStepClampsAndAllowsReview(t *testing.T) {
	n := NewNav(testGroups())

	n.JumpToStep(1)
	assert.Equal(t, 1, n.StepIndex())

	n.JumpToStep(2)
	assert.True(t, n.ReviewMode())

	n.JumpToStep(99)
	assert.Equal(t, 2, n.StepIndex(), "clamped to review")

	n.JumpToStep(-5)
	assert.Equal(t, 0, n.StepIndex())
}

func TestNav_CursorStaysInBoundsUnderRandomWalk(t *testing.T) {
	n := NewNav(testGroups())

	ops := []func(){n.Advance, n.Retreat, n.Advance, n.Advance,
		n.Retreat, n.Advance, n.Advance, n.Advance, n.Advance,
		n.Retreat, n.Advance, n.Advance}
	for _, op := range ops {
		op()
		assert.GreaterOrEqual(t, n.StepIndex(), 0)
		assert.LessOrEqual(t, n.StepIndex(), len(n.Groups()))
		if g, ok := n.ActiveGroup(); ok {
			assert.GreaterOrEqual(t, n.FieldIndex(), 0)
			assert.Less(t, n.FieldIndex(), len(g.Fields))
		}
	}
}

func TestNav_EmptyGroupsStartInReview(t *testing.T) {
	n := NewNav(nil)

	assert.True(t, n.ReviewMode())
	_, ok := n.ActiveField()
	assert.False(t, ok)

	n.Advance()
	assert.True(t, n.ReviewMode())

	n.Retreat()
	assert.Equal(t, 0, n.StepIndex())
	assert.True(t, n.ReviewMode(), "no groups: index 0 is already terminal")
}
