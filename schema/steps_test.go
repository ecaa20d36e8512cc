package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(id, stepKey, stepTitle string) FieldDefinition {
	return FieldDefinition{FieldID: id, StepKey: stepKey, StepTitle: stepTitle}
}

func TestGroupFieldsForWizard_CanonicalOrder(t *testing.T) {
	fields := []FieldDefinition{
		field("f1", "vehicle", ""),
		field("f2", "applicant", ""),
		field("f3", "funds", ""),
	}

	groups := GroupFieldsForWizard(fields)

	require.Len(t, groups, 3)
	assert.Equal(t, "applicant", groups[0].StepKey)
	assert.Equal(t, "vehicle", groups[1].StepKey)
	assert.Equal(t, "funds", groups[2].StepKey)
}

func TestGroupFieldsForWizard_UnknownKeysAppendFirstSeen(t *testing.T) {
	fields := []FieldDefinition{
		field("f1", "zeta", "ゼータ"),
		field("f2", "applicant", ""),
		field("f3", "alpha", "アルファ"),
		field("f4", "zeta", ""),
	}

	groups := GroupFieldsForWizard(fields)

	require.Len(t, groups, 3)
	assert.Equal(t, "applicant", groups[0].StepKey)
	assert.Equal(t, "zeta", groups[1].StepKey, "unknown keys keep first-seen order after the canon")
	assert.Equal(t, "alpha", groups[2].StepKey)
	assert.Equal(t, "ゼータ", groups[1].StepTitle, "title comes from the contributing field")
	assert.Len(t, groups[1].Fields, 2)
}

func TestGroupFieldsForWizard_EmptyStepKeyFallsToLastCanonical(t *testing.T) {
	fields := []FieldDefinition{
		field("f1", "", ""),
		field("f2", "  ", ""),
	}

	groups := GroupFieldsForWizard(fields)

	require.Len(t, groups, 1)
	assert.Equal(t, "other", groups[0].StepKey)
	assert.Equal(t, "その他・添付書類", groups[0].StepTitle)
	assert.Len(t, groups[0].Fields, 2)
}

func TestGroupFieldsForWizard_TitleOverride(t *testing.T) {
	fields := []FieldDefinition{
		field("f1", "applicant", "申請者の基本情報"),
		field("f2", "applicant", "申請者（最終）"),
	}

	groups := GroupFieldsForWizard(fields)

	require.Len(t, groups, 1)
	assert.Equal(t, "申請者（最終）", groups[0].StepTitle, "last contributing field wins")
}

func TestGroupFieldsForWizard_NeverEmitsEmptyGroup(t *testing.T) {
	fields := []FieldDefinition{field("f1", "vehicle", "")}

	groups := GroupFieldsForWizard(fields)

	require.Len(t, groups, 1)
	for _, g := range groups {
		assert.NotEmpty(t, g.Fields)
	}
}

func TestGroupFieldsForWizard_EmptyCatalog(t *testing.T) {
	assert.Empty(t, GroupFieldsForWizard(nil))
	assert.Empty(t, GroupFieldsForWizard([]FieldDefinition{}))
}

func TestGroupFieldsForWizard_FieldOrderIsCatalogOrder(t *testing.T) {
	fields := []FieldDefinition{
		field("a", "vehicle", ""),
		field("b", "applicant", ""),
		field("c", "vehicle", ""),
	}

	groups := GroupFieldsForWizard(fields)

	require.Len(t, groups, 2)
	vehicle := groups[1]
	require.Len(t, vehicle.Fields, 2)
	assert.Equal(t, "a", vehicle.Fields[0].FieldID)
	assert.Equal(t, "c", vehicle.Fields[1].FieldID)
}
