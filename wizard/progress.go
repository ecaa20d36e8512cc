package wizard

import (
	"strings"

	"github.com/mizuki/greenplate/schema"
)

// Answered reports whether a field has a non-blank answer. A value of
// whitespace only counts the same as no value at all.
func Answered(answers map[string]string, fieldID string) bool {
	return strings.TrimSpace(answers[fieldID]) != ""
}

// MissingRequired returns the required fields whose current answer is blank,
// in catalog order. It always recomputes from the live answers.
func MissingRequired(fields []schema.FieldDefinition, answers map[string]string) []schema.FieldDefinition {
	var missing []schema.FieldDefinition
	for _, f := range fields {
		if bool(f.Required) && !Answered(answers, f.FieldID) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Progress returns the percentage of required fields answered, 0-100.
// A catalog with no required fields reports 0.
func Progress(fields []schema.FieldDefinition, answers map[string]string) int {
	var required, done int
	for _, f := range fields {
		if !bool(f.Required) {
			continue
		}
		required++
		if Answered(answers, f.FieldID) {
			done++
		}
	}
	if required == 0 {
		return 0
	}
	return done * 100 / required
}

// AnsweredInGroup counts the group's fields with non-blank answers, used by
// the step chips.
func AnsweredInGroup(g schema.StepGroup, answers map[string]string) int {
	var n int
	for _, f := range g.Fields {
		if Answered(answers, f.FieldID) {
			n++
		}
	}
	return n
}
