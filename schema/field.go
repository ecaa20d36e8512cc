package schema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldDefinition is one entry of the intake field catalog, as served by the
// export service's /schema endpoint. The catalog is fetched once per session
// and never mutated afterwards.
type FieldDefinition struct {
	FieldID    string   `json:"field_id"`
	StepKey    string   `json:"step_key"`
	StepTitle  string   `json:"step_title"`
	ItemName   string   `json:"item_name"`
	Question   string   `json:"question"`
	Format     string   `json:"format"`
	Example    string   `json:"example"`
	Evidence   string   `json:"evidence"`
	WhatToFill string   `json:"what_to_fill"`
	Required   FlexBool `json:"required"`
}

// FlexBool unmarshals the loose required flag the schema spreadsheet
// produces: true/false, "true", "1", "yes", "required" or "必須" (possibly
// embedded in a longer note like "必須（現住所）").
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*b = false
		return nil
	}
	if data[0] != '"' {
		var v bool
		if err := json.Unmarshal(data, &v); err == nil {
			*b = FlexBool(v)
			return nil
		}
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*b = n != 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "required", "必須":
		*b = true
	default:
		*b = FlexBool(strings.Contains(s, "必須"))
	}
	return nil
}

// InputType selects the editing affordance for a field.
type InputType string

const (
	InputDate     InputType = "date"
	InputNumber   InputType = "number"
	InputTextarea InputType = "textarea"
	InputText     InputType = "text"
)

// DetectInputType guesses the right editor for a field from its format hint
// and surrounding text. It is a display heuristic only: the stored answer is
// always a raw string, and nothing here rejects or transforms it.
//
// Precedence: date, then number, then textarea, then plain text.
func DetectInputType(f FieldDefinition) InputType {
	format := strings.ToLower(f.Format)
	combined := strings.ToLower(f.ItemName + f.Question + f.Format)

	switch {
	case strings.Contains(format, "yyyy"),
		strings.Contains(format, "date"),
		strings.Contains(format, "和暦"),
		strings.Contains(combined, "日付"):
		return InputDate
	case strings.Contains(format, "number"),
		strings.Contains(format, "amount"),
		strings.Contains(format, "数字"),
		strings.Contains(format, "金額"):
		return InputNumber
	case strings.Contains(combined, "address"),
		strings.Contains(combined, "住所"),
		strings.Contains(combined, "attachment"),
		strings.Contains(combined, "添付"),
		strings.Contains(combined, "detail"),
		strings.Contains(combined, "詳細"):
		return InputTextarea
	}
	return InputText
}
