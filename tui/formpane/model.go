package formpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mizuki/greenplate/schema"
	"github.com/mizuki/greenplate/tui/shared"
)

// Model renders the single active field and owns its editor widget. The
// widget kind (single line vs textarea) follows schema.DetectInputType; the
// stored value is always the raw string the user typed.
type Model struct {
	field     schema.FieldDefinition
	inputType schema.InputType
	hasField  bool
	stepTitle string
	position  string

	textInput textinput.Model
	textArea  textarea.Model

	width  int
	height int
}

func New() Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	ta := textarea.New()
	ta.CharLimit = 2000
	ta.SetHeight(4)
	ta.SetWidth(60)

	return Model{textInput: ti, textArea: ta}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	inputW := w - 6
	if inputW > 80 {
		inputW = 80
	}
	if inputW < 20 {
		inputW = 20
	}
	m.textInput.Width = inputW
	m.textArea.SetWidth(inputW)
}

// SetField switches the pane to a new active field, seeding the editor with
// the field's current answer. position is a human label like "3/12".
func (m *Model) SetField(f schema.FieldDefinition, value, stepTitle, position string) {
	m.field = f
	m.hasField = true
	m.stepTitle = stepTitle
	m.position = position
	m.inputType = schema.DetectInputType(f)

	placeholder := f.Example
	if placeholder == "" {
		switch m.inputType {
		case schema.InputDate:
			placeholder = "YYYY-MM-DD"
		case schema.InputNumber:
			placeholder = "0"
		}
	}

	if m.inputType == schema.InputTextarea {
		m.textInput.Blur()
		m.textArea.Placeholder = placeholder
		m.textArea.SetValue(value)
		m.textArea.CursorEnd()
		m.textArea.Focus()
		return
	}
	m.textArea.Blur()
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

// ClearField blanks the pane (review mode or empty catalog).
func (m *Model) ClearField() {
	m.hasField = false
	m.textInput.Blur()
	m.textArea.Blur()
}

// Value returns the editor's current raw text.
func (m Model) Value() string {
	if m.inputType == schema.InputTextarea {
		return m.textArea.Value()
	}
	return m.textInput.Value()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.inputType == schema.InputTextarea {
		m.textArea, cmd = m.textArea.Update(msg)
	} else {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.hasField {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + shared.StepTitleStyle.Render(m.stepTitle))
	b.WriteString("  " + shared.PositionStyle.Render(m.position))
	b.WriteString("\n\n")

	name := m.field.ItemName
	if name == "" {
		name = m.field.FieldID
	}
	b.WriteString("  " + shared.ItemNameStyle.Render(name))
	if bool(m.field.Required) {
		b.WriteString(" " + shared.RequiredBadge.Render("必須"))
	}
	b.WriteString("\n")
	if m.field.Question != "" {
		b.WriteString("  " + shared.QuestionStyle.Render(m.field.Question))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	meta := [][2]string{
		{"形式", m.field.Format},
		{"例", m.field.Example},
		{"根拠資料", m.field.Evidence},
		{"記入内容", m.field.WhatToFill},
	}
	for _, kv := range meta {
		if kv[1] == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			shared.MetaLabelStyle.Render(kv[0]+":"),
			shared.MetaValueStyle.Render(kv[1])))
	}
	b.WriteString("\n")

	if m.inputType == schema.InputTextarea {
		b.WriteString(m.textArea.View())
	} else {
		b.WriteString("  " + m.textInput.View())
	}
	b.WriteString("\n")

	return b.String()
}
