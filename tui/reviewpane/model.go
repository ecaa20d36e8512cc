package reviewpane

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mizuki/greenplate/api"
	"github.com/mizuki/greenplate/schema"
	"github.com/mizuki/greenplate/tui/shared"
)

// Model is the terminal review pseudo-step: aggregate progress, the
// locally computed missing-required list, server validation issues and the
// export affordance.
type Model struct {
	progress   int
	missing    []schema.FieldDefinition
	issues     []api.Issue
	issueCount int
	validated  bool
	validating bool
	exporting  bool
	exportPath string
	statusText string

	scroll int
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *Model) SetProgress(pct int) {
	m.progress = pct
}

func (m *Model) SetMissing(missing []schema.FieldDefinition) {
	m.missing = missing
}

// SetIssues replaces the issue list wholesale; partial merges never happen.
func (m *Model) SetIssues(count int, issues []api.Issue) {
	m.issueCount = count
	m.issues = issues
	m.validated = true
}

func (m *Model) SetValidating(v bool) { m.validating = v }

func (m *Model) SetExporting(v bool) { m.exporting = v }

func (m *Model) SetExportPath(path string) { m.exportPath = path }

// SetStatusText shows a transient status line (e.g. a failed validation
// call); it does not touch the issue list.
func (m *Model) SetStatusText(text string) { m.statusText = text }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		}
	}
	return m, nil
}

func (m Model) View() string {
	lines := m.buildLines()

	visible := m.height - 2
	if visible < 1 {
		visible = 1
	}
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := m.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	end := scroll + visible
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[scroll:end], "\n") + "\n"
}

func (m Model) buildLines() []string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("")
	add("  " + shared.SectionStyle.Render("確認・出力"))
	add("")
	add(fmt.Sprintf("  %s %d%%", shared.MetaLabelStyle.Render("必須項目の入力率:"), m.progress))
	add("")

	if len(m.missing) == 0 {
		add("  " + shared.SuccessStyle.Render("未入力の必須項目はありません"))
	} else {
		add("  " + shared.WarningStyle.Render(fmt.Sprintf("未入力の必須項目 (%d)", len(m.missing))))
		for _, f := range m.missing {
			name := f.ItemName
			if name == "" {
				name = f.FieldID
			}
			add("    " + shared.MutedStyle.Render("• "+name))
		}
	}
	add("")

	switch {
	case m.validating:
		add("  " + shared.DimStyle.Render("検証中..."))
	case m.validated && m.issueCount == 0:
		add("  " + shared.SuccessStyle.Render("検証: 指摘事項はありません"))
	case m.validated:
		add("  " + shared.SectionStyle.Render(fmt.Sprintf("検証結果 (%d)", m.issueCount)))
		for _, issue := range m.issues {
			style := shared.IssueWarningStyle
			if issue.Severity == "error" {
				style = shared.IssueErrorStyle
			}
			add(fmt.Sprintf("    %s %s", style.Render("["+issue.Severity+"]"),
				issue.FieldID+" "+issue.Message))
		}
	default:
		add("  " + shared.DimStyle.Render("C-t で検証を実行"))
	}
	add("")

	if m.exporting {
		add("  " + shared.DimStyle.Render("出力パッケージを生成中..."))
	} else if m.exportPath != "" {
		add("  " + shared.SuccessStyle.Render("出力済み: "+m.exportPath))
	}

	if m.statusText != "" {
		add("")
		add("  " + shared.ErrorStyle.Render(m.statusText))
	}

	add("")
	add("  " + shared.HelpDescStyle.Render("C-t: 検証  C-e: 出力  S-tab: 戻る  j/k: スクロール"))
	return lines
}
