package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mizuki/greenplate/api"
	"github.com/mizuki/greenplate/autosave"
	"github.com/mizuki/greenplate/config"
	"github.com/mizuki/greenplate/schema"
	"github.com/mizuki/greenplate/session"
	"github.com/mizuki/greenplate/tui/formpane"
	"github.com/mizuki/greenplate/tui/help"
	"github.com/mizuki/greenplate/tui/reviewpane"
	"github.com/mizuki/greenplate/tui/shared"
	"github.com/mizuki/greenplate/tui/stepbar"
	"github.com/mizuki/greenplate/wizard"
)

type bootState int

const (
	bootLoading bootState = iota
	bootReady
	bootFailed
)

type App struct {
	cfg    config.Config
	client *api.Client
	store  *session.Store

	boot    bootState
	bootErr error

	fields  []schema.FieldDefinition
	nav     *wizard.Nav
	answers map[string]string
	caseID  string

	driver     *autosave.Driver
	syncCh     chan autosave.Notification
	syncStatus autosave.Status
	syncIssues int

	form     formpane.Model
	stepBar  stepbar.Model
	review   reviewpane.Model
	helpView help.Model
	showHelp bool

	validating bool
	exporting  bool
	statusMsg  string

	width  int
	height int
}

func NewApp(cfg config.Config, client *api.Client, store *session.Store) App {
	shared.InitStyles(cfg.Theme)

	return App{
		cfg:      cfg,
		client:   client,
		store:    store,
		answers:  map[string]string{},
		syncCh:   make(chan autosave.Notification, 8),
		form:     formpane.New(),
		stepBar:  stepbar.New(),
		review:   reviewpane.New(),
		helpView: help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(bootstrapCmd(a.client, a.store), waitSyncCmd(a.syncCh))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentH := msg.Height - 3 // step chips + status bar + spacing
		if contentH < 3 {
			contentH = 3
		}
		a.form.SetSize(msg.Width, contentH)
		a.review.SetSize(msg.Width, contentH)
		a.stepBar.SetSize(msg.Width)
		a.helpView.SetSize(msg.Width, msg.Height)
		return a, nil

	case shared.BootstrappedMsg:
		if msg.Err != nil {
			a.boot = bootFailed
			a.bootErr = msg.Err
			return a, nil
		}
		a.boot = bootReady
		a.fields = msg.Fields
		a.nav = wizard.NewNav(msg.Groups)
		a.answers = msg.Answers
		a.caseID = msg.CaseID

		driver := autosave.New(a.caseID, a.store, saveAnswersFunc(a.client), a.pushSync())
		driver.SetDelay(a.cfg.ResolvedDebounce())
		a.driver = driver

		a.refreshPanes()
		return a, nil

	case shared.SyncStatusMsg:
		a.syncStatus = msg.Note.Status
		a.syncIssues = msg.Note.Issues
		if msg.Note.Status == autosave.StatusError && msg.Note.Err != nil {
			a.statusMsg = "保存エラー: " + msg.Note.Err.Error()
		} else {
			a.statusMsg = ""
		}
		return a, waitSyncCmd(a.syncCh)

	case shared.CacheWriteFailedMsg:
		a.statusMsg = "ローカル保存に失敗: " + msg.Err.Error()
		return a, nil

	case shared.ValidationDoneMsg:
		a.validating = false
		a.review.SetValidating(false)
		if msg.Err != nil {
			a.review.SetStatusText("検証に失敗: " + msg.Err.Error())
			return a, nil
		}
		a.review.SetStatusText("")
		a.review.SetIssues(msg.Count, msg.Issues)
		return a, nil

	case shared.ExportDoneMsg:
		a.exporting = false
		a.review.SetExporting(false)
		if msg.Err != nil {
			a.review.SetStatusText("出力に失敗: " + msg.Err.Error())
			return a, nil
		}
		a.review.SetStatusText("")
		a.review.SetExportPath(msg.Path)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (cursor blinks etc.) belongs to the active pane.
	if a.boot == bootReady {
		return a.routeToActivePane(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, shared.Keys.Quit) {
		a.teardown()
		return a, tea.Quit
	}

	if key.Matches(msg, shared.Keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.boot != bootReady {
		if msg.String() == "q" && a.boot == bootFailed {
			a.teardown()
			return a, tea.Quit
		}
		return a, nil
	}

	// alt+1..9 jumps to a step, alt+0 to review.
	if jump, ok := altDigit(msg); ok {
		cmd := a.commitCmd()
		if jump == 0 {
			a.nav.JumpToReview()
		} else {
			a.nav.JumpToStep(jump - 1)
		}
		a.refreshPanes()
		return a, cmd
	}

	switch {
	case key.Matches(msg, shared.Keys.Validate):
		if a.validating {
			return a, nil
		}
		a.validating = true
		a.review.SetValidating(true)
		return a, validateCmd(a.client, a.caseID)

	case key.Matches(msg, shared.Keys.Export):
		if a.exporting {
			return a, nil
		}
		a.exporting = true
		a.review.SetExporting(true)
		return a, exportCmd(a.client, a.caseID, a.cfg.ResolvedExportDir())

	case key.Matches(msg, shared.Keys.Review):
		cmd := a.commitCmd()
		a.nav.JumpToReview()
		a.refreshPanes()
		return a, cmd

	case key.Matches(msg, shared.Keys.NextStep):
		cmd := a.commitCmd()
		a.nav.JumpToStep(a.nav.StepIndex() + 1)
		a.refreshPanes()
		return a, cmd

	case key.Matches(msg, shared.Keys.PrevStep):
		cmd := a.commitCmd()
		a.nav.JumpToStep(a.nav.StepIndex() - 1)
		a.refreshPanes()
		return a, cmd

	case key.Matches(msg, shared.Keys.Retreat):
		cmd := a.commitCmd()
		a.nav.Retreat()
		a.refreshPanes()
		return a, cmd

	case key.Matches(msg, shared.Keys.Advance):
		// Multiline editors keep enter for newlines; tab still advances.
		if msg.String() == "enter" && a.activeIsTextarea() {
			return a.routeToActivePane(msg)
		}
		if a.nav.ReviewMode() {
			return a, nil
		}
		cmd := a.commitCmd()
		a.nav.Advance()
		a.refreshPanes()
		return a, cmd
	}

	return a.routeToActivePane(msg)
}

// routeToActivePane forwards input to the review list or the field editor
// and records any resulting answer mutation.
func (a App) routeToActivePane(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.nav == nil {
		return a, nil
	}
	if a.nav.ReviewMode() {
		var cmd tea.Cmd
		a.review, cmd = a.review.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)

	if commit := a.commitCmd(); commit != nil {
		return a, tea.Batch(cmd, commit)
	}
	a.stepBar.SetState(a.nav.Groups(), a.nav.StepIndex(), a.answers)
	return a, cmd
}

// commitCmd commits the active editor value and turns a failed local cache
// write into a CacheWriteFailedMsg so it reaches the status bar no matter
// which key triggered the commit.
func (a *App) commitCmd() tea.Cmd {
	err := a.commitActive()
	if err == nil {
		return nil
	}
	return func() tea.Msg { return shared.CacheWriteFailedMsg{Err: err} }
}

// commitActive folds the editor's current text into the answer map and, on
// change, hands the new snapshot to the sync driver: local cache write now,
// debounced remote save later.
func (a *App) commitActive() error {
	if a.nav == nil {
		return nil
	}
	f, ok := a.nav.ActiveField()
	if !ok {
		return nil
	}
	value := a.form.Value()
	if a.answers[f.FieldID] == value {
		return nil
	}
	a.answers[f.FieldID] = value
	if a.driver == nil {
		return nil
	}
	return a.driver.Record(a.answers)
}

func (a *App) refreshPanes() {
	a.stepBar.SetState(a.nav.Groups(), a.nav.StepIndex(), a.answers)
	if f, ok := a.nav.ActiveField(); ok {
		g, _ := a.nav.ActiveGroup()
		pos := fmt.Sprintf("%d/%d", a.nav.FieldIndex()+1, len(g.Fields))
		a.form.SetField(f, a.answers[f.FieldID], g.StepTitle, pos)
		return
	}
	a.form.ClearField()
	a.review.SetProgress(wizard.Progress(a.fields, a.answers))
	a.review.SetMissing(wizard.MissingRequired(a.fields, a.answers))
}

func (a App) activeIsTextarea() bool {
	if a.nav == nil {
		return false
	}
	f, ok := a.nav.ActiveField()
	return ok && schema.DetectInputType(f) == schema.InputTextarea
}

func (a *App) teardown() {
	if a.driver != nil {
		a.driver.Close()
	}
}

func (a App) View() string {
	if a.showHelp {
		return a.helpView.View()
	}

	switch a.boot {
	case bootLoading:
		return "\n  " + shared.DimStyle.Render("サーバーに接続中...")
	case bootFailed:
		return "\n  " + shared.ErrorStyle.Render("起動に失敗しました: "+a.bootErr.Error()) +
			"\n\n  " + shared.HelpDescStyle.Render("q: 終了")
	}

	var view string
	view = "\n" + a.stepBar.View() + "\n"
	if a.nav.ReviewMode() {
		view += a.review.View()
	} else {
		view += a.form.View()
	}
	view += a.renderStatusBar()
	return view
}

func (a App) renderStatusBar() string {
	short := a.caseID
	if len(short) > 8 {
		short = short[:8]
	}
	status := "案件 " + short

	switch a.syncStatus {
	case autosave.StatusSaving:
		status += " │ 保存中..."
	case autosave.StatusSaved:
		if a.syncIssues > 0 {
			status += fmt.Sprintf(" │ 保存済み (指摘 %d)", a.syncIssues)
		} else {
			status += " │ 保存済み"
		}
	case autosave.StatusError:
		status += " │ 保存エラー"
	}

	status += fmt.Sprintf(" │ 必須 %d%%", wizard.Progress(a.fields, a.answers))
	if a.statusMsg != "" {
		status += " │ " + a.statusMsg
	}
	status += " │ C-g: ヘルプ"

	return "\n" + shared.StatusBarStyle.Width(a.width).Render(status)
}

func altDigit(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 5 || s[:4] != "alt+" {
		return 0, false
	}
	n, err := strconv.Atoi(s[4:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// --- Commands ---

// caseSource adapts the API client to the reconciler's narrow view.
type caseSource struct {
	c *api.Client
}

func (s caseSource) CreateCase(ctx context.Context, title string) (string, error) {
	cs, err := s.c.CreateCase(ctx, title)
	return cs.ID, err
}

func (s caseSource) CaseAnswers(ctx context.Context, caseID string) (map[string]string, error) {
	detail, err := s.c.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return detail.AnswersRaw, nil
}

func bootstrapCmd(client *api.Client, store *session.Store) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if err := client.Health(ctx); err != nil {
			return shared.BootstrappedMsg{Err: fmt.Errorf("サーバーに接続できません: %w", err)}
		}

		sc, err := client.GetSchema(ctx)
		if err != nil {
			return shared.BootstrappedMsg{Err: fmt.Errorf("fetching schema: %w", err)}
		}
		groups := schema.GroupFieldsForWizard(sc.Fields)

		snap, err := store.Load()
		if err != nil {
			// An unreadable cache behaves like no cache.
			snap = nil
		}

		caseID, answers, err := session.Reconcile(ctx, snap, caseSource{client})
		if err != nil {
			return shared.BootstrappedMsg{Err: err}
		}

		return shared.BootstrappedMsg{
			Fields:  sc.Fields,
			Groups:  groups,
			CaseID:  caseID,
			Answers: answers,
		}
	}
}

func waitSyncCmd(ch chan autosave.Notification) tea.Cmd {
	return func() tea.Msg {
		return shared.SyncStatusMsg{Note: <-ch}
	}
}

func (a App) pushSync() func(autosave.Notification) {
	ch := a.syncCh
	return func(n autosave.Notification) {
		select {
		case ch <- n:
		default:
			// Full: drop the oldest notification so the latest status
			// always lands and the bar never sticks on a stale state.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}

func saveAnswersFunc(client *api.Client) autosave.SaveFunc {
	return func(caseID string, answers map[string]string) (int, error) {
		res, err := client.SaveAnswers(context.Background(), caseID, answers)
		if err != nil {
			return 0, err
		}
		return len(res.Issues), nil
	}
}

func validateCmd(client *api.Client, caseID string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Validate(context.Background(), caseID)
		if err != nil {
			return shared.ValidationDoneMsg{Err: err}
		}
		return shared.ValidationDoneMsg{Count: res.IssueCount, Issues: res.Issues}
	}
}

func exportCmd(client *api.Client, caseID, dir string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.Export(context.Background(), caseID, true)
		if err != nil {
			return shared.ExportDoneMsg{Err: err}
		}
		short := caseID
		if len(short) > 8 {
			short = short[:8]
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return shared.ExportDoneMsg{Err: fmt.Errorf("creating export dir: %w", err)}
		}
		path := filepath.Join(dir, "export_"+short+".zip")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return shared.ExportDoneMsg{Err: fmt.Errorf("writing package: %w", err)}
		}
		return shared.ExportDoneMsg{Path: path}
	}
}
