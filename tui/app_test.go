package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mizuki/greenplate/api"
	"github.com/mizuki/greenplate/autosave"
	"github.com/mizuki/greenplate/config"
	"github.com/mizuki/greenplate/schema"
	"github.com/mizuki/greenplate/session"
	"github.com/mizuki/greenplate/tui/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []schema.FieldDefinition {
	return []schema.FieldDefinition{
		{FieldID: "a1", StepKey: "applicant", ItemName: "氏名", Required: true},
		{FieldID: "v1", StepKey: "vehicle", ItemName: "車両数"},
	}
}

// readyApp boots an App straight into the ready state without touching the
// network. store may be nil.
func readyApp(t *testing.T, store *session.Store) App {
	t.Helper()
	app := NewApp(config.Config{}, api.NewClient("http://localhost:0", ""), store)
	fields := testCatalog()
	model, _ := app.Update(shared.BootstrappedMsg{
		Fields:  fields,
		Groups:  schema.GroupFieldsForWizard(fields),
		CaseID:  "case-123456789",
		Answers: map[string]string{},
	})
	a := model.(App)
	t.Cleanup(a.teardown)
	return a
}

func TestExportGuardBlocksConcurrentRuns(t *testing.T) {
	a := readyApp(t, nil)
	keyE := tea.KeyMsg{Type: tea.KeyCtrlE}

	model, cmd := a.Update(keyE)
	a = model.(App)
	require.NotNil(t, cmd)
	assert.True(t, a.exporting)

	// A second C-e while an export is running must not start another one.
	model, cmd = a.Update(keyE)
	a = model.(App)
	assert.Nil(t, cmd)

	model, _ = a.Update(shared.ExportDoneMsg{Err: errors.New("boom")})
	a = model.(App)
	assert.False(t, a.exporting, "guard must clear on failure")

	model, cmd = a.Update(keyE)
	a = model.(App)
	require.NotNil(t, cmd, "a new export must be possible after a failure")

	model, _ = a.Update(shared.ExportDoneMsg{Path: "export_case-123.zip"})
	a = model.(App)
	assert.False(t, a.exporting, "guard must clear on success")
}

func TestValidateGuardBlocksConcurrentRuns(t *testing.T) {
	a := readyApp(t, nil)
	keyT := tea.KeyMsg{Type: tea.KeyCtrlT}

	model, cmd := a.Update(keyT)
	a = model.(App)
	require.NotNil(t, cmd)
	assert.True(t, a.validating)

	model, cmd = a.Update(keyT)
	a = model.(App)
	assert.Nil(t, cmd)

	model, _ = a.Update(shared.ValidationDoneMsg{Err: errors.New("connection refused")})
	a = model.(App)
	assert.False(t, a.validating)
}

func TestNavKeySurfacesCacheWriteFailure(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	a := readyApp(t, store)
	// Make the editor value differ from the stored answer so the step jump
	// commits and hits the dead cache.
	a.answers["a1"] = "山田太郎"

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	a = model.(App)
	require.NotNil(t, cmd)

	msg := cmd()
	failed, ok := msg.(shared.CacheWriteFailedMsg)
	require.True(t, ok, "expected CacheWriteFailedMsg, got %T", msg)
	assert.Error(t, failed.Err)

	model, _ = a.Update(failed)
	a = model.(App)
	assert.Contains(t, a.statusMsg, "ローカル保存に失敗")
}

func TestPushSyncKeepsLatestWhenChannelFull(t *testing.T) {
	a := NewApp(config.Config{}, nil, nil)
	push := a.pushSync()

	for i := 0; i < 12; i++ {
		push(autosave.Notification{Status: autosave.StatusSaving})
	}
	push(autosave.Notification{Status: autosave.StatusSaved, Issues: 2})

	var last autosave.Notification
	drained := false
	for !drained {
		select {
		case last = <-a.syncCh:
		default:
			drained = true
		}
	}
	assert.Equal(t, autosave.StatusSaved, last.Status)
	assert.Equal(t, 2, last.Issues)
}

func TestExportCmdCreatesDirAndWritesPackage(t *testing.T) {
	payload := []byte("PK\x03\x04 test payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "exports", "nested")
	msg := exportCmd(api.NewClient(srv.URL, ""), "case-123456789", dir)()

	done, ok := msg.(shared.ExportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, filepath.Join(dir, "export_case-123.zip"), done.Path)

	data, err := os.ReadFile(done.Path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
