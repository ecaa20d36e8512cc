package shared

import (
	"github.com/mizuki/greenplate/api"
	"github.com/mizuki/greenplate/autosave"
	"github.com/mizuki/greenplate/schema"
)

// BootstrappedMsg delivers the result of the boot sequence: field catalog,
// step groups, resolved case and merged answers. Err set means boot-fatal
// (schema fetch or case creation failed); a failed fetch of server-side
// answers is absorbed upstream and the session simply runs cache-only.
type BootstrappedMsg struct {
	Fields  []schema.FieldDefinition
	Groups  []schema.StepGroup
	CaseID  string
	Answers map[string]string
	Err     error
}

// SyncStatusMsg carries a sync-driver status change into the UI loop.
type SyncStatusMsg struct {
	Note autosave.Notification
}

// ValidationDoneMsg delivers the outcome of an explicit validation run.
type ValidationDoneMsg struct {
	Count  int
	Issues []api.Issue
	Err    error
}

// ExportDoneMsg delivers the outcome of an export download.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// CacheWriteFailedMsg reports a failed local cache write; input is never
// blocked because of it.
type CacheWriteFailedMsg struct {
	Err error
}
