package api

import "github.com/mizuki/greenplate/schema"

// Case is the server-held case record.
type Case struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// StepSummary is the per-step overview the schema endpoint returns.
type StepSummary struct {
	StepKey    string `json:"step_key"`
	StepTitle  string `json:"step_title"`
	FieldCount int    `json:"field_count"`
}

// Schema is the full field catalog response.
type Schema struct {
	FieldCount int                      `json:"field_count"`
	Steps      []StepSummary            `json:"steps"`
	Fields     []schema.FieldDefinition `json:"fields"`
}

// Issue is one validation finding for a field. FieldID "_cross_check"
// identifies findings spanning several fields.
type Issue struct {
	FieldID  string `json:"field_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ExportRecord describes a previously generated export package.
type ExportRecord struct {
	ID        string `json:"id"`
	CaseID    string `json:"case_id"`
	ZipPath   string `json:"zip_path"`
	Checksum  string `json:"checksum"`
	CreatedAt string `json:"created_at"`
}

// CaseDetail is the full server view of one case.
type CaseDetail struct {
	Case        Case              `json:"case"`
	AnswersRaw  map[string]string `json:"answers_raw"`
	AnswersNorm map[string]string `json:"answers_norm"`
	Exports     []ExportRecord    `json:"exports"`
}

// SaveResult is the response to an answers upsert. Issues is a courtesy
// validation of the merged answers, returned without being asked for.
type SaveResult struct {
	Updated int     `json:"updated"`
	Issues  []Issue `json:"issues"`
}

// ValidationResult is the response to an explicit validation run.
type ValidationResult struct {
	IssueCount int     `json:"issue_count"`
	Issues     []Issue `json:"issues"`
}
