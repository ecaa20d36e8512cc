package session

import (
	"context"
	"fmt"
	"time"
)

// CaseSource is the slice of the remote API the reconciler needs.
type CaseSource interface {
	// CreateCase allocates a new case and returns its identifier.
	CreateCase(ctx context.Context, title string) (string, error)
	// CaseAnswers fetches the server-held raw answers for a case.
	CaseAnswers(ctx context.Context, caseID string) (map[string]string, error)
}

// NewCaseTitle builds the human-readable title for a freshly created case.
func NewCaseTitle(now time.Time) string {
	return "新規案件 " + now.Format("2006-01-02")
}

// Reconcile resolves the working case identifier and merges locally cached
// answers with the server's copy.
//
// When both sides hold a value for the same field the local one wins: the
// cache reflects on-device edits that a still-pending debounced save may not
// have delivered yet. A failed server fetch degrades silently to the cached
// answers; a failed case creation is fatal to boot.
func Reconcile(ctx context.Context, cached *Snapshot, remote CaseSource) (string, map[string]string, error) {
	var caseID string
	answers := map[string]string{}
	if cached != nil {
		caseID = cached.CaseID
		for k, v := range cached.Answers {
			answers[k] = v
		}
	}

	if caseID == "" {
		id, err := remote.CreateCase(ctx, NewCaseTitle(time.Now()))
		if err != nil {
			return "", nil, fmt.Errorf("creating case: %w", err)
		}
		caseID = id
	}

	if server, err := remote.CaseAnswers(ctx, caseID); err == nil {
		merged := make(map[string]string, len(server)+len(answers))
		for k, v := range server {
			merged[k] = v
		}
		for k, v := range answers {
			merged[k] = v
		}
		answers = merged
	}

	return caseID, answers, nil
}
