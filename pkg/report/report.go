// Package report collects structured, non-fatal notices raised while
// processing a roster and its photo sources.
//
// Anomalies like a missing portrait or a duplicate student ID must not
// interrupt the batch; they are recorded here in order of occurrence and
// presented to the operator once processing completes.
package report

import (
	"fmt"
	"sync"
)

// Code identifies the kind of anomaly.
type Code string

// Notice codes for roster and photo anomalies.
const (
	CodeMissingStudentID   Code = "MISSING_STUDENT_ID"
	CodeDuplicateStudentID Code = "DUPLICATE_STUDENT_ID"
	CodeMalformedRow       Code = "MALFORMED_ROW"
	CodeOrphanPhoto        Code = "ORPHAN_PHOTO"
	CodeMissingPhoto       Code = "MISSING_PHOTO"
	CodeTooManyAwards      Code = "TOO_MANY_AWARDS"
)

// Issue is a single recorded anomaly.
type Issue struct {
	Code    Code   // Machine-readable anomaly kind
	Message string // Human-readable description
}

// String formats the issue as "CODE: message".
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// Reporter accumulates issues during a run.
// The zero value is ready to use. Safe for concurrent use.
type Reporter struct {
	mu     sync.Mutex
	issues []Issue
}

// Report records an issue with a formatted message.
func (r *Reporter) Report(code Code, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issues = append(r.issues, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Issues returns the recorded issues in the order they were reported.
// The returned slice is a copy.
func (r *Reporter) Issues() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// Count returns the number of recorded issues.
func (r *Reporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.issues)
}

// CountByCode returns the number of issues with the given code.
func (r *Reporter) CountByCode(code Code) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.issues {
		if i.Code == code {
			n++
		}
	}
	return n
}
