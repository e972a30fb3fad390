// Package roster loads and validates the student roster.
//
// The roster is a tab-delimited file with a fixed 8-column schema:
//
//	status, student_id, last_name, first_name, ont_scholar, honour_roll, shsm, awards
//
// The header row is ignored. Rows whose status contains the attendance
// exclusion marker produce no record; their IDs are remembered so the
// photo resolver can suppress orphan warnings for them.
package roster

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/classdeck/classdeck/pkg/errors"
	"github.com/classdeck/classdeck/pkg/report"
)

// Column indices of the fixed roster schema.
const (
	colStatus = iota
	colStudentID
	colLastName
	colFirstName
	colOntScholar
	colHonourRoll
	colSHSM
	colAwards

	// NumFields is the arity of a well-formed roster row.
	NumFields = 8
)

// exclusionMarker flags a non-attending student when present in the
// status field (case-insensitive).
const exclusionMarker = "x"

// awardDelimiter separates free-text awards within the awards field.
const awardDelimiter = ";"

// Labels prepended for the honor flag fields.
const (
	labelOntarioScholar = "Ontario Scholar"
	labelHonourRoll     = "Honour Roll"
)

// shsmLabels maps SHSM program codes to their display labels.
// An unrecognized non-empty code is a hard validation failure.
var shsmLabels = map[string]string{
	"HLW": "Health and Wellness SHSM",
	"AVA": "Aerospace and Aviation SHSM",
	"CSE": "Justice, Community Safety & Emergency Services SHSM",
}

// Student is one attending student from the roster.
type Student struct {
	Status    string
	ID        string
	LastName  string
	FirstName string

	// Awards is the derived achievement list in display priority order:
	// SHSM designation first, then Honour Roll, then Ontario Scholar,
	// then the free-text awards in roster order.
	Awards []string

	// PhotoPath is the resolved portrait file. Empty until the photo
	// resolver assigns one; stays empty when no portrait exists.
	PhotoPath string
}

// FullName returns the display name for the slide.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Result is the outcome of parsing a roster.
type Result struct {
	// Students preserves the original roster order.
	Students []Student

	// NotAttending holds the IDs of excluded students.
	NotAttending map[string]bool
}

// Load reads a tab-delimited roster file, drops the header row, and
// parses the remaining rows. Non-fatal anomalies are recorded on rep.
func Load(path string, rep *report.Reporter) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "open roster %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1 // row arity is validated per row, not globally
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "parse roster %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster %s is empty", path)
	}

	return Parse(rows[1:], rep)
}

// Parse converts raw roster rows (header already stripped) into
// validated Student records.
//
// Per-row anomalies (missing ID, malformed arity, duplicate ID) are
// reported and the row is skipped; an unknown SHSM code aborts with an
// error. On duplicate IDs the first record wins.
func Parse(rows [][]string, rep *report.Reporter) (*Result, error) {
	result := &Result{NotAttending: make(map[string]bool)}
	seen := make(map[string]bool)

	for _, row := range rows {
		if len(row) < 2 {
			rep.Report(report.CodeMalformedRow, "row has %d fields, want %d", len(row), NumFields)
			continue
		}

		id := strings.TrimSpace(row[colStudentID])
		if id == "" {
			last := ""
			if len(row) > colLastName {
				last = row[colLastName]
			}
			rep.Report(report.CodeMissingStudentID, "student (%s) has no student number", last)
			continue
		}

		if strings.Contains(strings.ToLower(row[colStatus]), exclusionMarker) {
			result.NotAttending[id] = true
			continue
		}

		if len(row) < NumFields {
			rep.Report(report.CodeMalformedRow, "row for student %s has %d fields, want %d", id, len(row), NumFields)
			continue
		}

		if seen[id] {
			rep.Report(report.CodeDuplicateStudentID, "student ID duplicate (%s)", id)
			continue // keep the first record
		}
		seen[id] = true

		awards, err := deriveAwards(row[colOntScholar], row[colHonourRoll], row[colSHSM], row[colAwards])
		if err != nil {
			return nil, err
		}

		result.Students = append(result.Students, Student{
			Status:    row[colStatus],
			ID:        id,
			LastName:  row[colLastName],
			FirstName: row[colFirstName],
			Awards:    awards,
		})
	}

	return result, nil
}

// deriveAwards builds the ordered achievement list for one student.
//
// The free-text awards are split, trimmed, and cleared of empties, then
// the flag labels are prepended least-significant first: Ontario
// Scholar, then Honour Roll, then the SHSM designation. The net display
// order therefore starts with the SHSM label when present.
func deriveAwards(ontScholar, honourRoll, shsm, free string) ([]string, error) {
	var awards []string
	for _, piece := range strings.Split(free, awardDelimiter) {
		if p := strings.TrimSpace(piece); p != "" {
			awards = append(awards, p)
		}
	}

	if strings.TrimSpace(ontScholar) != "" {
		awards = append([]string{labelOntarioScholar}, awards...)
	}
	if strings.TrimSpace(honourRoll) != "" {
		awards = append([]string{labelHonourRoll}, awards...)
	}
	if code := strings.ToUpper(strings.TrimSpace(shsm)); code != "" {
		label, ok := shsmLabels[code]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownSHSM, "unknown SHSM code: %s", code)
		}
		awards = append([]string{label}, awards...)
	}

	return awards, nil
}
