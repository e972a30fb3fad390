package report

import "testing"

func TestReporterOrdering(t *testing.T) {
	var r Reporter
	r.Report(CodeMissingPhoto, "no photo for %s", "12345")
	r.Report(CodeOrphanPhoto, "orphan %s", "99999.jpg")
	r.Report(CodeMissingPhoto, "no photo for %s", "67890")

	issues := r.Issues()
	if len(issues) != 3 {
		t.Fatalf("len(Issues()) = %d, want 3", len(issues))
	}

	want := []Issue{
		{Code: CodeMissingPhoto, Message: "no photo for 12345"},
		{Code: CodeOrphanPhoto, Message: "orphan 99999.jpg"},
		{Code: CodeMissingPhoto, Message: "no photo for 67890"},
	}
	for i, issue := range issues {
		if issue != want[i] {
			t.Errorf("Issues()[%d] = %v, want %v", i, issue, want[i])
		}
	}
}

func TestReporterCounts(t *testing.T) {
	var r Reporter
	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0", r.Count())
	}

	r.Report(CodeDuplicateStudentID, "duplicate 111")
	r.Report(CodeMissingPhoto, "no photo for 222")
	r.Report(CodeMissingPhoto, "no photo for 333")

	if got := r.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := r.CountByCode(CodeMissingPhoto); got != 2 {
		t.Errorf("CountByCode(CodeMissingPhoto) = %d, want 2", got)
	}
	if got := r.CountByCode(CodeOrphanPhoto); got != 0 {
		t.Errorf("CountByCode(CodeOrphanPhoto) = %d, want 0", got)
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Code: CodeTooManyAwards, Message: "more than 3 awards for Alex Chen"}
	want := "TOO_MANY_AWARDS: more than 3 awards for Alex Chen"
	if i.String() != want {
		t.Errorf("String() = %q, want %q", i.String(), want)
	}
}

func TestIssuesReturnsCopy(t *testing.T) {
	var r Reporter
	r.Report(CodeMalformedRow, "row 4 has 3 fields")

	issues := r.Issues()
	issues[0].Message = "mutated"

	if got := r.Issues()[0].Message; got != "row 4 has 3 fields" {
		t.Errorf("internal issue mutated via returned slice: %q", got)
	}
}
