package review

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMergeResults_Empty(t *testing.T) {
	merged := MergeResults(nil)
	if merged.Assessment != Approve {
		t.Errorf("Assessment = %q, want approve", merged.Assessment)
	}
	if merged.Summary == "" {
		t.Error("empty merge should carry a fixed summary")
	}
	if len(merged.Issues) != 0 {
		t.Errorf("got %d issues, want 0", len(merged.Issues))
	}
}

func TestMergeResults_SingleIdentity(t *testing.T) {
	r := Result{
		Summary:    "looks fine",
		Issues:     []Issue{{Severity: SeverityInfo, Title: "nit"}},
		Positives:  []string{"clear naming"},
		Assessment: Comment,
	}
	merged := MergeResults([]Result{r})
	if !reflect.DeepEqual(merged, r) {
		t.Errorf("single input should pass through unchanged:\n%+v\n%+v", merged, r)
	}
}

func TestMergeResults_StrictestAssessmentWins(t *testing.T) {
	merged := MergeResults([]Result{
		{Assessment: Approve},
		{Assessment: RequestChanges},
		{Assessment: Comment},
	})
	if merged.Assessment != RequestChanges {
		t.Errorf("Assessment = %q, want request_changes", merged.Assessment)
	}

	merged = MergeResults([]Result{
		{Assessment: Approve},
		{Assessment: Comment},
	})
	if merged.Assessment != Comment {
		t.Errorf("Assessment = %q, want comment", merged.Assessment)
	}
}

func TestMergeResults_SummariesAndIssuesInOrder(t *testing.T) {
	merged := MergeResults([]Result{
		{Summary: "first chunk.", Issues: []Issue{{Title: "A"}, {Title: "B"}}},
		{Summary: "second chunk.", Issues: []Issue{{Title: "C"}}},
	})

	if merged.Summary != "first chunk. second chunk." {
		t.Errorf("Summary = %q", merged.Summary)
	}
	var titles []string
	for _, is := range merged.Issues {
		titles = append(titles, is.Title)
	}
	if !reflect.DeepEqual(titles, []string{"A", "B", "C"}) {
		t.Errorf("issue order = %v, want [A B C]", titles)
	}
}

func TestMergeResults_PositivesDeduplicated(t *testing.T) {
	merged := MergeResults([]Result{
		{Positives: []string{"good tests", "clear naming"}},
		{Positives: []string{"clear naming", "small diff"}},
	})
	if len(merged.Positives) != 3 {
		t.Errorf("got %d positives, want 3 unique: %v", len(merged.Positives), merged.Positives)
	}
}

func TestErrorResult_Shape(t *testing.T) {
	res := ErrorResult(2, errors.New("provider timeout"))

	if len(res.Issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(res.Issues))
	}
	is := res.Issues[0]
	if is.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want warning", is.Severity)
	}
	if is.Category != CategoryDocumentation {
		t.Errorf("Category = %q, want documentation", is.Category)
	}
	if !strings.Contains(is.Title, "Review Error") {
		t.Errorf("Title = %q, want it to contain Review Error", is.Title)
	}
	if !strings.Contains(is.Description, "provider timeout") {
		t.Errorf("Description should carry the cause, got %q", is.Description)
	}
	if res.Assessment == Approve {
		t.Error("a failed chunk must not read as a clean approve")
	}
}
