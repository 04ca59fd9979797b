package question

import (
	"errors"
	"strings"
	"testing"
)

func fixtureRecords() []Record {
	return []Record{
		{ID: 0, Domain: "AI", Topic: "Coding", Question: "Q1", Options: []string{"x", "y"}, CorrectAnswer: "x"},
		{ID: 1, Domain: " AI ", Topic: "Coding ", Question: "Q2", Options: []string{"x", "y"}, CorrectAnswer: "y"},
		{ID: 2, Domain: "AI", Topic: "Vision", Question: "Q3", Options: []string{"x"}, CorrectAnswer: "x"},
		{ID: 3, Domain: "Cloud", Topic: "Coding", Question: "Q4", Options: []string{"x"}, CorrectAnswer: "x"},
		{ID: 4, Domain: "AI", Topic: "Coding", Question: "Q5", Options: []string{"x"}, CorrectAnswer: "x"},
	}
}

// TestSelectMatchesTrimmedKeysInOrder verifies trimmed exact matching in source order.
func TestSelectMatchesTrimmedKeysInOrder(t *testing.T) {
	got := Select(fixtureRecords(), "  AI", "Coding  ")
	ids := IDs(got)
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 1 || ids[2] != 4 {
		t.Fatalf("unexpected selection: %v", ids)
	}
}

// TestSelectIsCaseSensitive verifies no case folding is applied.
func TestSelectIsCaseSensitive(t *testing.T) {
	if got := Select(fixtureRecords(), "ai", "coding"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

// TestSelectEmpty verifies no records or no matches yield an empty selection.
func TestSelectEmpty(t *testing.T) {
	if got := Select(nil, "AI", "Coding"); len(got) != 0 {
		t.Fatalf("expected empty selection, got %d", len(got))
	}
	if got := Select(fixtureRecords(), "Biology", "Cells"); len(got) != 0 {
		t.Fatalf("expected empty selection, got %d", len(got))
	}
}

// TestSampleWithoutReplacement verifies sampled records are distinct members.
func TestSampleWithoutReplacement(t *testing.T) {
	candidates := Select(fixtureRecords(), "AI", "Coding")
	for i := 0; i < 20; i++ {
		got, err := Sample(candidates, 2)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got))
		}
		if got[0].ID == got[1].ID {
			t.Fatalf("expected distinct records, got %v", IDs(got))
		}
		for _, record := range got {
			if strings.TrimSpace(record.Domain) != "AI" || strings.TrimSpace(record.Topic) != "Coding" {
				t.Fatalf("sampled record outside candidates: %+v", record)
			}
		}
	}
}

// TestSampleInsufficientCandidates verifies short pools fail instead of truncating.
func TestSampleInsufficientCandidates(t *testing.T) {
	_, err := Sample(fixtureRecords()[:1], 2)
	if !errors.Is(err, ErrInsufficientCandidates) {
		t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
	}
}

// TestPickWithoutSamplingKeepsOrder verifies sampleSize 0 is the plain selection.
func TestPickWithoutSamplingKeepsOrder(t *testing.T) {
	got, err := Pick(fixtureRecords(), "AI", "Coding", 0)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if ids := IDs(got); len(ids) != 3 || ids[0] != 0 || ids[2] != 4 {
		t.Fatalf("unexpected pick: %v", ids)
	}
	if _, err := Pick(fixtureRecords(), "Cloud", "Coding", 3); !errors.Is(err, ErrInsufficientCandidates) {
		t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
	}
}

// TestCatalogGroupsAndCounts verifies domains and topics are grouped and sorted.
func TestCatalogGroupsAndCounts(t *testing.T) {
	records := append(fixtureRecords(), Record{ID: 5, Domain: "", Topic: "Loose"})
	catalog := Catalog(records)
	if len(catalog) != 2 {
		t.Fatalf("expected 2 domains, got %+v", catalog)
	}
	ai := catalog[0]
	if ai.Domain != "AI" || len(ai.Topics) != 2 {
		t.Fatalf("unexpected AI entry: %+v", ai)
	}
	if ai.Topics[0] != (TopicCount{Topic: "Coding", Count: 3}) || ai.Topics[1] != (TopicCount{Topic: "Vision", Count: 1}) {
		t.Fatalf("unexpected AI topics: %+v", ai.Topics)
	}
	if catalog[1].Domain != "Cloud" {
		t.Fatalf("expected Cloud second, got %q", catalog[1].Domain)
	}
}

// TestValidateRecordsReportsIssues verifies record problems are aggregated.
func TestValidateRecordsReportsIssues(t *testing.T) {
	records := []Record{
		{ID: 0, Domain: "AI", Topic: "Coding", Question: "Q1", Options: []string{"x"}, CorrectAnswer: "x"},
		{ID: 1, Domain: "AI", Topic: "", Question: "Q2", Options: nil, CorrectAnswer: "x"},
		{ID: 2, Domain: "AI", Topic: "Coding", Question: "Q3", Options: []string{"x"}, CorrectAnswer: "z"},
	}
	err := ValidateRecords(records)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(validationErr.Issues), err)
	}
	if !strings.Contains(err.Error(), "records[1].topic") || !strings.Contains(err.Error(), "records[2].canswer") {
		t.Fatalf("unexpected issues: %q", err.Error())
	}
	if err := ValidateRecords(records[:1]); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}
