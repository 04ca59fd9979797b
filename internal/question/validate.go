package question

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Issue captures a validation problem in a question record.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// ValidateRecords checks that every record can be shown and graded.
// Loading never fails on these issues; this is a report for operators.
func ValidateRecords(records []Record) error {
	collector := &issueCollector{}
	if len(records) == 0 {
		collector.add("records", "must include at least one entry")
	}
	for _, record := range records {
		prefix := fmt.Sprintf("records[%d]", record.ID)
		if strings.TrimSpace(record.Domain) == "" {
			collector.add(prefix+"."+ColumnDomain, "is required")
		}
		if strings.TrimSpace(record.Topic) == "" {
			collector.add(prefix+"."+ColumnTopic, "is required")
		}
		if strings.TrimSpace(record.Question) == "" {
			collector.add(prefix+"."+ColumnQuestion, "is required")
		}
		if strings.TrimSpace(record.CorrectAnswer) == "" {
			collector.add(prefix+"."+ColumnAnswer, "is required")
		}
		if len(record.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
			continue
		}
		if record.CorrectAnswer != "" && !lo.Contains(record.Options, record.CorrectAnswer) {
			collector.add(prefix+"."+ColumnAnswer, fmt.Sprintf("%q is not one of the options", record.CorrectAnswer))
		}
	}
	return collector.result()
}

