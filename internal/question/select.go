package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrInsufficientCandidates indicates fewer matching records than requested.
var ErrInsufficientCandidates = errors.New("not enough questions for selection")

// Select returns the records whose trimmed domain and topic equal the
// trimmed keys, in source order.
func Select(records []Record, domain, topic string) []Record {
	domain = strings.TrimSpace(domain)
	topic = strings.TrimSpace(topic)
	return lo.Filter(records, func(record Record, _ int) bool {
		return strings.TrimSpace(record.Domain) == domain && strings.TrimSpace(record.Topic) == topic
	})
}

// Sample draws n records without replacement in random order.
func Sample(records []Record, n int) ([]Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample size must be >= 0, got %d", n)
	}
	if len(records) < n {
		return nil, fmt.Errorf("%w: requested %d, found %d", ErrInsufficientCandidates, n, len(records))
	}
	return lo.Samples(records, n), nil
}

// Pick selects the quiz for (domain, topic), sampling when sampleSize > 0.
func Pick(records []Record, domain, topic string, sampleSize int) ([]Record, error) {
	selected := Select(records, domain, topic)
	if sampleSize <= 0 {
		return selected, nil
	}
	return Sample(selected, sampleSize)
}

// IDs returns the ids of records in order.
func IDs(records []Record) []int {
	return lo.Map(records, func(record Record, _ int) int { return record.ID })
}
