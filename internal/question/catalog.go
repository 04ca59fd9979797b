package question

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Catalog groups records by trimmed domain and topic, sorted by name.
// Records with a blank domain or topic are left out.
func Catalog(records []Record) []CatalogEntry {
	named := lo.Filter(records, func(record Record, _ int) bool {
		return strings.TrimSpace(record.Domain) != "" && strings.TrimSpace(record.Topic) != ""
	})
	byDomain := lo.GroupBy(named, func(record Record) string {
		return strings.TrimSpace(record.Domain)
	})

	domains := lo.Keys(byDomain)
	slices.Sort(domains)

	entries := make([]CatalogEntry, 0, len(domains))
	for _, domain := range domains {
		counts := lo.CountValuesBy(byDomain[domain], func(record Record) string {
			return strings.TrimSpace(record.Topic)
		})
		topics := lo.Keys(counts)
		slices.Sort(topics)
		entry := CatalogEntry{Domain: domain}
		for _, topic := range topics {
			entry.Topics = append(entry.Topics, TopicCount{Topic: topic, Count: counts[topic]})
		}
		entries = append(entries, entry)
	}
	return entries
}
