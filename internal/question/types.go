// Package question loads quiz records from a delimited file and selects
// the subset shown for a (domain, topic) pair.
package question

// Record is one question row from the source file. Records are immutable
// once loaded; ID is the 0-based position of the row among data rows.
type Record struct {
	ID            int      `json:"id"`
	Domain        string   `json:"domain"`
	Topic         string   `json:"topic"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"-"`
}

// TopicCount is the number of records under one topic.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// CatalogEntry lists the topics available under a domain.
type CatalogEntry struct {
	Domain string       `json:"domain"`
	Topics []TopicCount `json:"topics"`
}
