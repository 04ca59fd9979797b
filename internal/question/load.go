package question

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Required header columns.
const (
	ColumnDomain   = "domain"
	ColumnTopic    = "topic"
	ColumnQuestion = "question"
	ColumnAnswer   = "canswer"
)

// ErrSourceNotFound indicates the question file does not exist.
var ErrSourceNotFound = errors.New("question source not found")

// SourceReadError reports a failure while reading the question source.
// Records parsed before the failure are still returned alongside it.
type SourceReadError struct {
	Path string
	Line int
	Err  error
}

func (err *SourceReadError) Error() string {
	location := err.Path
	if location == "" {
		location = "question source"
	}
	if err.Line > 0 {
		return fmt.Sprintf("read %s line %d: %v", location, err.Line, err.Err)
	}
	return fmt.Sprintf("read %s: %v", location, err.Err)
}

func (err *SourceReadError) Unwrap() error {
	return err.Err
}

// LoadFile reads question records from a delimited file on disk.
func LoadFile(path string, delimiter rune) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, &SourceReadError{Path: path, Err: err}
	}
	defer file.Close()

	records, err := Parse(file, delimiter)
	var readErr *SourceReadError
	if errors.As(err, &readErr) {
		readErr.Path = path
	}
	return records, err
}

// Parse reads records from r. The first row names the columns; each
// following row becomes one record. Ragged rows are tolerated.
func Parse(r io.Reader, delimiter rune) ([]Record, error) {
	if delimiter == 0 {
		delimiter = ','
	}
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &SourceReadError{Err: errors.New("missing header row")}
		}
		return nil, &SourceReadError{Line: 1, Err: err}
	}
	layout, err := newColumnLayout(header)
	if err != nil {
		return nil, &SourceReadError{Line: 1, Err: err}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			readErr := &SourceReadError{Err: err}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				readErr.Line = parseErr.Line
			}
			return records, readErr
		}
		records = append(records, layout.record(len(records), row))
	}
}

type columnLayout struct {
	domain   int
	topic    int
	question int
	answer   int
	options  []int
}

func newColumnLayout(header []string) (columnLayout, error) {
	layout := columnLayout{domain: -1, topic: -1, question: -1, answer: -1}
	for i, raw := range header {
		name := normalizeHeader(raw, i == 0)
		switch {
		case name == ColumnDomain:
			layout.domain = i
		case name == ColumnTopic:
			layout.topic = i
		case name == ColumnQuestion:
			layout.question = i
		case name == ColumnAnswer:
			layout.answer = i
		case isOptionColumn(name):
			layout.options = append(layout.options, i)
		}
	}

	var missing []string
	for _, column := range []struct {
		name  string
		index int
	}{
		{ColumnDomain, layout.domain},
		{ColumnTopic, layout.topic},
		{ColumnQuestion, layout.question},
		{ColumnAnswer, layout.answer},
	} {
		if column.index < 0 {
			missing = append(missing, column.name)
		}
	}
	if len(missing) > 0 {
		return columnLayout{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return layout, nil
}

func (layout columnLayout) record(id int, row []string) Record {
	record := Record{
		ID:            id,
		Domain:        cell(row, layout.domain),
		Topic:         cell(row, layout.topic),
		Question:      cell(row, layout.question),
		CorrectAnswer: cell(row, layout.answer),
	}
	for _, index := range layout.options {
		if option := cell(row, index); strings.TrimSpace(option) != "" {
			record.Options = append(record.Options, option)
		}
	}
	return record
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

func normalizeHeader(name string, first bool) string {
	if first {
		name = strings.TrimPrefix(name, "\ufeff")
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// isOptionColumn reports whether a normalized header names an answer
// option: a single letter or anything starting with "option".
func isOptionColumn(name string) bool {
	if strings.HasPrefix(name, "option") {
		return true
	}
	if utf8.RuneCountInString(name) != 1 {
		return false
	}
	return name[0] >= 'a' && name[0] <= 'z'
}
