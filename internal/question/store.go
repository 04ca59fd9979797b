package question

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"skillcheck/internal/logging"
)

// ErrUnknownRecord indicates a record id outside the loaded set.
var ErrUnknownRecord = errors.New("unknown question record")

// Store caches the question records for the lifetime of the process.
// The source is read on first access and never reloaded.
type Store struct {
	load   func() ([]Record, error)
	logger *slog.Logger

	once    sync.Once
	records []Record
	err     error
}

// NewStore returns a store backed by the delimited file at path.
func NewStore(path string, delimiter rune, logger *slog.Logger) *Store {
	return &Store{
		load:   func() ([]Record, error) { return LoadFile(path, delimiter) },
		logger: logging.OrDiscard(logger).With("source", path),
	}
}

// NewStaticStore returns a store serving a fixed record set. Each record ID
// must equal its position in records.
func NewStaticStore(records []Record) *Store {
	return &Store{
		load:   func() ([]Record, error) { return records, nil },
		logger: logging.Discard(),
	}
}

func (store *Store) ensure() {
	store.once.Do(func() {
		store.records, store.err = store.load()
		switch {
		case errors.Is(store.err, ErrSourceNotFound):
			store.logger.Warn("question source not found; serving an empty question set")
		case store.err != nil:
			store.logger.Error("question source read failed", "records", len(store.records), "error", store.err)
		default:
			store.logger.Info("question source loaded", "records", len(store.records))
		}
	})
}

// Records returns the cached records. Callers must not modify them.
func (store *Store) Records() []Record {
	store.ensure()
	return store.records
}

// Err returns the condition recorded by the one-time load, if any.
func (store *Store) Err() error {
	store.ensure()
	return store.err
}

// Lookup returns the records with the given ids, in the given order.
func (store *Store) Lookup(ids []int) ([]Record, error) {
	records := store.Records()
	selected := make([]Record, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(records) {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownRecord, id)
		}
		selected = append(selected, records[id])
	}
	return selected, nil
}
