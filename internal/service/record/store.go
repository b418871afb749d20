package record

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
)

// ErrNotFound is returned by a Backend that holds no record yet.
var ErrNotFound = errors.New("behavior record not found")

// Backend reads and writes the whole record as a single text blob.
type Backend interface {
	Read(ctx context.Context) (string, error)
	// Write replaces the stored text entirely.
	Write(ctx context.Context, content string) error
	Close() error
}

// StoreError reports a failed persist. Its message is safe to show to clients;
// the cause is kept for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s behavior record", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store keeps the single most recent questionnaire submission.
type Store struct {
	backend Backend
	catalog *questionnaire.Catalog
}

// NewStore creates a Store writing through backend.
func NewStore(backend Backend, catalog *questionnaire.Catalog) *Store {
	return &Store{backend: backend, catalog: catalog}
}

// Persist overwrites the stored record with answers submitted at timestamp.
func (s *Store) Persist(ctx context.Context, answers questionnaire.AnswerSet, timestamp string) error {
	content := Encode(s.catalog, answers, timestamp)
	if err := s.backend.Write(ctx, content); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	log.Printf("[record] stored submission from %s (%d answers)", timestamp, len(answers))
	return nil
}

// LoadLatest returns the answers of the stored record, or nil when there is no
// usable record. Read failures are logged and treated as absence.
func (s *Store) LoadLatest(ctx context.Context) questionnaire.AnswerSet {
	content, err := s.backend.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[record] failed to read behavior record: %v", err)
		}
		return nil
	}

	answers := Decode(content, s.catalog.IDPrefix())
	if answers == nil && content != "" {
		log.Printf("[record] stored record has no recoverable answers (%d bytes)", len(content))
	}
	return answers
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
