package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/observability"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/storage"
	"github.com/sirupsen/logrus"
)

// Store operations, used as metric labels
const (
	OperationDefault = "default"
	OperationReplace = "replace"
	OperationPatch   = "patch"
	OperationReset   = "reset"
)

// Store owns the canonical settings document and its persistence.
//
// The mutex only protects the in-memory document; there is no revision
// check, so concurrent editors still resolve to last-write-wins.
type Store struct {
	log    logrus.FieldLogger
	medium storage.Medium

	mu      sync.Mutex
	current *Document
}

// NewStore creates a document store backed by medium
func NewStore(log logrus.FieldLogger, medium storage.Medium) *Store {
	return &Store{
		log:    log.WithField("component", "settings.store"),
		medium: medium,
	}
}

// Load returns a copy of the current document. The first call reads the
// persistence medium; when that fails or the content is malformed, the
// default document is synthesized and persisted. Load never fails.
func (s *Store) Load(ctx context.Context) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx).Clone()
}

// Reload re-reads the persistence medium, replacing the in-memory document.
// A failed read keeps the previous document.
func (s *Store) Reload(ctx context.Context) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return s.loadLocked(ctx).Clone()
	}

	doc, err := s.read(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Reload failed, keeping previous document")
		return s.current.Clone()
	}

	s.current = doc
	s.log.Info("Reloaded settings document")

	return s.current.Clone()
}

// Replace persists doc verbatim as the new canonical document.
func (s *Store) Replace(ctx context.Context, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(ctx, OperationReplace, doc.Clone())
}

// Patch merges partial onto the current document (see Merge) and persists
// the result. Array-valued fields in partial replace the current arrays.
func (s *Store) Patch(ctx context.Context, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked(ctx).ToMap()
	if err != nil {
		return err
	}

	merged, err := FromMap(Merge(current, partial))
	if err != nil {
		observability.RecordDocumentWrite(OperationPatch, "invalid")
		return err
	}

	Normalize(merged)

	return s.writeLocked(ctx, OperationPatch, merged)
}

// PatchJSON decodes a JSON object and applies it with Patch.
func (s *Store) PatchJSON(ctx context.Context, data []byte) error {
	partial, err := DecodePatch(data)
	if err != nil {
		return err
	}

	return s.Patch(ctx, partial)
}

// ResetToDefault replaces the document with Default().
func (s *Store) ResetToDefault(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(ctx, OperationReset, Default())
}

func (s *Store) loadLocked(ctx context.Context) *Document {
	if s.current != nil {
		return s.current
	}

	doc, err := s.read(ctx)
	if err == nil {
		s.current = doc
		s.log.WithField("medium", s.medium.Describe()).Debug("Loaded existing settings document")

		return s.current
	}

	s.log.WithError(err).WithField("medium", s.medium.Describe()).Info("Creating default settings document")
	observability.RecordDocumentDefaulted()

	doc = Default()
	if werr := s.writeLocked(ctx, OperationDefault, doc); werr != nil {
		// Serve the defaults from memory; the next save retries the write.
		s.current = doc
	}

	return s.current
}

func (s *Store) read(ctx context.Context) (*Document, error) {
	data, err := s.medium.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	return doc, nil
}

// writeLocked persists doc and swaps it in only once the write succeeded.
func (s *Store) writeLocked(ctx context.Context, operation string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		observability.RecordDocumentWrite(operation, "invalid")
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := s.medium.Write(ctx, data); err != nil {
		s.log.WithError(err).WithField("operation", operation).Error("Error saving settings document")
		observability.RecordDocumentWrite(operation, "failed")

		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	s.current = doc
	observability.RecordDocumentWrite(operation, "success")
	observability.SetCatalogSize(len(doc.Apps), len(doc.Folders))
	s.log.WithField("operation", operation).Debug("Settings document saved")

	return nil
}
