// Package store implements the mutable reference collections (exercises,
// personal gym inventory) backed by persistent key-value storage. All
// consumers read through one cached stream; every mutation replaces the
// in-memory snapshot and persists in the same call.
package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/referencedata/internal/observability"
	"example.com/referencedata/internal/storage"
	"example.com/referencedata/internal/stream"
)

// Record is the pointer constraint store records satisfy.
type Record[T any] interface {
	*T
	RecordID() string
	SetRecordID(string)
	RecordName() string
	Hidden() bool
	SetHidden(bool)
	Created() time.Time
	SetCreated(time.Time)
	Updated() time.Time
	SetUpdated(time.Time)
}

// PreRemoveHook runs before a record is removed; a non-nil error aborts the
// removal so dependent subsystems (usage history) stay consistent.
type PreRemoveHook func(ctx context.Context, id string) error

// ImportReport summarizes a MergeImport run for the caller to surface.
type ImportReport struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Store is a reference collection for one domain.
type Store[T any, PT Record[T]] struct {
	domain    string
	key       string
	storage   storage.Storage
	preRemove PreRemoveHook
	logger    *log.Logger
	now       func() time.Time

	mu      sync.RWMutex
	records []T
	feed    *stream.Value[[]T]
}

// New constructs an empty store; call Load before serving reads.
func New[T any, PT Record[T]](domain, key string, st storage.Storage) *Store[T, PT] {
	return &Store[T, PT]{
		domain:  domain,
		key:     key,
		storage: st,
		logger:  log.Default(),
		now:     time.Now,
		feed:    stream.NewValue[[]T](),
	}
}

// SetPreRemoveHook registers the dependent-subsystem cleanup invoked by
// Remove.
func (s *Store[T, PT]) SetPreRemoveHook(hook PreRemoveHook) { s.preRemove = hook }

// SetLogger sets a custom logger.
func (s *Store[T, PT]) SetLogger(l *log.Logger) { s.logger = l }

// SetClock overrides the timestamp source.
func (s *Store[T, PT]) SetClock(now func() time.Time) { s.now = now }

// Load reads persisted records and seeds catalog records that are not yet
// present, matched by id. Seeding is a set union: existing records are never
// overwritten, so user edits survive catalog updates.
func (s *Store[T, PT]) Load(ctx context.Context, seeds []T) error {
	var persisted []T
	if _, err := s.storage.Get(ctx, s.key, &persisted); err != nil {
		return fmt.Errorf("load %s: %w", s.domain, err)
	}

	present := make(map[string]struct{}, len(persisted))
	for i := range persisted {
		present[PT(&persisted[i]).RecordID()] = struct{}{}
	}

	seeded := 0
	for i := range seeds {
		if _, ok := present[PT(&seeds[i]).RecordID()]; ok {
			continue
		}
		persisted = append(persisted, seeds[i])
		seeded++
	}
	sortByName[T, PT](persisted)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seeded > 0 {
		if err := s.storage.Set(ctx, s.key, persisted); err != nil {
			return fmt.Errorf("persist %s seeds: %w", s.domain, err)
		}
	}
	s.commit(persisted)
	if seeded > 0 {
		s.logger.Printf("store %s: seeded %d catalog records", s.domain, seeded)
	}
	return nil
}

// Add validates and appends a new record. A missing id is generated; blank
// names and duplicate ids or names (case-insensitive, trimmed) are rejected.
func (s *Store[T, PT]) Add(ctx context.Context, record T) (T, error) {
	ptr := PT(&record)
	var zero T

	name := strings.TrimSpace(ptr.RecordName())
	if name == "" {
		return zero, &ValidationError{Field: "name", Reason: "must not be blank"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id := ptr.RecordID(); id != "" && s.indexOf(id) >= 0 {
		return zero, &ValidationError{Field: "id", Reason: fmt.Sprintf("%q already exists", id)}
	}
	for i := range s.records {
		if strings.EqualFold(strings.TrimSpace(PT(&s.records[i]).RecordName()), name) {
			return zero, &ValidationError{Field: "name", Reason: fmt.Sprintf("%q already exists", name)}
		}
	}

	if ptr.RecordID() == "" {
		ptr.SetRecordID(uuid.NewString())
	}
	now := s.now().UTC()
	ptr.SetCreated(now)
	ptr.SetUpdated(now)

	next := append(s.snapshotLocked(), record)
	sortByName[T, PT](next)
	if err := s.persistLocked(ctx, next); err != nil {
		return zero, err
	}
	return record, nil
}

// Update merges the incoming record over the one with the same id. The
// hidden flag belongs to Hide/Unhide and createdAt to Add; both survive an
// update untouched. updatedAt always advances.
func (s *Store[T, PT]) Update(ctx context.Context, record T) (T, error) {
	ptr := PT(&record)
	var zero T

	if strings.TrimSpace(ptr.RecordName()) == "" {
		return zero, &ValidationError{Field: "name", Reason: "must not be blank"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(ptr.RecordID())
	if idx < 0 {
		return zero, fmt.Errorf("%s %q: %w", s.domain, ptr.RecordID(), ErrNotFound)
	}
	existing := PT(&s.records[idx])
	ptr.SetCreated(existing.Created())
	ptr.SetHidden(existing.Hidden())

	now := s.now().UTC()
	// Coarse clocks can report the same instant twice; updatedAt must advance.
	if !now.After(existing.Updated()) {
		now = existing.Updated().Add(time.Millisecond)
	}
	ptr.SetUpdated(now)

	next := s.snapshotLocked()
	next[idx] = record
	sortByName[T, PT](next)
	if err := s.persistLocked(ctx, next); err != nil {
		return zero, err
	}
	return record, nil
}

// Hide soft-deletes the record: it leaves the default listing but stays in
// storage and in backups.
func (s *Store[T, PT]) Hide(ctx context.Context, id string) error {
	return s.setHidden(ctx, id, true)
}

// Unhide restores a hidden record to the default listing.
func (s *Store[T, PT]) Unhide(ctx context.Context, id string) error {
	return s.setHidden(ctx, id, false)
}

func (s *Store[T, PT]) setHidden(ctx context.Context, id string, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%s %q: %w", s.domain, id, ErrNotFound)
	}

	next := s.snapshotLocked()
	ptr := PT(&next[idx])
	ptr.SetHidden(hidden)
	ptr.SetUpdated(s.now().UTC())
	return s.persistLocked(ctx, next)
}

// Remove deletes the record after the pre-remove hook has run. A hook
// failure aborts the removal and is propagated. The hook runs without the
// store lock held; it may block on I/O and may read the store itself.
func (s *Store[T, PT]) Remove(ctx context.Context, id string) error {
	s.mu.RLock()
	found := s.indexOf(id) >= 0
	s.mu.RUnlock()
	if !found {
		return fmt.Errorf("%s %q: %w", s.domain, id, ErrNotFound)
	}

	if s.preRemove != nil {
		if err := s.preRemove(ctx, id); err != nil {
			return fmt.Errorf("pre-remove hook for %s %q: %w", s.domain, id, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The id may have been removed while the hook ran.
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%s %q: %w", s.domain, id, ErrNotFound)
	}
	next := s.snapshotLocked()
	next = append(next[:idx], next[idx+1:]...)
	return s.persistLocked(ctx, next)
}

// MergeImport reconciles an imported batch with the store keyed by id:
// existing records are overwritten, new ones inserted, records without id or
// name are counted and skipped. Untouched local records are preserved.
func (s *Store[T, PT]) MergeImport(ctx context.Context, records []T) (ImportReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report ImportReport
	next := s.snapshotLocked()
	index := make(map[string]int, len(next))
	for i := range next {
		index[PT(&next[i]).RecordID()] = i
	}

	now := s.now().UTC()
	for i := range records {
		incoming := records[i]
		ptr := PT(&incoming)
		if strings.TrimSpace(ptr.RecordID()) == "" || strings.TrimSpace(ptr.RecordName()) == "" {
			report.Skipped++
			continue
		}
		if ptr.Created().IsZero() {
			ptr.SetCreated(now)
		}
		if ptr.Updated().IsZero() {
			ptr.SetUpdated(now)
		}
		if idx, ok := index[ptr.RecordID()]; ok {
			next[idx] = incoming
			report.Updated++
		} else {
			index[ptr.RecordID()] = len(next)
			next = append(next, incoming)
			report.Added++
		}
	}
	if report.Skipped > 0 {
		s.logger.Printf("store %s: import skipped %d invalid records", s.domain, report.Skipped)
	}

	sortByName[T, PT](next)
	if err := s.persistLocked(ctx, next); err != nil {
		return ImportReport{}, err
	}
	return report, nil
}

// Get returns the record with the given id.
func (s *Store[T, PT]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero T
	idx := s.indexOf(id)
	if idx < 0 {
		return zero, false
	}
	return s.records[idx], true
}

// All returns every record, hidden included, sorted by name.
func (s *Store[T, PT]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Visible returns the default listing: records not soft-hidden.
func (s *Store[T, PT]) Visible() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.records))
	for i := range s.records {
		if !PT(&s.records[i]).Hidden() {
			out = append(out, s.records[i])
		}
	}
	return out
}

// Backup returns the full in-memory array as-is for export.
func (s *Store[T, PT]) Backup() []T {
	return s.All()
}

// Subscribe attaches to the cached record stream; the current snapshot is
// delivered immediately.
func (s *Store[T, PT]) Subscribe() (<-chan []T, func()) {
	return s.feed.Subscribe()
}

// indexOf must be called with the lock held.
func (s *Store[T, PT]) indexOf(id string) int {
	for i := range s.records {
		if PT(&s.records[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

// snapshotLocked copies the record slice so mutations never touch a slice a
// reader may hold.
func (s *Store[T, PT]) snapshotLocked() []T {
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// persistLocked writes the candidate snapshot to storage and, only on
// success, makes it the current state.
func (s *Store[T, PT]) persistLocked(ctx context.Context, next []T) error {
	if err := s.storage.Set(ctx, s.key, next); err != nil {
		return fmt.Errorf("persist %s: %w", s.domain, err)
	}
	s.commit(next)
	return nil
}

func (s *Store[T, PT]) commit(next []T) {
	s.records = next
	s.feed.Set(next)
	observability.RecordStoreState(s.domain, len(next), s.now().UTC())
}

func sortByName[T any, PT Record[T]](records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(PT(&records[i]).RecordName()) < strings.ToLower(PT(&records[j]).RecordName())
	})
}
