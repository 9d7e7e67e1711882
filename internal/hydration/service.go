// Package hydration joins canonical catalog ids against the localized label
// lookup and serves the results as a cached multicast snapshot per domain.
package hydration

import (
	"context"
	"log"
	"sync"

	"example.com/referencedata/internal/catalog"
	"example.com/referencedata/internal/i18n"
	"example.com/referencedata/internal/observability"
	"example.com/referencedata/internal/stream"
)

// Entity is a display-ready vocabulary item. Derived, never persisted.
type Entity struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CategoryLabel string `json:"category_label,omitempty"`
}

// Option configures service behaviour.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithCategories supplies the category table used to hydrate CategoryLabel
// for entries that carry a CategoryID.
func WithCategories(categories []catalog.Entry) Option {
	return func(s *Service) {
		for _, c := range categories {
			s.categoryKeys[c.ID] = c.DisplayKey
		}
	}
}

// Service recomputes and caches hydrated entities for one vocabulary domain.
// Recomputation is strictly ordered by language change: a stale in-flight
// lookup never overwrites a snapshot produced by a newer selection.
type Service struct {
	domain       string
	entries      []catalog.Entry
	categoryKeys map[string]string
	translator   i18n.Translator
	logger       *log.Logger

	mu         sync.Mutex
	language   string
	generation uint64
	byID       map[string]Entity
	feed       *stream.Value[[]Entity]
}

// NewService constructs the service and computes the initial snapshot for
// language synchronously, so GetByID works before any language change event
// arrives.
func NewService(ctx context.Context, domain, language string, entries []catalog.Entry, translator i18n.Translator, opts ...Option) *Service {
	s := &Service{
		domain:       domain,
		entries:      entries,
		categoryKeys: make(map[string]string),
		translator:   translator,
		logger:       log.Default(),
		byID:         make(map[string]Entity),
		feed:         stream.NewValue[[]Entity](),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.language = language
	s.generation = 1
	s.apply(ctx, language, 1)
	return s
}

// SetLanguage switches the active display language and recomputes the
// snapshot. The label lookup runs off the caller's goroutine; if another
// language is selected before it completes, the older result is discarded.
func (s *Service) SetLanguage(ctx context.Context, language string) {
	s.mu.Lock()
	if language == s.language {
		s.mu.Unlock()
		return
	}
	s.language = language
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go s.apply(ctx, language, gen)
}

func (s *Service) apply(ctx context.Context, language string, gen uint64) {
	keys := make([]string, 0, len(s.entries)+len(s.categoryKeys))
	for _, entry := range s.entries {
		keys = append(keys, entry.DisplayKey)
	}
	for _, key := range s.categoryKeys {
		keys = append(keys, key)
	}

	labels, err := s.translator.GetMany(ctx, language, keys)
	if err != nil {
		s.logger.Printf("hydration %s: label lookup failed for %q, falling back to ids: %v", s.domain, language, err)
		labels = map[string]string{}
	}

	byID := make(map[string]Entity, len(s.entries))
	snapshot := make([]Entity, 0, len(s.entries))
	for _, entry := range s.entries {
		name := labels[entry.DisplayKey]
		if name == "" {
			name = entry.ID
		}
		entity := Entity{ID: entry.ID, Name: name}
		if entry.CategoryID != "" {
			entity.CategoryLabel = labels[s.categoryKeys[entry.CategoryID]]
		}
		byID[entry.ID] = entity
		snapshot = append(snapshot, entity)
	}

	// The feed update must stay inside the generation check; a
	// recomputation that lost the race publishes nothing at all.
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		observability.RecordHydrationStale(s.domain)
		return
	}
	s.byID = byID
	s.feed.Set(snapshot)
	s.mu.Unlock()

	observability.RecordHydrationRecompute(s.domain, language)
}

// Language returns the currently selected display language.
func (s *Service) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// GetByID returns the hydrated entity from the latest snapshot.
func (s *Service) GetByID(id string) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, ok := s.byID[id]
	return entity, ok
}

// Snapshot returns the latest full snapshot in catalog order.
func (s *Service) Snapshot() []Entity {
	snapshot, _ := s.feed.Get()
	return snapshot
}

// Subscribe attaches to the multicast feed. The current snapshot is
// delivered immediately; later recomputations follow on the same channel.
func (s *Service) Subscribe() (<-chan []Entity, func()) {
	return s.feed.Subscribe()
}

// TranslateIDs performs a one-shot hydration of arbitrary raw ids. Ids
// missing from the snapshot degrade to a best-effort point lookup, then to
// the id itself; empty ids are dropped.
func (s *Service) TranslateIDs(ids []string) []Entity {
	s.mu.Lock()
	language := s.language
	byID := s.byID
	s.mu.Unlock()

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if entity, ok := byID[id]; ok {
			out = append(out, entity)
			continue
		}
		name := s.translator.GetOne(language, id)
		if name == "" {
			name = id
		}
		out = append(out, Entity{ID: id, Name: name})
	}
	return out
}
