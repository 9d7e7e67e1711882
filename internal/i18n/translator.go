// Package i18n provides the localized label lookup the hydration service
// joins canonical ids against.
package i18n

import "context"

// Translator resolves display keys to localized labels. GetMany is the batch
// lookup used for snapshot recomputation; GetOne is a synchronous best-effort
// point lookup. Both return nothing for unknown keys so callers can apply
// their own fallback.
type Translator interface {
	GetMany(ctx context.Context, language string, keys []string) (map[string]string, error)
	GetOne(language, key string) string
}

// StaticBundle serves labels from compiled-in tables. It is the default
// Translator; a remote label service can be substituted behind the same
// interface.
type StaticBundle struct {
	tables map[string]map[string]string
}

// NewStaticBundle constructs the bundle with every compiled-in language.
func NewStaticBundle() *StaticBundle {
	return &StaticBundle{tables: map[string]map[string]string{
		"en": labelsEN,
		"de": labelsDE,
	}}
}

// GetMany returns the labels found for the requested keys. Missing keys are
// simply absent from the result.
func (b *StaticBundle) GetMany(_ context.Context, language string, keys []string) (map[string]string, error) {
	table := b.tables[language]
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if label, ok := table[key]; ok {
			out[key] = label
		}
	}
	return out, nil
}

// GetOne returns the label for a single key, or "" when unknown.
func (b *StaticBundle) GetOne(language, key string) string {
	return b.tables[language][key]
}

// Languages lists the compiled-in language codes.
func (b *StaticBundle) Languages() []string {
	out := make([]string, 0, len(b.tables))
	for lang := range b.tables {
		out = append(out, lang)
	}
	return out
}
