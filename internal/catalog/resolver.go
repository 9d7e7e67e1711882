package catalog

// Resolver resolves arbitrary spellings to canonical ids for one domain.
// It is pure and total: unknown input degrades to its normalized form so
// hydration can still key on it, and empty input resolves to "".
type Resolver struct {
	aliases AliasMap
}

// NewResolver wraps a prebuilt alias map.
func NewResolver(aliases AliasMap) *Resolver {
	return &Resolver{aliases: aliases}
}

// Resolve returns the canonical id for raw, or the normalized input when no
// alias matches.
func (r *Resolver) Resolve(raw string) string {
	norm := normalize(raw)
	if norm == "" {
		return ""
	}
	if id, ok := r.aliases[norm]; ok {
		return id
	}
	return norm
}

// Known reports whether raw maps to a registered canonical id, as opposed to
// passing through as a best-effort normalized spelling.
func (r *Resolver) Known(raw string) bool {
	_, ok := r.aliases[normalize(raw)]
	return ok
}

// ResolveAll resolves a list of raw references, dropping empties.
func (r *Resolver) ResolveAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if id := r.Resolve(item); id != "" {
			out = append(out, id)
		}
	}
	return out
}
