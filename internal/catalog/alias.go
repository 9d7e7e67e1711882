package catalog

import (
	"strings"
	"unicode"
)

// AliasMap maps a normalized alias spelling to its canonical id.
type AliasMap map[string]string

// Override pins a legacy or ambiguous spelling to a specific canonical id.
// Overrides always win over derived variants; within the override list the
// last registration wins.
type Override struct {
	Alias  string
	Target string
}

// BuildAliasMap derives every plausible alias for the given entries and then
// applies overrides on top. It returns the map plus any override aliases that
// were registered more than once with conflicting targets, so callers can
// surface the conflict instead of silently picking one.
func BuildAliasMap(entries []Entry, overrides []Override) (AliasMap, []string) {
	aliases := make(AliasMap, len(entries)*6)

	for _, entry := range entries {
		for _, variant := range variantsOf(entry.ID) {
			aliases[variant] = entry.ID
		}
		name := displayName(entry.DisplayKey)
		for _, variant := range variantsOf(name) {
			aliases[variant] = entry.ID
		}
	}

	var conflicts []string
	seen := make(map[string]string, len(overrides))
	for _, ov := range overrides {
		key := normalize(ov.Alias)
		if key == "" {
			continue
		}
		if prev, ok := seen[key]; ok && prev != ov.Target {
			conflicts = append(conflicts, key)
		}
		seen[key] = ov.Target
		aliases[key] = ov.Target
	}

	return aliases, conflicts
}

// BuildSeedAliasMap builds an alias map for the bundled exercise table, which
// carries display names directly rather than translation keys.
func BuildSeedAliasMap(seeds []SeedExercise, overrides []Override) (AliasMap, []string) {
	entries := make([]Entry, 0, len(seeds))
	for _, seed := range seeds {
		entries = append(entries, Entry{ID: seed.ID, DisplayKey: seed.Name})
	}
	return BuildAliasMap(entries, overrides)
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// variantsOf expands one spelling into its registered alias forms: the
// normalized base, word-split forms of camelCase and kebab-case, space,
// hyphen and concatenated joins, and singular/plural of each.
func variantsOf(raw string) []string {
	base := normalize(raw)
	if base == "" {
		return nil
	}

	words := splitWords(raw)
	joined := strings.Join(words, " ")

	forms := map[string]struct{}{
		base:   {},
		joined: {},
		strings.ReplaceAll(joined, " ", "-"): {},
		strings.ReplaceAll(joined, " ", ""):  {},
	}

	out := make([]string, 0, len(forms)*2)
	for form := range forms {
		out = append(out, form)
		if strings.HasSuffix(form, "s") {
			out = append(out, strings.TrimSuffix(form, "s"))
		} else {
			out = append(out, form+"s")
		}
	}
	return out
}

// splitWords breaks an identifier or display name into lowercase words,
// treating camelCase boundaries, hyphens, and spaces as separators.
func splitWords(raw string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r == ' ' || r == '-' || r == '_':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(unicode.ToLower(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

// displayName turns a translation key like "muscle.upperBack" into the
// fallback English spelling used for alias derivation ("upper back"). Plain
// names pass through unchanged.
func displayName(displayKey string) string {
	if idx := strings.LastIndex(displayKey, "."); idx >= 0 {
		displayKey = displayKey[idx+1:]
	}
	return strings.Join(splitWords(displayKey), " ")
}

// EquipmentOverrides pins legacy equipment spellings. "hyperextension
// bench" vs "hyperextension machine" appeared under both names in old
// backups; both map to the bench.
func EquipmentOverrides() []Override {
	return []Override{
		{Alias: "bench", Target: "flatBench"},
		{Alias: "bench press bench", Target: "flatBench"},
		{Alias: "hyperextension bench", Target: "hyperextensionBench"},
		{Alias: "hyperextension machine", Target: "hyperextensionBench"},
		{Alias: "roman chair", Target: "hyperextensionBench"},
		{Alias: "ez curl bar", Target: "ezBar"},
		{Alias: "cables", Target: "cableMachine"},
		{Alias: "lat pulldown", Target: "latPulldownMachine"},
		{Alias: "plates", Target: "weightPlate"},
		{Alias: "bands", Target: "resistanceBand"},
		{Alias: "chin up bar", Target: "pullUpBar"},
	}
}

// MuscleOverrides pins gym-floor shorthand and legacy spellings.
func MuscleOverrides() []Override {
	return []Override{
		{Alias: "abs", Target: "abdominals"},
		{Alias: "core", Target: "abdominals"},
		{Alias: "quads", Target: "quadriceps"},
		{Alias: "hams", Target: "hamstrings"},
		{Alias: "pecs", Target: "chest"},
		{Alias: "delts", Target: "shoulders"},
		{Alias: "bis", Target: "biceps"},
		{Alias: "tris", Target: "triceps"},
		{Alias: "back", Target: "upperBack"},
		{Alias: "erectors", Target: "lowerBack"},
	}
}

// CategoryOverrides pins legacy category names, most notably the plain
// "bodyweight" spelling used by early exports.
func CategoryOverrides() []Override {
	return []Override{
		{Alias: "bodyweight", Target: "bodyweightCalisthenics"},
		{Alias: "calisthenics", Target: "bodyweightCalisthenics"},
		{Alias: "free weight", Target: "freeWeights"},
		{Alias: "machine", Target: "machines"},
		{Alias: "cable", Target: "cables"},
	}
}
