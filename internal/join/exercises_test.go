package join

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/referencedata/internal/catalog"
	"example.com/referencedata/internal/domain"
	"example.com/referencedata/internal/hydration"
	"example.com/referencedata/internal/i18n"
	"example.com/referencedata/internal/storage"
	"example.com/referencedata/internal/store"
)

func newTestJoiner(t *testing.T) (*Joiner, *store.Store[domain.Exercise, *domain.Exercise], *hydration.Service) {
	t.Helper()
	ctx := context.Background()
	cat := catalog.Default()
	translator := i18n.NewStaticBundle()

	muscleAliases, _ := catalog.BuildAliasMap(cat.Muscles, catalog.MuscleOverrides())
	equipmentAliases, _ := catalog.BuildAliasMap(cat.Equipment, catalog.EquipmentOverrides())
	categoryAliases, _ := catalog.BuildAliasMap(cat.Categories, catalog.CategoryOverrides())
	resolvers := Resolvers{
		Muscles:    catalog.NewResolver(muscleAliases),
		Equipment:  catalog.NewResolver(equipmentAliases),
		Categories: catalog.NewResolver(categoryAliases),
	}

	muscles := hydration.NewService(ctx, "muscles", "en", cat.Muscles, translator)
	equipment := hydration.NewService(ctx, "equipment", "en", cat.Equipment, translator,
		hydration.WithCategories(cat.Categories))
	categories := hydration.NewService(ctx, "categories", "en", cat.Categories, translator)

	exercises := store.New[domain.Exercise]("exercises", "test:exercises", storage.NewMemory())
	require.NoError(t, exercises.Load(ctx, nil))

	return NewJoiner(exercises, resolvers, muscles, equipment, categories, nil), exercises, muscles
}

func TestHydrateAttachesDisplayEntities(t *testing.T) {
	joiner, _, _ := newTestJoiner(t)

	hydrated := joiner.Hydrate(domain.Exercise{
		ID:            "x",
		Name:          "Incline Press",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "chest",
		Muscles:       []string{"chest", "triceps"},
		Equipment:     []string{"barbell", "inclineBench"},
	})

	require.NotNil(t, hydrated.PrimaryMuscleGroup)
	require.Equal(t, "Chest", hydrated.PrimaryMuscleGroup.Name)
	require.Len(t, hydrated.MuscleGroups, 2)
	require.Len(t, hydrated.EquipmentNeeded, 2)
	require.NotNil(t, hydrated.Category)
	require.Equal(t, "freeWeights", hydrated.Category.ID)
}

func TestHydrateResolvesLegacySpellings(t *testing.T) {
	joiner, _, _ := newTestJoiner(t)

	hydrated := joiner.Hydrate(domain.Exercise{
		ID:            "legacy",
		Name:          "Old Backup Exercise",
		CategoryID:    "bodyweight",
		PrimaryMuscle: "Quads",
		Equipment:     []string{"Pull-Up Bar"},
	})

	require.NotNil(t, hydrated.PrimaryMuscleGroup)
	require.Equal(t, "quadriceps", hydrated.PrimaryMuscleGroup.ID)
	require.Len(t, hydrated.EquipmentNeeded, 1)
	require.Equal(t, "pullUpBar", hydrated.EquipmentNeeded[0].ID)
	require.NotNil(t, hydrated.Category)
	require.Equal(t, "bodyweightCalisthenics", hydrated.Category.ID)
}

func TestHydrateDropsUnresolvableListEntries(t *testing.T) {
	joiner, _, _ := newTestJoiner(t)

	hydrated := joiner.Hydrate(domain.Exercise{
		ID:            "odd",
		Name:          "Odd One",
		PrimaryMuscle: "not a muscle",
		Muscles:       []string{"chest", "not a muscle"},
	})

	require.Nil(t, hydrated.PrimaryMuscleGroup, "unresolvable scalar stays nil")
	require.Len(t, hydrated.MuscleGroups, 1, "unresolvable list entries are dropped")
	require.Equal(t, "chest", hydrated.MuscleGroups[0].ID)
}

func TestRunRecomputesOnStoreAndLanguageChanges(t *testing.T) {
	joiner, exercises, muscles := newTestJoiner(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go joiner.Run(ctx)

	_, err := exercises.Add(ctx, domain.Exercise{
		Name:          "Front Squat",
		PrimaryMuscle: "quadriceps",
		Muscles:       []string{"quadriceps", "glutes"},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		items := joiner.Snapshot()
		return len(items) == 1 && items[0].Name == "Front Squat"
	}, 2*time.Second, 10*time.Millisecond)

	muscles.SetLanguage(ctx, "de")

	require.Eventually(t, func() bool {
		items := joiner.Snapshot()
		if len(items) != 1 || items[0].PrimaryMuscleGroup == nil {
			return false
		}
		return items[0].PrimaryMuscleGroup.Name == "Quadrizeps"
	}, 2*time.Second, 10*time.Millisecond)
}
