// Package join composes the exercise store, the canonical resolvers, and the
// hydration services into fully resolved exercise views.
package join

import (
	"context"
	"log"

	"example.com/referencedata/internal/catalog"
	"example.com/referencedata/internal/domain"
	"example.com/referencedata/internal/hydration"
	"example.com/referencedata/internal/observability"
	"example.com/referencedata/internal/store"
	"example.com/referencedata/internal/stream"
)

// HydratedExercise is an exercise record with every canonical reference
// replaced by its display-ready entity. Unresolvable list entries are
// dropped; unresolvable scalar references stay nil.
type HydratedExercise struct {
	domain.Exercise
	PrimaryMuscleGroup *hydration.Entity  `json:"primary_muscle_group,omitempty"`
	MuscleGroups       []hydration.Entity `json:"muscle_groups,omitempty"`
	EquipmentNeeded    []hydration.Entity `json:"equipment_needed,omitempty"`
	Category           *hydration.Entity  `json:"category,omitempty"`
}

// Resolvers bundles the per-domain canonical resolvers the join normalizes
// raw references through.
type Resolvers struct {
	Muscles    *catalog.Resolver
	Equipment  *catalog.Resolver
	Categories *catalog.Resolver
}

// Joiner keeps a cached snapshot of hydrated exercises, recomputed whenever
// the records, muscle hydration, or equipment hydration change.
type Joiner struct {
	exercises  *store.Store[domain.Exercise, *domain.Exercise]
	resolvers  Resolvers
	muscles    *hydration.Service
	equipment  *hydration.Service
	categories *hydration.Service
	logger     *log.Logger

	feed *stream.Value[[]HydratedExercise]
}

// NewJoiner constructs the joiner and computes an initial snapshot.
func NewJoiner(
	exercises *store.Store[domain.Exercise, *domain.Exercise],
	resolvers Resolvers,
	muscles, equipment, categories *hydration.Service,
	logger *log.Logger,
) *Joiner {
	if logger == nil {
		logger = log.Default()
	}
	j := &Joiner{
		exercises:  exercises,
		resolvers:  resolvers,
		muscles:    muscles,
		equipment:  equipment,
		categories: categories,
		logger:     logger,
		feed:       stream.NewValue[[]HydratedExercise](),
	}
	j.recompute()
	return j
}

// Run subscribes to the three inputs and recomputes the snapshot on every
// change until ctx is done.
func (j *Joiner) Run(ctx context.Context) {
	records, cancelRecords := j.exercises.Subscribe()
	muscles, cancelMuscles := j.muscles.Subscribe()
	equipment, cancelEquipment := j.equipment.Subscribe()
	defer cancelRecords()
	defer cancelMuscles()
	defer cancelEquipment()

	for {
		select {
		case <-ctx.Done():
			return
		case <-records:
		case <-muscles:
		case <-equipment:
		}
		j.recompute()
	}
}

// Snapshot returns the latest hydrated view of all records, hidden included.
func (j *Joiner) Snapshot() []HydratedExercise {
	snapshot, _ := j.feed.Get()
	return snapshot
}

// Visible returns the hydrated default listing.
func (j *Joiner) Visible() []HydratedExercise {
	snapshot := j.Snapshot()
	out := make([]HydratedExercise, 0, len(snapshot))
	for _, item := range snapshot {
		if !item.IsHidden {
			out = append(out, item)
		}
	}
	return out
}

// Subscribe attaches to the hydrated stream.
func (j *Joiner) Subscribe() (<-chan []HydratedExercise, func()) {
	return j.feed.Subscribe()
}

// Hydrate resolves one record through the current snapshots.
func (j *Joiner) Hydrate(record domain.Exercise) HydratedExercise {
	out := HydratedExercise{Exercise: record}

	if id := j.resolvers.Muscles.Resolve(record.PrimaryMuscle); id != "" {
		if entity, ok := j.muscles.GetByID(id); ok {
			out.PrimaryMuscleGroup = &entity
		}
	}
	out.MuscleGroups = hydrateList("muscles", record.Muscles, j.resolvers.Muscles, j.muscles)
	out.EquipmentNeeded = hydrateList("equipment", record.Equipment, j.resolvers.Equipment, j.equipment)
	if id := j.resolvers.Categories.Resolve(record.CategoryID); id != "" {
		if entity, ok := j.categories.GetByID(id); ok {
			out.Category = &entity
		}
	}
	return out
}

func (j *Joiner) recompute() {
	records := j.exercises.All()
	snapshot := make([]HydratedExercise, 0, len(records))
	for _, record := range records {
		snapshot = append(snapshot, j.Hydrate(record))
	}
	j.feed.Set(snapshot)
}

// hydrateList resolves raw references and keeps only the ones present in the
// hydration snapshot. Losing a decorative label beats blocking the view.
func hydrateList(domainName string, raw []string, resolver *catalog.Resolver, svc *hydration.Service) []hydration.Entity {
	if len(raw) == 0 {
		return nil
	}
	out := make([]hydration.Entity, 0, len(raw))
	for _, item := range raw {
		id := resolver.Resolve(item)
		if id == "" {
			continue
		}
		if !resolver.Known(item) {
			observability.RecordResolverFallback(domainName)
		}
		if entity, ok := svc.GetByID(id); ok {
			out = append(out, entity)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
