// Package engine assembles the reference-data components shared by the API
// and consumer binaries.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"example.com/referencedata/internal/catalog"
	"example.com/referencedata/internal/config"
	"example.com/referencedata/internal/domain"
	"example.com/referencedata/internal/events"
	"example.com/referencedata/internal/hydration"
	"example.com/referencedata/internal/i18n"
	"example.com/referencedata/internal/join"
	"example.com/referencedata/internal/storage"
	"example.com/referencedata/internal/store"
)

// Engine bundles the resolvers, hydration services, and reference stores.
type Engine struct {
	Resolvers  join.Resolvers
	Muscles    *hydration.Service
	Equipment  *hydration.Service
	Categories *hydration.Service

	Exercises    *store.Store[domain.Exercise, *domain.Exercise]
	GymEquipment *store.Store[domain.GymEquipment, *domain.GymEquipment]
	Joiner       *join.Joiner

	publisher *events.Publisher
}

// Build wires the full engine from configuration. Seeds are loaded into the
// exercise store on first start; subsequent starts merge persisted records
// over them.
func Build(ctx context.Context, cfg config.Config) (*Engine, error) {
	st := buildStorage(ctx, cfg)

	cat := catalog.Default()
	translator := i18n.NewStaticBundle()

	muscleAliases, conflicts := catalog.BuildAliasMap(cat.Muscles, catalog.MuscleOverrides())
	logConflicts("muscles", conflicts)
	equipmentAliases, conflicts := catalog.BuildAliasMap(cat.Equipment, catalog.EquipmentOverrides())
	logConflicts("equipment", conflicts)
	categoryAliases, conflicts := catalog.BuildAliasMap(cat.Categories, catalog.CategoryOverrides())
	logConflicts("categories", conflicts)

	resolvers := join.Resolvers{
		Muscles:    catalog.NewResolver(muscleAliases),
		Equipment:  catalog.NewResolver(equipmentAliases),
		Categories: catalog.NewResolver(categoryAliases),
	}

	muscles := hydration.NewService(ctx, "muscles", cfg.DefaultLanguage, cat.Muscles, translator)
	equipment := hydration.NewService(ctx, "equipment", cfg.DefaultLanguage, cat.Equipment, translator,
		hydration.WithCategories(cat.Categories))
	categories := hydration.NewService(ctx, "categories", cfg.DefaultLanguage, cat.Categories, translator)

	now := time.Now()
	seeds := make([]domain.Exercise, 0, len(cat.Exercises))
	for _, seed := range cat.Exercises {
		seeds = append(seeds, domain.ExerciseFromSeed(seed, now))
	}

	exercises := store.New[domain.Exercise]("exercises", "reference:exercises", st)
	if err := exercises.Load(ctx, seeds); err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	gymEquipment := store.New[domain.GymEquipment]("gym_equipment", "reference:gym_equipment", st)
	if err := gymEquipment.Load(ctx, nil); err != nil {
		return nil, fmt.Errorf("load gym equipment: %w", err)
	}

	joiner := join.NewJoiner(exercises, resolvers, muscles, equipment, categories, nil)

	// Removal notifies dependent services first; a failed notification
	// aborts the removal.
	var publisher *events.Publisher
	if cfg.ProducerTopic != "" {
		publisher = events.NewPublisher(cfg.KafkaBrokers, cfg.ProducerTopic)
		exercises.SetPreRemoveHook(removalNotifier(publisher, "exercises"))
		gymEquipment.SetPreRemoveHook(removalNotifier(publisher, "gym_equipment"))
		log.Printf("reference removals published to topic %s", cfg.ProducerTopic)
	}

	return &Engine{
		Resolvers:    resolvers,
		Muscles:      muscles,
		Equipment:    equipment,
		Categories:   categories,
		Exercises:    exercises,
		GymEquipment: gymEquipment,
		Joiner:       joiner,
		publisher:    publisher,
	}, nil
}

// Hydrators returns the language-switchable services in a stable order.
func (e *Engine) Hydrators() []*hydration.Service {
	return []*hydration.Service{e.Muscles, e.Equipment, e.Categories}
}

// Close releases the event publisher, if one was configured.
func (e *Engine) Close() error {
	if e.publisher == nil {
		return nil
	}
	return e.publisher.Close()
}

func removalNotifier(publisher *events.Publisher, domainName string) store.PreRemoveHook {
	return func(ctx context.Context, id string) error {
		return publisher.Publish(ctx, "reference.removed", id, events.ReferenceRemoved{
			Domain:    domainName,
			RecordID:  id,
			RemovedAt: time.Now().UTC(),
		})
	}
}

func buildStorage(ctx context.Context, cfg config.Config) storage.Storage {
	if cfg.RedisAddress == "" {
		log.Printf("REDIS_ADDRESS not set, using in-memory storage")
		return storage.NewMemory()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	st := storage.NewRedis(client, cfg.RedisKeyPrefix)
	if err := st.Ping(ctx); err != nil {
		log.Printf("redis unreachable at %s, falling back to in-memory storage: %v", cfg.RedisAddress, err)
		return storage.NewMemory()
	}
	log.Printf("using redis storage at %s", cfg.RedisAddress)
	return st
}

func logConflicts(domainName string, conflicts []string) {
	for _, conflict := range conflicts {
		log.Printf("alias conflict (%s): %s", domainName, conflict)
	}
}
