// Package domain defines the user-visible reference records managed by the
// stores. References to muscles, equipment, and categories are canonical ids;
// display names are attached later by the hydration join.
package domain

import (
	"time"

	"example.com/referencedata/internal/catalog"
)

// Exercise is a logged-exercise definition, either seeded from the bundled
// catalog or created by the user.
type Exercise struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CategoryID    string     `json:"category_id,omitempty"`
	PrimaryMuscle string     `json:"primary_muscle,omitempty"`
	Muscles       []string   `json:"muscles,omitempty"`
	Equipment     []string   `json:"equipment,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	IsHidden      bool       `json:"is_hidden,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
}

func (e *Exercise) RecordID() string        { return e.ID }
func (e *Exercise) SetRecordID(id string)   { e.ID = id }
func (e *Exercise) RecordName() string      { return e.Name }
func (e *Exercise) Hidden() bool            { return e.IsHidden }
func (e *Exercise) SetHidden(hidden bool)   { e.IsHidden = hidden }
func (e *Exercise) Created() time.Time      { return e.CreatedAt }
func (e *Exercise) SetCreated(t time.Time)  { e.CreatedAt = t }
func (e *Exercise) Updated() time.Time      { return e.UpdatedAt }
func (e *Exercise) SetUpdated(t time.Time)  { e.UpdatedAt = t }

// GymEquipment is an item in the user's personal gym inventory.
type GymEquipment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TypeID    string    `json:"type_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	IsHidden  bool      `json:"is_hidden,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *GymEquipment) RecordID() string       { return g.ID }
func (g *GymEquipment) SetRecordID(id string)  { g.ID = id }
func (g *GymEquipment) RecordName() string     { return g.Name }
func (g *GymEquipment) Hidden() bool           { return g.IsHidden }
func (g *GymEquipment) SetHidden(hidden bool)  { g.IsHidden = hidden }
func (g *GymEquipment) Created() time.Time     { return g.CreatedAt }
func (g *GymEquipment) SetCreated(t time.Time) { g.CreatedAt = t }
func (g *GymEquipment) Updated() time.Time     { return g.UpdatedAt }
func (g *GymEquipment) SetUpdated(t time.Time) { g.UpdatedAt = t }

// ExerciseFromSeed converts a bundled catalog exercise into a store record.
// The id is the catalog's content-addressed slug; timestamps are stamped at
// seed time.
func ExerciseFromSeed(seed catalog.SeedExercise, now time.Time) Exercise {
	return Exercise{
		ID:            seed.ID,
		Name:          seed.Name,
		CategoryID:    seed.CategoryID,
		PrimaryMuscle: seed.PrimaryMuscle,
		Muscles:       append([]string(nil), seed.Muscles...),
		Equipment:     append([]string(nil), seed.Equipment...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Backup is the import/export envelope: the full record arrays of both
// stores, hidden records included.
type Backup struct {
	Exercises    []Exercise     `json:"exercises"`
	GymEquipment []GymEquipment `json:"gym_equipment"`
}
