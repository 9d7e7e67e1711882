// Package catalog holds the canonical vocabularies (equipment, muscle groups,
// exercise categories, bundled exercises) and the alias resolution built on
// top of them. Tables are fixed at compile time; alias maps are built once at
// startup and injected into consumers.
package catalog

// Entry is a single canonical vocabulary item. The ID is the stable internal
// identifier; DisplayKey is the translation key used to hydrate a localized
// name.
type Entry struct {
	ID         string
	DisplayKey string
	CategoryID string
}

// SeedExercise is a bundled exercise used to seed the user's exercise store.
// References are canonical ids from the other tables.
type SeedExercise struct {
	ID            string
	Name          string
	CategoryID    string
	PrimaryMuscle string
	Muscles       []string
	Equipment     []string
}

// Catalog bundles every canonical table. Built by Default and treated as
// immutable by all consumers.
type Catalog struct {
	Equipment  []Entry
	Muscles    []Entry
	Categories []Entry
	Exercises  []SeedExercise
}

// Default returns the bundled catalog.
func Default() Catalog {
	return Catalog{
		Equipment:  equipmentTable,
		Muscles:    muscleTable,
		Categories: categoryTable,
		Exercises:  exerciseTable,
	}
}

var equipmentTable = []Entry{
	{ID: "barbell", DisplayKey: "equipment.barbell", CategoryID: "freeWeights"},
	{ID: "dumbbell", DisplayKey: "equipment.dumbbell", CategoryID: "freeWeights"},
	{ID: "kettlebell", DisplayKey: "equipment.kettlebell", CategoryID: "freeWeights"},
	{ID: "ezBar", DisplayKey: "equipment.ezBar", CategoryID: "freeWeights"},
	{ID: "weightPlate", DisplayKey: "equipment.weightPlate", CategoryID: "freeWeights"},
	{ID: "cableMachine", DisplayKey: "equipment.cableMachine", CategoryID: "machines"},
	{ID: "smithMachine", DisplayKey: "equipment.smithMachine", CategoryID: "machines"},
	{ID: "legPressMachine", DisplayKey: "equipment.legPressMachine", CategoryID: "machines"},
	{ID: "latPulldownMachine", DisplayKey: "equipment.latPulldownMachine", CategoryID: "machines"},
	{ID: "hyperextensionBench", DisplayKey: "equipment.hyperextensionBench", CategoryID: "benches"},
	{ID: "flatBench", DisplayKey: "equipment.flatBench", CategoryID: "benches"},
	{ID: "inclineBench", DisplayKey: "equipment.inclineBench", CategoryID: "benches"},
	{ID: "pullUpBar", DisplayKey: "equipment.pullUpBar", CategoryID: "rigs"},
	{ID: "dipStation", DisplayKey: "equipment.dipStation", CategoryID: "rigs"},
	{ID: "resistanceBand", DisplayKey: "equipment.resistanceBand", CategoryID: "accessories"},
	{ID: "abWheel", DisplayKey: "equipment.abWheel", CategoryID: "accessories"},
}

var muscleTable = []Entry{
	{ID: "chest", DisplayKey: "muscle.chest"},
	{ID: "lats", DisplayKey: "muscle.lats"},
	{ID: "upperBack", DisplayKey: "muscle.upperBack"},
	{ID: "lowerBack", DisplayKey: "muscle.lowerBack"},
	{ID: "traps", DisplayKey: "muscle.traps"},
	{ID: "shoulders", DisplayKey: "muscle.shoulders"},
	{ID: "biceps", DisplayKey: "muscle.biceps"},
	{ID: "triceps", DisplayKey: "muscle.triceps"},
	{ID: "forearms", DisplayKey: "muscle.forearms"},
	{ID: "abdominals", DisplayKey: "muscle.abdominals"},
	{ID: "obliques", DisplayKey: "muscle.obliques"},
	{ID: "quadriceps", DisplayKey: "muscle.quadriceps"},
	{ID: "hamstrings", DisplayKey: "muscle.hamstrings"},
	{ID: "glutes", DisplayKey: "muscle.glutes"},
	{ID: "calves", DisplayKey: "muscle.calves"},
}

var categoryTable = []Entry{
	{ID: "freeWeights", DisplayKey: "category.freeWeights"},
	{ID: "machines", DisplayKey: "category.machines"},
	{ID: "cables", DisplayKey: "category.cables"},
	{ID: "bodyweightCalisthenics", DisplayKey: "category.bodyweightCalisthenics"},
	{ID: "benches", DisplayKey: "category.benches"},
	{ID: "rigs", DisplayKey: "category.rigs"},
	{ID: "accessories", DisplayKey: "category.accessories"},
	{ID: "cardio", DisplayKey: "category.cardio"},
	{ID: "stretching", DisplayKey: "category.stretching"},
}

var exerciseTable = []SeedExercise{
	{
		ID:            "barbell-bench-press",
		Name:          "Barbell Bench Press",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "chest",
		Muscles:       []string{"chest", "triceps", "shoulders"},
		Equipment:     []string{"barbell", "flatBench"},
	},
	{
		ID:            "incline-dumbbell-press",
		Name:          "Incline Dumbbell Press",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "chest",
		Muscles:       []string{"chest", "shoulders", "triceps"},
		Equipment:     []string{"dumbbell", "inclineBench"},
	},
	{
		ID:            "barbell-back-squat",
		Name:          "Barbell Back Squat",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "quadriceps",
		Muscles:       []string{"quadriceps", "glutes", "hamstrings", "lowerBack"},
		Equipment:     []string{"barbell"},
	},
	{
		ID:            "deadlift",
		Name:          "Deadlift",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "lowerBack",
		Muscles:       []string{"lowerBack", "glutes", "hamstrings", "lats", "traps"},
		Equipment:     []string{"barbell"},
	},
	{
		ID:            "romanian-deadlift",
		Name:          "Romanian Deadlift",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "hamstrings",
		Muscles:       []string{"hamstrings", "glutes", "lowerBack"},
		Equipment:     []string{"barbell"},
	},
	{
		ID:            "overhead-press",
		Name:          "Overhead Press",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "shoulders",
		Muscles:       []string{"shoulders", "triceps", "traps"},
		Equipment:     []string{"barbell"},
	},
	{
		ID:            "barbell-row",
		Name:          "Barbell Row",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "upperBack",
		Muscles:       []string{"upperBack", "lats", "biceps", "lowerBack"},
		Equipment:     []string{"barbell"},
	},
	{
		ID:            "pull-up",
		Name:          "Pull Up",
		CategoryID:    "bodyweightCalisthenics",
		PrimaryMuscle: "lats",
		Muscles:       []string{"lats", "biceps", "upperBack"},
		Equipment:     []string{"pullUpBar"},
	},
	{
		ID:            "dip",
		Name:          "Dip",
		CategoryID:    "bodyweightCalisthenics",
		PrimaryMuscle: "chest",
		Muscles:       []string{"chest", "triceps", "shoulders"},
		Equipment:     []string{"dipStation"},
	},
	{
		ID:            "push-up",
		Name:          "Push Up",
		CategoryID:    "bodyweightCalisthenics",
		PrimaryMuscle: "chest",
		Muscles:       []string{"chest", "triceps", "shoulders"},
	},
	{
		ID:            "lat-pulldown",
		Name:          "Lat Pulldown",
		CategoryID:    "machines",
		PrimaryMuscle: "lats",
		Muscles:       []string{"lats", "biceps", "upperBack"},
		Equipment:     []string{"latPulldownMachine"},
	},
	{
		ID:            "leg-press",
		Name:          "Leg Press",
		CategoryID:    "machines",
		PrimaryMuscle: "quadriceps",
		Muscles:       []string{"quadriceps", "glutes", "hamstrings"},
		Equipment:     []string{"legPressMachine"},
	},
	{
		ID:            "cable-fly",
		Name:          "Cable Fly",
		CategoryID:    "cables",
		PrimaryMuscle: "chest",
		Muscles:       []string{"chest", "shoulders"},
		Equipment:     []string{"cableMachine"},
	},
	{
		ID:            "triceps-pushdown",
		Name:          "Triceps Pushdown",
		CategoryID:    "cables",
		PrimaryMuscle: "triceps",
		Muscles:       []string{"triceps"},
		Equipment:     []string{"cableMachine"},
	},
	{
		ID:            "barbell-curl",
		Name:          "Barbell Curl",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "biceps",
		Muscles:       []string{"biceps", "forearms"},
		Equipment:     []string{"barbell"},
	},
	{
		ID:            "hip-thrust",
		Name:          "Hip Thrust",
		CategoryID:    "freeWeights",
		PrimaryMuscle: "glutes",
		Muscles:       []string{"glutes", "hamstrings"},
		Equipment:     []string{"barbell", "flatBench"},
	},
	{
		ID:            "back-extension",
		Name:          "Back Extension",
		CategoryID:    "bodyweightCalisthenics",
		PrimaryMuscle: "lowerBack",
		Muscles:       []string{"lowerBack", "glutes", "hamstrings"},
		Equipment:     []string{"hyperextensionBench"},
	},
	{
		ID:            "plank",
		Name:          "Plank",
		CategoryID:    "bodyweightCalisthenics",
		PrimaryMuscle: "abdominals",
		Muscles:       []string{"abdominals", "obliques"},
	},
	{
		ID:            "standing-calf-raise",
		Name:          "Standing Calf Raise",
		CategoryID:    "machines",
		PrimaryMuscle: "calves",
		Muscles:       []string{"calves"},
	},
}
