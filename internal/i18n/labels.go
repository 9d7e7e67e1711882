package i18n

var labelsEN = map[string]string{
	"equipment.barbell":             "Barbell",
	"equipment.dumbbell":            "Dumbbell",
	"equipment.kettlebell":          "Kettlebell",
	"equipment.ezBar":               "EZ Bar",
	"equipment.weightPlate":         "Weight Plate",
	"equipment.cableMachine":        "Cable Machine",
	"equipment.smithMachine":        "Smith Machine",
	"equipment.legPressMachine":     "Leg Press Machine",
	"equipment.latPulldownMachine":  "Lat Pulldown Machine",
	"equipment.hyperextensionBench": "Hyperextension Bench",
	"equipment.flatBench":           "Flat Bench",
	"equipment.inclineBench":        "Incline Bench",
	"equipment.pullUpBar":           "Pull Up Bar",
	"equipment.dipStation":          "Dip Station",
	"equipment.resistanceBand":      "Resistance Band",
	"equipment.abWheel":             "Ab Wheel",

	"muscle.chest":      "Chest",
	"muscle.lats":       "Lats",
	"muscle.upperBack":  "Upper Back",
	"muscle.lowerBack":  "Lower Back",
	"muscle.traps":      "Traps",
	"muscle.shoulders":  "Shoulders",
	"muscle.biceps":     "Biceps",
	"muscle.triceps":    "Triceps",
	"muscle.forearms":   "Forearms",
	"muscle.abdominals": "Abdominals",
	"muscle.obliques":   "Obliques",
	"muscle.quadriceps": "Quadriceps",
	"muscle.hamstrings": "Hamstrings",
	"muscle.glutes":     "Glutes",
	"muscle.calves":     "Calves",

	"category.freeWeights":            "Free Weights",
	"category.machines":               "Machines",
	"category.cables":                 "Cables",
	"category.bodyweightCalisthenics": "Bodyweight / Calisthenics",
	"category.benches":                "Benches",
	"category.rigs":                   "Rigs & Bars",
	"category.accessories":            "Accessories",
	"category.cardio":                 "Cardio",
	"category.stretching":             "Stretching",
}

var labelsDE = map[string]string{
	"equipment.barbell":             "Langhantel",
	"equipment.dumbbell":            "Kurzhantel",
	"equipment.kettlebell":          "Kettlebell",
	"equipment.ezBar":               "SZ-Stange",
	"equipment.weightPlate":         "Hantelscheibe",
	"equipment.cableMachine":        "Kabelzug",
	"equipment.smithMachine":        "Multipresse",
	"equipment.legPressMachine":     "Beinpresse",
	"equipment.latPulldownMachine":  "Latzugmaschine",
	"equipment.hyperextensionBench": "Hyperextension-Bank",
	"equipment.flatBench":           "Flachbank",
	"equipment.inclineBench":        "Schrägbank",
	"equipment.pullUpBar":           "Klimmzugstange",
	"equipment.dipStation":          "Dip-Station",
	"equipment.resistanceBand":      "Widerstandsband",
	"equipment.abWheel":             "Bauchroller",

	"muscle.chest":      "Brust",
	"muscle.lats":       "Latissimus",
	"muscle.upperBack":  "Oberer Rücken",
	"muscle.lowerBack":  "Unterer Rücken",
	"muscle.traps":      "Trapezmuskel",
	"muscle.shoulders":  "Schultern",
	"muscle.biceps":     "Bizeps",
	"muscle.triceps":    "Trizeps",
	"muscle.forearms":   "Unterarme",
	"muscle.abdominals": "Bauchmuskeln",
	"muscle.obliques":   "Seitliche Bauchmuskeln",
	"muscle.quadriceps": "Quadrizeps",
	"muscle.hamstrings": "Beinbeuger",
	"muscle.glutes":     "Gesäßmuskeln",
	"muscle.calves":     "Waden",

	"category.freeWeights":            "Freie Gewichte",
	"category.machines":               "Maschinen",
	"category.cables":                 "Kabelzüge",
	"category.bodyweightCalisthenics": "Eigengewicht / Calisthenics",
	"category.benches":                "Bänke",
	"category.rigs":                   "Racks & Stangen",
	"category.accessories":            "Zubehör",
	"category.cardio":                 "Cardio",
	"category.stretching":             "Dehnung",
}
