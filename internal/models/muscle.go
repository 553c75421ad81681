package models

import "strings"

// Muscle is one of the fixed muscle groups an exercise is tagged with.
type Muscle string

// Canonical muscle group names, in display order.
const (
	MuscleChest     Muscle = "Chest"
	MuscleBack      Muscle = "Back"
	MuscleShoulders Muscle = "Shoulders"
	MuscleBiceps    Muscle = "Biceps"
	MuscleTriceps   Muscle = "Triceps"
	MuscleLegs      Muscle = "Legs"
	MuscleGlutes    Muscle = "Glutes"
	MuscleCore      Muscle = "Core"
	MuscleCalves    Muscle = "Calves"
	MuscleOther     Muscle = "Other"
)

// Muscles lists every muscle group in display order.
var Muscles = []Muscle{
	MuscleChest,
	MuscleBack,
	MuscleShoulders,
	MuscleBiceps,
	MuscleTriceps,
	MuscleLegs,
	MuscleGlutes,
	MuscleCore,
	MuscleCalves,
	MuscleOther,
}

// muscleMap maps lowercased names and common gym shorthand to the canonical
// muscle group.
var muscleMap = map[string]Muscle{
	"chest":      MuscleChest,
	"pecs":       MuscleChest,
	"back":       MuscleBack,
	"lats":       MuscleBack,
	"shoulders":  MuscleShoulders,
	"shoulder":   MuscleShoulders,
	"delts":      MuscleShoulders,
	"biceps":     MuscleBiceps,
	"bicep":      MuscleBiceps,
	"triceps":    MuscleTriceps,
	"tricep":     MuscleTriceps,
	"legs":       MuscleLegs,
	"quads":      MuscleLegs,
	"hamstrings": MuscleLegs,
	"glutes":     MuscleGlutes,
	"glute":      MuscleGlutes,
	"core":       MuscleCore,
	"abs":        MuscleCore,
	"calves":     MuscleCalves,
	"calf":       MuscleCalves,
	"other":      MuscleOther,
}

// ParseMuscle maps a possibly free-form muscle name to its canonical group.
// Returns MuscleOther and false when the name is empty or unknown.
func ParseMuscle(raw string) (Muscle, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if m, ok := muscleMap[lower]; ok {
		return m, true
	}
	return MuscleOther, false
}

// Index returns the position of m in Muscles, or len(Muscles) if unknown.
func (m Muscle) Index() int {
	for i, known := range Muscles {
		if known == m {
			return i
		}
	}
	return len(Muscles)
}

func (m Muscle) String() string {
	return string(m)
}
