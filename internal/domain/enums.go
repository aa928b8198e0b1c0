package domain

// This file is the single source of truth for every enumeration the API validates against.
// The same values are served to clients via GET /api/v1/enums so client-side validation cannot drift.

type Muscle string

const (
	MuscleAbdominals Muscle = "abdominals"
	MuscleHamstrings Muscle = "hamstrings"
	MuscleCalves     Muscle = "calves"
	MuscleShoulders  Muscle = "shoulders"
	MuscleAdductors  Muscle = "adductors"
	MuscleGlutes     Muscle = "glutes"
	MuscleQuadriceps Muscle = "quadriceps"
	MuscleBiceps     Muscle = "biceps"
	MuscleForearms   Muscle = "forearms"
	MuscleAbductors  Muscle = "abductors"
	MuscleTriceps    Muscle = "triceps"
	MuscleChest      Muscle = "chest"
	MuscleLowerBack  Muscle = "lower back"
	MuscleTraps      Muscle = "traps"
	MuscleMiddleBack Muscle = "middle back"
	MuscleLats       Muscle = "lats"
	MuscleNeck       Muscle = "neck"
)

type Force string

const (
	ForcePull   Force = "pull"
	ForcePush   Force = "push"
	ForceStatic Force = "static"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// Rank orders levels by severity. Unknown levels rank 0, below beginner.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelExpert:
		return 3
	default:
		return 0
	}
}

type Mechanic string

const (
	MechanicCompound  Mechanic = "compound"
	MechanicIsolation Mechanic = "isolation"
)

type Equipment string

const (
	EquipmentBodyOnly     Equipment = "body only"
	EquipmentMachine      Equipment = "machine"
	EquipmentKettlebells  Equipment = "kettlebells"
	EquipmentDumbbell     Equipment = "dumbbell"
	EquipmentCable        Equipment = "cable"
	EquipmentBarbell      Equipment = "barbell"
	EquipmentBands        Equipment = "bands"
	EquipmentMedicineBall Equipment = "medicine ball"
	EquipmentExerciseBall Equipment = "exercise ball"
	EquipmentEZCurlBar    Equipment = "e-z curl bar"
	EquipmentFoamRoll     Equipment = "foam roll"
)

type Category string

const (
	CategoryStrength             Category = "strength"
	CategoryStretching           Category = "stretching"
	CategoryPlyometrics          Category = "plyometrics"
	CategoryStrongman            Category = "strongman"
	CategoryPowerlifting         Category = "powerlifting"
	CategoryCardio               Category = "cardio"
	CategoryOlympicWeightlifting Category = "olympic weightlifting"
	CategoryCrossfit             Category = "crossfit"
	CategoryWeightedBodyweight   Category = "weighted bodyweight"
	CategoryAssistedBodyweight   Category = "assisted bodyweight"
)

type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

// Gender values accepted at registration. The active subset is configurable (registration.genders).
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var (
	AllMuscles = []Muscle{
		MuscleAbdominals, MuscleHamstrings, MuscleCalves, MuscleShoulders, MuscleAdductors, MuscleGlutes,
		MuscleQuadriceps, MuscleBiceps, MuscleForearms, MuscleAbductors, MuscleTriceps, MuscleChest,
		MuscleLowerBack, MuscleTraps, MuscleMiddleBack, MuscleLats, MuscleNeck,
	}
	AllForces    = []Force{ForcePull, ForcePush, ForceStatic}
	AllLevels    = []Level{LevelBeginner, LevelIntermediate, LevelExpert}
	AllMechanics = []Mechanic{MechanicCompound, MechanicIsolation}
	AllEquipment = []Equipment{
		EquipmentBodyOnly, EquipmentMachine, EquipmentKettlebells, EquipmentDumbbell, EquipmentCable,
		EquipmentBarbell, EquipmentBands, EquipmentMedicineBall, EquipmentExerciseBall, EquipmentEZCurlBar,
		EquipmentFoamRoll,
	}
	AllCategories = []Category{
		CategoryStrength, CategoryStretching, CategoryPlyometrics, CategoryStrongman, CategoryPowerlifting,
		CategoryCardio, CategoryOlympicWeightlifting, CategoryCrossfit, CategoryWeightedBodyweight,
		CategoryAssistedBodyweight,
	}
	AllWeightUnits = []WeightUnit{WeightUnitKg, WeightUnitLbs}
	AllGenders     = []Gender{GenderMale, GenderFemale, GenderOther}
)

// Enums is the serializable view of every enumeration.
type Enums struct {
	Muscles     []Muscle     `json:"muscles"`
	Forces      []Force      `json:"forces"`
	Levels      []Level      `json:"levels"`
	Mechanics   []Mechanic   `json:"mechanics"`
	Equipment   []Equipment  `json:"equipment"`
	Categories  []Category   `json:"categories"`
	WeightUnits []WeightUnit `json:"weightUnits"`
	Genders     []Gender     `json:"genders"`
}

// NewEnums builds the enumeration view, restricting genders to the configured subset.
func NewEnums(genders []Gender) Enums {
	if len(genders) == 0 {
		genders = AllGenders
	}
	return Enums{
		Muscles:     AllMuscles,
		Forces:      AllForces,
		Levels:      AllLevels,
		Mechanics:   AllMechanics,
		Equipment:   AllEquipment,
		Categories:  AllCategories,
		WeightUnits: AllWeightUnits,
		Genders:     genders,
	}
}
