package model

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseType classifies a catalog exercise and decides which log
// shape its slots carry.
type ExerciseType string

const (
	ExerciseTypeStrength ExerciseType = "strength"
	ExerciseTypeCardio   ExerciseType = "cardio"
)

// LogKind tags the concrete log shape owned by a slot. It always
// mirrors the exercise's type; LogKindNone marks an orphaned slot
// whose log rows are missing (a valid terminal state, not an error).
type LogKind string

const (
	LogKindStrength LogKind = "strength"
	LogKindCardio   LogKind = "cardio"
	LogKindNone     LogKind = "none"
)

// WorkoutType is a free-form workout category ("push", "legs", ...).
type WorkoutType struct {
	WorkoutTypeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"workout_type_id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (WorkoutType) TableName() string {
	return "workout_types"
}

type MuscleGroup struct {
	MuscleGroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"muscle_group_id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
	Description   string    `json:"description,omitempty"`
}

func (MuscleGroup) TableName() string {
	return "muscle_groups"
}

type Equipment struct {
	EquipmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"equipment_id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description,omitempty"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// Exercise is a global catalog entry. Its Type is not expected to
// change once logs reference it, though the schema does not enforce
// that.
type Exercise struct {
	ExerciseID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"exercise_id"`
	Name       string       `gorm:"uniqueIndex;not null" json:"name"`
	Type       ExerciseType `gorm:"type:varchar(20);not null;default:strength" json:"exercise_type"`
	Difficulty string       `gorm:"type:varchar(20);default:beginner" json:"difficulty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	MuscleGroups []MuscleGroup `gorm:"many2many:exercise_muscle_groups" json:"muscle_groups,omitempty"`
	Equipment    []Equipment   `gorm:"many2many:exercise_equipment" json:"equipment,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// Workout is one training session. It owns an ordered collection of
// slots; deleting it must also delete the slots and their log rows.
type Workout struct {
	WorkoutID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"workout_id"`
	Date          time.Time  `gorm:"not null;index" json:"date"`
	WorkoutTypeID *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Duration      int        `gorm:"not null;default:0" json:"duration"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// references pins the belongs-to join; the FK field shares its
	// name with the related primary key, which GORM would otherwise
	// read as a has-one.
	WorkoutType *WorkoutType `gorm:"foreignKey:WorkoutTypeID;references:WorkoutTypeID" json:"workout_type,omitempty"`
}

func (Workout) TableName() string {
	return "workouts"
}

// Slot is one exercise's occurrence within a workout at an ordinal
// position. LogKind is the tag of the union: the measured data lives
// in the strength or cardio series tables keyed by
// (exercise, workout).
type Slot struct {
	SlotID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"slot_id"`
	WorkoutID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_slots_workout_position" json:"workout_id"`
	Position   int       `gorm:"not null;uniqueIndex:uq_slots_workout_position" json:"position"`
	ExerciseID uuid.UUID `gorm:"type:uuid;not null;index" json:"exercise_id"`
	LogKind    LogKind   `gorm:"type:varchar(20);not null" json:"log_kind"`
	Notes      string    `json:"notes,omitempty"`

	Exercise *Exercise `gorm:"foreignKey:ExerciseID;references:ExerciseID" json:"-"`
}

func (Slot) TableName() string {
	return "slots"
}

// StrengthSeriesLog is one set of a strength exercise in a workout.
type StrengthSeriesLog struct {
	LogID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"log_id"`
	ExerciseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_strength_series" json:"exercise_id"`
	WorkoutID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_strength_series" json:"workout_id"`
	SeriesNumber int       `gorm:"not null;uniqueIndex:uq_strength_series" json:"series_number"`
	Reps         int       `gorm:"not null" json:"reps"`
	Weight       int       `gorm:"not null" json:"weight"`
}

func (StrengthSeriesLog) TableName() string {
	return "strength_series_logs"
}

// CardioSeriesLog is one interval of a cardio exercise in a workout.
type CardioSeriesLog struct {
	LogID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"log_id"`
	ExerciseID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cardio_series" json:"exercise_id"`
	WorkoutID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cardio_series" json:"workout_id"`
	SeriesNumber    int       `gorm:"not null;uniqueIndex:uq_cardio_series" json:"series_number"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	DistanceM       *float64  `json:"distance_m,omitempty"`
}

func (CardioSeriesLog) TableName() string {
	return "cardio_series_logs"
}
