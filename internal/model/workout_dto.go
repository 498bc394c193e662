package model

import "github.com/google/uuid"

// SlotEntryRequest is one posted exercise entry of a workout upsert.
// TempID is the client-assigned ordering key; positions are derived
// from it server-side. Strength entries carry nb_series/nb_repetition/
// weight, cardio entries carry duration_seconds/distance_m. Which set
// applies is decided by the referenced exercise's type, never by the
// client.
type SlotEntryRequest struct {
	TempID       int    `json:"temp_id"`
	ExerciseName string `json:"exercise_name" validate:"required"`

	NbSeries     int `json:"nb_series,omitempty" validate:"omitempty,min=1,max=50"`
	NbRepetition int `json:"nb_repetition,omitempty" validate:"omitempty,min=0"`
	Weight       int `json:"weight,omitempty" validate:"omitempty,min=0"`

	DurationSeconds *int     `json:"duration_seconds,omitempty" validate:"omitempty,min=0"`
	DistanceM       *float64 `json:"distance_m,omitempty" validate:"omitempty,min=0"`

	Notes string `json:"notes,omitempty"`
}

// UpsertWorkoutRequest creates or fully replaces one workout and its
// slots.
type UpsertWorkoutRequest struct {
	Date        string             `json:"date" validate:"required,datetime=2006-01-02"`
	WorkoutType string             `json:"type_workout" validate:"required"`
	Duration    int                `json:"duration" validate:"min=0"`
	Exercises   []SlotEntryRequest `json:"exercises" validate:"dive"`
}

// UpsertWorkoutResult reports what an upsert did. Skipped lists the
// exercise names that were silently dropped because they matched no
// catalog entry.
type UpsertWorkoutResult struct {
	Workout      *Workout `json:"workout"`
	SlotsWritten int      `json:"slots_written"`
	SlotsDeleted int      `json:"slots_deleted"`
	Skipped      []string `json:"skipped,omitempty"`
}

// StrengthSetData is one set in a resolved strength log view.
type StrengthSetData struct {
	SeriesNumber int `json:"series_number"`
	Reps         int `json:"reps"`
	Weight       int `json:"weight"`
}

// CardioSetData is one interval in a resolved cardio log view.
type CardioSetData struct {
	SeriesNumber    int      `json:"series_number"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	DistanceM       *float64 `json:"distance_m,omitempty"`
}

// SlotLogData is the tagged-union view of a slot's measured data.
// Exactly one of the Sets/Intervals groups is populated according to
// Kind; Kind "none" means the slot is orphaned and carries no data.
// The aggregate fields summarize the series rows for display.
type SlotLogData struct {
	Kind LogKind `json:"kind"`

	NbSeries     int               `json:"nb_series,omitempty"`
	NbRepetition int               `json:"nb_repetition,omitempty"`
	Weight       int               `json:"weight,omitempty"`
	Sets         []StrengthSetData `json:"sets,omitempty"`

	DurationSeconds *int            `json:"duration_seconds,omitempty"`
	DistanceM       *float64        `json:"distance_m,omitempty"`
	Intervals       []CardioSetData `json:"intervals,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// SlotView is one resolved slot as rendered in workout listings.
type SlotView struct {
	SlotID       uuid.UUID    `json:"slot_id"`
	Position     int          `json:"position"`
	ExerciseName string       `json:"name"`
	ExerciseType ExerciseType `json:"exercise_type"`
	Data         SlotLogData  `json:"data"`
}

// WorkoutView is one workout with its ordered, resolved slots.
type WorkoutView struct {
	WorkoutID   uuid.UUID  `json:"workout_id"`
	Date        string     `json:"date"`
	WorkoutType string     `json:"type_workout"`
	Duration    int        `json:"duration"`
	Exercises   []SlotView `json:"exercises"`
}

// WorkoutPage is one page of the newest-first workout listing.
type WorkoutPage struct {
	Workouts       []WorkoutView `json:"workout_data"`
	HasNext        bool          `json:"has_next"`
	NextPageNumber int           `json:"next_page_number,omitempty"`
}

// LastWorkoutResponse prefills the add-workout form with the most
// recent workout of a type plus the full exercise catalog.
type LastWorkoutResponse struct {
	Date         string         `json:"date,omitempty"`
	Exercises    []SlotView     `json:"exercises,omitempty"`
	AllExercises []ExerciseName `json:"all_exercises"`
}

// ExerciseName is the minimal catalog projection used by form prefill
// and autocomplete endpoints.
type ExerciseName struct {
	Name string       `json:"name"`
	Type ExerciseType `json:"exercise_type"`
}

// PostExerciseRequest creates a catalog exercise. Muscle groups and
// equipment are referenced by name; unknown names are created.
type PostExerciseRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=50"`
	Type         string   `json:"exercise_type" validate:"required,oneof=strength cardio"`
	Difficulty   string   `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	MuscleGroups []string `json:"muscle_groups,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
}

// PatchExerciseRequest partially updates a catalog exercise.
type PatchExerciseRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Type         *string   `json:"exercise_type,omitempty" validate:"omitempty,oneof=strength cardio"`
	Difficulty   *string   `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	MuscleGroups *[]string `json:"muscle_groups,omitempty"`
	Equipment    *[]string `json:"equipment,omitempty"`
}
