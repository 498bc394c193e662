package model

// Document is the on-disk JSON representation of the full entity
// graph. Cross-references use natural keys (names, workout dates) or
// document-local integer ids; local ids are remapped on import and are
// never reused as live identifiers.
type Document struct {
	ExportDate string `json:"export_date,omitempty"`

	Tags         []TagRecord         `json:"tags,omitempty"`
	Projects     []ProjectRecord     `json:"projects,omitempty"`
	Testimonials []TestimonialRecord `json:"testimonials,omitempty"`

	WorkoutTypes []WorkoutTypeRecord `json:"workout_types,omitempty"`
	MuscleGroups []MuscleGroupRecord `json:"muscle_groups,omitempty"`
	Equipment    []EquipmentRecord   `json:"equipment,omitempty"`
	Exercises    []ExerciseRecord    `json:"exercises,omitempty"`
	Workouts     []WorkoutRecord     `json:"workouts,omitempty"`
	Slots        []SlotRecord        `json:"slots,omitempty"`

	StrengthSeriesLogs []StrengthSeriesRecord `json:"strength_series_logs,omitempty"`
	CardioSeriesLogs   []CardioSeriesRecord   `json:"cardio_series_logs,omitempty"`

	// Legacy aggregated shapes, accepted on import only. One record
	// summarizes N series and is expanded into N per-series rows.
	LegacyStrengthLogs []LegacyStrengthLogRecord `json:"strength_exercise_logs,omitempty"`
	LegacyCardioLogs   []LegacyCardioLogRecord   `json:"cardio_exercise_logs,omitempty"`
	LegacyOneExercises []LegacyOneExerciseRecord `json:"one_exercises,omitempty"`

	Feeds []FeedRecord `json:"feeds,omitempty"`
}

type TagRecord struct {
	Name string `json:"name"`
}

type ProjectRecord struct {
	TitleEN       string   `json:"title_en"`
	DescriptionEN string   `json:"description_en,omitempty"`
	TitleFR       string   `json:"title_fr,omitempty"`
	DescriptionFR string   `json:"description_fr,omitempty"`
	GithubURL     string   `json:"github_url,omitempty"`
	TagNames      []string `json:"tag_names,omitempty"`
}

type TestimonialRecord struct {
	Author string `json:"author"`
	TextEN string `json:"text_en,omitempty"`
	TextFR string `json:"text_fr,omitempty"`
}

type WorkoutTypeRecord struct {
	LocalID int64  `json:"id,omitempty"`
	Name    string `json:"name_workout"`
}

type MuscleGroupRecord struct {
	LocalID     int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type EquipmentRecord struct {
	LocalID     int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ExerciseRecord struct {
	LocalID      int64   `json:"id,omitempty"`
	Name         string  `json:"name"`
	Type         string  `json:"exercise_type"`
	Difficulty   string  `json:"difficulty,omitempty"`
	MuscleGroups []int64 `json:"muscle_groups,omitempty"`
	Equipment    []int64 `json:"equipment,omitempty"`
}

type WorkoutRecord struct {
	LocalID         int64  `json:"id,omitempty"`
	Date            string `json:"date"`
	WorkoutTypeName string `json:"type_workout_name,omitempty"`
	Duration        int    `json:"duration,omitempty"`
}

type SlotRecord struct {
	WorkoutID    int64  `json:"workout_id,omitempty"`
	WorkoutDate  string `json:"workout_date"`
	ExerciseID   int64  `json:"exercise_id,omitempty"`
	ExerciseName string `json:"exercise_name"`
	Position     int    `json:"position"`
	LogKind      string `json:"log_kind"`
	Notes        string `json:"notes,omitempty"`
}

type StrengthSeriesRecord struct {
	ExerciseID   int64  `json:"exercise_id,omitempty"`
	ExerciseName string `json:"exercise_name"`
	WorkoutID    int64  `json:"workout_id,omitempty"`
	WorkoutDate  string `json:"workout_date,omitempty"`
	SeriesNumber int    `json:"series_number"`
	Reps         int    `json:"reps"`
	Weight       int    `json:"weight"`
}

type CardioSeriesRecord struct {
	ExerciseID      int64    `json:"exercise_id,omitempty"`
	ExerciseName    string   `json:"exercise_name"`
	WorkoutID       int64    `json:"workout_id,omitempty"`
	WorkoutDate     string   `json:"workout_date,omitempty"`
	SeriesNumber    int      `json:"series_number"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	DistanceM       *float64 `json:"distance_m,omitempty"`
}

type LegacyStrengthLogRecord struct {
	ExerciseName string `json:"exercise_name"`
	WorkoutID    int64  `json:"workout_id,omitempty"`
	WorkoutDate  string `json:"workout_date,omitempty"`
	NbSeries     int    `json:"nb_series"`
	NbRepetition int    `json:"nb_repetition"`
	Weight       int    `json:"weight"`
	Notes        string `json:"notes,omitempty"`
}

type LegacyCardioLogRecord struct {
	ExerciseName    string   `json:"exercise_name"`
	WorkoutID       int64    `json:"workout_id,omitempty"`
	WorkoutDate     string   `json:"workout_date,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	DistanceM       *float64 `json:"distance_m,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// LegacyOneExerciseRecord is the old generic-FK slot shape. The
// content-type model name doubles as the log-kind discriminator.
type LegacyOneExerciseRecord struct {
	ExerciseName     string `json:"exercise_name"`
	WorkoutDate      string `json:"workout_date"`
	Position         int    `json:"position,omitempty"`
	ContentTypeModel string `json:"content_type_model,omitempty"`
}

type FeedRecord struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ImportSummary reports per-class created/updated/skipped counts plus
// the warnings emitted for skipped records.
type ImportSummary struct {
	Created  map[string]int `json:"created"`
	Updated  map[string]int `json:"updated"`
	Skipped  map[string]int `json:"skipped"`
	Warnings []string       `json:"warnings,omitempty"`
}

func NewImportSummary() *ImportSummary {
	return &ImportSummary{
		Created: make(map[string]int),
		Updated: make(map[string]int),
		Skipped: make(map[string]int),
	}
}
