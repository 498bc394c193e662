package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfolio/internal/model"
)

func TestImport_CreatesEntityGraphFromNaturalKeys(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := &model.Document{
		Tags:         []model.TagRecord{{Name: "go"}, {Name: "web"}},
		Projects:     []model.ProjectRecord{{TitleEN: "Fitness tracker", TagNames: []string{"go", "web"}}},
		Testimonials: []model.TestimonialRecord{{Author: "Alice", TextEN: "Great work"}},
		WorkoutTypes: []model.WorkoutTypeRecord{{Name: "push"}},
		MuscleGroups: []model.MuscleGroupRecord{{LocalID: 1, Name: "chest"}},
		Equipment:    []model.EquipmentRecord{{LocalID: 1, Name: "barbell"}},
		Exercises: []model.ExerciseRecord{
			{Name: "Bench Press", Type: "strength", MuscleGroups: []int64{1}, Equipment: []int64{1}},
		},
		Workouts: []model.WorkoutRecord{
			{LocalID: 7, Date: "2026-02-01", WorkoutTypeName: "push", Duration: 55},
		},
		Slots: []model.SlotRecord{
			{WorkoutDate: "2026-02-01", ExerciseName: "Bench Press", Position: 1, LogKind: "strength"},
		},
		StrengthSeriesLogs: []model.StrengthSeriesRecord{
			{ExerciseName: "Bench Press", WorkoutID: 7, SeriesNumber: 1, Reps: 10, Weight: 60},
			{ExerciseName: "Bench Press", WorkoutID: 7, SeriesNumber: 2, Reps: 8, Weight: 65},
		},
		Feeds: []model.FeedRecord{{Name: "HN", URL: "https://news.ycombinator.com/rss", IsActive: true}},
	}

	summary, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created["exercises"])
	assert.Equal(t, 1, summary.Created["workouts"])
	assert.Equal(t, 1, summary.Created["slots"])
	assert.Equal(t, 2, summary.Created["strength_series_logs"])
	assert.Equal(t, 1, summary.Created["feeds"])
	assert.Empty(t, summary.Skipped)

	page, err := env.workoutService.ListWorkouts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Workouts, 1)

	view := page.Workouts[0]
	assert.Equal(t, "2026-02-01", view.Date)
	assert.Equal(t, "push", view.WorkoutType)
	require.Len(t, view.Exercises, 1)
	require.Len(t, view.Exercises[0].Data.Sets, 2)
	assert.Equal(t, 10, view.Exercises[0].Data.Sets[0].Reps)
	assert.Equal(t, 65, view.Exercises[0].Data.Sets[1].Weight)
}

func TestImport_ExpandsLegacyAggregatedLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := &model.Document{
		Exercises: []model.ExerciseRecord{{Name: "Bench Press", Type: "strength"}},
		Workouts:  []model.WorkoutRecord{{Date: "2026-02-02", WorkoutTypeName: "push"}},
		LegacyStrengthLogs: []model.LegacyStrengthLogRecord{
			{ExerciseName: "Bench Press", WorkoutDate: "2026-02-02", NbSeries: 3, NbRepetition: 10, Weight: 50},
		},
	}

	summary, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Created["strength_series_logs"])
	assert.Equal(t, 1, summary.Created["slots"])

	var logs []model.StrengthSeriesLog
	require.NoError(t, env.db.Order("series_number ASC").Find(&logs).Error)
	require.Len(t, logs, 3)
	for i, row := range logs {
		assert.Equal(t, i+1, row.SeriesNumber)
		assert.Equal(t, 10, row.Reps)
		assert.Equal(t, 50, row.Weight)
	}
}

func TestImport_LegacyOneExerciseDiscriminator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := &model.Document{
		Exercises: []model.ExerciseRecord{
			{Name: "Treadmill", Type: "cardio"},
			{Name: "Mystery", Type: "strength"},
		},
		Workouts: []model.WorkoutRecord{{Date: "2026-02-03"}},
		LegacyOneExercises: []model.LegacyOneExerciseRecord{
			{ExerciseName: "Treadmill", WorkoutDate: "2026-02-03", ContentTypeModel: "cardioexerciselog"},
			{ExerciseName: "Mystery", WorkoutDate: "2026-02-03"},
		},
	}

	_, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)

	var slots []model.Slot
	require.NoError(t, env.db.Order("position ASC").Find(&slots).Error)
	require.Len(t, slots, 2)
	assert.Equal(t, model.LogKindCardio, slots[0].LogKind)
	// No content type means the slot is orphaned, not an error.
	assert.Equal(t, model.LogKindNone, slots[1].LogKind)
}

func TestImport_SkipsBadRecordsAndKeepsGoodOnes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := &model.Document{
		Exercises: []model.ExerciseRecord{{Name: "Squat", Type: "strength"}},
		Workouts:  []model.WorkoutRecord{{Date: "2026-02-04", WorkoutTypeName: "legs"}},
		StrengthSeriesLogs: []model.StrengthSeriesRecord{
			{ExerciseName: "Squat", WorkoutDate: "2026-02-04", SeriesNumber: 1, Reps: 5, Weight: 100},
			{ExerciseName: "Squat", WorkoutDate: "2026-02-04", SeriesNumber: 2, Reps: 5, Weight: 100},
			{ExerciseName: "Squat", WorkoutDate: "2026-02-04", SeriesNumber: 3, Reps: 5, Weight: 100},
			{ExerciseName: "Squat", WorkoutDate: "2026-02-04", SeriesNumber: 4, Reps: 5, Weight: 100},
			{ExerciseName: "Squat", WorkoutDate: "2026-02-04", SeriesNumber: 5, Reps: 5, Weight: 100},
			{ExerciseName: "Ghost Exercise", WorkoutDate: "2026-02-04", SeriesNumber: 1, Reps: 5, Weight: 100},
		},
	}

	summary, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Created["strength_series_logs"])
	assert.Equal(t, 1, summary.Skipped["strength_series_logs"])
	require.NotEmpty(t, summary.Warnings)
	assert.Contains(t, summary.Warnings[0], "Ghost Exercise")

	var count int64
	require.NoError(t, env.db.Model(&model.StrengthSeriesLog{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestImport_SkipsWorkoutWithBadDate(t *testing.T) {
	env := newTestEnv(t)

	doc := &model.Document{
		Workouts: []model.WorkoutRecord{
			{Date: "not-a-date"},
			{Date: "2026-02-05"},
		},
	}
	summary, err := env.transferService.Import(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created["workouts"])
	assert.Equal(t, 1, summary.Skipped["workouts"])
}

func TestExportImport_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "Treadmill", model.ExerciseTypeCardio)

	duration := 900
	_, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-02-06",
		WorkoutType: "mixed",
		Duration:    70,
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 3, NbRepetition: 10, Weight: 50},
			{TempID: 2, ExerciseName: "Treadmill", DurationSeconds: &duration},
		},
	})
	require.NoError(t, err)

	doc, err := env.transferService.Export(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Workouts, 1)
	require.Len(t, doc.Slots, 2)
	require.Len(t, doc.StrengthSeriesLogs, 3)
	require.Len(t, doc.CardioSeriesLogs, 1)

	// Import into a fresh database and compare the rendered views.
	dst := newTestEnv(t)
	_, err = dst.transferService.Import(ctx, doc)
	require.NoError(t, err)

	srcPage, err := env.workoutService.ListWorkouts(ctx, 1)
	require.NoError(t, err)
	dstPage, err := dst.workoutService.ListWorkouts(ctx, 1)
	require.NoError(t, err)

	require.Len(t, dstPage.Workouts, 1)
	src, imported := srcPage.Workouts[0], dstPage.Workouts[0]
	assert.Equal(t, src.Date, imported.Date)
	assert.Equal(t, src.WorkoutType, imported.WorkoutType)
	assert.Equal(t, src.Duration, imported.Duration)
	require.Len(t, imported.Exercises, len(src.Exercises))
	for i := range src.Exercises {
		assert.Equal(t, src.Exercises[i].ExerciseName, imported.Exercises[i].ExerciseName)
		assert.Equal(t, src.Exercises[i].Position, imported.Exercises[i].Position)
		assert.Equal(t, src.Exercises[i].Data.Kind, imported.Exercises[i].Data.Kind)
		assert.Equal(t, src.Exercises[i].Data.Sets, imported.Exercises[i].Data.Sets)
		assert.Equal(t, src.Exercises[i].Data.Intervals, imported.Exercises[i].Data.Intervals)
	}
}

func TestImport_IsIdempotentForCatalogAndWorkouts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := &model.Document{
		Exercises: []model.ExerciseRecord{{Name: "Squat", Type: "strength"}},
		Workouts:  []model.WorkoutRecord{{Date: "2026-02-07", WorkoutTypeName: "legs", Duration: 40}},
	}

	first, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created["workouts"])

	second, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Zero(t, second.Created["workouts"])
	assert.Equal(t, 1, second.Updated["workouts"])
	assert.Equal(t, 1, second.Updated["exercises"])

	var workouts int64
	require.NoError(t, env.db.Model(&model.Workout{}).Count(&workouts).Error)
	assert.EqualValues(t, 1, workouts)
}

func TestExportImport_KeepsSameDateWorkoutsSeparate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "Squat", model.ExerciseTypeStrength)

	// Two workouts on the same date, distinguished only by type.
	for _, w := range []struct {
		workoutType, exercise string
	}{
		{"push", "Bench Press"},
		{"legs", "Squat"},
	} {
		_, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
			Date:        "2026-02-10",
			WorkoutType: w.workoutType,
			Exercises: []model.SlotEntryRequest{
				{TempID: 1, ExerciseName: w.exercise, NbSeries: 2, NbRepetition: 8, Weight: 60},
			},
		})
		require.NoError(t, err)
	}

	doc, err := env.transferService.Export(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Workouts, 2)
	for _, rec := range doc.Workouts {
		assert.NotZero(t, rec.LocalID)
		assert.NotEmpty(t, rec.WorkoutTypeName)
	}
	require.Len(t, doc.Slots, 2)
	for _, rec := range doc.Slots {
		assert.NotZero(t, rec.WorkoutID)
	}

	dst := newTestEnv(t)
	_, err = dst.transferService.Import(ctx, doc)
	require.NoError(t, err)

	page, err := dst.workoutService.ListWorkouts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Workouts, 2)

	byType := make(map[string]model.WorkoutView, 2)
	for _, view := range page.Workouts {
		byType[view.WorkoutType] = view
	}
	require.Len(t, byType["push"].Exercises, 1)
	assert.Equal(t, "Bench Press", byType["push"].Exercises[0].ExerciseName)
	require.Len(t, byType["legs"].Exercises, 1)
	assert.Equal(t, "Squat", byType["legs"].Exercises[0].ExerciseName)
}

func TestImport_SeriesReimportUpdatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := &model.Document{
		Exercises: []model.ExerciseRecord{{Name: "Squat", Type: "strength"}},
		Workouts:  []model.WorkoutRecord{{LocalID: 1, Date: "2026-02-11", WorkoutTypeName: "legs"}},
		StrengthSeriesLogs: []model.StrengthSeriesRecord{
			{ExerciseName: "Squat", WorkoutID: 1, SeriesNumber: 1, Reps: 5, Weight: 100},
			{ExerciseName: "Squat", WorkoutID: 1, SeriesNumber: 2, Reps: 5, Weight: 100},
		},
	}

	first, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created["strength_series_logs"])

	// Re-importing matches rows by series number instead of appending.
	doc.StrengthSeriesLogs[0].Weight = 110
	second, err := env.transferService.Import(ctx, doc)
	require.NoError(t, err)
	assert.Zero(t, second.Created["strength_series_logs"])
	assert.Equal(t, 2, second.Updated["strength_series_logs"])

	var logs []model.StrengthSeriesLog
	require.NoError(t, env.db.Order("series_number ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, 110, logs[0].Weight)
	assert.Equal(t, 100, logs[1].Weight)
}
