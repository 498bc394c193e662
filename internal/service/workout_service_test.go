package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfolio/internal/model"
)

func TestUpsertWorkout_CreatesStrengthSeriesRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)

	result, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-01",
		WorkoutType: "push",
		Duration:    60,
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 3, NbRepetition: 10, Weight: 50},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Workout)
	assert.Equal(t, 1, result.SlotsWritten)
	assert.Empty(t, result.Skipped)

	view, err := env.workoutService.GetWorkout(ctx, result.Workout.WorkoutID)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 1)

	data := view.Exercises[0].Data
	assert.Equal(t, model.LogKindStrength, data.Kind)
	require.Len(t, data.Sets, 3)
	for i, set := range data.Sets {
		assert.Equal(t, i+1, set.SeriesNumber)
		assert.Equal(t, 10, set.Reps)
		assert.Equal(t, 50, set.Weight)
	}
	assert.Equal(t, 3, data.NbSeries)
	assert.Equal(t, 10, data.NbRepetition)
	assert.Equal(t, 50, data.Weight)
}

func TestUpsertWorkout_SkipsUnknownExercises(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Squat", model.ExerciseTypeStrength)

	result, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-02",
		WorkoutType: "legs",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Squat", NbSeries: 2, NbRepetition: 8, Weight: 80},
			{TempID: 2, ExerciseName: "Not A Real Exercise", NbSeries: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SlotsWritten)
	assert.Equal(t, []string{"Not A Real Exercise"}, result.Skipped)

	view, err := env.workoutService.GetWorkout(ctx, result.Workout.WorkoutID)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, "Squat", view.Exercises[0].ExerciseName)
	assert.Equal(t, 1, view.Exercises[0].Position)
}

func TestUpsertWorkout_ReplacesExistingWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Deadlift", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "Row", model.ExerciseTypeStrength)

	first, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-03",
		WorkoutType: "pull",
		Duration:    45,
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Deadlift", NbSeries: 3, NbRepetition: 5, Weight: 120},
		},
	})
	require.NoError(t, err)

	second, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-03",
		WorkoutType: "pull",
		Duration:    50,
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Row", NbSeries: 4, NbRepetition: 12, Weight: 40},
		},
	})
	require.NoError(t, err)

	// Same natural key resolves to the same workout, fully replaced.
	assert.Equal(t, first.Workout.WorkoutID, second.Workout.WorkoutID)
	assert.Equal(t, 1, second.SlotsDeleted)
	assert.Equal(t, 1, second.SlotsWritten)

	view, err := env.workoutService.GetWorkout(ctx, second.Workout.WorkoutID)
	require.NoError(t, err)
	assert.Equal(t, 50, view.Duration)
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, "Row", view.Exercises[0].ExerciseName)
	require.Len(t, view.Exercises[0].Data.Sets, 4)
}

func TestUpsertWorkout_TypeChangeSwapsLogRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Burpees", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "Treadmill", model.ExerciseTypeCardio)

	result, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-04",
		WorkoutType: "mixed",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Burpees", NbSeries: 2, NbRepetition: 15},
		},
	})
	require.NoError(t, err)

	duration := 1200
	distance := 5.0
	result, err = env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-04",
		WorkoutType: "mixed",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Treadmill", DurationSeconds: &duration, DistanceM: &distance},
		},
	})
	require.NoError(t, err)

	view, err := env.workoutService.GetWorkout(ctx, result.Workout.WorkoutID)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 1)

	data := view.Exercises[0].Data
	assert.Equal(t, model.LogKindCardio, data.Kind)
	assert.Empty(t, data.Sets)
	require.Len(t, data.Intervals, 1)
	require.NotNil(t, data.Intervals[0].DurationSeconds)
	assert.Equal(t, 1200, *data.Intervals[0].DurationSeconds)
	require.NotNil(t, data.Intervals[0].DistanceM)
	assert.InDelta(t, 5.0, *data.Intervals[0].DistanceM, 0.001)

	// The strength rows from the first upsert are gone.
	var count int64
	require.NoError(t, env.db.Model(&model.StrengthSeriesLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpsertWorkout_RepeatedExerciseContinuesSeriesNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Pull Up", model.ExerciseTypeStrength)

	result, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-05",
		WorkoutType: "pull",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Pull Up", NbSeries: 2, NbRepetition: 10},
			{TempID: 2, ExerciseName: "Pull Up", NbSeries: 2, NbRepetition: 8},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SlotsWritten)

	var logs []model.StrengthSeriesLog
	require.NoError(t, env.db.Order("series_number ASC").Find(&logs).Error)
	require.Len(t, logs, 4)
	for i, logRow := range logs {
		assert.Equal(t, i+1, logRow.SeriesNumber)
	}
}

func TestUpsertWorkout_OrdersSlotsByTempID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "A", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "B", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "C", model.ExerciseTypeStrength)

	result, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-06",
		WorkoutType: "full",
		Exercises: []model.SlotEntryRequest{
			{TempID: 30, ExerciseName: "C", NbSeries: 1},
			{TempID: 10, ExerciseName: "A", NbSeries: 1},
			{TempID: 20, ExerciseName: "B", NbSeries: 1},
		},
	})
	require.NoError(t, err)

	view, err := env.workoutService.GetWorkout(ctx, result.Workout.WorkoutID)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 3)
	assert.Equal(t, "A", view.Exercises[0].ExerciseName)
	assert.Equal(t, "B", view.Exercises[1].ExerciseName)
	assert.Equal(t, "C", view.Exercises[2].ExerciseName)
	for i, slot := range view.Exercises {
		assert.Equal(t, i+1, slot.Position)
	}
}

func TestUpsertWorkout_InvalidDateRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workoutService.UpsertWorkout(context.Background(), &model.UpsertWorkoutRequest{
		Date:        "03/01/2026",
		WorkoutType: "push",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestGetLastWorkoutByType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "Squat", model.ExerciseTypeStrength)

	for _, date := range []string{"2026-03-01", "2026-03-08"} {
		_, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
			Date:        date,
			WorkoutType: "push",
			Exercises: []model.SlotEntryRequest{
				{TempID: 1, ExerciseName: "Bench Press", NbSeries: 3, NbRepetition: 10, Weight: 50},
			},
		})
		require.NoError(t, err)
	}

	resp, err := env.workoutService.GetLastWorkoutByType(ctx, "push")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-08", resp.Date)
	require.Len(t, resp.Exercises, 1)
	assert.Len(t, resp.AllExercises, 2)

	// Unknown type still returns the catalog for the form.
	resp, err = env.workoutService.GetLastWorkoutByType(ctx, "no-such-type")
	require.NoError(t, err)
	assert.Empty(t, resp.Date)
	assert.Empty(t, resp.Exercises)
	assert.Len(t, resp.AllExercises, 2)
}

func TestDeleteWorkout_CascadesSlotsAndLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)

	result, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-07",
		WorkoutType: "push",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 3, NbRepetition: 10, Weight: 50},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.workoutService.DeleteWorkout(ctx, result.Workout.WorkoutID))

	_, err = env.workoutService.GetWorkout(ctx, result.Workout.WorkoutID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	var slots, logs int64
	require.NoError(t, env.db.Model(&model.Slot{}).Count(&slots).Error)
	require.NoError(t, env.db.Model(&model.StrengthSeriesLog{}).Count(&logs).Error)
	assert.Zero(t, slots)
	assert.Zero(t, logs)

	// Deleting again reports not found.
	err = env.workoutService.DeleteWorkout(ctx, result.Workout.WorkoutID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListWorkouts_Pagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)

	dates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"}
	for _, date := range dates {
		_, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
			Date:        date,
			WorkoutType: "push",
			Exercises: []model.SlotEntryRequest{
				{TempID: 1, ExerciseName: "Bench Press", NbSeries: 1, NbRepetition: 5},
			},
		})
		require.NoError(t, err)
	}

	page1, err := env.workoutService.ListWorkouts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page1.Workouts, 5)
	assert.True(t, page1.HasNext)
	assert.Equal(t, 2, page1.NextPageNumber)
	// Newest first.
	assert.Equal(t, "2026-03-06", page1.Workouts[0].Date)

	page2, err := env.workoutService.ListWorkouts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page2.Workouts, 1)
	assert.False(t, page2.HasNext)
}

func TestReplaceWorkout_TargetsAddressedWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)
	mustCreateExercise(t, env.db, "Squat", model.ExerciseTypeStrength)

	created, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-10",
		WorkoutType: "push",
		Duration:    60,
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 3, NbRepetition: 10, Weight: 50},
		},
	})
	require.NoError(t, err)

	// Moving the workout to a new date and type keeps its identity.
	replaced, err := env.workoutService.ReplaceWorkout(ctx, created.Workout.WorkoutID, &model.UpsertWorkoutRequest{
		Date:        "2026-03-11",
		WorkoutType: "legs",
		Duration:    45,
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Squat", NbSeries: 2, NbRepetition: 5, Weight: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, created.Workout.WorkoutID, replaced.Workout.WorkoutID)
	assert.Equal(t, 1, replaced.SlotsDeleted)
	assert.Equal(t, 1, replaced.SlotsWritten)

	view, err := env.workoutService.GetWorkout(ctx, created.Workout.WorkoutID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-11", view.Date)
	assert.Equal(t, "legs", view.WorkoutType)
	assert.Equal(t, 45, view.Duration)
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, "Squat", view.Exercises[0].ExerciseName)
}

func TestReplaceWorkout_ConflictOnOccupiedNaturalKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)

	first, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-12",
		WorkoutType: "push",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 1, NbRepetition: 10},
		},
	})
	require.NoError(t, err)

	second, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-13",
		WorkoutType: "push",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 1, NbRepetition: 10},
		},
	})
	require.NoError(t, err)

	_, err = env.workoutService.ReplaceWorkout(ctx, second.Workout.WorkoutID, &model.UpsertWorkoutRequest{
		Date:        "2026-03-12",
		WorkoutType: "push",
	})
	require.ErrorIs(t, err, model.ErrConflict)

	// The addressed workout is untouched after the rejected move.
	view, err := env.workoutService.GetWorkout(ctx, second.Workout.WorkoutID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-13", view.Date)
	require.Len(t, view.Exercises, 1)

	_, err = env.workoutService.GetWorkout(ctx, first.Workout.WorkoutID)
	require.NoError(t, err)
}

func TestReplaceWorkout_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workoutService.ReplaceWorkout(context.Background(), uuid.New(), &model.UpsertWorkoutRequest{
		Date:        "2026-03-14",
		WorkoutType: "push",
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}
