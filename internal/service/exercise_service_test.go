package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfolio/internal/model"
)

func TestCreateExercise_WithMuscleGroupsAndEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exercise, err := env.exerciseService.CreateExercise(ctx, &model.PostExerciseRequest{
		Name:         "Bench Press",
		Type:         "strength",
		Difficulty:   "intermediate",
		MuscleGroups: []string{"chest", "triceps"},
		Equipment:    []string{"barbell"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ExerciseTypeStrength, exercise.Type)
	assert.Equal(t, "intermediate", exercise.Difficulty)
	assert.Len(t, exercise.MuscleGroups, 2)
	assert.Len(t, exercise.Equipment, 1)

	// Referenced lookup rows were created on the fly.
	groups, err := env.exerciseService.ListMuscleGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestCreateExercise_DuplicateNameConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.exerciseService.CreateExercise(ctx, &model.PostExerciseRequest{Name: "Squat", Type: "strength"})
	require.NoError(t, err)

	_, err = env.exerciseService.CreateExercise(ctx, &model.PostExerciseRequest{Name: "Squat", Type: "cardio"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestUpdateExercise_PartialPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exercise, err := env.exerciseService.CreateExercise(ctx, &model.PostExerciseRequest{
		Name:         "Row",
		Type:         "strength",
		MuscleGroups: []string{"back"},
	})
	require.NoError(t, err)

	newDifficulty := "advanced"
	updated, err := env.exerciseService.UpdateExercise(ctx, exercise.ExerciseID, &model.PatchExerciseRequest{
		Difficulty: &newDifficulty,
	})
	require.NoError(t, err)
	assert.Equal(t, "advanced", updated.Difficulty)
	// Untouched fields survive the patch.
	assert.Equal(t, "Row", updated.Name)
	assert.Len(t, updated.MuscleGroups, 1)

	newGroups := []string{"back", "biceps"}
	updated, err = env.exerciseService.UpdateExercise(ctx, exercise.ExerciseID, &model.PatchExerciseRequest{
		MuscleGroups: &newGroups,
	})
	require.NoError(t, err)
	assert.Len(t, updated.MuscleGroups, 2)
}

func TestDeleteExercise_CascadesToSlotsAndLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exercise := mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)

	_, err := env.workoutService.UpsertWorkout(ctx, &model.UpsertWorkoutRequest{
		Date:        "2026-03-10",
		WorkoutType: "push",
		Exercises: []model.SlotEntryRequest{
			{TempID: 1, ExerciseName: "Bench Press", NbSeries: 3, NbRepetition: 10, Weight: 50},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.exerciseService.DeleteExercise(ctx, exercise.ExerciseID))

	var slots, logs int64
	require.NoError(t, env.db.Model(&model.Slot{}).Count(&slots).Error)
	require.NoError(t, env.db.Model(&model.StrengthSeriesLog{}).Count(&logs).Error)
	assert.Zero(t, slots)
	assert.Zero(t, logs)

	_, err = env.exerciseService.GetExercise(ctx, exercise.ExerciseID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListExerciseNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateExercise(t, env.db, "Treadmill", model.ExerciseTypeCardio)
	mustCreateExercise(t, env.db, "Bench Press", model.ExerciseTypeStrength)

	names, err := env.exerciseService.ListExerciseNames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 2)
	// Sorted by name.
	assert.Equal(t, "Bench Press", names[0].Name)
	assert.Equal(t, model.ExerciseTypeStrength, names[0].Type)
	assert.Equal(t, "Treadmill", names[1].Name)
	assert.Equal(t, model.ExerciseTypeCardio, names[1].Type)
}
