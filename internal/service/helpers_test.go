package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitfolio/internal/model"
	"fitfolio/internal/repository"
	"fitfolio/internal/service"
)

// setupTestDB opens a fresh in-memory sqlite database with the full
// schema migrated. Each call gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory sqlite")

	require.NoError(t, repository.AutoMigrate(db), "failed to migrate schema")
	return db
}

type testEnv struct {
	db              *gorm.DB
	exerciseService service.ExerciseService
	workoutService  service.WorkoutService
	transferService service.TransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	tagRepo := repository.NewGormTagRepository()
	projectRepo := repository.NewGormProjectRepository()
	testimonialRepo := repository.NewGormTestimonialRepository()
	workoutTypeRepo := repository.NewGormWorkoutTypeRepository()
	muscleGroupRepo := repository.NewGormMuscleGroupRepository()
	equipmentRepo := repository.NewGormEquipmentRepository()
	exerciseRepo := repository.NewGormExerciseRepository()
	workoutRepo := repository.NewGormWorkoutRepository()
	slotRepo := repository.NewGormSlotRepository()
	seriesRepo := repository.NewGormSeriesLogRepository()
	feedRepo := repository.NewGormFeedRepository()

	return &testEnv{
		db:              db,
		exerciseService: service.NewExerciseService(db, exerciseRepo, workoutTypeRepo, muscleGroupRepo, equipmentRepo, slotRepo, seriesRepo),
		workoutService:  service.NewWorkoutService(db, workoutRepo, workoutTypeRepo, exerciseRepo, slotRepo, seriesRepo, 5),
		transferService: service.NewTransferService(db, tagRepo, projectRepo, testimonialRepo, workoutTypeRepo, muscleGroupRepo, equipmentRepo, exerciseRepo, workoutRepo, slotRepo, seriesRepo, feedRepo),
	}
}

// mustCreateExercise seeds a catalog entry directly.
func mustCreateExercise(t *testing.T, db *gorm.DB, name string, exType model.ExerciseType) *model.Exercise {
	t.Helper()

	exercise := &model.Exercise{
		ExerciseID: uuid.New(),
		Name:       name,
		Type:       exType,
		Difficulty: "beginner",
	}
	require.NoError(t, db.WithContext(context.Background()).Create(exercise).Error)
	return exercise
}
