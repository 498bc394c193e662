package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
	"fitfolio/internal/repository"
)

// ExerciseService manages the exercise catalog and its lookup tables.
type ExerciseService interface {
	CreateExercise(ctx context.Context, req *model.PostExerciseRequest) (*model.Exercise, error)
	GetExercise(ctx context.Context, exerciseID uuid.UUID) (*model.Exercise, error)
	ListExercises(ctx context.Context) ([]*model.Exercise, error)
	ListExerciseNames(ctx context.Context) ([]model.ExerciseName, error)
	UpdateExercise(ctx context.Context, exerciseID uuid.UUID, req *model.PatchExerciseRequest) (*model.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID uuid.UUID) error
	ListWorkoutTypes(ctx context.Context) ([]*model.WorkoutType, error)
	ListMuscleGroups(ctx context.Context) ([]*model.MuscleGroup, error)
	ListEquipment(ctx context.Context) ([]*model.Equipment, error)
}

type exerciseService struct {
	db              *gorm.DB
	exerciseRepo    repository.ExerciseRepository
	workoutTypeRepo repository.WorkoutTypeRepository
	muscleGroupRepo repository.MuscleGroupRepository
	equipmentRepo   repository.EquipmentRepository
	slotRepo        repository.SlotRepository
	seriesRepo      repository.SeriesLogRepository
}

func NewExerciseService(
	db *gorm.DB,
	exerciseRepo repository.ExerciseRepository,
	workoutTypeRepo repository.WorkoutTypeRepository,
	muscleGroupRepo repository.MuscleGroupRepository,
	equipmentRepo repository.EquipmentRepository,
	slotRepo repository.SlotRepository,
	seriesRepo repository.SeriesLogRepository,
) ExerciseService {
	return &exerciseService{
		db:              db,
		exerciseRepo:    exerciseRepo,
		workoutTypeRepo: workoutTypeRepo,
		muscleGroupRepo: muscleGroupRepo,
		equipmentRepo:   equipmentRepo,
		slotRepo:        slotRepo,
		seriesRepo:      seriesRepo,
	}
}

func (s *exerciseService) CreateExercise(ctx context.Context, req *model.PostExerciseRequest) (*model.Exercise, error) {
	logger := middleware.GetLogger(ctx)

	exists, err := s.exerciseRepo.CheckNameExists(ctx, s.db, req.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("exerciseService.CreateExercise: %w", err)
	}
	if exists {
		return nil, model.NewAppError("DUPLICATE_EXERCISE", "an exercise with this name already exists", "name", model.ErrConflict)
	}

	exercise := &model.Exercise{
		ExerciseID: uuid.New(),
		Name:       req.Name,
		Type:       model.ExerciseType(req.Type),
		Difficulty: req.Difficulty,
	}
	if exercise.Difficulty == "" {
		exercise.Difficulty = "beginner"
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exerciseRepo.Create(ctx, tx, exercise); err != nil {
			return err
		}
		groups, err := s.resolveMuscleGroups(ctx, tx, req.MuscleGroups)
		if err != nil {
			return err
		}
		if len(groups) > 0 {
			if err := s.exerciseRepo.ReplaceMuscleGroups(ctx, tx, exercise, groups); err != nil {
				return err
			}
		}
		items, err := s.resolveEquipment(ctx, tx, req.Equipment)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			if err := s.exerciseRepo.ReplaceEquipment(ctx, tx, exercise, items); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create exercise", "error", err, "name", req.Name)
		return nil, fmt.Errorf("exerciseService.CreateExercise: %w", err)
	}

	return s.exerciseRepo.FindByID(ctx, s.db, exercise.ExerciseID)
}

func (s *exerciseService) GetExercise(ctx context.Context, exerciseID uuid.UUID) (*model.Exercise, error) {
	exercise, err := s.exerciseRepo.FindByID(ctx, s.db, exerciseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("EXERCISE_NOT_FOUND", "exercise not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("exerciseService.GetExercise: %w", err)
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]*model.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("exerciseService.ListExercises: %w", err)
	}
	return exercises, nil
}

func (s *exerciseService) ListExerciseNames(ctx context.Context) ([]model.ExerciseName, error) {
	exercises, err := s.exerciseRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("exerciseService.ListExerciseNames: %w", err)
	}
	names := make([]model.ExerciseName, 0, len(exercises))
	for _, ex := range exercises {
		names = append(names, model.ExerciseName{Name: ex.Name, Type: ex.Type})
	}
	return names, nil
}

func (s *exerciseService) UpdateExercise(ctx context.Context, exerciseID uuid.UUID, req *model.PatchExerciseRequest) (*model.Exercise, error) {
	exercise, err := s.exerciseRepo.FindByID(ctx, s.db, exerciseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("EXERCISE_NOT_FOUND", "exercise not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("exerciseService.UpdateExercise: %w", err)
	}

	if req.Name != nil && *req.Name != exercise.Name {
		exists, err := s.exerciseRepo.CheckNameExists(ctx, s.db, *req.Name, &exerciseID)
		if err != nil {
			return nil, fmt.Errorf("exerciseService.UpdateExercise: %w", err)
		}
		if exists {
			return nil, model.NewAppError("DUPLICATE_EXERCISE", "an exercise with this name already exists", "name", model.ErrConflict)
		}
		exercise.Name = *req.Name
	}
	if req.Type != nil {
		exercise.Type = model.ExerciseType(*req.Type)
	}
	if req.Difficulty != nil {
		exercise.Difficulty = *req.Difficulty
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exerciseRepo.Update(ctx, tx, exercise); err != nil {
			return err
		}
		if req.MuscleGroups != nil {
			groups, err := s.resolveMuscleGroups(ctx, tx, *req.MuscleGroups)
			if err != nil {
				return err
			}
			if err := s.exerciseRepo.ReplaceMuscleGroups(ctx, tx, exercise, groups); err != nil {
				return err
			}
		}
		if req.Equipment != nil {
			items, err := s.resolveEquipment(ctx, tx, *req.Equipment)
			if err != nil {
				return err
			}
			if err := s.exerciseRepo.ReplaceEquipment(ctx, tx, exercise, items); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("exerciseService.UpdateExercise: %w", err)
	}

	return s.exerciseRepo.FindByID(ctx, s.db, exerciseID)
}

// DeleteExercise removes a catalog entry together with every slot and
// series row that references it.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.seriesRepo.DeleteByExercise(ctx, tx, exerciseID); err != nil {
			return err
		}
		if err := s.slotRepo.DeleteByExercise(ctx, tx, exerciseID); err != nil {
			return err
		}
		return s.exerciseRepo.Delete(ctx, tx, exerciseID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("EXERCISE_NOT_FOUND", "exercise not found", "", model.ErrNotFound)
		}
		return fmt.Errorf("exerciseService.DeleteExercise: %w", err)
	}
	return nil
}

func (s *exerciseService) ListWorkoutTypes(ctx context.Context) ([]*model.WorkoutType, error) {
	types, err := s.workoutTypeRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("exerciseService.ListWorkoutTypes: %w", err)
	}
	return types, nil
}

func (s *exerciseService) ListMuscleGroups(ctx context.Context) ([]*model.MuscleGroup, error) {
	groups, err := s.muscleGroupRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("exerciseService.ListMuscleGroups: %w", err)
	}
	return groups, nil
}

func (s *exerciseService) ListEquipment(ctx context.Context) ([]*model.Equipment, error) {
	items, err := s.equipmentRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("exerciseService.ListEquipment: %w", err)
	}
	return items, nil
}

func (s *exerciseService) resolveMuscleGroups(ctx context.Context, tx *gorm.DB, names []string) ([]model.MuscleGroup, error) {
	groups := make([]model.MuscleGroup, 0, len(names))
	for _, name := range names {
		mg, err := s.muscleGroupRepo.GetOrCreateByName(ctx, tx, name, "")
		if err != nil {
			return nil, err
		}
		groups = append(groups, *mg)
	}
	return groups, nil
}

func (s *exerciseService) resolveEquipment(ctx context.Context, tx *gorm.DB, names []string) ([]model.Equipment, error) {
	items := make([]model.Equipment, 0, len(names))
	for _, name := range names {
		eq, err := s.equipmentRepo.GetOrCreateByName(ctx, tx, name, "")
		if err != nil {
			return nil, err
		}
		items = append(items, *eq)
	}
	return items, nil
}
