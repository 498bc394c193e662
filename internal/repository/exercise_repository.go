package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
)

type ExerciseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, exercise *model.Exercise) error
	FindByID(ctx context.Context, db *gorm.DB, exerciseID uuid.UUID) (*model.Exercise, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Exercise, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Exercise, error)
	Update(ctx context.Context, tx *gorm.DB, exercise *model.Exercise) error
	ReplaceMuscleGroups(ctx context.Context, tx *gorm.DB, exercise *model.Exercise, groups []model.MuscleGroup) error
	ReplaceEquipment(ctx context.Context, tx *gorm.DB, exercise *model.Exercise, items []model.Equipment) error
	Delete(ctx context.Context, tx *gorm.DB, exerciseID uuid.UUID) error
	CheckNameExists(ctx context.Context, db *gorm.DB, name string, excludeID *uuid.UUID) (bool, error)
}

type gormExerciseRepository struct{}

func NewGormExerciseRepository() ExerciseRepository {
	return &gormExerciseRepository{}
}

func (r *gormExerciseRepository) Create(ctx context.Context, tx *gorm.DB, exercise *model.Exercise) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(exercise)
	if result.Error != nil {
		logger.Error("Error creating exercise in DB",
			"error", result.Error,
			"name", exercise.Name,
		)
		return fmt.Errorf("gormExerciseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormExerciseRepository) FindByID(ctx context.Context, db *gorm.DB, exerciseID uuid.UUID) (*model.Exercise, error) {
	var exercise model.Exercise
	result := db.WithContext(ctx).
		Preload("MuscleGroups").
		Preload("Equipment").
		Where("exercise_id = ?", exerciseID).
		First(&exercise)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormExerciseRepository.FindByID: %w", result.Error)
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Exercise, error) {
	var exercise model.Exercise
	result := db.WithContext(ctx).Where("name = ?", name).First(&exercise)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormExerciseRepository.FindByName: %w", result.Error)
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Exercise, error) {
	var exercises []*model.Exercise
	result := db.WithContext(ctx).
		Preload("MuscleGroups").
		Preload("Equipment").
		Order("name ASC").
		Find(&exercises)
	if result.Error != nil {
		return nil, fmt.Errorf("gormExerciseRepository.List: %w", result.Error)
	}
	return exercises, nil
}

func (r *gormExerciseRepository) Update(ctx context.Context, tx *gorm.DB, exercise *model.Exercise) error {
	result := tx.WithContext(ctx).
		Model(&model.Exercise{}).
		Where("exercise_id = ?", exercise.ExerciseID).
		Updates(map[string]interface{}{
			"name":       exercise.Name,
			"type":       exercise.Type,
			"difficulty": exercise.Difficulty,
		})
	if result.Error != nil {
		return fmt.Errorf("gormExerciseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormExerciseRepository) ReplaceMuscleGroups(ctx context.Context, tx *gorm.DB, exercise *model.Exercise, groups []model.MuscleGroup) error {
	if err := tx.WithContext(ctx).Model(exercise).Association("MuscleGroups").Replace(groups); err != nil {
		return fmt.Errorf("gormExerciseRepository.ReplaceMuscleGroups: %w", err)
	}
	return nil
}

func (r *gormExerciseRepository) ReplaceEquipment(ctx context.Context, tx *gorm.DB, exercise *model.Exercise, items []model.Equipment) error {
	if err := tx.WithContext(ctx).Model(exercise).Association("Equipment").Replace(items); err != nil {
		return fmt.Errorf("gormExerciseRepository.ReplaceEquipment: %w", err)
	}
	return nil
}

func (r *gormExerciseRepository) Delete(ctx context.Context, tx *gorm.DB, exerciseID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("exercise_id = ?", exerciseID).Delete(&model.Exercise{})
	if result.Error != nil {
		return fmt.Errorf("gormExerciseRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormExerciseRepository) CheckNameExists(ctx context.Context, db *gorm.DB, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&model.Exercise{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("exercise_id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("gormExerciseRepository.CheckNameExists: %w", err)
	}
	return count > 0, nil
}
