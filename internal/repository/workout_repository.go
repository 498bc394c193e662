package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

type WorkoutRepository interface {
	Create(ctx context.Context, tx *gorm.DB, workout *model.Workout) error
	FindByID(ctx context.Context, db *gorm.DB, workoutID uuid.UUID) (*model.Workout, error)
	FindByNaturalKey(ctx context.Context, db *gorm.DB, date time.Time, workoutTypeID *uuid.UUID) (*model.Workout, error)
	FindLatestByType(ctx context.Context, db *gorm.DB, workoutTypeID uuid.UUID) (*model.Workout, error)
	ListPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]*model.Workout, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, workout *model.Workout) error
	Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error
}

type gormWorkoutRepository struct{}

func NewGormWorkoutRepository() WorkoutRepository {
	return &gormWorkoutRepository{}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, tx *gorm.DB, workout *model.Workout) error {
	if err := tx.WithContext(ctx).Create(workout).Error; err != nil {
		return fmt.Errorf("gormWorkoutRepository.Create: %w", err)
	}
	return nil
}

func (r *gormWorkoutRepository) FindByID(ctx context.Context, db *gorm.DB, workoutID uuid.UUID) (*model.Workout, error) {
	var workout model.Workout
	result := db.WithContext(ctx).
		Preload("WorkoutType").
		Where("workout_id = ?", workoutID).
		First(&workout)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWorkoutRepository.FindByID: %w", result.Error)
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) FindByNaturalKey(ctx context.Context, db *gorm.DB, date time.Time, workoutTypeID *uuid.UUID) (*model.Workout, error) {
	var workout model.Workout
	query := db.WithContext(ctx).Where("date = ?", date)
	if workoutTypeID != nil {
		query = query.Where("workout_type_id = ?", *workoutTypeID)
	} else {
		query = query.Where("workout_type_id IS NULL")
	}
	result := query.First(&workout)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWorkoutRepository.FindByNaturalKey: %w", result.Error)
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) FindLatestByType(ctx context.Context, db *gorm.DB, workoutTypeID uuid.UUID) (*model.Workout, error) {
	var workout model.Workout
	result := db.WithContext(ctx).
		Where("workout_type_id = ?", workoutTypeID).
		Order("date DESC").
		First(&workout)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWorkoutRepository.FindLatestByType: %w", result.Error)
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) ListPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]*model.Workout, error) {
	var workouts []*model.Workout
	result := db.WithContext(ctx).
		Preload("WorkoutType").
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&workouts)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWorkoutRepository.ListPage: %w", result.Error)
	}
	return workouts, nil
}

func (r *gormWorkoutRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Workout{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormWorkoutRepository.Count: %w", err)
	}
	return count, nil
}

func (r *gormWorkoutRepository) Update(ctx context.Context, tx *gorm.DB, workout *model.Workout) error {
	result := tx.WithContext(ctx).
		Model(&model.Workout{}).
		Where("workout_id = ?", workout.WorkoutID).
		Updates(map[string]interface{}{
			"date":            workout.Date,
			"workout_type_id": workout.WorkoutTypeID,
			"duration":        workout.Duration,
		})
	if result.Error != nil {
		return fmt.Errorf("gormWorkoutRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWorkoutRepository) Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("workout_id = ?", workoutID).Delete(&model.Workout{})
	if result.Error != nil {
		return fmt.Errorf("gormWorkoutRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
