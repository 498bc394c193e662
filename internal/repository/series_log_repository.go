package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

// SeriesLogRepository manages the per-set strength and cardio log rows,
// keyed by (exercise, workout, series_number). Workout writes replace
// the full run for a pair; the import path edits single rows by key.
type SeriesLogRepository interface {
	FindStrength(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) ([]*model.StrengthSeriesLog, error)
	FindCardio(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) ([]*model.CardioSeriesLog, error)
	FindStrengthBySeries(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID, seriesNumber int) (*model.StrengthSeriesLog, error)
	FindCardioBySeries(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID, seriesNumber int) (*model.CardioSeriesLog, error)
	CreateStrength(ctx context.Context, tx *gorm.DB, logs []*model.StrengthSeriesLog) error
	CreateCardio(ctx context.Context, tx *gorm.DB, logs []*model.CardioSeriesLog) error
	UpdateStrength(ctx context.Context, tx *gorm.DB, log *model.StrengthSeriesLog) error
	UpdateCardio(ctx context.Context, tx *gorm.DB, log *model.CardioSeriesLog) error
	DeleteStrengthByPair(ctx context.Context, tx *gorm.DB, exerciseID, workoutID uuid.UUID) error
	DeleteCardioByPair(ctx context.Context, tx *gorm.DB, exerciseID, workoutID uuid.UUID) error
	DeleteByWorkout(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error
	DeleteByExercise(ctx context.Context, tx *gorm.DB, exerciseID uuid.UUID) error
	MaxStrengthSeriesNumber(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) (int, error)
	MaxCardioSeriesNumber(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) (int, error)
}

type gormSeriesLogRepository struct{}

func NewGormSeriesLogRepository() SeriesLogRepository {
	return &gormSeriesLogRepository{}
}

func (r *gormSeriesLogRepository) FindStrength(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) ([]*model.StrengthSeriesLog, error) {
	var logs []*model.StrengthSeriesLog
	result := db.WithContext(ctx).
		Where("exercise_id = ? AND workout_id = ?", exerciseID, workoutID).
		Order("series_number ASC").
		Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("gormSeriesLogRepository.FindStrength: %w", result.Error)
	}
	return logs, nil
}

func (r *gormSeriesLogRepository) FindCardio(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) ([]*model.CardioSeriesLog, error) {
	var logs []*model.CardioSeriesLog
	result := db.WithContext(ctx).
		Where("exercise_id = ? AND workout_id = ?", exerciseID, workoutID).
		Order("series_number ASC").
		Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("gormSeriesLogRepository.FindCardio: %w", result.Error)
	}
	return logs, nil
}

func (r *gormSeriesLogRepository) FindStrengthBySeries(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID, seriesNumber int) (*model.StrengthSeriesLog, error) {
	var log model.StrengthSeriesLog
	result := db.WithContext(ctx).
		Where("exercise_id = ? AND workout_id = ? AND series_number = ?", exerciseID, workoutID, seriesNumber).
		First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSeriesLogRepository.FindStrengthBySeries: %w", result.Error)
	}
	return &log, nil
}

func (r *gormSeriesLogRepository) FindCardioBySeries(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID, seriesNumber int) (*model.CardioSeriesLog, error) {
	var log model.CardioSeriesLog
	result := db.WithContext(ctx).
		Where("exercise_id = ? AND workout_id = ? AND series_number = ?", exerciseID, workoutID, seriesNumber).
		First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSeriesLogRepository.FindCardioBySeries: %w", result.Error)
	}
	return &log, nil
}

func (r *gormSeriesLogRepository) CreateStrength(ctx context.Context, tx *gorm.DB, logs []*model.StrengthSeriesLog) error {
	if len(logs) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(logs).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.CreateStrength: %w", err)
	}
	return nil
}

func (r *gormSeriesLogRepository) CreateCardio(ctx context.Context, tx *gorm.DB, logs []*model.CardioSeriesLog) error {
	if len(logs) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(logs).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.CreateCardio: %w", err)
	}
	return nil
}

func (r *gormSeriesLogRepository) UpdateStrength(ctx context.Context, tx *gorm.DB, log *model.StrengthSeriesLog) error {
	result := tx.WithContext(ctx).
		Model(&model.StrengthSeriesLog{}).
		Where("log_id = ?", log.LogID).
		Updates(map[string]interface{}{
			"reps":   log.Reps,
			"weight": log.Weight,
		})
	if result.Error != nil {
		return fmt.Errorf("gormSeriesLogRepository.UpdateStrength: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSeriesLogRepository) UpdateCardio(ctx context.Context, tx *gorm.DB, log *model.CardioSeriesLog) error {
	result := tx.WithContext(ctx).
		Model(&model.CardioSeriesLog{}).
		Where("log_id = ?", log.LogID).
		Updates(map[string]interface{}{
			"duration_seconds": log.DurationSeconds,
			"distance_m":       log.DistanceM,
		})
	if result.Error != nil {
		return fmt.Errorf("gormSeriesLogRepository.UpdateCardio: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSeriesLogRepository) DeleteStrengthByPair(ctx context.Context, tx *gorm.DB, exerciseID, workoutID uuid.UUID) error {
	if err := tx.WithContext(ctx).
		Where("exercise_id = ? AND workout_id = ?", exerciseID, workoutID).
		Delete(&model.StrengthSeriesLog{}).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.DeleteStrengthByPair: %w", err)
	}
	return nil
}

func (r *gormSeriesLogRepository) DeleteCardioByPair(ctx context.Context, tx *gorm.DB, exerciseID, workoutID uuid.UUID) error {
	if err := tx.WithContext(ctx).
		Where("exercise_id = ? AND workout_id = ?", exerciseID, workoutID).
		Delete(&model.CardioSeriesLog{}).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.DeleteCardioByPair: %w", err)
	}
	return nil
}

func (r *gormSeriesLogRepository) DeleteByWorkout(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
	if err := tx.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Delete(&model.StrengthSeriesLog{}).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.DeleteByWorkout: %w", err)
	}
	if err := tx.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Delete(&model.CardioSeriesLog{}).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.DeleteByWorkout: %w", err)
	}
	return nil
}

func (r *gormSeriesLogRepository) DeleteByExercise(ctx context.Context, tx *gorm.DB, exerciseID uuid.UUID) error {
	if err := tx.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		Delete(&model.StrengthSeriesLog{}).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.DeleteByExercise: %w", err)
	}
	if err := tx.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		Delete(&model.CardioSeriesLog{}).Error; err != nil {
		return fmt.Errorf("gormSeriesLogRepository.DeleteByExercise: %w", err)
	}
	return nil
}

func (r *gormSeriesLogRepository) MaxStrengthSeriesNumber(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) (int, error) {
	var max int
	err := db.WithContext(ctx).
		Model(&model.StrengthSeriesLog{}).
		Where("exercise_id = ? AND workout_id = ?", exerciseID, workoutID).
		Select("COALESCE(MAX(series_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("gormSeriesLogRepository.MaxStrengthSeriesNumber: %w", err)
	}
	return max, nil
}

func (r *gormSeriesLogRepository) MaxCardioSeriesNumber(ctx context.Context, db *gorm.DB, exerciseID, workoutID uuid.UUID) (int, error) {
	var max int
	err := db.WithContext(ctx).
		Model(&model.CardioSeriesLog{}).
		Where("exercise_id = ? AND workout_id = ?", exerciseID, workoutID).
		Select("COALESCE(MAX(series_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("gormSeriesLogRepository.MaxCardioSeriesNumber: %w", err)
	}
	return max, nil
}
