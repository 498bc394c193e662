package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

type SlotRepository interface {
	Create(ctx context.Context, tx *gorm.DB, slot *model.Slot) error
	Update(ctx context.Context, tx *gorm.DB, slot *model.Slot) error
	FindByWorkout(ctx context.Context, db *gorm.DB, workoutID uuid.UUID) ([]*model.Slot, error)
	FindByPosition(ctx context.Context, db *gorm.DB, workoutID uuid.UUID, position int) (*model.Slot, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, slotIDs []uuid.UUID) error
	DeleteByWorkout(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error
	DeleteByExercise(ctx context.Context, tx *gorm.DB, exerciseID uuid.UUID) error
}

type gormSlotRepository struct{}

func NewGormSlotRepository() SlotRepository {
	return &gormSlotRepository{}
}

func (r *gormSlotRepository) Create(ctx context.Context, tx *gorm.DB, slot *model.Slot) error {
	if err := tx.WithContext(ctx).Create(slot).Error; err != nil {
		return fmt.Errorf("gormSlotRepository.Create: %w", err)
	}
	return nil
}

func (r *gormSlotRepository) Update(ctx context.Context, tx *gorm.DB, slot *model.Slot) error {
	result := tx.WithContext(ctx).
		Model(&model.Slot{}).
		Where("slot_id = ?", slot.SlotID).
		Updates(map[string]interface{}{
			"exercise_id": slot.ExerciseID,
			"log_kind":    slot.LogKind,
			"notes":       slot.Notes,
		})
	if result.Error != nil {
		return fmt.Errorf("gormSlotRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSlotRepository) FindByWorkout(ctx context.Context, db *gorm.DB, workoutID uuid.UUID) ([]*model.Slot, error) {
	var slots []*model.Slot
	result := db.WithContext(ctx).
		Preload("Exercise").
		Where("workout_id = ?", workoutID).
		Order("position ASC").
		Find(&slots)
	if result.Error != nil {
		return nil, fmt.Errorf("gormSlotRepository.FindByWorkout: %w", result.Error)
	}
	return slots, nil
}

func (r *gormSlotRepository) FindByPosition(ctx context.Context, db *gorm.DB, workoutID uuid.UUID, position int) (*model.Slot, error) {
	var slot model.Slot
	result := db.WithContext(ctx).
		Where("workout_id = ? AND position = ?", workoutID, position).
		First(&slot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSlotRepository.FindByPosition: %w", result.Error)
	}
	return &slot, nil
}

func (r *gormSlotRepository) DeleteByIDs(ctx context.Context, tx *gorm.DB, slotIDs []uuid.UUID) error {
	if len(slotIDs) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Where("slot_id IN ?", slotIDs).Delete(&model.Slot{}).Error; err != nil {
		return fmt.Errorf("gormSlotRepository.DeleteByIDs: %w", err)
	}
	return nil
}

func (r *gormSlotRepository) DeleteByWorkout(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("workout_id = ?", workoutID).Delete(&model.Slot{}).Error; err != nil {
		return fmt.Errorf("gormSlotRepository.DeleteByWorkout: %w", err)
	}
	return nil
}

func (r *gormSlotRepository) DeleteByExercise(ctx context.Context, tx *gorm.DB, exerciseID uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("exercise_id = ?", exerciseID).Delete(&model.Slot{}).Error; err != nil {
		return fmt.Errorf("gormSlotRepository.DeleteByExercise: %w", err)
	}
	return nil
}
