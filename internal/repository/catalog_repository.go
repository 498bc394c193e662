package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

// WorkoutTypeRepository manages the workout-type lookup table.
type WorkoutTypeRepository interface {
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*model.WorkoutType, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.WorkoutType, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.WorkoutType, error)
}

type gormWorkoutTypeRepository struct{}

func NewGormWorkoutTypeRepository() WorkoutTypeRepository {
	return &gormWorkoutTypeRepository{}
}

func (r *gormWorkoutTypeRepository) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*model.WorkoutType, error) {
	var wt model.WorkoutType
	result := tx.WithContext(ctx).Where("name = ?", name).First(&wt)
	if result.Error == nil {
		return &wt, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gormWorkoutTypeRepository.GetOrCreateByName: %w", result.Error)
	}

	wt = model.WorkoutType{WorkoutTypeID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(&wt).Error; err != nil {
		return nil, fmt.Errorf("gormWorkoutTypeRepository.GetOrCreateByName: %w", err)
	}
	return &wt, nil
}

func (r *gormWorkoutTypeRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.WorkoutType, error) {
	var wt model.WorkoutType
	result := db.WithContext(ctx).Where("name = ?", name).First(&wt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWorkoutTypeRepository.FindByName: %w", result.Error)
	}
	return &wt, nil
}

func (r *gormWorkoutTypeRepository) List(ctx context.Context, db *gorm.DB) ([]*model.WorkoutType, error) {
	var types []*model.WorkoutType
	result := db.WithContext(ctx).Order("name ASC").Find(&types)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWorkoutTypeRepository.List: %w", result.Error)
	}
	return types, nil
}

// MuscleGroupRepository manages the muscle-group lookup table.
type MuscleGroupRepository interface {
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name, description string) (*model.MuscleGroup, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.MuscleGroup, error)
}

type gormMuscleGroupRepository struct{}

func NewGormMuscleGroupRepository() MuscleGroupRepository {
	return &gormMuscleGroupRepository{}
}

func (r *gormMuscleGroupRepository) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name, description string) (*model.MuscleGroup, error) {
	var mg model.MuscleGroup
	result := tx.WithContext(ctx).Where("name = ?", name).First(&mg)
	if result.Error == nil {
		return &mg, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gormMuscleGroupRepository.GetOrCreateByName: %w", result.Error)
	}

	mg = model.MuscleGroup{MuscleGroupID: uuid.New(), Name: name, Description: description}
	if err := tx.WithContext(ctx).Create(&mg).Error; err != nil {
		return nil, fmt.Errorf("gormMuscleGroupRepository.GetOrCreateByName: %w", err)
	}
	return &mg, nil
}

func (r *gormMuscleGroupRepository) List(ctx context.Context, db *gorm.DB) ([]*model.MuscleGroup, error) {
	var groups []*model.MuscleGroup
	result := db.WithContext(ctx).Order("name ASC").Find(&groups)
	if result.Error != nil {
		return nil, fmt.Errorf("gormMuscleGroupRepository.List: %w", result.Error)
	}
	return groups, nil
}

// EquipmentRepository manages the equipment lookup table.
type EquipmentRepository interface {
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name, description string) (*model.Equipment, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Equipment, error)
}

type gormEquipmentRepository struct{}

func NewGormEquipmentRepository() EquipmentRepository {
	return &gormEquipmentRepository{}
}

func (r *gormEquipmentRepository) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name, description string) (*model.Equipment, error) {
	var eq model.Equipment
	result := tx.WithContext(ctx).Where("name = ?", name).First(&eq)
	if result.Error == nil {
		return &eq, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gormEquipmentRepository.GetOrCreateByName: %w", result.Error)
	}

	eq = model.Equipment{EquipmentID: uuid.New(), Name: name, Description: description}
	if err := tx.WithContext(ctx).Create(&eq).Error; err != nil {
		return nil, fmt.Errorf("gormEquipmentRepository.GetOrCreateByName: %w", err)
	}
	return &eq, nil
}

func (r *gormEquipmentRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Equipment, error) {
	var items []*model.Equipment
	result := db.WithContext(ctx).Order("name ASC").Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("gormEquipmentRepository.List: %w", result.Error)
	}
	return items, nil
}
