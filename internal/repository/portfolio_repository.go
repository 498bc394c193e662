package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

type TagRepository interface {
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*model.Tag, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Tag, error)
}

type gormTagRepository struct{}

func NewGormTagRepository() TagRepository {
	return &gormTagRepository{}
}

func (r *gormTagRepository) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*model.Tag, error) {
	var tag model.Tag
	result := tx.WithContext(ctx).Where("name = ?", name).First(&tag)
	if result.Error == nil {
		return &tag, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gormTagRepository.GetOrCreateByName: %w", result.Error)
	}

	tag = model.Tag{TagID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("gormTagRepository.GetOrCreateByName: %w", err)
	}
	return &tag, nil
}

func (r *gormTagRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Tag, error) {
	var tags []*model.Tag
	result := db.WithContext(ctx).Order("name ASC").Find(&tags)
	if result.Error != nil {
		return nil, fmt.Errorf("gormTagRepository.List: %w", result.Error)
	}
	return tags, nil
}

type ProjectRepository interface {
	Create(ctx context.Context, tx *gorm.DB, project *model.Project) error
	FindByID(ctx context.Context, db *gorm.DB, projectID uuid.UUID) (*model.Project, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Project, error)
	Update(ctx context.Context, tx *gorm.DB, project *model.Project) error
	ReplaceTags(ctx context.Context, tx *gorm.DB, project *model.Project, tags []model.Tag) error
	Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type gormProjectRepository struct{}

func NewGormProjectRepository() ProjectRepository {
	return &gormProjectRepository{}
}

func (r *gormProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *model.Project) error {
	if err := tx.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("gormProjectRepository.Create: %w", err)
	}
	return nil
}

func (r *gormProjectRepository) FindByID(ctx context.Context, db *gorm.DB, projectID uuid.UUID) (*model.Project, error) {
	var project model.Project
	result := db.WithContext(ctx).
		Preload("Tags").
		Where("project_id = ?", projectID).
		First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProjectRepository.FindByID: %w", result.Error)
	}
	return &project, nil
}

func (r *gormProjectRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Project, error) {
	var projects []*model.Project
	result := db.WithContext(ctx).
		Preload("Tags").
		Order("created_at DESC").
		Find(&projects)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProjectRepository.List: %w", result.Error)
	}
	return projects, nil
}

func (r *gormProjectRepository) Update(ctx context.Context, tx *gorm.DB, project *model.Project) error {
	result := tx.WithContext(ctx).
		Model(&model.Project{}).
		Where("project_id = ?", project.ProjectID).
		Updates(map[string]interface{}{
			"title_en":       project.TitleEN,
			"description_en": project.DescriptionEN,
			"title_fr":       project.TitleFR,
			"description_fr": project.DescriptionFR,
			"github_url":     project.GithubURL,
		})
	if result.Error != nil {
		return fmt.Errorf("gormProjectRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProjectRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, project *model.Project, tags []model.Tag) error {
	if err := tx.WithContext(ctx).Model(project).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("gormProjectRepository.ReplaceTags: %w", err)
	}
	return nil
}

func (r *gormProjectRepository) Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Project{})
	if result.Error != nil {
		return fmt.Errorf("gormProjectRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type TestimonialRepository interface {
	Create(ctx context.Context, tx *gorm.DB, testimonial *model.Testimonial) error
	FindByID(ctx context.Context, db *gorm.DB, testimonialID uuid.UUID) (*model.Testimonial, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Testimonial, error)
	Update(ctx context.Context, tx *gorm.DB, testimonial *model.Testimonial) error
	Delete(ctx context.Context, tx *gorm.DB, testimonialID uuid.UUID) error
}

type gormTestimonialRepository struct{}

func NewGormTestimonialRepository() TestimonialRepository {
	return &gormTestimonialRepository{}
}

func (r *gormTestimonialRepository) Create(ctx context.Context, tx *gorm.DB, testimonial *model.Testimonial) error {
	if err := tx.WithContext(ctx).Create(testimonial).Error; err != nil {
		return fmt.Errorf("gormTestimonialRepository.Create: %w", err)
	}
	return nil
}

func (r *gormTestimonialRepository) FindByID(ctx context.Context, db *gorm.DB, testimonialID uuid.UUID) (*model.Testimonial, error) {
	var testimonial model.Testimonial
	result := db.WithContext(ctx).Where("testimonial_id = ?", testimonialID).First(&testimonial)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormTestimonialRepository.FindByID: %w", result.Error)
	}
	return &testimonial, nil
}

func (r *gormTestimonialRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Testimonial, error) {
	var testimonials []*model.Testimonial
	result := db.WithContext(ctx).Order("created_at DESC").Find(&testimonials)
	if result.Error != nil {
		return nil, fmt.Errorf("gormTestimonialRepository.List: %w", result.Error)
	}
	return testimonials, nil
}

func (r *gormTestimonialRepository) Update(ctx context.Context, tx *gorm.DB, testimonial *model.Testimonial) error {
	result := tx.WithContext(ctx).
		Model(&model.Testimonial{}).
		Where("testimonial_id = ?", testimonial.TestimonialID).
		Updates(map[string]interface{}{
			"author":  testimonial.Author,
			"text_en": testimonial.TextEN,
			"text_fr": testimonial.TextFR,
		})
	if result.Error != nil {
		return fmt.Errorf("gormTestimonialRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTestimonialRepository) Delete(ctx context.Context, tx *gorm.DB, testimonialID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("testimonial_id = ?", testimonialID).Delete(&model.Testimonial{})
	if result.Error != nil {
		return fmt.Errorf("gormTestimonialRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
