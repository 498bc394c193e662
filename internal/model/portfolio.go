package model

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	TagID uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
	Name  string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// Project is a portfolio entry with English and French copy.
type Project struct {
	ProjectID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	TitleEN       string    `gorm:"not null" json:"title_en"`
	DescriptionEN string    `json:"description_en"`
	TitleFR       string    `json:"title_fr"`
	DescriptionFR string    `json:"description_fr"`
	GithubURL     string    `json:"github_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Tags []Tag `gorm:"many2many:project_tags" json:"tags,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

type Testimonial struct {
	TestimonialID uuid.UUID `gorm:"type:uuid;primaryKey" json:"testimonial_id"`
	Author        string    `gorm:"not null" json:"author"`
	TextEN        string    `json:"text_en"`
	TextFR        string    `json:"text_fr"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// ProjectRequest creates or replaces a project. Tags are referenced by
// name; missing tags are created.
type ProjectRequest struct {
	TitleEN       string   `json:"title_en" validate:"required,min=1,max=50"`
	DescriptionEN string   `json:"description_en"`
	TitleFR       string   `json:"title_fr" validate:"max=50"`
	DescriptionFR string   `json:"description_fr"`
	GithubURL     string   `json:"github_url" validate:"omitempty,url"`
	TagNames      []string `json:"tag_names,omitempty"`
}

type TestimonialRequest struct {
	Author string `json:"author" validate:"required,min=1,max=50"`
	TextEN string `json:"text_en" validate:"required"`
	TextFR string `json:"text_fr"`
}
