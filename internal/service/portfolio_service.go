package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
	"fitfolio/internal/repository"
)

// PortfolioService manages projects, testimonials and tags.
type PortfolioService interface {
	CreateProject(ctx context.Context, req *model.ProjectRequest) (*model.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, req *model.ProjectRequest) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
	CreateTestimonial(ctx context.Context, req *model.TestimonialRequest) (*model.Testimonial, error)
	ListTestimonials(ctx context.Context) ([]*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, testimonialID uuid.UUID, req *model.TestimonialRequest) (*model.Testimonial, error)
	DeleteTestimonial(ctx context.Context, testimonialID uuid.UUID) error
	ListTags(ctx context.Context) ([]*model.Tag, error)
}

type portfolioService struct {
	db              *gorm.DB
	projectRepo     repository.ProjectRepository
	testimonialRepo repository.TestimonialRepository
	tagRepo         repository.TagRepository
}

func NewPortfolioService(
	db *gorm.DB,
	projectRepo repository.ProjectRepository,
	testimonialRepo repository.TestimonialRepository,
	tagRepo repository.TagRepository,
) PortfolioService {
	return &portfolioService{
		db:              db,
		projectRepo:     projectRepo,
		testimonialRepo: testimonialRepo,
		tagRepo:         tagRepo,
	}
}

func (s *portfolioService) CreateProject(ctx context.Context, req *model.ProjectRequest) (*model.Project, error) {
	project := &model.Project{
		ProjectID:     uuid.New(),
		TitleEN:       req.TitleEN,
		DescriptionEN: req.DescriptionEN,
		TitleFR:       req.TitleFR,
		DescriptionFR: req.DescriptionFR,
		GithubURL:     req.GithubURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepo.Create(ctx, tx, project); err != nil {
			return err
		}
		if len(req.TagNames) > 0 {
			tags, err := s.resolveTags(ctx, tx, req.TagNames)
			if err != nil {
				return err
			}
			return s.projectRepo.ReplaceTags(ctx, tx, project, tags)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("portfolioService.CreateProject: %w", err)
	}
	return s.projectRepo.FindByID(ctx, s.db, project.ProjectID)
}

func (s *portfolioService) GetProject(ctx context.Context, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, s.db, projectID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROJECT_NOT_FOUND", "project not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("portfolioService.GetProject: %w", err)
	}
	return project, nil
}

func (s *portfolioService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.projectRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("portfolioService.ListProjects: %w", err)
	}
	return projects, nil
}

func (s *portfolioService) UpdateProject(ctx context.Context, projectID uuid.UUID, req *model.ProjectRequest) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, s.db, projectID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROJECT_NOT_FOUND", "project not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("portfolioService.UpdateProject: %w", err)
	}

	project.TitleEN = req.TitleEN
	project.DescriptionEN = req.DescriptionEN
	project.TitleFR = req.TitleFR
	project.DescriptionFR = req.DescriptionFR
	project.GithubURL = req.GithubURL

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepo.Update(ctx, tx, project); err != nil {
			return err
		}
		tags, err := s.resolveTags(ctx, tx, req.TagNames)
		if err != nil {
			return err
		}
		return s.projectRepo.ReplaceTags(ctx, tx, project, tags)
	})
	if err != nil {
		return nil, fmt.Errorf("portfolioService.UpdateProject: %w", err)
	}
	return s.projectRepo.FindByID(ctx, s.db, projectID)
}

func (s *portfolioService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.projectRepo.Delete(ctx, tx, projectID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("PROJECT_NOT_FOUND", "project not found", "", model.ErrNotFound)
		}
		return fmt.Errorf("portfolioService.DeleteProject: %w", err)
	}
	return nil
}

func (s *portfolioService) CreateTestimonial(ctx context.Context, req *model.TestimonialRequest) (*model.Testimonial, error) {
	testimonial := &model.Testimonial{
		TestimonialID: uuid.New(),
		Author:        req.Author,
		TextEN:        req.TextEN,
		TextFR:        req.TextFR,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.testimonialRepo.Create(ctx, tx, testimonial)
	})
	if err != nil {
		return nil, fmt.Errorf("portfolioService.CreateTestimonial: %w", err)
	}
	return testimonial, nil
}

func (s *portfolioService) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	testimonials, err := s.testimonialRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("portfolioService.ListTestimonials: %w", err)
	}
	return testimonials, nil
}

func (s *portfolioService) UpdateTestimonial(ctx context.Context, testimonialID uuid.UUID, req *model.TestimonialRequest) (*model.Testimonial, error) {
	testimonial, err := s.testimonialRepo.FindByID(ctx, s.db, testimonialID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("TESTIMONIAL_NOT_FOUND", "testimonial not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("portfolioService.UpdateTestimonial: %w", err)
	}

	testimonial.Author = req.Author
	testimonial.TextEN = req.TextEN
	testimonial.TextFR = req.TextFR

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.testimonialRepo.Update(ctx, tx, testimonial)
	})
	if err != nil {
		return nil, fmt.Errorf("portfolioService.UpdateTestimonial: %w", err)
	}
	return testimonial, nil
}

func (s *portfolioService) DeleteTestimonial(ctx context.Context, testimonialID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.testimonialRepo.Delete(ctx, tx, testimonialID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("TESTIMONIAL_NOT_FOUND", "testimonial not found", "", model.ErrNotFound)
		}
		return fmt.Errorf("portfolioService.DeleteTestimonial: %w", err)
	}
	return nil
}

func (s *portfolioService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.tagRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("portfolioService.ListTags: %w", err)
	}
	return tags, nil
}

func (s *portfolioService) resolveTags(ctx context.Context, tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.GetOrCreateByName(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
