package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfolio/internal/model"
	"fitfolio/internal/repository"
	"fitfolio/internal/service"
)

func newPortfolioService(t *testing.T) (service.PortfolioService, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	svc := service.NewPortfolioService(
		env.db,
		repository.NewGormProjectRepository(),
		repository.NewGormTestimonialRepository(),
		repository.NewGormTagRepository(),
	)
	return svc, env
}

func TestProjectLifecycle(t *testing.T) {
	svc, _ := newPortfolioService(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, &model.ProjectRequest{
		TitleEN:       "Portfolio site",
		DescriptionEN: "Personal website",
		TitleFR:       "Site portfolio",
		GithubURL:     "https://github.com/example/site",
		TagNames:      []string{"go", "web"},
	})
	require.NoError(t, err)
	assert.Len(t, project.Tags, 2)

	updated, err := svc.UpdateProject(ctx, project.ProjectID, &model.ProjectRequest{
		TitleEN:  "Portfolio site v2",
		TagNames: []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio site v2", updated.TitleEN)
	// Tag replacement removes the association, not the tag itself.
	assert.Len(t, updated.Tags, 1)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	require.NoError(t, svc.DeleteProject(ctx, project.ProjectID))
	_, err = svc.GetProject(ctx, project.ProjectID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTestimonialLifecycle(t *testing.T) {
	svc, _ := newPortfolioService(t)
	ctx := context.Background()

	testimonial, err := svc.CreateTestimonial(ctx, &model.TestimonialRequest{
		Author: "Alice",
		TextEN: "Great developer",
		TextFR: "Excellent développeur",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTestimonial(ctx, testimonial.TestimonialID, &model.TestimonialRequest{
		Author: "Alice",
		TextEN: "Outstanding developer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Outstanding developer", updated.TextEN)

	list, err := svc.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteTestimonial(ctx, testimonial.TestimonialID))
	err = svc.DeleteTestimonial(ctx, testimonial.TestimonialID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTagsSharedAcrossProjects(t *testing.T) {
	svc, env := newPortfolioService(t)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, &model.ProjectRequest{TitleEN: "One", TagNames: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, &model.ProjectRequest{TitleEN: "Two", TagNames: []string{"go", "cli"}})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
