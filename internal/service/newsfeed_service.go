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

// NewsfeedService manages feed sources and the fetched article listing.
type NewsfeedService interface {
	CreateFeed(ctx context.Context, req *model.FeedRequest) (*model.Feed, error)
	ListFeeds(ctx context.Context) ([]*model.Feed, error)
	UpdateFeed(ctx context.Context, feedID uuid.UUID, req *model.FeedRequest) (*model.Feed, error)
	DeleteFeed(ctx context.Context, feedID uuid.UUID) error
	ListArticles(ctx context.Context, page int, category string) (*model.ArticlePage, error)
}

type newsfeedService struct {
	db          *gorm.DB
	feedRepo    repository.FeedRepository
	articleRepo repository.ArticleRepository
	pageSize    int
}

func NewNewsfeedService(
	db *gorm.DB,
	feedRepo repository.FeedRepository,
	articleRepo repository.ArticleRepository,
	pageSize int,
) NewsfeedService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &newsfeedService{
		db:          db,
		feedRepo:    feedRepo,
		articleRepo: articleRepo,
		pageSize:    pageSize,
	}
}

func (s *newsfeedService) CreateFeed(ctx context.Context, req *model.FeedRequest) (*model.Feed, error) {
	if _, err := s.feedRepo.FindByURL(ctx, s.db, req.URL); err == nil {
		return nil, model.NewAppError("DUPLICATE_FEED", "a feed with this url already exists", "url", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("newsfeedService.CreateFeed: %w", err)
	}

	feed := &model.Feed{
		FeedID:   uuid.New(),
		Name:     req.Name,
		URL:      req.URL,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsActive != nil {
		feed.IsActive = *req.IsActive
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.feedRepo.Create(ctx, tx, feed)
	})
	if err != nil {
		return nil, fmt.Errorf("newsfeedService.CreateFeed: %w", err)
	}
	return feed, nil
}

func (s *newsfeedService) ListFeeds(ctx context.Context) ([]*model.Feed, error) {
	feeds, err := s.feedRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("newsfeedService.ListFeeds: %w", err)
	}
	return feeds, nil
}

func (s *newsfeedService) UpdateFeed(ctx context.Context, feedID uuid.UUID, req *model.FeedRequest) (*model.Feed, error) {
	feed, err := s.feedRepo.FindByID(ctx, s.db, feedID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("FEED_NOT_FOUND", "feed not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("newsfeedService.UpdateFeed: %w", err)
	}

	feed.Name = req.Name
	feed.URL = req.URL
	feed.Category = req.Category
	if req.IsActive != nil {
		feed.IsActive = *req.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.feedRepo.Update(ctx, tx, feed)
	})
	if err != nil {
		return nil, fmt.Errorf("newsfeedService.UpdateFeed: %w", err)
	}
	return feed, nil
}

// DeleteFeed removes a feed together with its fetched articles.
func (s *newsfeedService) DeleteFeed(ctx context.Context, feedID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.articleRepo.DeleteByFeed(ctx, tx, feedID); err != nil {
			return err
		}
		return s.feedRepo.Delete(ctx, tx, feedID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("FEED_NOT_FOUND", "feed not found", "", model.ErrNotFound)
		}
		return fmt.Errorf("newsfeedService.DeleteFeed: %w", err)
	}
	return nil
}

func (s *newsfeedService) ListArticles(ctx context.Context, page int, category string) (*model.ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.pageSize

	articles, err := s.articleRepo.ListPage(ctx, s.db, category, offset, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("newsfeedService.ListArticles: %w", err)
	}
	total, err := s.articleRepo.Count(ctx, s.db, category)
	if err != nil {
		return nil, fmt.Errorf("newsfeedService.ListArticles: %w", err)
	}
	categories, err := s.articleRepo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("newsfeedService.ListArticles: %w", err)
	}

	result := &model.ArticlePage{
		Articles:   make([]model.Article, 0, len(articles)),
		Categories: categories,
	}
	for _, a := range articles {
		result.Articles = append(result.Articles, *a)
	}
	if int64(offset+len(articles)) < total {
		result.HasNext = true
		result.NextPageNumber = page + 1
	}
	return result, nil
}
