package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

type FeedRepository interface {
	Create(ctx context.Context, tx *gorm.DB, feed *model.Feed) error
	FindByID(ctx context.Context, db *gorm.DB, feedID uuid.UUID) (*model.Feed, error)
	FindByURL(ctx context.Context, db *gorm.DB, url string) (*model.Feed, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Feed, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]*model.Feed, error)
	Update(ctx context.Context, tx *gorm.DB, feed *model.Feed) error
	Delete(ctx context.Context, tx *gorm.DB, feedID uuid.UUID) error
}

type gormFeedRepository struct{}

func NewGormFeedRepository() FeedRepository {
	return &gormFeedRepository{}
}

func (r *gormFeedRepository) Create(ctx context.Context, tx *gorm.DB, feed *model.Feed) error {
	if err := tx.WithContext(ctx).Create(feed).Error; err != nil {
		return fmt.Errorf("gormFeedRepository.Create: %w", err)
	}
	return nil
}

func (r *gormFeedRepository) FindByID(ctx context.Context, db *gorm.DB, feedID uuid.UUID) (*model.Feed, error) {
	var feed model.Feed
	result := db.WithContext(ctx).Where("feed_id = ?", feedID).First(&feed)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormFeedRepository.FindByID: %w", result.Error)
	}
	return &feed, nil
}

func (r *gormFeedRepository) FindByURL(ctx context.Context, db *gorm.DB, url string) (*model.Feed, error) {
	var feed model.Feed
	result := db.WithContext(ctx).Where("url = ?", url).First(&feed)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormFeedRepository.FindByURL: %w", result.Error)
	}
	return &feed, nil
}

func (r *gormFeedRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Feed, error) {
	var feeds []*model.Feed
	result := db.WithContext(ctx).Order("name ASC").Find(&feeds)
	if result.Error != nil {
		return nil, fmt.Errorf("gormFeedRepository.List: %w", result.Error)
	}
	return feeds, nil
}

func (r *gormFeedRepository) ListActive(ctx context.Context, db *gorm.DB) ([]*model.Feed, error) {
	var feeds []*model.Feed
	result := db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&feeds)
	if result.Error != nil {
		return nil, fmt.Errorf("gormFeedRepository.ListActive: %w", result.Error)
	}
	return feeds, nil
}

func (r *gormFeedRepository) Update(ctx context.Context, tx *gorm.DB, feed *model.Feed) error {
	result := tx.WithContext(ctx).
		Model(&model.Feed{}).
		Where("feed_id = ?", feed.FeedID).
		Updates(map[string]interface{}{
			"name":      feed.Name,
			"url":       feed.URL,
			"category":  feed.Category,
			"is_active": feed.IsActive,
		})
	if result.Error != nil {
		return fmt.Errorf("gormFeedRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormFeedRepository) Delete(ctx context.Context, tx *gorm.DB, feedID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("feed_id = ?", feedID).Delete(&model.Feed{})
	if result.Error != nil {
		return fmt.Errorf("gormFeedRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type ArticleRepository interface {
	// CreateIfNew inserts the article unless one with the same link
	// already exists. Returns true when a row was inserted.
	CreateIfNew(ctx context.Context, tx *gorm.DB, article *model.Article) (bool, error)
	ListPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]*model.Article, error)
	Count(ctx context.Context, db *gorm.DB, category string) (int64, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]string, error)
	DeleteByFeed(ctx context.Context, tx *gorm.DB, feedID uuid.UUID) error
}

type gormArticleRepository struct{}

func NewGormArticleRepository() ArticleRepository {
	return &gormArticleRepository{}
}

func (r *gormArticleRepository) CreateIfNew(ctx context.Context, tx *gorm.DB, article *model.Article) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&model.Article{}).
		Where("link = ?", article.Link).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("gormArticleRepository.CreateIfNew: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.WithContext(ctx).Create(article).Error; err != nil {
		return false, fmt.Errorf("gormArticleRepository.CreateIfNew: %w", err)
	}
	return true, nil
}

func (r *gormArticleRepository) ListPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]*model.Article, error) {
	var articles []*model.Article
	query := db.WithContext(ctx)
	if category != "" {
		query = query.
			Joins("JOIN feeds ON feeds.feed_id = articles.feed_id").
			Where("feeds.category = ?", category)
	}
	result := query.
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles)
	if result.Error != nil {
		return nil, fmt.Errorf("gormArticleRepository.ListPage: %w", result.Error)
	}
	return articles, nil
}

func (r *gormArticleRepository) Count(ctx context.Context, db *gorm.DB, category string) (int64, error) {
	var count int64
	query := db.WithContext(ctx).Model(&model.Article{})
	if category != "" {
		query = query.
			Joins("JOIN feeds ON feeds.feed_id = articles.feed_id").
			Where("feeds.category = ?", category)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormArticleRepository.Count: %w", err)
	}
	return count, nil
}

func (r *gormArticleRepository) ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.WithContext(ctx).
		Model(&model.Feed{}).
		Where("category != ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("gormArticleRepository.ListCategories: %w", err)
	}
	return categories, nil
}

func (r *gormArticleRepository) DeleteByFeed(ctx context.Context, tx *gorm.DB, feedID uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("feed_id = ?", feedID).Delete(&model.Article{}).Error; err != nil {
		return fmt.Errorf("gormArticleRepository.DeleteByFeed: %w", err)
	}
	return nil
}

type FetchTaskRepository interface {
	Create(ctx context.Context, tx *gorm.DB, task *model.FetchTask) error
	FindByID(ctx context.Context, db *gorm.DB, taskID uuid.UUID) (*model.FetchTask, error)
	Update(ctx context.Context, tx *gorm.DB, task *model.FetchTask) error
}

type gormFetchTaskRepository struct{}

func NewGormFetchTaskRepository() FetchTaskRepository {
	return &gormFetchTaskRepository{}
}

func (r *gormFetchTaskRepository) Create(ctx context.Context, tx *gorm.DB, task *model.FetchTask) error {
	if err := tx.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("gormFetchTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *gormFetchTaskRepository) FindByID(ctx context.Context, db *gorm.DB, taskID uuid.UUID) (*model.FetchTask, error) {
	var task model.FetchTask
	result := db.WithContext(ctx).Where("task_id = ?", taskID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormFetchTaskRepository.FindByID: %w", result.Error)
	}
	return &task, nil
}

func (r *gormFetchTaskRepository) Update(ctx context.Context, tx *gorm.DB, task *model.FetchTask) error {
	result := tx.WithContext(ctx).
		Model(&model.FetchTask{}).
		Where("task_id = ?", task.TaskID).
		Updates(map[string]interface{}{
			"status":           task.Status,
			"total_feeds":      task.TotalFeeds,
			"processed_feeds":  task.ProcessedFeeds,
			"articles_created": task.ArticlesCreated,
			"progress_text":    task.ProgressText,
			"errors":           task.Errors,
			"started_at":       task.StartedAt,
			"completed_at":     task.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("gormFetchTaskRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
