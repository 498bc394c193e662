package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"gorm.io/gorm"

	"fitfolio/internal/model"
	"fitfolio/internal/repository"
)

// FetchOptions tunes one background fetch run.
type FetchOptions struct {
	// FeedLimit caps how many active feeds a run processes.
	FeedLimit int
	// Delay is the pause between consecutive feeds.
	Delay time.Duration
	// Timeout bounds each feed's HTTP fetch.
	Timeout time.Duration
}

// FetchService runs RSS fetches in the background. StartFetch returns
// immediately with a pending task record; callers poll GetTask for
// progress. A started run has no cancellation and the task row is only
// ever written by the worker goroutine that owns it.
type FetchService interface {
	StartFetch(ctx context.Context) (*model.FetchTask, error)
	GetTask(ctx context.Context, taskID uuid.UUID) (*model.FetchTask, error)
	// RunFetch executes one fetch synchronously. The CLI and the
	// background worker share this path.
	RunFetch(ctx context.Context, taskID uuid.UUID) error
	// FetchFeed fetches a single feed synchronously, bypassing the
	// task machinery. Returns the number of new articles.
	FetchFeed(ctx context.Context, feedID uuid.UUID) (int, error)
}

type fetchService struct {
	db          *gorm.DB
	feedRepo    repository.FeedRepository
	articleRepo repository.ArticleRepository
	taskRepo    repository.FetchTaskRepository
	logger      *slog.Logger
	opts        FetchOptions
	parser      *gofeed.Parser
}

func NewFetchService(
	db *gorm.DB,
	feedRepo repository.FeedRepository,
	articleRepo repository.ArticleRepository,
	taskRepo repository.FetchTaskRepository,
	logger *slog.Logger,
	opts FetchOptions,
) FetchService {
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &fetchService{
		db:          db,
		feedRepo:    feedRepo,
		articleRepo: articleRepo,
		taskRepo:    taskRepo,
		logger:      logger,
		opts:        opts,
		parser:      gofeed.NewParser(),
	}
}

func (s *fetchService) StartFetch(ctx context.Context) (*model.FetchTask, error) {
	task := &model.FetchTask{
		TaskID:       uuid.New(),
		Status:       model.FetchStatusPending,
		ProgressText: "queued",
	}
	if err := s.taskRepo.Create(ctx, s.db, task); err != nil {
		return nil, fmt.Errorf("fetchService.StartFetch: %w", err)
	}

	// Detached from the request context: the run outlives the HTTP
	// request that started it.
	go func() {
		if err := s.RunFetch(context.Background(), task.TaskID); err != nil {
			s.logger.Error("Background fetch failed", "task_id", task.TaskID, "error", err)
		}
	}()

	return task, nil
}

func (s *fetchService) GetTask(ctx context.Context, taskID uuid.UUID) (*model.FetchTask, error) {
	task, err := s.taskRepo.FindByID(ctx, s.db, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("TASK_NOT_FOUND", "fetch task not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("fetchService.GetTask: %w", err)
	}
	return task, nil
}

func (s *fetchService) RunFetch(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.taskRepo.FindByID(ctx, s.db, taskID)
	if err != nil {
		return fmt.Errorf("fetchService.RunFetch: %w", err)
	}

	now := time.Now().UTC()
	task.Status = model.FetchStatusRunning
	task.StartedAt = &now
	task.ProgressText = "listing feeds"
	if err := s.taskRepo.Update(ctx, s.db, task); err != nil {
		return fmt.Errorf("fetchService.RunFetch: %w", err)
	}

	feeds, err := s.feedRepo.ListActive(ctx, s.db)
	if err != nil {
		return s.fail(ctx, task, fmt.Errorf("listing active feeds: %w", err))
	}
	if len(feeds) > s.opts.FeedLimit {
		feeds = feeds[:s.opts.FeedLimit]
	}
	task.TotalFeeds = len(feeds)

	var feedErrors []string
	for i, feed := range feeds {
		if i > 0 && s.opts.Delay > 0 {
			time.Sleep(s.opts.Delay)
		}

		created, err := s.fetchOne(ctx, feed)
		if err != nil {
			s.logger.Warn("Feed fetch failed", "feed", feed.Name, "url", feed.URL, "error", err)
			feedErrors = append(feedErrors, fmt.Sprintf("%s: %v", feed.Name, err))
		}
		task.ProcessedFeeds = i + 1
		task.ArticlesCreated += created
		task.ProgressText = fmt.Sprintf("processed %d/%d feeds", task.ProcessedFeeds, task.TotalFeeds)
		if err := s.taskRepo.Update(ctx, s.db, task); err != nil {
			return fmt.Errorf("fetchService.RunFetch: %w", err)
		}
	}

	done := time.Now().UTC()
	task.Status = model.FetchStatusCompleted
	task.CompletedAt = &done
	task.ProgressText = fmt.Sprintf("done, %d new articles", task.ArticlesCreated)
	task.Errors = strings.Join(feedErrors, "; ")
	if err := s.taskRepo.Update(ctx, s.db, task); err != nil {
		return fmt.Errorf("fetchService.RunFetch: %w", err)
	}

	s.logger.Info("Fetch run completed",
		"task_id", task.TaskID,
		"feeds", task.TotalFeeds,
		"articles_created", task.ArticlesCreated,
		"feed_errors", len(feedErrors),
	)
	return nil
}

func (s *fetchService) FetchFeed(ctx context.Context, feedID uuid.UUID) (int, error) {
	feed, err := s.feedRepo.FindByID(ctx, s.db, feedID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAppError("FEED_NOT_FOUND", "feed not found", "", model.ErrNotFound)
		}
		return 0, fmt.Errorf("fetchService.FetchFeed: %w", err)
	}
	created, err := s.fetchOne(ctx, feed)
	if err != nil {
		return created, fmt.Errorf("fetchService.FetchFeed: %w", err)
	}
	return created, nil
}

func (s *fetchService) fetchOne(ctx context.Context, feed *model.Feed) (int, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	parsed, err := s.parser.ParseURLWithContext(feed.URL, fetchCtx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		published := time.Now().UTC()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		article := &model.Article{
			ArticleID:   uuid.New(),
			Title:       item.Title,
			Link:        item.Link,
			Summary:     item.Description,
			PublishedAt: published,
			FeedID:      feed.FeedID,
			GUID:        item.GUID,
		}
		if item.Image != nil {
			article.ImageURL = item.Image.URL
		}
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			article.Author = item.Authors[0].Name
		}

		inserted, err := s.articleRepo.CreateIfNew(ctx, s.db, article)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

func (s *fetchService) fail(ctx context.Context, task *model.FetchTask, cause error) error {
	done := time.Now().UTC()
	task.Status = model.FetchStatusFailed
	task.CompletedAt = &done
	task.Errors = cause.Error()
	task.ProgressText = "failed"
	if err := s.taskRepo.Update(ctx, s.db, task); err != nil {
		return fmt.Errorf("fetchService.RunFetch: %w", err)
	}
	return fmt.Errorf("fetchService.RunFetch: %w", cause)
}
