package service_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitfolio/internal/model"
	"fitfolio/internal/repository"
	"fitfolio/internal/service"
)

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>http://example.com</link>
    <item>
      <title>First post</title>
      <link>http://example.com/posts/1</link>
      <description>Hello</description>
      <pubDate>Mon, 02 Feb 2026 10:00:00 GMT</pubDate>
      <guid>post-1</guid>
    </item>
    <item>
      <title>Second post</title>
      <link>http://example.com/posts/2</link>
      <description>World</description>
      <pubDate>Tue, 03 Feb 2026 10:00:00 GMT</pubDate>
      <guid>post-2</guid>
    </item>
  </channel>
</rss>`

func newFetchEnv(t *testing.T) (*gorm.DB, service.FetchService) {
	t.Helper()

	db := setupTestDB(t)
	fetchService := service.NewFetchService(
		db,
		repository.NewGormFeedRepository(),
		repository.NewGormArticleRepository(),
		repository.NewGormFetchTaskRepository(),
		slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError})),
		service.FetchOptions{FeedLimit: 10, Timeout: 5 * time.Second},
	)
	return db, fetchService
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func mustCreateFeed(t *testing.T, db *gorm.DB, name, url string, active bool) *model.Feed {
	t.Helper()

	feed := &model.Feed{
		FeedID:   uuid.New(),
		Name:     name,
		URL:      url,
		IsActive: active,
	}
	require.NoError(t, db.Create(feed).Error)
	return feed
}

func TestRunFetch_CreatesArticlesAndCompletesTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssTemplate)
	}))
	defer server.Close()

	db, fetchService := newFetchEnv(t)
	ctx := context.Background()
	mustCreateFeed(t, db, "test", server.URL, true)
	mustCreateFeed(t, db, "disabled", server.URL+"/other", false)

	task := &model.FetchTask{TaskID: uuid.New(), Status: model.FetchStatusPending}
	require.NoError(t, db.Create(task).Error)

	require.NoError(t, fetchService.RunFetch(ctx, task.TaskID))

	done, err := fetchService.GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, model.FetchStatusCompleted, done.Status)
	// Inactive feeds are not fetched.
	assert.Equal(t, 1, done.TotalFeeds)
	assert.Equal(t, 1, done.ProcessedFeeds)
	assert.Equal(t, 2, done.ArticlesCreated)
	assert.Empty(t, done.Errors)
	require.NotNil(t, done.StartedAt)
	require.NotNil(t, done.CompletedAt)

	var articles []model.Article
	require.NoError(t, db.Order("published_at ASC").Find(&articles).Error)
	require.Len(t, articles, 2)
	assert.Equal(t, "First post", articles[0].Title)
	assert.Equal(t, "http://example.com/posts/1", articles[0].Link)
	assert.Equal(t, "post-1", articles[0].GUID)
}

func TestRunFetch_DeduplicatesByLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssTemplate)
	}))
	defer server.Close()

	db, fetchService := newFetchEnv(t)
	ctx := context.Background()
	mustCreateFeed(t, db, "test", server.URL, true)

	for i := 0; i < 2; i++ {
		task := &model.FetchTask{TaskID: uuid.New(), Status: model.FetchStatusPending}
		require.NoError(t, db.Create(task).Error)
		require.NoError(t, fetchService.RunFetch(ctx, task.TaskID))
	}

	var count int64
	require.NoError(t, db.Model(&model.Article{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRunFetch_RecordsPerFeedErrors(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssTemplate)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	db, fetchService := newFetchEnv(t)
	ctx := context.Background()
	mustCreateFeed(t, db, "bad", bad.URL, true)
	mustCreateFeed(t, db, "good", good.URL, true)

	task := &model.FetchTask{TaskID: uuid.New(), Status: model.FetchStatusPending}
	require.NoError(t, db.Create(task).Error)
	require.NoError(t, fetchService.RunFetch(ctx, task.TaskID))

	done, err := fetchService.GetTask(ctx, task.TaskID)
	require.NoError(t, err)

	// One broken feed does not fail the run.
	assert.Equal(t, model.FetchStatusCompleted, done.Status)
	assert.Equal(t, 2, done.ProcessedFeeds)
	assert.Equal(t, 2, done.ArticlesCreated)
	assert.Contains(t, done.Errors, "bad")
}

func TestStartFetch_ReturnsPendingTask(t *testing.T) {
	_, fetchService := newFetchEnv(t)
	ctx := context.Background()

	task, err := fetchService.StartFetch(ctx)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, model.FetchStatusPending, task.Status)

	// No active feeds, so the background run completes quickly.
	require.Eventually(t, func() bool {
		polled, err := fetchService.GetTask(ctx, task.TaskID)
		if err != nil {
			return false
		}
		return polled.Status == model.FetchStatusCompleted
	}, 5*time.Second, 50*time.Millisecond)
}

func TestFeedCreatedInactiveStaysInactive(t *testing.T) {
	db, _ := newFetchEnv(t)
	feed := mustCreateFeed(t, db, "quiet", "http://example.com/quiet.rss", false)

	var reloaded model.Feed
	require.NoError(t, db.First(&reloaded, "feed_id = ?", feed.FeedID).Error)
	assert.False(t, reloaded.IsActive)
}
