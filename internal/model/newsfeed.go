package model

import (
	"time"

	"github.com/google/uuid"
)

// Feed is an RSS/Atom source.
type Feed struct {
	FeedID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"feed_id"`
	Name      string    `gorm:"not null" json:"name"`
	URL       string    `gorm:"uniqueIndex;not null" json:"url"`
	Category  string    `json:"category,omitempty"`
	// No column default: GORM skips zero-valued fields that carry one,
	// which would silently flip an inactive feed to active on insert.
	// Creators set the field explicitly.
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feed) TableName() string {
	return "feeds"
}

// Article is one fetched feed entry, deduplicated by link.
type Article struct {
	ArticleID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"article_id"`
	Title       string    `gorm:"not null" json:"title"`
	Link        string    `gorm:"uniqueIndex;not null" json:"link"`
	Summary     string    `json:"summary,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `gorm:"not null;index" json:"published_date"`
	FeedID      uuid.UUID `gorm:"type:uuid;not null;index" json:"feed_id"`
	GUID        string    `json:"guid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Feed *Feed `gorm:"foreignKey:FeedID;references:FeedID" json:"-"`
}

func (Article) TableName() string {
	return "articles"
}

// FetchTaskStatus is the lifecycle of a background fetch run.
type FetchTaskStatus string

const (
	FetchStatusPending   FetchTaskStatus = "pending"
	FetchStatusRunning   FetchTaskStatus = "running"
	FetchStatusCompleted FetchTaskStatus = "completed"
	FetchStatusFailed    FetchTaskStatus = "failed"
)

// FetchTask is the polling-readable status record of one background
// fetch run. Only the worker goroutine that owns the task mutates it;
// readers poll without locking. There is no cancellation: a started
// task runs to completion or failure.
type FetchTask struct {
	TaskID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"task_id"`
	Status          FetchTaskStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	TotalFeeds      int             `json:"total_feeds"`
	ProcessedFeeds  int             `json:"processed_feeds"`
	ArticlesCreated int             `json:"articles_created"`
	ProgressText    string          `json:"progress_text,omitempty"`
	Errors          string          `json:"errors,omitempty"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (FetchTask) TableName() string {
	return "fetch_tasks"
}

type FeedRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	URL      string `json:"url" validate:"required,url"`
	Category string `json:"category,omitempty" validate:"max=100"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ArticlePage is one page of the newest-first article listing.
type ArticlePage struct {
	Articles       []Article `json:"articles"`
	Categories     []string  `json:"categories"`
	HasNext        bool      `json:"has_next"`
	NextPageNumber int       `json:"next_page_number,omitempty"`
}
