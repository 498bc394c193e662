package config

const (
	AppName    = "fitfolio"
	AppVersion = "1.2.0"
)

const (
	DefaultServerPort      = ":8080"
	DefaultLogLevel        = "info"
	DefaultWorkoutPageSize = 5
	DefaultArticlePageSize = 20
	DefaultFetchLimit      = 20
	DefaultFetchDelayMs    = 500
	DefaultFetchTimeoutSec = 10
)
