package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		WorkoutPageSize int `mapstructure:"workout_page_size"`
		ArticlePageSize int `mapstructure:"article_page_size"`
	} `mapstructure:"app"`
	Newsfeed struct {
		FetchLimit   int `mapstructure:"fetch_limit"`
		FetchDelayMs int `mapstructure:"fetch_delay_ms"`
		TimeoutSec   int `mapstructure:"timeout_sec"`
	} `mapstructure:"newsfeed"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

// LoadConfig reads config.yaml from path (falling back to the working
// directory) and applies APP_-prefixed environment overrides.
func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: config file not found, using defaults and environment variables")
		} else {
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		return err
	}

	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.WorkoutPageSize <= 0 {
		Cfg.App.WorkoutPageSize = DefaultWorkoutPageSize
	}
	if Cfg.App.ArticlePageSize <= 0 {
		Cfg.App.ArticlePageSize = DefaultArticlePageSize
	}
	if Cfg.Newsfeed.FetchLimit <= 0 {
		Cfg.Newsfeed.FetchLimit = DefaultFetchLimit
	}
	if Cfg.Newsfeed.FetchDelayMs < 0 {
		Cfg.Newsfeed.FetchDelayMs = DefaultFetchDelayMs
	}
	if Cfg.Newsfeed.TimeoutSec <= 0 {
		Cfg.Newsfeed.TimeoutSec = DefaultFetchTimeoutSec
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: database URL is not set in config")
	}

	return nil
}
