package repository

import (
	"log/slog"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fitfolio/internal/model"
)

// NewDB opens the postgres connection with a slog-backed GORM logger
// and verifies it with a ping.
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	gormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithSlowThreshold(500 * time.Millisecond),
	)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established")
	return db, nil
}

// DropAll drops every table, association tables included.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(
		"project_tags",
		"exercise_muscle_groups",
		"exercise_equipment",
		&model.FetchTask{},
		&model.Article{},
		&model.Feed{},
		&model.CardioSeriesLog{},
		&model.StrengthSeriesLog{},
		&model.Slot{},
		&model.Workout{},
		&model.Exercise{},
		&model.Equipment{},
		&model.MuscleGroup{},
		&model.WorkoutType{},
		&model.Testimonial{},
		&model.Project{},
		&model.Tag{},
	)
}

// AutoMigrate creates or updates the schema for every entity,
// including the unique indexes on (workout, position) and
// (exercise, workout, series_number).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Tag{},
		&model.Project{},
		&model.Testimonial{},
		&model.WorkoutType{},
		&model.MuscleGroup{},
		&model.Equipment{},
		&model.Exercise{},
		&model.Workout{},
		&model.Slot{},
		&model.StrengthSeriesLog{},
		&model.CardioSeriesLog{},
		&model.Feed{},
		&model.Article{},
		&model.FetchTask{},
	)
}
