package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"fitfolio/internal/config"
	"fitfolio/internal/handlers"
	"fitfolio/internal/middleware"
	"fitfolio/internal/repository"
	"fitfolio/internal/service"
)

func main() {
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := buildLogger()
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency injection
	tagRepo := repository.NewGormTagRepository()
	projectRepo := repository.NewGormProjectRepository()
	testimonialRepo := repository.NewGormTestimonialRepository()
	workoutTypeRepo := repository.NewGormWorkoutTypeRepository()
	muscleGroupRepo := repository.NewGormMuscleGroupRepository()
	equipmentRepo := repository.NewGormEquipmentRepository()
	exerciseRepo := repository.NewGormExerciseRepository()
	workoutRepo := repository.NewGormWorkoutRepository()
	slotRepo := repository.NewGormSlotRepository()
	seriesRepo := repository.NewGormSeriesLogRepository()
	feedRepo := repository.NewGormFeedRepository()
	articleRepo := repository.NewGormArticleRepository()
	taskRepo := repository.NewGormFetchTaskRepository()

	exerciseService := service.NewExerciseService(db, exerciseRepo, workoutTypeRepo, muscleGroupRepo, equipmentRepo, slotRepo, seriesRepo)
	workoutService := service.NewWorkoutService(db, workoutRepo, workoutTypeRepo, exerciseRepo, slotRepo, seriesRepo, config.Cfg.App.WorkoutPageSize)
	portfolioService := service.NewPortfolioService(db, projectRepo, testimonialRepo, tagRepo)
	transferService := service.NewTransferService(db, tagRepo, projectRepo, testimonialRepo, workoutTypeRepo, muscleGroupRepo, equipmentRepo, exerciseRepo, workoutRepo, slotRepo, seriesRepo, feedRepo)
	newsfeedService := service.NewNewsfeedService(db, feedRepo, articleRepo, config.Cfg.App.ArticlePageSize)
	fetchService := service.NewFetchService(db, feedRepo, articleRepo, taskRepo, logger, service.FetchOptions{
		FeedLimit: config.Cfg.Newsfeed.FetchLimit,
		Delay:     time.Duration(config.Cfg.Newsfeed.FetchDelayMs) * time.Millisecond,
		Timeout:   time.Duration(config.Cfg.Newsfeed.TimeoutSec) * time.Second,
	})

	workoutHandler := handlers.NewWorkoutHandler(workoutService, logger)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService, logger)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, logger)
	newsfeedHandler := handlers.NewNewsfeedHandler(newsfeedService, fetchService, logger)
	transferHandler := handlers.NewTransferHandler(transferService, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", workoutHandler.ListWorkouts)
			r.Post("/", workoutHandler.UpsertWorkout)
			r.Get("/last", workoutHandler.GetLastWorkout)
			r.Get("/{workoutID}", workoutHandler.GetWorkout)
			r.Put("/{workoutID}", workoutHandler.UpdateWorkout)
			r.Delete("/{workoutID}", workoutHandler.DeleteWorkout)
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", exerciseHandler.ListExercises)
			r.Post("/", exerciseHandler.CreateExercise)
			r.Get("/{exerciseID}", exerciseHandler.GetExercise)
			r.Patch("/{exerciseID}", exerciseHandler.UpdateExercise)
			r.Delete("/{exerciseID}", exerciseHandler.DeleteExercise)
		})
		r.Get("/workout-types", exerciseHandler.ListWorkoutTypes)
		r.Get("/muscle-groups", exerciseHandler.ListMuscleGroups)
		r.Get("/equipment", exerciseHandler.ListEquipment)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", portfolioHandler.ListProjects)
			r.Post("/", portfolioHandler.CreateProject)
			r.Get("/{projectID}", portfolioHandler.GetProject)
			r.Put("/{projectID}", portfolioHandler.UpdateProject)
			r.Delete("/{projectID}", portfolioHandler.DeleteProject)
		})
		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", portfolioHandler.ListTestimonials)
			r.Post("/", portfolioHandler.CreateTestimonial)
			r.Put("/{testimonialID}", portfolioHandler.UpdateTestimonial)
			r.Delete("/{testimonialID}", portfolioHandler.DeleteTestimonial)
		})
		r.Get("/tags", portfolioHandler.ListTags)

		r.Route("/feeds", func(r chi.Router) {
			r.Get("/", newsfeedHandler.ListFeeds)
			r.Post("/", newsfeedHandler.CreateFeed)
			r.Post("/fetch", newsfeedHandler.StartFetch)
			r.Put("/{feedID}", newsfeedHandler.UpdateFeed)
			r.Delete("/{feedID}", newsfeedHandler.DeleteFeed)
		})
		r.Get("/articles", newsfeedHandler.ListArticles)
		r.Get("/fetch-tasks/{taskID}", newsfeedHandler.GetFetchTask)

		r.Get("/data/export", transferHandler.Export)
		r.Post("/data/import", transferHandler.Import)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// buildLogger picks the slog handler from config: tint for dev, JSON
// otherwise.
func buildLogger() *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}
