// datatool is the administrative companion to the API server: it
// exports and imports the JSON document format, runs an RSS fetch in
// the foreground, and resets the schema.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"fitfolio/internal/config"
	"fitfolio/internal/model"
	"fitfolio/internal/repository"
	"fitfolio/internal/service"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "datatool",
		Short:         "Data import/export and maintenance for the fitfolio database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs", "directory containing config.yaml")

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(fetchRSSCmd())
	rootCmd.AddCommand(resetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup() (*gorm.DB, *slog.Logger, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := config.LoadConfig(configPath); err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, logger, nil
}

func newTransferService(db *gorm.DB) service.TransferService {
	return service.NewTransferService(
		db,
		repository.NewGormTagRepository(),
		repository.NewGormProjectRepository(),
		repository.NewGormTestimonialRepository(),
		repository.NewGormWorkoutTypeRepository(),
		repository.NewGormMuscleGroupRepository(),
		repository.NewGormEquipmentRepository(),
		repository.NewGormExerciseRepository(),
		repository.NewGormWorkoutRepository(),
		repository.NewGormSlotRepository(),
		repository.NewGormSeriesLogRepository(),
		repository.NewGormFeedRepository(),
	)
}

func exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full database to a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := setup()
			if err != nil {
				return err
			}

			doc, err := newTransferService(db).Export(context.Background())
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Exported to", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file instead of stdout")
	return cmd
}

func importCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON document, reconciling by natural keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			db, _, err := setup()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var doc model.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing document: %w", err)
			}

			summary, err := newTransferService(db).Import(context.Background(), &doc)
			if err != nil {
				return err
			}

			for class, n := range summary.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %-24s %d\n", class, n)
			}
			for class, n := range summary.Updated {
				fmt.Fprintf(cmd.OutOrStdout(), "updated %-24s %d\n", class, n)
			}
			for class, n := range summary.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %-24s %d\n", class, n)
			}
			for _, warning := range summary.Warnings {
				fmt.Fprintln(cmd.OutOrStdout(), "warning:", warning)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the export document")
	return cmd
}

func fetchRSSCmd() *cobra.Command {
	var feedID string
	var limit int
	cmd := &cobra.Command{
		Use:   "fetch-rss",
		Short: "Fetch active feeds once, in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, err := setup()
			if err != nil {
				return err
			}

			feedLimit := config.Cfg.Newsfeed.FetchLimit
			if limit > 0 {
				feedLimit = limit
			}
			fetchService := service.NewFetchService(
				db,
				repository.NewGormFeedRepository(),
				repository.NewGormArticleRepository(),
				repository.NewGormFetchTaskRepository(),
				logger,
				service.FetchOptions{
					FeedLimit: feedLimit,
					Delay:     time.Duration(config.Cfg.Newsfeed.FetchDelayMs) * time.Millisecond,
					Timeout:   time.Duration(config.Cfg.Newsfeed.TimeoutSec) * time.Second,
				},
			)

			ctx := context.Background()

			if feedID != "" {
				id, err := uuid.Parse(feedID)
				if err != nil {
					return fmt.Errorf("invalid --feed-id: %w", err)
				}
				created, err := fetchService.FetchFeed(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "new articles: %d\n", created)
				return nil
			}

			task, err := fetchService.StartFetch(ctx)
			if err != nil {
				return err
			}
			// StartFetch runs in the background; poll until the worker
			// finishes so the command reports the final counts.
			for {
				time.Sleep(200 * time.Millisecond)
				task, err = fetchService.GetTask(ctx, task.TaskID)
				if err != nil {
					return err
				}
				if task.Status == model.FetchStatusCompleted || task.Status == model.FetchStatusFailed {
					break
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "status: %s, feeds: %d, new articles: %d\n",
				task.Status, task.TotalFeeds, task.ArticlesCreated)
			if task.Errors != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "errors:", task.Errors)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&feedID, "feed-id", "", "fetch only this feed, without a task record")
	cmd.Flags().IntVar(&limit, "limit", 0, "override the configured feed limit")
	return cmd
}

func resetCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to reset without --yes")
			}
			db, _, err := setup()
			if err != nil {
				return err
			}
			if err := repository.DropAll(db); err != nil {
				return err
			}
			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema reset.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm the destructive reset")
	return cmd
}
