package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
	"fitfolio/internal/repository"
)

const workoutDateLayout = "2006-01-02"

// WorkoutService manages training sessions, their ordered slots and the
// per-set log rows behind them.
type WorkoutService interface {
	ListWorkouts(ctx context.Context, page int) (*model.WorkoutPage, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID) (*model.WorkoutView, error)
	GetLastWorkoutByType(ctx context.Context, typeName string) (*model.LastWorkoutResponse, error)
	UpsertWorkout(ctx context.Context, req *model.UpsertWorkoutRequest) (*model.UpsertWorkoutResult, error)
	// ReplaceWorkout rewrites the workout addressed by id. Unlike
	// UpsertWorkout it never creates a new workout and never writes to
	// a workout other than the addressed one.
	ReplaceWorkout(ctx context.Context, workoutID uuid.UUID, req *model.UpsertWorkoutRequest) (*model.UpsertWorkoutResult, error)
	DeleteWorkout(ctx context.Context, workoutID uuid.UUID) error
}

type workoutService struct {
	db              *gorm.DB
	workoutRepo     repository.WorkoutRepository
	workoutTypeRepo repository.WorkoutTypeRepository
	exerciseRepo    repository.ExerciseRepository
	slotRepo        repository.SlotRepository
	seriesRepo      repository.SeriesLogRepository
	pageSize        int
}

func NewWorkoutService(
	db *gorm.DB,
	workoutRepo repository.WorkoutRepository,
	workoutTypeRepo repository.WorkoutTypeRepository,
	exerciseRepo repository.ExerciseRepository,
	slotRepo repository.SlotRepository,
	seriesRepo repository.SeriesLogRepository,
	pageSize int,
) WorkoutService {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &workoutService{
		db:              db,
		workoutRepo:     workoutRepo,
		workoutTypeRepo: workoutTypeRepo,
		exerciseRepo:    exerciseRepo,
		slotRepo:        slotRepo,
		seriesRepo:      seriesRepo,
		pageSize:        pageSize,
	}
}

func (s *workoutService) ListWorkouts(ctx context.Context, page int) (*model.WorkoutPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.pageSize

	workouts, err := s.workoutRepo.ListPage(ctx, s.db, offset, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("workoutService.ListWorkouts: %w", err)
	}
	total, err := s.workoutRepo.Count(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("workoutService.ListWorkouts: %w", err)
	}

	views := make([]model.WorkoutView, 0, len(workouts))
	for _, w := range workouts {
		view, err := s.buildWorkoutView(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("workoutService.ListWorkouts: %w", err)
		}
		views = append(views, *view)
	}

	pageResult := &model.WorkoutPage{Workouts: views}
	if int64(offset+len(workouts)) < total {
		pageResult.HasNext = true
		pageResult.NextPageNumber = page + 1
	}
	return pageResult, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, workoutID uuid.UUID) (*model.WorkoutView, error) {
	workout, err := s.workoutRepo.FindByID(ctx, s.db, workoutID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORKOUT_NOT_FOUND", "workout not found", "", model.ErrNotFound)
		}
		return nil, fmt.Errorf("workoutService.GetWorkout: %w", err)
	}
	return s.buildWorkoutView(ctx, workout)
}

func (s *workoutService) GetLastWorkoutByType(ctx context.Context, typeName string) (*model.LastWorkoutResponse, error) {
	resp := &model.LastWorkoutResponse{}

	exercises, err := s.exerciseRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("workoutService.GetLastWorkoutByType: %w", err)
	}
	resp.AllExercises = make([]model.ExerciseName, 0, len(exercises))
	for _, ex := range exercises {
		resp.AllExercises = append(resp.AllExercises, model.ExerciseName{Name: ex.Name, Type: ex.Type})
	}

	wt, err := s.workoutTypeRepo.FindByName(ctx, s.db, typeName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("workoutService.GetLastWorkoutByType: %w", err)
	}

	workout, err := s.workoutRepo.FindLatestByType(ctx, s.db, wt.WorkoutTypeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("workoutService.GetLastWorkoutByType: %w", err)
	}

	view, err := s.buildWorkoutView(ctx, workout)
	if err != nil {
		return nil, fmt.Errorf("workoutService.GetLastWorkoutByType: %w", err)
	}
	resp.Date = view.Date
	resp.Exercises = view.Exercises
	return resp, nil
}

// UpsertWorkout creates or fully replaces the workout identified by
// (date, workout type name). All slot and log writes happen in one
// transaction; entries naming unknown exercises are dropped and
// reported, never failing the whole request.
func (s *workoutService) UpsertWorkout(ctx context.Context, req *model.UpsertWorkoutRequest) (*model.UpsertWorkoutResult, error) {
	logger := middleware.GetLogger(ctx)

	date, err := time.Parse(workoutDateLayout, req.Date)
	if err != nil {
		return nil, model.NewAppError("INVALID_DATE", "date must be YYYY-MM-DD", "date", model.ErrInvalidInput)
	}

	result := &model.UpsertWorkoutResult{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wt, err := s.workoutTypeRepo.GetOrCreateByName(ctx, tx, req.WorkoutType)
		if err != nil {
			return err
		}

		workout, err := s.workoutRepo.FindByNaturalKey(ctx, tx, date, &wt.WorkoutTypeID)
		if errors.Is(err, model.ErrNotFound) {
			workout = &model.Workout{
				WorkoutID:     uuid.New(),
				Date:          date,
				WorkoutTypeID: &wt.WorkoutTypeID,
				Duration:      req.Duration,
			}
			if err := s.workoutRepo.Create(ctx, tx, workout); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			workout.Duration = req.Duration
			if err := s.workoutRepo.Update(ctx, tx, workout); err != nil {
				return err
			}
			oldSlots, err := s.slotRepo.FindByWorkout(ctx, tx, workout.WorkoutID)
			if err != nil {
				return err
			}
			result.SlotsDeleted = len(oldSlots)
			if err := s.seriesRepo.DeleteByWorkout(ctx, tx, workout.WorkoutID); err != nil {
				return err
			}
			if err := s.slotRepo.DeleteByWorkout(ctx, tx, workout.WorkoutID); err != nil {
				return err
			}
		}

		if err := s.writeSlots(ctx, tx, logger, workout, req.Exercises, result); err != nil {
			return err
		}

		result.Workout = workout
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Workout upsert failed", "error", err, "date", req.Date)
		return nil, fmt.Errorf("workoutService.UpsertWorkout: %w", err)
	}

	if result.Workout != nil && result.Workout.WorkoutType == nil {
		reloaded, err := s.workoutRepo.FindByID(ctx, s.db, result.Workout.WorkoutID)
		if err == nil {
			result.Workout = reloaded
		}
	}
	return result, nil
}

// ReplaceWorkout rewrites the workout addressed by id, moving it to the
// requested date and type. Another workout already holding that natural
// key is a conflict, not a merge target.
func (s *workoutService) ReplaceWorkout(ctx context.Context, workoutID uuid.UUID, req *model.UpsertWorkoutRequest) (*model.UpsertWorkoutResult, error) {
	logger := middleware.GetLogger(ctx)

	date, err := time.Parse(workoutDateLayout, req.Date)
	if err != nil {
		return nil, model.NewAppError("INVALID_DATE", "date must be YYYY-MM-DD", "date", model.ErrInvalidInput)
	}

	result := &model.UpsertWorkoutResult{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		workout, err := s.workoutRepo.FindByID(ctx, tx, workoutID)
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("WORKOUT_NOT_FOUND", "workout not found", "", model.ErrNotFound)
		} else if err != nil {
			return err
		}

		wt, err := s.workoutTypeRepo.GetOrCreateByName(ctx, tx, req.WorkoutType)
		if err != nil {
			return err
		}

		other, err := s.workoutRepo.FindByNaturalKey(ctx, tx, date, &wt.WorkoutTypeID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
		if other != nil && other.WorkoutID != workout.WorkoutID {
			return model.NewAppError("DUPLICATE_WORKOUT", "another workout already exists for this date and type", "date", model.ErrConflict)
		}

		workout.Date = date
		workout.WorkoutTypeID = &wt.WorkoutTypeID
		workout.Duration = req.Duration
		if err := s.workoutRepo.Update(ctx, tx, workout); err != nil {
			return err
		}
		workout.WorkoutType = wt

		oldSlots, err := s.slotRepo.FindByWorkout(ctx, tx, workout.WorkoutID)
		if err != nil {
			return err
		}
		result.SlotsDeleted = len(oldSlots)
		if err := s.seriesRepo.DeleteByWorkout(ctx, tx, workout.WorkoutID); err != nil {
			return err
		}
		if err := s.slotRepo.DeleteByWorkout(ctx, tx, workout.WorkoutID); err != nil {
			return err
		}

		if err := s.writeSlots(ctx, tx, logger, workout, req.Exercises, result); err != nil {
			return err
		}

		result.Workout = workout
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Workout replace failed", "error", err, "workout_id", workoutID)
		return nil, fmt.Errorf("workoutService.ReplaceWorkout: %w", err)
	}
	return result, nil
}

// writeSlots writes the posted entries as fresh slots and series rows,
// ordered by temp id. A repeated exercise continues its series
// numbering so the (exercise, workout, series_number) key stays unique.
func (s *workoutService) writeSlots(ctx context.Context, tx *gorm.DB, logger *slog.Logger, workout *model.Workout, exercises []model.SlotEntryRequest, result *model.UpsertWorkoutResult) error {
	entries := make([]model.SlotEntryRequest, len(exercises))
	copy(entries, exercises)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TempID < entries[j].TempID
	})

	position := 0
	strengthSeries := make(map[uuid.UUID]int)
	cardioSeries := make(map[uuid.UUID]int)

	for _, entry := range entries {
		exercise, err := s.exerciseRepo.FindByName(ctx, tx, entry.ExerciseName)
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Skipping unknown exercise in workout upsert",
				"exercise_name", entry.ExerciseName,
				"workout_id", workout.WorkoutID,
			)
			result.Skipped = append(result.Skipped, entry.ExerciseName)
			continue
		} else if err != nil {
			return err
		}

		position++
		kind := model.LogKindStrength
		if exercise.Type == model.ExerciseTypeCardio {
			kind = model.LogKindCardio
		}

		slot := &model.Slot{
			SlotID:     uuid.New(),
			WorkoutID:  workout.WorkoutID,
			Position:   position,
			ExerciseID: exercise.ExerciseID,
			LogKind:    kind,
			Notes:      entry.Notes,
		}
		if err := s.slotRepo.Create(ctx, tx, slot); err != nil {
			return err
		}

		switch kind {
		case model.LogKindStrength:
			nbSeries := entry.NbSeries
			if nbSeries < 1 {
				nbSeries = 1
			}
			logs := make([]*model.StrengthSeriesLog, 0, nbSeries)
			for i := 0; i < nbSeries; i++ {
				strengthSeries[exercise.ExerciseID]++
				logs = append(logs, &model.StrengthSeriesLog{
					LogID:        uuid.New(),
					ExerciseID:   exercise.ExerciseID,
					WorkoutID:    workout.WorkoutID,
					SeriesNumber: strengthSeries[exercise.ExerciseID],
					Reps:         entry.NbRepetition,
					Weight:       entry.Weight,
				})
			}
			if err := s.seriesRepo.CreateStrength(ctx, tx, logs); err != nil {
				return err
			}
		case model.LogKindCardio:
			cardioSeries[exercise.ExerciseID]++
			logs := []*model.CardioSeriesLog{{
				LogID:           uuid.New(),
				ExerciseID:      exercise.ExerciseID,
				WorkoutID:       workout.WorkoutID,
				SeriesNumber:    cardioSeries[exercise.ExerciseID],
				DurationSeconds: entry.DurationSeconds,
				DistanceM:       entry.DistanceM,
			}}
			if err := s.seriesRepo.CreateCardio(ctx, tx, logs); err != nil {
				return err
			}
		}
		result.SlotsWritten++
	}
	return nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, workoutID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.seriesRepo.DeleteByWorkout(ctx, tx, workoutID); err != nil {
			return err
		}
		if err := s.slotRepo.DeleteByWorkout(ctx, tx, workoutID); err != nil {
			return err
		}
		return s.workoutRepo.Delete(ctx, tx, workoutID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("WORKOUT_NOT_FOUND", "workout not found", "", model.ErrNotFound)
		}
		return fmt.Errorf("workoutService.DeleteWorkout: %w", err)
	}
	return nil
}

// buildWorkoutView resolves the workout's slots in position order and
// attaches each slot's log data.
func (s *workoutService) buildWorkoutView(ctx context.Context, workout *model.Workout) (*model.WorkoutView, error) {
	view := &model.WorkoutView{
		WorkoutID: workout.WorkoutID,
		Date:      workout.Date.Format(workoutDateLayout),
		Duration:  workout.Duration,
		Exercises: []model.SlotView{},
	}
	if workout.WorkoutType != nil {
		view.WorkoutType = workout.WorkoutType.Name
	}

	slots, err := s.slotRepo.FindByWorkout(ctx, s.db, workout.WorkoutID)
	if err != nil {
		return nil, err
	}
	for _, slot := range slots {
		slotView, err := s.resolveSlot(ctx, slot)
		if err != nil {
			return nil, err
		}
		view.Exercises = append(view.Exercises, *slotView)
	}
	return view, nil
}

// resolveSlot reads the series rows behind a slot's log kind. A slot
// whose rows are missing resolves to kind "none" rather than an error.
func (s *workoutService) resolveSlot(ctx context.Context, slot *model.Slot) (*model.SlotView, error) {
	view := &model.SlotView{
		SlotID:   slot.SlotID,
		Position: slot.Position,
		Data:     model.SlotLogData{Kind: model.LogKindNone, Notes: slot.Notes},
	}
	if slot.Exercise != nil {
		view.ExerciseName = slot.Exercise.Name
		view.ExerciseType = slot.Exercise.Type
	}

	switch slot.LogKind {
	case model.LogKindStrength:
		rows, err := s.seriesRepo.FindStrength(ctx, s.db, slot.ExerciseID, slot.WorkoutID)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return view, nil
		}
		view.Data.Kind = model.LogKindStrength
		view.Data.NbSeries = len(rows)
		view.Data.NbRepetition = rows[0].Reps
		view.Data.Weight = rows[0].Weight
		for _, row := range rows {
			view.Data.Sets = append(view.Data.Sets, model.StrengthSetData{
				SeriesNumber: row.SeriesNumber,
				Reps:         row.Reps,
				Weight:       row.Weight,
			})
		}
	case model.LogKindCardio:
		rows, err := s.seriesRepo.FindCardio(ctx, s.db, slot.ExerciseID, slot.WorkoutID)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return view, nil
		}
		view.Data.Kind = model.LogKindCardio
		view.Data.DurationSeconds = rows[0].DurationSeconds
		view.Data.DistanceM = rows[0].DistanceM
		for _, row := range rows {
			view.Data.Intervals = append(view.Data.Intervals, model.CardioSetData{
				SeriesNumber:    row.SeriesNumber,
				DurationSeconds: row.DurationSeconds,
				DistanceM:       row.DistanceM,
			})
		}
	}
	return view, nil
}
