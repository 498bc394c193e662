package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
	"fitfolio/internal/repository"
)

// TransferService serializes the full entity graph to a portable JSON
// document and reconciles such documents back into the database.
type TransferService interface {
	Export(ctx context.Context) (*model.Document, error)
	Import(ctx context.Context, doc *model.Document) (*model.ImportSummary, error)
}

type transferService struct {
	db              *gorm.DB
	tagRepo         repository.TagRepository
	projectRepo     repository.ProjectRepository
	testimonialRepo repository.TestimonialRepository
	workoutTypeRepo repository.WorkoutTypeRepository
	muscleGroupRepo repository.MuscleGroupRepository
	equipmentRepo   repository.EquipmentRepository
	exerciseRepo    repository.ExerciseRepository
	workoutRepo     repository.WorkoutRepository
	slotRepo        repository.SlotRepository
	seriesRepo      repository.SeriesLogRepository
	feedRepo        repository.FeedRepository
}

func NewTransferService(
	db *gorm.DB,
	tagRepo repository.TagRepository,
	projectRepo repository.ProjectRepository,
	testimonialRepo repository.TestimonialRepository,
	workoutTypeRepo repository.WorkoutTypeRepository,
	muscleGroupRepo repository.MuscleGroupRepository,
	equipmentRepo repository.EquipmentRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	slotRepo repository.SlotRepository,
	seriesRepo repository.SeriesLogRepository,
	feedRepo repository.FeedRepository,
) TransferService {
	return &transferService{
		db:              db,
		tagRepo:         tagRepo,
		projectRepo:     projectRepo,
		testimonialRepo: testimonialRepo,
		workoutTypeRepo: workoutTypeRepo,
		muscleGroupRepo: muscleGroupRepo,
		equipmentRepo:   equipmentRepo,
		exerciseRepo:    exerciseRepo,
		workoutRepo:     workoutRepo,
		slotRepo:        slotRepo,
		seriesRepo:      seriesRepo,
		feedRepo:        feedRepo,
	}
}

// Export walks the whole database and emits a document keyed by natural
// identifiers (names and workout dates), never by live UUIDs.
func (s *transferService) Export(ctx context.Context) (*model.Document, error) {
	doc := &model.Document{ExportDate: time.Now().UTC().Format(time.RFC3339)}

	tags, err := s.tagRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, t := range tags {
		doc.Tags = append(doc.Tags, model.TagRecord{Name: t.Name})
	}

	projects, err := s.projectRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, p := range projects {
		rec := model.ProjectRecord{
			TitleEN:       p.TitleEN,
			DescriptionEN: p.DescriptionEN,
			TitleFR:       p.TitleFR,
			DescriptionFR: p.DescriptionFR,
			GithubURL:     p.GithubURL,
		}
		for _, t := range p.Tags {
			rec.TagNames = append(rec.TagNames, t.Name)
		}
		doc.Projects = append(doc.Projects, rec)
	}

	testimonials, err := s.testimonialRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, t := range testimonials {
		doc.Testimonials = append(doc.Testimonials, model.TestimonialRecord{
			Author: t.Author,
			TextEN: t.TextEN,
			TextFR: t.TextFR,
		})
	}

	workoutTypes, err := s.workoutTypeRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, wt := range workoutTypes {
		doc.WorkoutTypes = append(doc.WorkoutTypes, model.WorkoutTypeRecord{Name: wt.Name})
	}

	muscleGroups, err := s.muscleGroupRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, mg := range muscleGroups {
		doc.MuscleGroups = append(doc.MuscleGroups, model.MuscleGroupRecord{
			Name:        mg.Name,
			Description: mg.Description,
		})
	}

	equipment, err := s.equipmentRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, eq := range equipment {
		doc.Equipment = append(doc.Equipment, model.EquipmentRecord{
			Name:        eq.Name,
			Description: eq.Description,
		})
	}

	exercises, err := s.exerciseRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	exerciseNames := make(map[uuid.UUID]string, len(exercises))
	mgIDs := make(map[string]int64)
	for i, mg := range muscleGroups {
		mgIDs[mg.Name] = int64(i + 1)
	}
	eqIDs := make(map[string]int64)
	for i, eq := range equipment {
		eqIDs[eq.Name] = int64(i + 1)
	}
	for i, mg := range doc.MuscleGroups {
		doc.MuscleGroups[i].LocalID = mgIDs[mg.Name]
	}
	for i, eq := range doc.Equipment {
		doc.Equipment[i].LocalID = eqIDs[eq.Name]
	}
	for _, ex := range exercises {
		exerciseNames[ex.ExerciseID] = ex.Name
		rec := model.ExerciseRecord{
			Name:       ex.Name,
			Type:       string(ex.Type),
			Difficulty: ex.Difficulty,
		}
		for _, mg := range ex.MuscleGroups {
			rec.MuscleGroups = append(rec.MuscleGroups, mgIDs[mg.Name])
		}
		for _, eq := range ex.Equipment {
			rec.Equipment = append(rec.Equipment, eqIDs[eq.Name])
		}
		doc.Exercises = append(doc.Exercises, rec)
	}

	total, err := s.workoutRepo.Count(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	workouts, err := s.workoutRepo.ListPage(ctx, s.db, 0, int(total))
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for i, w := range workouts {
		// The local id disambiguates same-date workouts of different
		// types; the date alone is not a full natural key.
		localID := int64(i + 1)
		rec := model.WorkoutRecord{
			LocalID:  localID,
			Date:     w.Date.Format(workoutDateLayout),
			Duration: w.Duration,
		}
		if w.WorkoutType != nil {
			rec.WorkoutTypeName = w.WorkoutType.Name
		}
		doc.Workouts = append(doc.Workouts, rec)

		slots, err := s.slotRepo.FindByWorkout(ctx, s.db, w.WorkoutID)
		if err != nil {
			return nil, fmt.Errorf("transferService.Export: %w", err)
		}
		seenPairs := make(map[uuid.UUID]bool)
		for _, slot := range slots {
			name := exerciseNames[slot.ExerciseID]
			doc.Slots = append(doc.Slots, model.SlotRecord{
				WorkoutID:    localID,
				WorkoutDate:  rec.Date,
				ExerciseName: name,
				Position:     slot.Position,
				LogKind:      string(slot.LogKind),
				Notes:        slot.Notes,
			})

			// Series rows are keyed by (exercise, workout); a repeated
			// exercise shares one run, exported once.
			if seenPairs[slot.ExerciseID] {
				continue
			}
			seenPairs[slot.ExerciseID] = true

			switch slot.LogKind {
			case model.LogKindStrength:
				rows, err := s.seriesRepo.FindStrength(ctx, s.db, slot.ExerciseID, w.WorkoutID)
				if err != nil {
					return nil, fmt.Errorf("transferService.Export: %w", err)
				}
				for _, row := range rows {
					doc.StrengthSeriesLogs = append(doc.StrengthSeriesLogs, model.StrengthSeriesRecord{
						ExerciseName: name,
						WorkoutID:    localID,
						WorkoutDate:  rec.Date,
						SeriesNumber: row.SeriesNumber,
						Reps:         row.Reps,
						Weight:       row.Weight,
					})
				}
			case model.LogKindCardio:
				rows, err := s.seriesRepo.FindCardio(ctx, s.db, slot.ExerciseID, w.WorkoutID)
				if err != nil {
					return nil, fmt.Errorf("transferService.Export: %w", err)
				}
				for _, row := range rows {
					doc.CardioSeriesLogs = append(doc.CardioSeriesLogs, model.CardioSeriesRecord{
						ExerciseName:    name,
						WorkoutID:       localID,
						WorkoutDate:     rec.Date,
						SeriesNumber:    row.SeriesNumber,
						DurationSeconds: row.DurationSeconds,
						DistanceM:       row.DistanceM,
					})
				}
			}
		}
	}

	feeds, err := s.feedRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("transferService.Export: %w", err)
	}
	for _, f := range feeds {
		doc.Feeds = append(doc.Feeds, model.FeedRecord{
			Name:     f.Name,
			URL:      f.URL,
			Category: f.Category,
			IsActive: f.IsActive,
		})
	}

	return doc, nil
}

// importState carries the document-local id maps built while walking
// the sections in dependency order.
type importState struct {
	summary *model.ImportSummary

	muscleGroupsByLocal map[int64]*model.MuscleGroup
	equipmentByLocal    map[int64]*model.Equipment
	workoutsByLocal     map[int64]*model.Workout
	workoutsByDate      map[string]*model.Workout
	exercisesByName     map[string]*model.Exercise
	slotPositions       map[uuid.UUID]int
	strengthSeries      map[string]int
	cardioSeries        map[string]int
}

// Import reconciles a document into the database in one transaction.
// Records that cannot be resolved (unknown exercise or workout
// references, bad dates) are skipped with a warning; only structural
// failures abort the import.
func (s *transferService) Import(ctx context.Context, doc *model.Document) (*model.ImportSummary, error) {
	logger := middleware.GetLogger(ctx)

	st := &importState{
		summary:             model.NewImportSummary(),
		muscleGroupsByLocal: make(map[int64]*model.MuscleGroup),
		equipmentByLocal:    make(map[int64]*model.Equipment),
		workoutsByLocal:     make(map[int64]*model.Workout),
		workoutsByDate:      make(map[string]*model.Workout),
		exercisesByName:     make(map[string]*model.Exercise),
		slotPositions:       make(map[uuid.UUID]int),
		strengthSeries:      make(map[string]int),
		cardioSeries:        make(map[string]int),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.importPortfolio(ctx, tx, doc, st); err != nil {
			return err
		}
		if err := s.importCatalog(ctx, tx, doc, st); err != nil {
			return err
		}
		if err := s.importWorkouts(ctx, tx, doc, st); err != nil {
			return err
		}
		if err := s.importSeriesLogs(ctx, tx, doc, st); err != nil {
			return err
		}
		if err := s.importLegacyLogs(ctx, tx, doc, st); err != nil {
			return err
		}
		return s.importFeeds(ctx, tx, doc, st)
	})
	if err != nil {
		logger.Error("Import aborted", "error", err)
		return nil, fmt.Errorf("transferService.Import: %w", err)
	}

	for _, warning := range st.summary.Warnings {
		logger.Warn("Import warning", "detail", warning)
	}
	return st.summary, nil
}

func (s *transferService) importPortfolio(ctx context.Context, tx *gorm.DB, doc *model.Document, st *importState) error {
	for _, rec := range doc.Tags {
		if rec.Name == "" {
			st.skip("tags", "tag with empty name")
			continue
		}
		if _, err := s.tagRepo.GetOrCreateByName(ctx, tx, rec.Name); err != nil {
			return err
		}
		st.summary.Created["tags"]++
	}

	for _, rec := range doc.Projects {
		if rec.TitleEN == "" {
			st.skip("projects", "project with empty title_en")
			continue
		}
		project := &model.Project{
			ProjectID:     uuid.New(),
			TitleEN:       rec.TitleEN,
			DescriptionEN: rec.DescriptionEN,
			TitleFR:       rec.TitleFR,
			DescriptionFR: rec.DescriptionFR,
			GithubURL:     rec.GithubURL,
		}
		if err := s.projectRepo.Create(ctx, tx, project); err != nil {
			return err
		}
		if len(rec.TagNames) > 0 {
			tags := make([]model.Tag, 0, len(rec.TagNames))
			for _, name := range rec.TagNames {
				tag, err := s.tagRepo.GetOrCreateByName(ctx, tx, name)
				if err != nil {
					return err
				}
				tags = append(tags, *tag)
			}
			if err := s.projectRepo.ReplaceTags(ctx, tx, project, tags); err != nil {
				return err
			}
		}
		st.summary.Created["projects"]++
	}

	for _, rec := range doc.Testimonials {
		if rec.Author == "" {
			st.skip("testimonials", "testimonial with empty author")
			continue
		}
		testimonial := &model.Testimonial{
			TestimonialID: uuid.New(),
			Author:        rec.Author,
			TextEN:        rec.TextEN,
			TextFR:        rec.TextFR,
		}
		if err := s.testimonialRepo.Create(ctx, tx, testimonial); err != nil {
			return err
		}
		st.summary.Created["testimonials"]++
	}
	return nil
}

func (s *transferService) importCatalog(ctx context.Context, tx *gorm.DB, doc *model.Document, st *importState) error {
	for _, rec := range doc.WorkoutTypes {
		if rec.Name == "" {
			st.skip("workout_types", "workout type with empty name")
			continue
		}
		if _, err := s.workoutTypeRepo.GetOrCreateByName(ctx, tx, rec.Name); err != nil {
			return err
		}
		st.summary.Created["workout_types"]++
	}

	for _, rec := range doc.MuscleGroups {
		if rec.Name == "" {
			st.skip("muscle_groups", "muscle group with empty name")
			continue
		}
		mg, err := s.muscleGroupRepo.GetOrCreateByName(ctx, tx, rec.Name, rec.Description)
		if err != nil {
			return err
		}
		if rec.LocalID != 0 {
			st.muscleGroupsByLocal[rec.LocalID] = mg
		}
		st.summary.Created["muscle_groups"]++
	}

	for _, rec := range doc.Equipment {
		if rec.Name == "" {
			st.skip("equipment", "equipment with empty name")
			continue
		}
		eq, err := s.equipmentRepo.GetOrCreateByName(ctx, tx, rec.Name, rec.Description)
		if err != nil {
			return err
		}
		if rec.LocalID != 0 {
			st.equipmentByLocal[rec.LocalID] = eq
		}
		st.summary.Created["equipment"]++
	}

	for _, rec := range doc.Exercises {
		if rec.Name == "" {
			st.skip("exercises", "exercise with empty name")
			continue
		}
		exType := model.ExerciseType(rec.Type)
		if exType != model.ExerciseTypeStrength && exType != model.ExerciseTypeCardio {
			st.skip("exercises", fmt.Sprintf("exercise %q has unknown type %q", rec.Name, rec.Type))
			continue
		}

		exercise, err := s.exerciseRepo.FindByName(ctx, tx, rec.Name)
		if errors.Is(err, model.ErrNotFound) {
			exercise = &model.Exercise{
				ExerciseID: uuid.New(),
				Name:       rec.Name,
				Type:       exType,
				Difficulty: rec.Difficulty,
			}
			if exercise.Difficulty == "" {
				exercise.Difficulty = "beginner"
			}
			if err := s.exerciseRepo.Create(ctx, tx, exercise); err != nil {
				return err
			}
			st.summary.Created["exercises"]++
		} else if err != nil {
			return err
		} else {
			exercise.Type = exType
			if rec.Difficulty != "" {
				exercise.Difficulty = rec.Difficulty
			}
			if err := s.exerciseRepo.Update(ctx, tx, exercise); err != nil {
				return err
			}
			st.summary.Updated["exercises"]++
		}
		st.exercisesByName[exercise.Name] = exercise

		var groups []model.MuscleGroup
		for _, localID := range rec.MuscleGroups {
			if mg, ok := st.muscleGroupsByLocal[localID]; ok {
				groups = append(groups, *mg)
			} else {
				st.warn(fmt.Sprintf("exercise %q references unknown muscle group id %d", rec.Name, localID))
			}
		}
		if len(groups) > 0 {
			if err := s.exerciseRepo.ReplaceMuscleGroups(ctx, tx, exercise, groups); err != nil {
				return err
			}
		}
		var items []model.Equipment
		for _, localID := range rec.Equipment {
			if eq, ok := st.equipmentByLocal[localID]; ok {
				items = append(items, *eq)
			} else {
				st.warn(fmt.Sprintf("exercise %q references unknown equipment id %d", rec.Name, localID))
			}
		}
		if len(items) > 0 {
			if err := s.exerciseRepo.ReplaceEquipment(ctx, tx, exercise, items); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *transferService) importWorkouts(ctx context.Context, tx *gorm.DB, doc *model.Document, st *importState) error {
	for _, rec := range doc.Workouts {
		date, err := time.Parse(workoutDateLayout, rec.Date)
		if err != nil {
			st.skip("workouts", fmt.Sprintf("workout with unparseable date %q", rec.Date))
			continue
		}

		var typeID *uuid.UUID
		if rec.WorkoutTypeName != "" {
			wt, err := s.workoutTypeRepo.GetOrCreateByName(ctx, tx, rec.WorkoutTypeName)
			if err != nil {
				return err
			}
			typeID = &wt.WorkoutTypeID
		}

		workout, err := s.workoutRepo.FindByNaturalKey(ctx, tx, date, typeID)
		if errors.Is(err, model.ErrNotFound) {
			workout = &model.Workout{
				WorkoutID:     uuid.New(),
				Date:          date,
				WorkoutTypeID: typeID,
				Duration:      rec.Duration,
			}
			if err := s.workoutRepo.Create(ctx, tx, workout); err != nil {
				return err
			}
			st.summary.Created["workouts"]++
		} else if err != nil {
			return err
		} else {
			workout.Duration = rec.Duration
			if err := s.workoutRepo.Update(ctx, tx, workout); err != nil {
				return err
			}
			st.summary.Updated["workouts"]++
		}

		if rec.LocalID != 0 {
			st.workoutsByLocal[rec.LocalID] = workout
		}
		// Date-only references (legacy documents) resolve to the first
		// workout seen for the date; same-date workouts of different
		// types are only distinguishable through their local ids.
		if _, ok := st.workoutsByDate[rec.Date]; !ok {
			st.workoutsByDate[rec.Date] = workout
		}
	}

	for _, rec := range doc.Slots {
		workout := st.resolveWorkout(rec.WorkoutID, rec.WorkoutDate)
		if workout == nil {
			st.skip("slots", fmt.Sprintf("slot references unknown workout (id=%d date=%q)", rec.WorkoutID, rec.WorkoutDate))
			continue
		}
		exercise, err := s.resolveExercise(ctx, tx, st, rec.ExerciseName)
		if err != nil {
			return err
		}
		if exercise == nil {
			st.skip("slots", fmt.Sprintf("slot references unknown exercise %q", rec.ExerciseName))
			continue
		}

		kind := model.LogKind(rec.LogKind)
		switch kind {
		case model.LogKindStrength, model.LogKindCardio, model.LogKindNone:
		case "":
			kind = model.LogKindStrength
			if exercise.Type == model.ExerciseTypeCardio {
				kind = model.LogKindCardio
			}
		default:
			st.skip("slots", fmt.Sprintf("slot for %q has unknown log kind %q", rec.ExerciseName, rec.LogKind))
			continue
		}

		position := rec.Position
		if position <= 0 || position <= st.slotPositions[workout.WorkoutID] {
			position = st.slotPositions[workout.WorkoutID] + 1
		}
		st.slotPositions[workout.WorkoutID] = position

		existing, err := s.slotRepo.FindByPosition(ctx, tx, workout.WorkoutID, position)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
		if existing != nil {
			existing.ExerciseID = exercise.ExerciseID
			existing.LogKind = kind
			existing.Notes = rec.Notes
			if err := s.slotRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			st.summary.Updated["slots"]++
			continue
		}

		slot := &model.Slot{
			SlotID:     uuid.New(),
			WorkoutID:  workout.WorkoutID,
			Position:   position,
			ExerciseID: exercise.ExerciseID,
			LogKind:    kind,
			Notes:      rec.Notes,
		}
		if err := s.slotRepo.Create(ctx, tx, slot); err != nil {
			return err
		}
		st.summary.Created["slots"]++
	}
	return nil
}

func (s *transferService) importSeriesLogs(ctx context.Context, tx *gorm.DB, doc *model.Document, st *importState) error {
	for _, rec := range doc.StrengthSeriesLogs {
		workout := st.resolveWorkout(rec.WorkoutID, rec.WorkoutDate)
		if workout == nil {
			st.skip("strength_series_logs", fmt.Sprintf("strength series references unknown workout (id=%d date=%q)", rec.WorkoutID, rec.WorkoutDate))
			continue
		}
		exercise, err := s.resolveExercise(ctx, tx, st, rec.ExerciseName)
		if err != nil {
			return err
		}
		if exercise == nil {
			st.skip("strength_series_logs", fmt.Sprintf("strength series references unknown exercise %q", rec.ExerciseName))
			continue
		}

		// Update-or-create on (exercise, workout, series_number) keeps
		// re-imports from duplicating rows under renumbered keys.
		if rec.SeriesNumber > 0 {
			existing, err := s.seriesRepo.FindStrengthBySeries(ctx, tx, exercise.ExerciseID, workout.WorkoutID, rec.SeriesNumber)
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				return err
			}
			if existing != nil {
				existing.Reps = rec.Reps
				existing.Weight = rec.Weight
				if err := s.seriesRepo.UpdateStrength(ctx, tx, existing); err != nil {
					return err
				}
				st.summary.Updated["strength_series_logs"]++
				continue
			}
		}

		seriesNumber, err := s.nextStrengthSeries(ctx, tx, st, exercise.ExerciseID, workout.WorkoutID, rec.SeriesNumber)
		if err != nil {
			return err
		}
		log := &model.StrengthSeriesLog{
			LogID:        uuid.New(),
			ExerciseID:   exercise.ExerciseID,
			WorkoutID:    workout.WorkoutID,
			SeriesNumber: seriesNumber,
			Reps:         rec.Reps,
			Weight:       rec.Weight,
		}
		if err := s.seriesRepo.CreateStrength(ctx, tx, []*model.StrengthSeriesLog{log}); err != nil {
			return err
		}
		st.summary.Created["strength_series_logs"]++
	}

	for _, rec := range doc.CardioSeriesLogs {
		workout := st.resolveWorkout(rec.WorkoutID, rec.WorkoutDate)
		if workout == nil {
			st.skip("cardio_series_logs", fmt.Sprintf("cardio series references unknown workout (id=%d date=%q)", rec.WorkoutID, rec.WorkoutDate))
			continue
		}
		exercise, err := s.resolveExercise(ctx, tx, st, rec.ExerciseName)
		if err != nil {
			return err
		}
		if exercise == nil {
			st.skip("cardio_series_logs", fmt.Sprintf("cardio series references unknown exercise %q", rec.ExerciseName))
			continue
		}

		if rec.SeriesNumber > 0 {
			existing, err := s.seriesRepo.FindCardioBySeries(ctx, tx, exercise.ExerciseID, workout.WorkoutID, rec.SeriesNumber)
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				return err
			}
			if existing != nil {
				existing.DurationSeconds = rec.DurationSeconds
				existing.DistanceM = rec.DistanceM
				if err := s.seriesRepo.UpdateCardio(ctx, tx, existing); err != nil {
					return err
				}
				st.summary.Updated["cardio_series_logs"]++
				continue
			}
		}

		seriesNumber, err := s.nextCardioSeries(ctx, tx, st, exercise.ExerciseID, workout.WorkoutID, rec.SeriesNumber)
		if err != nil {
			return err
		}
		log := &model.CardioSeriesLog{
			LogID:           uuid.New(),
			ExerciseID:      exercise.ExerciseID,
			WorkoutID:       workout.WorkoutID,
			SeriesNumber:    seriesNumber,
			DurationSeconds: rec.DurationSeconds,
			DistanceM:       rec.DistanceM,
		}
		if err := s.seriesRepo.CreateCardio(ctx, tx, []*model.CardioSeriesLog{log}); err != nil {
			return err
		}
		st.summary.Created["cardio_series_logs"]++
	}
	return nil
}

// importLegacyLogs expands the old aggregated log shapes into per-set
// rows: a strength record with nb_series=3 becomes three rows numbered
// from the pair's current maximum.
func (s *transferService) importLegacyLogs(ctx context.Context, tx *gorm.DB, doc *model.Document, st *importState) error {
	for _, rec := range doc.LegacyStrengthLogs {
		workout := st.resolveWorkout(rec.WorkoutID, rec.WorkoutDate)
		if workout == nil {
			st.skip("strength_exercise_logs", fmt.Sprintf("legacy strength log references unknown workout (id=%d date=%q)", rec.WorkoutID, rec.WorkoutDate))
			continue
		}
		exercise, err := s.resolveExercise(ctx, tx, st, rec.ExerciseName)
		if err != nil {
			return err
		}
		if exercise == nil {
			st.skip("strength_exercise_logs", fmt.Sprintf("legacy strength log references unknown exercise %q", rec.ExerciseName))
			continue
		}

		nbSeries := rec.NbSeries
		if nbSeries < 1 {
			nbSeries = 1
		}
		logs := make([]*model.StrengthSeriesLog, 0, nbSeries)
		for i := 0; i < nbSeries; i++ {
			seriesNumber, err := s.nextStrengthSeries(ctx, tx, st, exercise.ExerciseID, workout.WorkoutID, 0)
			if err != nil {
				return err
			}
			logs = append(logs, &model.StrengthSeriesLog{
				LogID:        uuid.New(),
				ExerciseID:   exercise.ExerciseID,
				WorkoutID:    workout.WorkoutID,
				SeriesNumber: seriesNumber,
				Reps:         rec.NbRepetition,
				Weight:       rec.Weight,
			})
		}
		if err := s.seriesRepo.CreateStrength(ctx, tx, logs); err != nil {
			return err
		}
		st.summary.Created["strength_series_logs"] += len(logs)

		if err := s.ensureLegacySlot(ctx, tx, st, workout, exercise, model.LogKindStrength, rec.Notes); err != nil {
			return err
		}
	}

	for _, rec := range doc.LegacyCardioLogs {
		workout := st.resolveWorkout(rec.WorkoutID, rec.WorkoutDate)
		if workout == nil {
			st.skip("cardio_exercise_logs", fmt.Sprintf("legacy cardio log references unknown workout (id=%d date=%q)", rec.WorkoutID, rec.WorkoutDate))
			continue
		}
		exercise, err := s.resolveExercise(ctx, tx, st, rec.ExerciseName)
		if err != nil {
			return err
		}
		if exercise == nil {
			st.skip("cardio_exercise_logs", fmt.Sprintf("legacy cardio log references unknown exercise %q", rec.ExerciseName))
			continue
		}

		seriesNumber, err := s.nextCardioSeries(ctx, tx, st, exercise.ExerciseID, workout.WorkoutID, 0)
		if err != nil {
			return err
		}
		log := &model.CardioSeriesLog{
			LogID:           uuid.New(),
			ExerciseID:      exercise.ExerciseID,
			WorkoutID:       workout.WorkoutID,
			SeriesNumber:    seriesNumber,
			DurationSeconds: rec.DurationSeconds,
			DistanceM:       rec.DistanceM,
		}
		if err := s.seriesRepo.CreateCardio(ctx, tx, []*model.CardioSeriesLog{log}); err != nil {
			return err
		}
		st.summary.Created["cardio_series_logs"]++

		if err := s.ensureLegacySlot(ctx, tx, st, workout, exercise, model.LogKindCardio, rec.Notes); err != nil {
			return err
		}
	}

	for _, rec := range doc.LegacyOneExercises {
		workout := st.resolveWorkout(0, rec.WorkoutDate)
		if workout == nil {
			st.skip("one_exercises", fmt.Sprintf("legacy slot references unknown workout date %q", rec.WorkoutDate))
			continue
		}
		exercise, err := s.resolveExercise(ctx, tx, st, rec.ExerciseName)
		if err != nil {
			return err
		}
		if exercise == nil {
			st.skip("one_exercises", fmt.Sprintf("legacy slot references unknown exercise %q", rec.ExerciseName))
			continue
		}

		// The generic-FK content type name is the kind discriminator;
		// an absent or unknown model leaves the slot orphaned.
		kind := model.LogKindNone
		switch rec.ContentTypeModel {
		case "strengthexerciselog", "strength_exercise_log":
			kind = model.LogKindStrength
		case "cardioexerciselog", "cardio_exercise_log":
			kind = model.LogKindCardio
		}
		if err := s.ensureLegacySlot(ctx, tx, st, workout, exercise, kind, ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *transferService) importFeeds(ctx context.Context, tx *gorm.DB, doc *model.Document, st *importState) error {
	for _, rec := range doc.Feeds {
		if rec.URL == "" {
			st.skip("feeds", "feed with empty url")
			continue
		}
		existing, err := s.feedRepo.FindByURL(ctx, tx, rec.URL)
		if errors.Is(err, model.ErrNotFound) {
			feed := &model.Feed{
				FeedID:   uuid.New(),
				Name:     rec.Name,
				URL:      rec.URL,
				Category: rec.Category,
				IsActive: rec.IsActive,
			}
			if err := s.feedRepo.Create(ctx, tx, feed); err != nil {
				return err
			}
			st.summary.Created["feeds"]++
		} else if err != nil {
			return err
		} else {
			existing.Name = rec.Name
			existing.Category = rec.Category
			existing.IsActive = rec.IsActive
			if err := s.feedRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			st.summary.Updated["feeds"]++
		}
	}
	return nil
}

// ensureLegacySlot creates a slot for a legacy log that has no slot
// record of its own, unless the workout already holds a slot for the
// exercise.
func (s *transferService) ensureLegacySlot(ctx context.Context, tx *gorm.DB, st *importState, workout *model.Workout, exercise *model.Exercise, kind model.LogKind, notes string) error {
	slots, err := s.slotRepo.FindByWorkout(ctx, tx, workout.WorkoutID)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.ExerciseID == exercise.ExerciseID {
			if slot.LogKind != kind && kind != model.LogKindNone {
				slot.LogKind = kind
				if err := s.slotRepo.Update(ctx, tx, slot); err != nil {
					return err
				}
				st.summary.Updated["slots"]++
			}
			return nil
		}
	}

	position := st.slotPositions[workout.WorkoutID]
	for _, slot := range slots {
		if slot.Position > position {
			position = slot.Position
		}
	}
	position++
	st.slotPositions[workout.WorkoutID] = position

	slot := &model.Slot{
		SlotID:     uuid.New(),
		WorkoutID:  workout.WorkoutID,
		Position:   position,
		ExerciseID: exercise.ExerciseID,
		LogKind:    kind,
		Notes:      notes,
	}
	if err := s.slotRepo.Create(ctx, tx, slot); err != nil {
		return err
	}
	st.summary.Created["slots"]++
	return nil
}

func (s *transferService) resolveExercise(ctx context.Context, tx *gorm.DB, st *importState, name string) (*model.Exercise, error) {
	if name == "" {
		return nil, nil
	}
	if ex, ok := st.exercisesByName[name]; ok {
		return ex, nil
	}
	ex, err := s.exerciseRepo.FindByName(ctx, tx, name)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	st.exercisesByName[name] = ex
	return ex, nil
}

func (s *transferService) nextStrengthSeries(ctx context.Context, tx *gorm.DB, st *importState, exerciseID, workoutID uuid.UUID, requested int) (int, error) {
	key := exerciseID.String() + "/" + workoutID.String()
	if _, seen := st.strengthSeries[key]; !seen {
		max, err := s.seriesRepo.MaxStrengthSeriesNumber(ctx, tx, exerciseID, workoutID)
		if err != nil {
			return 0, err
		}
		st.strengthSeries[key] = max
	}
	if requested > st.strengthSeries[key] {
		st.strengthSeries[key] = requested
		return requested, nil
	}
	st.strengthSeries[key]++
	return st.strengthSeries[key], nil
}

func (s *transferService) nextCardioSeries(ctx context.Context, tx *gorm.DB, st *importState, exerciseID, workoutID uuid.UUID, requested int) (int, error) {
	key := exerciseID.String() + "/" + workoutID.String()
	if _, seen := st.cardioSeries[key]; !seen {
		max, err := s.seriesRepo.MaxCardioSeriesNumber(ctx, tx, exerciseID, workoutID)
		if err != nil {
			return 0, err
		}
		st.cardioSeries[key] = max
	}
	if requested > st.cardioSeries[key] {
		st.cardioSeries[key] = requested
		return requested, nil
	}
	st.cardioSeries[key]++
	return st.cardioSeries[key], nil
}

func (st *importState) resolveWorkout(localID int64, date string) *model.Workout {
	if localID != 0 {
		if w, ok := st.workoutsByLocal[localID]; ok {
			return w
		}
	}
	if date != "" {
		if w, ok := st.workoutsByDate[date]; ok {
			return w
		}
	}
	return nil
}

func (st *importState) skip(class, detail string) {
	st.summary.Skipped[class]++
	st.summary.Warnings = append(st.summary.Warnings, detail)
}

func (st *importState) warn(detail string) {
	st.summary.Warnings = append(st.summary.Warnings, detail)
}
