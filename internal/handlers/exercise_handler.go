package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
	"fitfolio/internal/service"
	"fitfolio/internal/webutil"
)

type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          *slog.Logger
}

func NewExerciseHandler(exerciseService service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		logger:          logger.With(slog.String("handler", "exercise")),
	}
}

func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.PostExerciseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	exercise, err := h.exerciseService.CreateExercise(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, exercise, logger)
}

func (h *ExerciseHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	exerciseID, err := uuid.Parse(chi.URLParam(r, "exerciseID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid exercise id", "exerciseID", model.ErrInvalidInput))
		return
	}

	exercise, err := h.exerciseService.GetExercise(r.Context(), exerciseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, exercise, logger)
}

func (h *ExerciseHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	// names=true returns the lightweight autocomplete projection.
	if r.URL.Query().Get("names") == "true" {
		names, err := h.exerciseService.ListExerciseNames(r.Context())
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, names, logger)
		return
	}

	exercises, err := h.exerciseService.ListExercises(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, exercises, logger)
}

func (h *ExerciseHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	exerciseID, err := uuid.Parse(chi.URLParam(r, "exerciseID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid exercise id", "exerciseID", model.ErrInvalidInput))
		return
	}

	var req model.PatchExerciseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(r.Context(), exerciseID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, exercise, logger)
}

func (h *ExerciseHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	exerciseID, err := uuid.Parse(chi.URLParam(r, "exerciseID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid exercise id", "exerciseID", model.ErrInvalidInput))
		return
	}

	if err := h.exerciseService.DeleteExercise(r.Context(), exerciseID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ExerciseHandler) ListWorkoutTypes(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	types, err := h.exerciseService.ListWorkoutTypes(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, types, logger)
}

func (h *ExerciseHandler) ListMuscleGroups(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	groups, err := h.exerciseService.ListMuscleGroups(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, groups, logger)
}

func (h *ExerciseHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	items, err := h.exerciseService.ListEquipment(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}
