package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
	"fitfolio/internal/service"
	"fitfolio/internal/webutil"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	logger         *slog.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		logger:         logger.With(slog.String("handler", "workout")),
	}
}

// ListWorkouts handles GET /workouts?page=N.
func (h *WorkoutHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_PAGE", "page must be a positive integer", "page", model.ErrInvalidInput))
			return
		}
		page = parsed
	}

	result, err := h.workoutService.ListWorkouts(r.Context(), page)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// GetWorkout handles GET /workouts/{workoutID}.
func (h *WorkoutHandler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	workoutID, err := uuid.Parse(chi.URLParam(r, "workoutID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid workout id", "workoutID", model.ErrInvalidInput))
		return
	}

	result, err := h.workoutService.GetWorkout(r.Context(), workoutID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// GetLastWorkout handles GET /workouts/last?type=push. It prefills the
// add-workout form, so an unknown type still returns the catalog.
func (h *WorkoutHandler) GetLastWorkout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	typeName := r.URL.Query().Get("type")
	if typeName == "" {
		webutil.HandleError(w, logger, model.NewAppError("MISSING_TYPE", "query parameter type is required", "type", model.ErrInvalidInput))
		return
	}

	result, err := h.workoutService.GetLastWorkoutByType(r.Context(), typeName)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// UpsertWorkout handles POST /workouts.
func (h *WorkoutHandler) UpsertWorkout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.UpsertWorkoutRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.workoutService.UpsertWorkout(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// UpdateWorkout handles PUT /workouts/{workoutID}. The path id picks
// the workout; POST resolves by (date, type) instead.
func (h *WorkoutHandler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	workoutID, err := uuid.Parse(chi.URLParam(r, "workoutID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid workout id", "workoutID", model.ErrInvalidInput))
		return
	}

	var req model.UpsertWorkoutRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.workoutService.ReplaceWorkout(r.Context(), workoutID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// DeleteWorkout handles DELETE /workouts/{workoutID}.
func (h *WorkoutHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	workoutID, err := uuid.Parse(chi.URLParam(r, "workoutID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid workout id", "workoutID", model.ErrInvalidInput))
		return
	}

	if err := h.workoutService.DeleteWorkout(r.Context(), workoutID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
