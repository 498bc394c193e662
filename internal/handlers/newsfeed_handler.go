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

type NewsfeedHandler struct {
	newsfeedService service.NewsfeedService
	fetchService    service.FetchService
	logger          *slog.Logger
}

func NewNewsfeedHandler(newsfeedService service.NewsfeedService, fetchService service.FetchService, logger *slog.Logger) *NewsfeedHandler {
	return &NewsfeedHandler{
		newsfeedService: newsfeedService,
		fetchService:    fetchService,
		logger:          logger.With(slog.String("handler", "newsfeed")),
	}
}

func (h *NewsfeedHandler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.FeedRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	feed, err := h.newsfeedService.CreateFeed(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, feed, logger)
}

func (h *NewsfeedHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	feeds, err := h.newsfeedService.ListFeeds(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, feeds, logger)
}

func (h *NewsfeedHandler) UpdateFeed(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	feedID, err := uuid.Parse(chi.URLParam(r, "feedID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid feed id", "feedID", model.ErrInvalidInput))
		return
	}

	var req model.FeedRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	feed, err := h.newsfeedService.UpdateFeed(r.Context(), feedID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, feed, logger)
}

func (h *NewsfeedHandler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	feedID, err := uuid.Parse(chi.URLParam(r, "feedID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid feed id", "feedID", model.ErrInvalidInput))
		return
	}

	if err := h.newsfeedService.DeleteFeed(r.Context(), feedID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListArticles handles GET /articles?page=N&category=C.
func (h *NewsfeedHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
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
	category := r.URL.Query().Get("category")

	result, err := h.newsfeedService.ListArticles(r.Context(), page, category)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// StartFetch handles POST /fetch. It queues a background run and
// returns 202 with the task record to poll.
func (h *NewsfeedHandler) StartFetch(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	task, err := h.fetchService.StartFetch(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusAccepted, task, logger)
}

// GetFetchTask handles GET /fetch/{taskID}.
func (h *NewsfeedHandler) GetFetchTask(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid task id", "taskID", model.ErrInvalidInput))
		return
	}

	task, err := h.fetchService.GetTask(r.Context(), taskID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, task, logger)
}
