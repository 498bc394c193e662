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

type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *slog.Logger
}

func NewPortfolioHandler(portfolioService service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		logger:           logger.With(slog.String("handler", "portfolio")),
	}
}

func (h *PortfolioHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ProjectRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	project, err := h.portfolioService.CreateProject(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, project, logger)
}

func (h *PortfolioHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid project id", "projectID", model.ErrInvalidInput))
		return
	}

	project, err := h.portfolioService.GetProject(r.Context(), projectID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, project, logger)
}

func (h *PortfolioHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	projects, err := h.portfolioService.ListProjects(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, projects, logger)
}

func (h *PortfolioHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid project id", "projectID", model.ErrInvalidInput))
		return
	}

	var req model.ProjectRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	project, err := h.portfolioService.UpdateProject(r.Context(), projectID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, project, logger)
}

func (h *PortfolioHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid project id", "projectID", model.ErrInvalidInput))
		return
	}

	if err := h.portfolioService.DeleteProject(r.Context(), projectID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PortfolioHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.TestimonialRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	testimonial, err := h.portfolioService.CreateTestimonial(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, testimonial, logger)
}

func (h *PortfolioHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	testimonials, err := h.portfolioService.ListTestimonials(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, testimonials, logger)
}

func (h *PortfolioHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	testimonialID, err := uuid.Parse(chi.URLParam(r, "testimonialID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid testimonial id", "testimonialID", model.ErrInvalidInput))
		return
	}

	var req model.TestimonialRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	testimonial, err := h.portfolioService.UpdateTestimonial(r.Context(), testimonialID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, testimonial, logger)
}

func (h *PortfolioHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	testimonialID, err := uuid.Parse(chi.URLParam(r, "testimonialID"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "invalid testimonial id", "testimonialID", model.ErrInvalidInput))
		return
	}

	if err := h.portfolioService.DeleteTestimonial(r.Context(), testimonialID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PortfolioHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	tags, err := h.portfolioService.ListTags(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, tags, logger)
}
