package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fitfolio/internal/middleware"
	"fitfolio/internal/model"
	"fitfolio/internal/service"
	"fitfolio/internal/webutil"
)

type TransferHandler struct {
	transferService service.TransferService
	logger          *slog.Logger
}

func NewTransferHandler(transferService service.TransferService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		logger:          logger.With(slog.String("handler", "transfer")),
	}
}

// Export handles GET /export. The document is served as a download.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	doc, err := h.transferService.Export(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	filename := fmt.Sprintf("fitfolio-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		logger.Error("Failed to stream export", slog.Any("error", err))
	}
}

// Import handles POST /import with the document as the request body.
// A structurally invalid document is rejected before any write.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var doc model.Document
	if r.Body == nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_DOCUMENT", "request body is required", "", model.ErrInvalidInput))
		return
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_DOCUMENT", "request body is not a valid export document", "", model.ErrInvalidInput))
		return
	}

	summary, err := h.transferService.Import(r.Context(), &doc)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}
