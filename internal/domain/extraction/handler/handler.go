// Package handler exposes the statement extraction HTTP endpoints. Uploaded
// documents are staged in the upload directory for the duration of the
// request and removed before the response is written; a cron sweep catches
// anything a crashed request leaves behind.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	authhandler "github.com/expense-exterminator/backend/internal/domain/auth/handler"
	"github.com/expense-exterminator/backend/internal/domain/extraction/acquirer"
	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
	extraction "github.com/expense-exterminator/backend/internal/domain/extraction/service"
	"github.com/expense-exterminator/backend/internal/domain/preferences"
	txservice "github.com/expense-exterminator/backend/internal/domain/transactions/service"
	"github.com/expense-exterminator/backend/internal/server/respond"
	"github.com/expense-exterminator/backend/pkg/storage"
)

// ExtractionHandler implements the statement extraction HTTP endpoints.
type ExtractionHandler struct {
	service  *extraction.Service
	importer *txservice.Service
	prefs    preferences.Repository
	store    storage.Store
	maxSize  int64
	logger   *slog.Logger
}

// NewExtractionHandler constructs a new handler.
func NewExtractionHandler(svc *extraction.Service, importer *txservice.Service, prefs preferences.Repository, store storage.Store, maxSize int64, logger *slog.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		service:  svc,
		importer: importer,
		prefs:    prefs,
		store:    store,
		maxSize:  maxSize,
		logger:   logger,
	}
}

// Providers handles GET /api/statements/providers.
func (h *ExtractionHandler) Providers(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{"providers": h.service.Providers()})
}

// Extract handles POST /api/statements/{provider}. The multipart "file"
// field carries the statement document. With ?import=true the extracted
// records are also stored as the user's transactions.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	path, err := h.stageUpload(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	defer h.store.Remove(path)

	report, err := h.service.ExtractFile(r.Context(), path, provider)
	if err != nil {
		h.writeExtractionError(w, provider, err)
		return
	}

	h.respond(w, r, report)
}

// ExtractSpreadsheet handles POST /api/statements/spreadsheet for CSV and
// XLSX exports.
func (h *ExtractionHandler) ExtractSpreadsheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	report, err := h.service.ExtractSpreadsheet(r.Context(), file, header.Filename)
	if err != nil {
		h.writeExtractionError(w, "spreadsheet", err)
		return
	}

	h.respond(w, r, report)
}

type textRequest struct {
	Text string `json:"text"`
}

// ExtractText handles POST /api/statements/{provider}/text. It runs the
// cascade on raw text, useful for probing provider formats without a
// document.
func (h *ExtractionHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respond.Error(w, http.StatusBadRequest, "text is required")
		return
	}

	report, err := h.service.ExtractText(r.Context(), req.Text, provider)
	if err != nil {
		h.writeExtractionError(w, provider, err)
		return
	}
	respond.JSON(w, http.StatusOK, report)
}

// respond optionally imports the report, then writes it.
func (h *ExtractionHandler) respond(w http.ResponseWriter, r *http.Request, report *extraction.Report) {
	imported := -1
	if r.URL.Query().Get("import") == "true" {
		userID, ok := authhandler.UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication required to import")
			return
		}

		prefs, err := h.prefs.Get(r.Context(), userID)
		if err != nil {
			prefs = preferences.Default(userID)
		}

		imported, err = h.importer.ImportReport(r.Context(), userID, report, txservice.ImportOptions{
			Currency:       prefs.Currency,
			AutoCategorize: prefs.AutoCategorize,
		})
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to import transactions")
			return
		}
	}

	if imported >= 0 {
		respond.JSON(w, http.StatusOK, struct {
			*extraction.Report
			Imported int `json:"imported"`
		}{report, imported})
		return
	}
	respond.JSON(w, http.StatusOK, report)
}

// stageUpload writes the multipart "file" field into the staging store and
// returns the staged path.
func (h *ExtractionHandler) stageUpload(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", errors.New("multipart field \"file\" is required")
	}
	defer file.Close()

	return h.store.Stage(header.Filename, file)
}

// writeExtractionError maps extraction failures onto HTTP statuses: unknown
// providers are client errors, unreadable documents are unprocessable, and
// everything else is a server fault.
func (h *ExtractionHandler) writeExtractionError(w http.ResponseWriter, provider string, err error) {
	var acqErr *acquirer.AcquisitionError
	switch {
	case errors.Is(err, grammar.ErrUnsupportedProvider):
		respond.Error(w, http.StatusBadRequest, fmt.Sprintf("unsupported provider %q", provider))
	case errors.As(err, &acqErr):
		respond.Error(w, http.StatusUnprocessableEntity, "document could not be read: "+acqErr.Error())
	default:
		h.logger.Error("extraction failed", slog.String("provider", provider), slog.Any("error", err))
		respond.Error(w, http.StatusInternalServerError, "extraction failed")
	}
}
