// Package handler exposes the transaction HTTP endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	authhandler "github.com/expense-exterminator/backend/internal/domain/auth/handler"
	extraction "github.com/expense-exterminator/backend/internal/domain/extraction/service"
	"github.com/expense-exterminator/backend/internal/domain/preferences"
	"github.com/expense-exterminator/backend/internal/domain/transactions/repository"
	"github.com/expense-exterminator/backend/internal/domain/transactions/service"
	"github.com/expense-exterminator/backend/internal/server/respond"
)

// TransactionHandler implements the transaction HTTP endpoints.
type TransactionHandler struct {
	service *service.Service
	prefs   preferences.Repository
}

// NewTransactionHandler constructs a new handler.
func NewTransactionHandler(svc *service.Service, prefs preferences.Repository) *TransactionHandler {
	return &TransactionHandler{service: svc, prefs: prefs}
}

// List handles GET /api/transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	txs, err := h.service.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []*repository.Transaction{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"total":        len(txs),
	})
}

type createRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Merchant string `json:"merchant"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Category string `json:"category"`
}

// Create handles POST /api/transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid amount")
		return
	}

	tx, err := h.service.Create(r.Context(), userID, service.CreateParams{
		Date:      req.Date,
		Time:      req.Time,
		Merchant:  req.Merchant,
		Direction: req.Type,
		Amount:    amount,
		Currency:  req.Currency,
		Category:  req.Category,
	})
	switch {
	case errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrEmptyMerchant):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "failed to create transaction")
	default:
		respond.JSON(w, http.StatusCreated, tx)
	}
}

// BulkCreate handles POST /api/transactions/bulk. The body is an extraction
// report previously returned by the statements endpoints; its records are
// stored using the caller's preference currency and categorization setting.
func (h *TransactionHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var report extraction.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := h.prefs.Get(r.Context(), userID)
	if err != nil {
		prefs = preferences.Default(userID)
	}

	inserted, err := h.service.ImportReport(r.Context(), userID, &report, service.ImportOptions{
		Currency:       prefs.Currency,
		AutoCategorize: prefs.AutoCategorize,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to store transactions")
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]int{"imported": inserted})
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	err = h.service.Delete(r.Context(), userID, id)
	switch {
	case errors.Is(err, repository.ErrTransactionNotFound):
		respond.Error(w, http.StatusNotFound, "transaction not found")
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "failed to delete transaction")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportCSV handles GET /api/transactions/export.
func (h *TransactionHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := h.service.ExportCSV(r.Context(), userID, w); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to export transactions")
	}
}
