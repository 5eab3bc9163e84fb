package closure

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/closure"
)

type Handler struct {
	svc *closure.Service
}

func NewHandler(svc *closure.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/week", h.week)
	r.Get("/{id}/transactions", h.listTransactions)
}

type createClosureRequest struct {
	TotalReceived  int64       `json:"total_received"`
	TotalDebts     int64       `json:"total_debts"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        time.Time   `json:"end_date"`
	TransactionIDs []uuid.UUID `json:"transaction_ids"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		http.Error(w, "start_date and end_date are required", http.StatusBadRequest)
		return
	}

	if req.EndDate.Before(req.StartDate) {
		http.Error(w, "end_date must not precede start_date", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), closure.CreateParams{
		TotalReceived:  req.TotalReceived,
		TotalDebts:     req.TotalDebts,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TransactionIDs: req.TransactionIDs,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	closures, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(closures)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	txs, err := h.svc.Transactions(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTransactionResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// week serves the current open settlement window: its bounds, the open
// transactions within it and the candidate totals for the next closure.
func (h *Handler) week(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Week(r.Context(), time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toWeekResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
