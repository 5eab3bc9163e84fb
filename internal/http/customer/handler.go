package customer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/customer"
	"github.com/lmonteiro/pindureta/internal/reminder"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

type Handler struct {
	svc       *customer.Service
	txs       *transaction.Service
	reminders *reminder.Service
}

func NewHandler(svc *customer.Service, txs *transaction.Service, reminders *reminder.Service) *Handler {
	return &Handler{svc: svc, txs: txs, reminders: reminders}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}/transactions", h.listTransactions)
	r.Post("/{id}/reminder", h.remind)
	r.Delete("/{id}", h.delete)
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), customer.CreateParams{
		Name:  req.Name,
		Phone: req.Phone,
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
	customers, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(customers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	txs, err := h.txs.ListByCustomer(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTransactionResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reminderResponse struct {
	Message string `json:"message"`
}

// remind builds a collection message for the customer. Text generation
// never fails outward; at worst the response carries the static fallback.
func (h *Handler) remind(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	txs, err := h.txs.ListByCustomer(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	msg := h.reminders.Message(r.Context(), reminder.Params{
		CustomerName: c.Name,
		Outstanding:  c.Balance,
		RecentDebts:  recentDebts(txs),
	})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(reminderResponse{Message: msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// recentDebts picks up to three of the newest debt entries for prompt
// context. Payments are not mentioned in the reminder.
func recentDebts(txs []*transaction.Transaction) []reminder.Debt {
	var debts []reminder.Debt

	for _, tx := range txs {
		if tx.Amount <= 0 {
			continue
		}

		debts = append(debts, reminder.Debt{
			Description: tx.Description,
			Amount:      tx.Amount,
		})
		if len(debts) == 3 {
			break
		}
	}

	return debts
}
