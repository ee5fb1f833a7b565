package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/pkg/utils"
)

type TransactionHandler struct {
	Service *services.TransactionService
	Audit   ActionLogger
}

func NewTransactionHandler(s *services.TransactionService, audit ActionLogger) *TransactionHandler {
	return &TransactionHandler{Service: s, Audit: audit}
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	views, err := h.Service.ListTransactions(r.Context(), services.TransactionQuery{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Window: q.Get("window"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, views)
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetTransaction(r.Context(), models.ID(mux.Vars(r)["id"]))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.CreateTransaction(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionCreate, "transaction", view.Number,
		fmt.Sprintf("Created transaction %s - %d units", view.Number, view.Quantity))
	utils.JSON(w, http.StatusCreated, view)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	var req models.UpdateTransactionRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.UpdateTransaction(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionUpdate, "transaction", view.Number, fmt.Sprintf("Updated transaction %s", view.Number))
	utils.JSON(w, http.StatusOK, view)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	if err := h.Service.DeleteTransaction(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionDelete, "transaction", string(id), fmt.Sprintf("Deleted transaction #%s", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	view, err := h.Service.ApproveTransaction(r.Context(), number)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionApprove, "transaction", number, fmt.Sprintf("Approved transaction %s", number))
	utils.JSON(w, http.StatusOK, view)
}

// RejectTransaction accepts an optional {"notes": "..."} body.
func (h *TransactionHandler) RejectTransaction(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	var req models.RejectTransactionRequest
	if !decodeOptionalJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.RejectTransaction(r.Context(), number, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	description := fmt.Sprintf("Rejected transaction %s", number)
	if req.Notes != "" {
		description += ": " + req.Notes
	}
	logAction(h.Audit, r, ActionReject, "transaction", number, description)
	utils.JSON(w, http.StatusOK, view)
}

func (h *TransactionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), queryBool(r, "refresh"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
