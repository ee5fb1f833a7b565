package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/pkg/utils"
)

type RecipientHandler struct {
	Service *services.RecipientService
	Audit   ActionLogger
}

func NewRecipientHandler(s *services.RecipientService, audit ActionLogger) *RecipientHandler {
	return &RecipientHandler{Service: s, Audit: audit}
}

func (h *RecipientHandler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	views, err := h.Service.ListRecipients(r.Context(), services.RecipientQuery{
		Search:         q.Get("search"),
		Status:         q.Get("status"),
		District:       q.Get("district"),
		Classification: q.Get("classification"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, views)
}

func (h *RecipientHandler) GetRecipient(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetRecipient(r.Context(), models.ID(mux.Vars(r)["id"]))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

func (h *RecipientHandler) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecipientRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.CreateRecipient(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionCreate, "recipient", string(view.ID),
		fmt.Sprintf("Created recipient %s (%s)", view.Name, view.NationalID))
	utils.JSON(w, http.StatusCreated, view)
}

func (h *RecipientHandler) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	var req models.UpdateRecipientRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.UpdateRecipient(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionUpdate, "recipient", string(id), fmt.Sprintf("Updated recipient %s", view.Name))
	utils.JSON(w, http.StatusOK, view)
}

func (h *RecipientHandler) DeleteRecipient(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	if err := h.Service.DeleteRecipient(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionDelete, "recipient", string(id), fmt.Sprintf("Deleted recipient #%s", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipientHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), queryBool(r, "refresh"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
