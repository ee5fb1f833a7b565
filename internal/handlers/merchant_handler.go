package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"subsidy-dashboard/internal/mapview"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/pkg/utils"
)

type MerchantHandler struct {
	Service *services.MerchantService
	Audit   ActionLogger
}

func NewMerchantHandler(s *services.MerchantService, audit ActionLogger) *MerchantHandler {
	return &MerchantHandler{Service: s, Audit: audit}
}

func merchantQuery(r *http.Request) services.MerchantQuery {
	q := r.URL.Query()
	return services.MerchantQuery{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		District: q.Get("district"),
	}
}

func (h *MerchantHandler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.ListMerchants(r.Context(), merchantQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, views)
}

func (h *MerchantHandler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetMerchant(r.Context(), models.ID(mux.Vars(r)["id"]))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

func (h *MerchantHandler) MerchantProducts(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Service.MerchantProducts(r.Context(), models.ID(mux.Vars(r)["id"]))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, lines)
}

// MapMarkers returns the marker layer for the merchant map.
func (h *MerchantHandler) MapMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := h.Service.MapMarkers(r.Context(), merchantQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	if layer, ok := h.Service.Map.(*mapview.Layer); ok {
		utils.JSON(w, http.StatusOK, layer.Snapshot())
		return
	}
	utils.JSON(w, http.StatusOK, mapview.Snapshot{
		Center:  mapview.Center(markers),
		Zoom:    mapview.DefaultZoom,
		Markers: markers,
	})
}

func (h *MerchantHandler) CreateMerchant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMerchantRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.CreateMerchant(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionCreate, "merchant", string(view.ID), fmt.Sprintf("Created merchant %s", view.Name))
	utils.JSON(w, http.StatusCreated, view)
}

func (h *MerchantHandler) UpdateMerchant(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	var req models.UpdateMerchantRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.UpdateMerchant(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionUpdate, "merchant", string(id), fmt.Sprintf("Updated merchant %s", view.Name))
	utils.JSON(w, http.StatusOK, view)
}

func (h *MerchantHandler) DeleteMerchant(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	if err := h.Service.DeleteMerchant(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionDelete, "merchant", string(id), fmt.Sprintf("Deleted merchant #%s", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *MerchantHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), queryBool(r, "refresh"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
