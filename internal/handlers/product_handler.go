package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/pkg/utils"
)

type ProductHandler struct {
	Service *services.ProductService
	Audit   ActionLogger
}

func NewProductHandler(s *services.ProductService, audit ActionLogger) *ProductHandler {
	return &ProductHandler{Service: s, Audit: audit}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	views, err := h.Service.ListProducts(r.Context(), services.ProductQuery{
		Search: q.Get("search"),
		Type:   q.Get("type"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, views)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetProduct(r.Context(), models.ID(mux.Vars(r)["id"]))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.CreateProduct(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionCreate, "product", string(view.ID), fmt.Sprintf("Created product %s", view.Name))
	utils.JSON(w, http.StatusCreated, view)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	var req models.UpdateProductRequest
	if !decodeJSON(r, &req) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Service.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionUpdate, "product", string(id), fmt.Sprintf("Updated product %s", view.Name))
	utils.JSON(w, http.StatusOK, view)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := models.ID(mux.Vars(r)["id"])
	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logAction(h.Audit, r, ActionDelete, "product", string(id), fmt.Sprintf("Deleted product #%s", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), queryBool(r, "refresh"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
