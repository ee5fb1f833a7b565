package handlers

import (
	"context"
	"net/http"
	"strconv"

	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/repositories"
	"subsidy-dashboard/pkg/utils"
)

// ActionLogLister reads the audit trail.
type ActionLogLister interface {
	ListActionLogs(ctx context.Context, filter repositories.ActionLogFilter) ([]models.AdminActionLog, error)
}

type AdminActionLogHandler struct {
	Repo ActionLogLister
}

func NewAdminActionLogHandler(repo ActionLogLister) *AdminActionLogHandler {
	return &AdminActionLogHandler{Repo: repo}
}

// ListActionLogs returns admin action logs, newest first
func (h *AdminActionLogHandler) ListActionLogs(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "Audit log is not configured")
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	logs, err := h.Repo.ListActionLogs(r.Context(), repositories.ActionLogFilter{
		TargetType: q.Get("targetType"),
		TargetID:   q.Get("targetId"),
		Limit:      limit,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve admin action logs")
		return
	}

	// Ensure we return empty array instead of null
	if logs == nil {
		logs = []models.AdminActionLog{}
	}
	utils.JSON(w, http.StatusOK, logs)
}
