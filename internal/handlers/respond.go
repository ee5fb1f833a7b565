package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/middleware"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
	"subsidy-dashboard/pkg/utils"
)

// ActionLogger records successful mutations.
type ActionLogger interface {
	CreateActionLog(ctx context.Context, entry *models.AdminActionLog) error
}

// respondError maps a service error to an HTTP status and writes {"error": message}.
func respondError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	utils.RespondError(w, status, message)
}

func errorStatus(err error) (int, string) {
	var apiErr *api.Error
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrOperationInFlight):
		return http.StatusConflict, "Permintaan yang sama masih diproses"
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
			return apiErr.Status, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func decodeJSON(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

// decodeOptionalJSON accepts an empty body.
func decodeOptionalJSON(r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	return err == nil || errors.Is(err, io.EOF)
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

// logAction writes an audit entry without failing the request.
func logAction(logger ActionLogger, r *http.Request, action, targetType, targetID, description string) {
	if logger == nil {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ip := middleware.ClientIP(r)
	entry := &models.AdminActionLog{
		AdminUserID: userID,
		ActionType:  action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		IPAddress:   &ip,
	}
	if err := logger.CreateActionLog(context.WithoutCancel(r.Context()), entry); err != nil {
		log.Printf("[AuditLog] Failed to record %s %s/%s: %v", action, targetType, targetID, err)
	}
}

// Audit action types.
const (
	ActionCreate  = "CREATE"
	ActionUpdate  = "UPDATE"
	ActionDelete  = "DELETE"
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)
