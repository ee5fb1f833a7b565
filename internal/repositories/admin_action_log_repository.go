package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"subsidy-dashboard/internal/models"
)

// DefaultListLimit bounds ListActionLogs when no limit is given.
const DefaultListLimit = 200

// DBTX is the subset of pgxpool.Pool used by the repository.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ DBTX = (*pgxpool.Pool)(nil)

type AdminActionLogRepository struct {
	DB DBTX
}

func NewAdminActionLogRepository(db DBTX) *AdminActionLogRepository {
	return &AdminActionLogRepository{DB: db}
}

// CreateActionLog records an admin action
func (r *AdminActionLogRepository) CreateActionLog(ctx context.Context, entry *models.AdminActionLog) error {
	if entry.ActionType == "" || entry.TargetType == "" {
		return errors.New("action type and target type are required")
	}

	query := `
		INSERT INTO admin_action_logs (
			admin_user_id, action_type, target_type, target_id,
			description, ip_address, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.DB.Exec(ctx, query,
		entry.AdminUserID, entry.ActionType, entry.TargetType, entry.TargetID,
		entry.Description, entry.IPAddress,
	)

	return err
}

// ActionLogFilter narrows ListActionLogs. Empty fields match everything.
type ActionLogFilter struct {
	TargetType string
	TargetID   string
	Limit      int
}

// ListActionLogs returns the newest action logs first
func (r *AdminActionLogRepository) ListActionLogs(ctx context.Context, filter ActionLogFilter) ([]models.AdminActionLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, admin_user_id, action_type, target_type, target_id,
		       description, ip_address, created_at
		FROM admin_action_logs
		WHERE ($1 = '' OR target_type = $1)
		  AND ($2 = '' OR target_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.DB.Query(ctx, query, filter.TargetType, filter.TargetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.AdminActionLog{}
	for rows.Next() {
		var entry models.AdminActionLog
		if err := rows.Scan(
			&entry.ID, &entry.AdminUserID, &entry.ActionType, &entry.TargetType,
			&entry.TargetID, &entry.Description, &entry.IPAddress, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
