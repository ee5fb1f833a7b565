package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-dashboard/internal/models"
)

type recordingDB struct {
	sql      []string
	args     [][]any
	queryErr error
}

func (d *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.sql = append(d.sql, sql)
	d.args = append(d.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (d *recordingDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	d.sql = append(d.sql, sql)
	d.args = append(d.args, args)
	return nil, d.queryErr
}

func TestCreateActionLog(t *testing.T) {
	db := &recordingDB{}
	repo := NewAdminActionLogRepository(db)
	ip := "10.0.0.1"

	err := repo.CreateActionLog(context.Background(), &models.AdminActionLog{
		AdminUserID: "u-1",
		ActionType:  "approve",
		TargetType:  "transaction",
		TargetID:    "TRX-001",
		Description: "Approved transaction TRX-001",
		IPAddress:   &ip,
	})
	require.NoError(t, err)
	require.Len(t, db.args, 1)
	assert.Contains(t, db.sql[0], "INSERT INTO admin_action_logs")
	assert.Equal(t, []any{"u-1", "approve", "transaction", "TRX-001", "Approved transaction TRX-001", &ip}, db.args[0])
}

func TestCreateActionLogRequiresTypes(t *testing.T) {
	db := &recordingDB{}
	err := NewAdminActionLogRepository(db).CreateActionLog(context.Background(), &models.AdminActionLog{ActionType: "create"})
	assert.Error(t, err)
	assert.Empty(t, db.sql)
}

func TestListActionLogsClampsLimit(t *testing.T) {
	db := &recordingDB{queryErr: errors.New("down")}
	repo := NewAdminActionLogRepository(db)

	_, err := repo.ListActionLogs(context.Background(), ActionLogFilter{TargetType: "recipient", Limit: 5000})
	assert.EqualError(t, err, "down")
	assert.Equal(t, []any{"recipient", "", DefaultListLimit}, db.args[0])
}
