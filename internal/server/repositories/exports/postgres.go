package exports

import (
	"context"
	"fmt"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/dbx"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.DataExport) (*models.DataExport, error) {

	query :=
		`INSERT INTO data_exports (user_id, status)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, e.UserID, e.Status).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.DataExport, error) {
	query :=
		`SELECT id, user_id, status, cid, created_at, updated_at FROM data_exports
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	return r.queryExports(ctx, query, userID)
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*models.DataExport, error) {
	query :=
		`SELECT id, user_id, status, cid, created_at, updated_at FROM data_exports
		 WHERE status = 'pending'
		 ORDER BY created_at
		 `

	return r.queryExports(ctx, query)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to models.ExportStatus, cid string) (bool, error) {
	query :=
		`UPDATE data_exports
		 SET status = $3, cid = $4, updated_at = now()
		 WHERE id = $1 AND status = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, from, to, cid)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) queryExports(ctx context.Context, query string, args ...any) ([]*models.DataExport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.DataExport
	for rows.Next() {
		e := &models.DataExport{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Status, &e.CID,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
