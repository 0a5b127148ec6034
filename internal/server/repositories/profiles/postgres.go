package profiles

import (
	"context"
	"database/sql"
	"errors"
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

// nullableDID maps an empty DID to NULL so that the unique index only binds
// profiles that actually carry an identifier.
func nullableDID(did string) any {
	if did == "" {
		return nil
	}
	return did
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.SmartProfile) (*models.SmartProfile, error) {

	query :=
		`INSERT INTO smart_profiles (user_id, name, did)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, nullableDID(p.DID)).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.SmartProfile, error) {
	query :=
		`SELECT id, user_id, name, did, created_at, updated_at FROM smart_profiles
		 WHERE id = $1
		 `

	p := &models.SmartProfile{}
	var did sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &did, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.DID = did.String

	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.SmartProfile, error) {
	query :=
		`SELECT id, user_id, name, did, created_at, updated_at FROM smart_profiles
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SmartProfile
	for rows.Next() {
		p := &models.SmartProfile{}
		var did sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &did,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.DID = did.String
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
