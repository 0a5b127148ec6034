package proposals

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {

	query :=
		`INSERT INTO proposals (title, description, world_id, creator_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.WorldID, p.CreatorID).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Proposal, error) {
	query :=
		`SELECT id, title, description, world_id, creator_id, created_at, updated_at
		 FROM proposals
		 WHERE id = $1
		 `

	p := &models.Proposal{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.WorldID, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, worldID string) ([]*models.Proposal, error) {
	query :=
		`SELECT id, title, description, world_id, creator_id, created_at, updated_at
		 FROM proposals
		 WHERE ($1 = '' OR world_id::text = $1)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Proposal
	for rows.Next() {
		p := &models.Proposal{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.WorldID,
			&p.CreatorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
