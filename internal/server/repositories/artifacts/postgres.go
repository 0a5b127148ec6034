package artifacts

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.ResearchArtifact) (*models.ResearchArtifact, error) {

	query :=
		`INSERT INTO research_artifacts (title, abstract, artifact_type, cid, author_id, world_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		a.Title, a.Abstract, a.Type, a.CID, a.AuthorID, a.WorldID).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.ResearchArtifact, error) {
	query :=
		`SELECT id, title, abstract, artifact_type, cid, author_id, world_id, created_at, updated_at
		 FROM research_artifacts
		 WHERE id = $1
		 `

	a := &models.ResearchArtifact{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Abstract, &a.Type, &a.CID,
		&a.AuthorID, &a.WorldID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context, worldID string) ([]*models.ResearchArtifact, error) {
	query :=
		`SELECT id, title, abstract, artifact_type, cid, author_id, world_id, created_at, updated_at
		 FROM research_artifacts
		 WHERE ($1 = '' OR world_id::text = $1)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ResearchArtifact
	for rows.Next() {
		a := &models.ResearchArtifact{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Abstract, &a.Type, &a.CID,
			&a.AuthorID, &a.WorldID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
