package memberships

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

func (r *PostgresRepository) Create(ctx context.Context, m *models.CommunityMembership) (*models.CommunityMembership, error) {

	query :=
		`INSERT INTO community_memberships (user_id, world_id, role, reputation)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, joined_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.UserID, m.WorldID, m.Role, m.Reputation).Scan(&m.ID, &m.JoinedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) ListByWorld(ctx context.Context, worldID string) ([]*models.CommunityMembership, error) {
	query :=
		`SELECT id, user_id, world_id, role, reputation, joined_at, updated_at
		 FROM community_memberships
		 WHERE world_id = $1
		 ORDER BY joined_at DESC
		 `

	return r.queryMemberships(ctx, query, worldID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.CommunityMembership, error) {
	query :=
		`SELECT id, user_id, world_id, role, reputation, joined_at, updated_at
		 FROM community_memberships
		 WHERE user_id = $1
		 ORDER BY joined_at DESC
		 `

	return r.queryMemberships(ctx, query, userID)
}

func (r *PostgresRepository) ListFacets(ctx context.Context, userID string) ([]models.MembershipFacet, error) {
	query :=
		`SELECT w.name, w.description, m.role, m.reputation, m.joined_at
		 FROM community_memberships m
		 JOIN living_worlds w ON w.id = m.world_id
		 WHERE m.user_id = $1
		 ORDER BY m.joined_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.MembershipFacet
	for rows.Next() {
		var f models.MembershipFacet
		if err := rows.Scan(&f.WorldName, &f.WorldDescription, &f.Role,
			&f.Reputation, &f.JoinedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) queryMemberships(ctx context.Context, query string, args ...any) ([]*models.CommunityMembership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.CommunityMembership
	for rows.Next() {
		m := &models.CommunityMembership{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.WorldID, &m.Role,
			&m.Reputation, &m.JoinedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
