package friendships

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

func (r *PostgresRepository) Create(ctx context.Context, f *models.Friendship) (*models.Friendship, error) {

	query :=
		`INSERT INTO friendships (user1_id, user2_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		f.User1ID, f.User2ID, f.Status).Scan(&f.ID, &f.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return f, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Friendship, error) {
	query :=
		`SELECT id, user1_id, user2_id, status, created_at, updated_at FROM friendships
		 WHERE id = $1
		 `

	f := &models.Friendship{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.User1ID, &f.User2ID, &f.Status, &f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return f, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.FriendshipStatus) (bool, error) {
	query :=
		`UPDATE friendships
		 SET status = $2, updated_at = now()
		 WHERE id = $1 AND status = 'pending'
		 `

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Friendship, error) {
	query :=
		`SELECT id, user1_id, user2_id, status, created_at, updated_at FROM friendships
		 WHERE user1_id = $1 OR user2_id = $1
		 ORDER BY created_at DESC
		 `

	return r.queryFriendships(ctx, query, userID)
}

func (r *PostgresRepository) ListPendingFor(ctx context.Context, userID string) ([]*models.Friendship, error) {
	query :=
		`SELECT id, user1_id, user2_id, status, created_at, updated_at FROM friendships
		 WHERE user2_id = $1 AND status = 'pending'
		 ORDER BY created_at DESC
		 `

	return r.queryFriendships(ctx, query, userID)
}

func (r *PostgresRepository) ListAcceptedFor(ctx context.Context, userID string) ([]*models.Friendship, error) {
	query :=
		`SELECT id, user1_id, user2_id, status, created_at, updated_at FROM friendships
		 WHERE (user1_id = $1 OR user2_id = $1) AND status = 'accepted'
		 ORDER BY created_at DESC
		 `

	return r.queryFriendships(ctx, query, userID)
}

func (r *PostgresRepository) queryFriendships(ctx context.Context, query string, args ...any) ([]*models.Friendship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Friendship
	for rows.Next() {
		f := &models.Friendship{}
		if err := rows.Scan(&f.ID, &f.User1ID, &f.User2ID, &f.Status,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
