package credentials

import (
	"context"
	"encoding/json"
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

func (r *PostgresRepository) Create(ctx context.Context, c *models.VerifiableCredential) (*models.VerifiableCredential, error) {

	payload := c.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	query :=
		`INSERT INTO verifiable_credentials (profile_id, payload, issuer)
		 VALUES ($1, $2, $3)
		 RETURNING id, issued_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		c.ProfileID, data, c.Issuer).Scan(&c.ID, &c.IssuedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.VerifiableCredential, error) {
	query :=
		`SELECT c.id, c.profile_id, c.payload, c.issuer, c.issued_at
		 FROM verifiable_credentials c
		 JOIN smart_profiles p ON p.id = c.profile_id
		 WHERE p.user_id = $1
		 ORDER BY c.issued_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.VerifiableCredential
	for rows.Next() {
		c := &models.VerifiableCredential{}
		var payload []byte
		if err := rows.Scan(&c.ID, &c.ProfileID, &payload, &c.Issuer, &c.IssuedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(payload, &c.Payload); err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
