package worlds

import (
	"context"
	"database/sql"
	"encoding/json"
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

func marshalThemeData(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	return json.Marshal(m)
}

func (r *PostgresRepository) Create(ctx context.Context, world *models.LivingWorld) (*models.LivingWorld, error) {

	themeData, err := marshalThemeData(world.ThemeData)
	if err != nil {
		return nil, fmt.Errorf("theme data: %w", err)
	}

	query :=
		`INSERT INTO living_worlds (name, description, category, theme_data, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		world.Name, world.Description, world.Category, themeData, world.OwnerID).
		Scan(&world.ID, &world.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return world, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.LivingWorld, error) {
	query :=
		`SELECT id, name, description, category, theme_data, owner_id, created_at, updated_at
		 FROM living_worlds
		 WHERE id = $1
		 `

	world := &models.LivingWorld{}
	var themeData []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&world.ID, &world.Name, &world.Description, &world.Category,
		&themeData, &world.OwnerID, &world.CreatedAt, &world.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(themeData, &world.ThemeData); err != nil {
		return nil, fmt.Errorf("theme data: %w", err)
	}

	return world, nil
}

func (r *PostgresRepository) List(ctx context.Context, category models.WorldCategory) ([]*models.LivingWorld, error) {
	query :=
		`SELECT id, name, description, category, theme_data, owner_id, created_at, updated_at
		 FROM living_worlds
		 WHERE ($1 = '' OR category = $1)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.LivingWorld
	for rows.Next() {
		world := &models.LivingWorld{}
		var themeData []byte
		if err := rows.Scan(
			&world.ID, &world.Name, &world.Description, &world.Category,
			&themeData, &world.OwnerID, &world.CreatedAt, &world.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(themeData, &world.ThemeData); err != nil {
			return nil, fmt.Errorf("theme data: %w", err)
		}
		result = append(result, world)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update changes the mutable world fields only. Name and owner are immutable
// after creation.
func (r *PostgresRepository) Update(ctx context.Context, world *models.LivingWorld) error {

	themeData, err := marshalThemeData(world.ThemeData)
	if err != nil {
		return fmt.Errorf("theme data: %w", err)
	}

	query :=
		`UPDATE living_worlds
		 SET description = $2, theme_data = $3, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, world.ID, world.Description, themeData)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM living_worlds WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
