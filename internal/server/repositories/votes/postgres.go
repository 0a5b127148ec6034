package votes

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

func (r *PostgresRepository) Create(ctx context.Context, v *models.Vote) (*models.Vote, error) {

	query :=
		`INSERT INTO votes (proposal_id, voter_id, choice)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		v.ProposalID, v.VoterID, v.Choice).Scan(&v.ID, &v.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *PostgresRepository) ListByProposal(ctx context.Context, proposalID string) ([]*models.Vote, error) {
	query :=
		`SELECT id, proposal_id, voter_id, choice, created_at FROM votes
		 WHERE proposal_id = $1
		 ORDER BY created_at DESC
		 `

	return r.queryVotes(ctx, query, proposalID)
}

func (r *PostgresRepository) ListByVoter(ctx context.Context, voterID string) ([]*models.Vote, error) {
	query :=
		`SELECT id, proposal_id, voter_id, choice, created_at FROM votes
		 WHERE voter_id = $1
		 ORDER BY created_at DESC
		 `

	return r.queryVotes(ctx, query, voterID)
}

func (r *PostgresRepository) Tally(ctx context.Context, proposalID string) (*models.Tally, error) {
	query :=
		`SELECT choice, count(*) FROM votes
		 WHERE proposal_id = $1
		 GROUP BY choice
		 `

	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tally := &models.Tally{}
	for rows.Next() {
		var choice models.VoteChoice
		var count int
		if err := rows.Scan(&choice, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		switch choice {
		case models.VoteAgree:
			tally.Agree = count
		case models.VoteDisagree:
			tally.Disagree = count
		case models.VoteAbstain:
			tally.Abstain = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tally, nil
}

func (r *PostgresRepository) queryVotes(ctx context.Context, query string, args ...any) ([]*models.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Vote
	for rows.Next() {
		v := &models.Vote{}
		if err := rows.Scan(&v.ID, &v.ProposalID, &v.VoterID, &v.Choice, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
