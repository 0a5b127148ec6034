package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/eudaimonia-labs/eudaimonia/internal/logging"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/pinning"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
)

// ExportService tracks user data-export jobs. Requesting an export creates a
// pending record; RunPending drives the status machine
// (pending → in_progress → complete/failed), aggregates the owner's data,
// and pins the resulting JSON blob.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pinner      pinning.Pinner
	logger      logging.Logger
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, p pinning.Pinner, l logging.Logger) *ExportService {
	return &ExportService{db: db, repomanager: m, pinner: p, logger: l.With("module", "export_service")}
}

// Request creates a pending export job for the caller.
func (s *ExportService) Request(ctx context.Context, userID string) (*models.DataExport, error) {
	e := &models.DataExport{UserID: userID, Status: models.ExportPending}
	return s.repomanager.Exports(s.db).Create(ctx, e)
}

// List returns the caller's own export jobs.
func (s *ExportService) List(ctx context.Context, userID string) ([]*models.DataExport, error) {
	return s.repomanager.Exports(s.db).ListByUser(ctx, userID)
}

// exportDocument is the shape of the pinned export blob.
type exportDocument struct {
	User        *models.User                   `json:"user"`
	Memberships []*models.CommunityMembership  `json:"memberships"`
	Posts       []*models.Post                 `json:"posts"`
	Friendships []*models.Friendship           `json:"friendships"`
	Votes       []*models.Vote                 `json:"votes"`
	Profiles    []*models.SmartProfile         `json:"profiles"`
	Credentials []*models.VerifiableCredential `json:"credentials"`
}

// RunPending processes all pending export jobs and reports how many
// completed. A job another runner already claimed is skipped; a pin-store
// failure marks the job failed and processing continues.
func (s *ExportService) RunPending(ctx context.Context) (int, error) {
	repo := s.repomanager.Exports(s.db)

	pending, err := repo.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, job := range pending {
		claimed, err := repo.UpdateStatus(ctx, job.ID, models.ExportPending, models.ExportInProgress, "")
		if err != nil {
			return completed, err
		}
		if !claimed {
			continue
		}

		cid, err := s.runOne(ctx, job)
		if err != nil {
			s.logger.Error(ctx, "export failed", "export_id", job.ID, "error", err.Error())
			if _, err := repo.UpdateStatus(ctx, job.ID, models.ExportInProgress, models.ExportFailed, ""); err != nil {
				return completed, err
			}
			continue
		}

		if _, err := repo.UpdateStatus(ctx, job.ID, models.ExportInProgress, models.ExportComplete, cid); err != nil {
			return completed, err
		}
		completed++
		s.logger.Info(ctx, "export complete", "export_id", job.ID, "cid", cid)
	}

	return completed, nil
}

func (s *ExportService) runOne(ctx context.Context, job *models.DataExport) (string, error) {
	doc, err := s.collect(ctx, job.UserID)
	if err != nil {
		return "", err
	}

	blob, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	cid, err := s.pinner.Put(ctx, blob)
	if err != nil {
		return "", fmt.Errorf("pinning export: %w", err)
	}
	return cid, nil
}

func (s *ExportService) collect(ctx context.Context, userID string) (*exportDocument, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	memberships, err := s.repomanager.Memberships(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.repomanager.Posts(s.db).ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	friendships, err := s.repomanager.Friendships(s.db).ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	votes, err := s.repomanager.Votes(s.db).ListByVoter(ctx, userID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.repomanager.Profiles(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	credentials, err := s.repomanager.Credentials(s.db).ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &exportDocument{
		User:        user,
		Memberships: memberships,
		Posts:       posts,
		Friendships: friendships,
		Votes:       votes,
		Profiles:    profiles,
		Credentials: credentials,
	}, nil
}
