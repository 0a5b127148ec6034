package friendships

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+friendships\s*\(user1_id,\s*user2_id,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("f-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("u-1", "u-2", models.FriendshipPending).
		WillReturnRows(rows)

	f := &models.Friendship{User1ID: "u-1", User2ID: "u-2", Status: models.FriendshipPending}
	got, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "f-1" {
		t.Fatalf("unexpected friendship: %+v", got)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+friendships`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Friendship{User1ID: "u-1", User2ID: "u-2", Status: models.FriendshipPending})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user1_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

// The transition guard only matches rows still pending, so a raced or
// already-settled friendship reports no rows updated.
func TestUpdateStatus_OnlyPendingRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+friendships\s+SET\s+status\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+status\s*=\s*'pending'\s*$`

	mock.ExpectExec(q).
		WithArgs("f-1", models.FriendshipAccepted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateStatus(context.Background(), "f-1", models.FriendshipAccepted)
	if err != nil || !ok {
		t.Fatalf("UpdateStatus: ok=%v err=%v", ok, err)
	}

	mock.ExpectExec(q).
		WithArgs("f-1", models.FriendshipRejected).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.UpdateStatus(context.Background(), "f-1", models.FriendshipRejected)
	if err != nil || ok {
		t.Fatalf("UpdateStatus on settled row: ok=%v err=%v", ok, err)
	}
}

func TestListPendingFor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user1_id,\s*user2_id,\s*status,\s*created_at,\s*updated_at\s+FROM\s+friendships\s+WHERE\s+user2_id\s*=\s*\$1\s+AND\s+status\s*=\s*'pending'\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user1_id", "user2_id", "status", "created_at", "updated_at"}).
		AddRow("f-1", "u-1", "u-2", "pending", now, now)
	mock.ExpectQuery(q).WithArgs("u-2").WillReturnRows(rows)

	got, err := repo.ListPendingFor(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("ListPendingFor error: %v", err)
	}
	if len(got) != 1 || got[0].Status != models.FriendshipPending {
		t.Fatalf("unexpected friendships: %+v", got)
	}
}

func TestListAcceptedFor_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user1_id`).
		WithArgs("u-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.ListAcceptedFor(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
