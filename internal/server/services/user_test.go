package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/config"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(db *sql.DB, rm *fakeRepoManager) *UserService {
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func TestRegister_Validation(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(nil, rm)

	cases := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
	}{
		{"missing username", "", "a@example.com", "longenough", "longenough"},
		{"missing email", "alice", "", "longenough", "longenough"},
		{"missing password", "alice", "a@example.com", "", ""},
		{"mismatch", "alice", "a@example.com", "longenough", "different"},
		{"too short", "alice", "a@example.com", "short", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tc.username, tc.email, tc.password, tc.confirm)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestRegister_SuccessAndDuplicate(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(nil, rm)

	u, err := s.Register(context.Background(), "alice", "a@example.com", "longenough", "longenough")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID == "" || u.PasswordHash == "longenough" {
		t.Fatalf("password must be stored hashed: %+v", u)
	}

	_, err = s.Register(context.Background(), "alice", "other@example.com", "longenough", "longenough")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("duplicate username: want conflict, got %v", err)
	}
}

func TestLogin_Flows(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(nil, rm)

	if _, err := s.Register(context.Background(), "alice", "a@example.com", "longenough", "longenough"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := s.Login(context.Background(), "ghost", "longenough"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("unknown user: want unauthorized, got %v", err)
	}
	if _, err := s.Login(context.Background(), "alice", "wrongpass"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: want unauthorized, got %v", err)
	}

	pair, err := s.Login(context.Background(), "alice", "longenough")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if _, ok := rm.refreshTokens.tokens[pair.RefreshToken]; !ok {
		t.Fatalf("refresh token not stored")
	}
}

func TestRefreshToken_Rotates(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := newUserService(db, rm)

	if err := rm.refreshTokens.Create(context.Background(), "u-1", "refresh-xyz", time.Hour); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.RefreshToken == "refresh-xyz" {
		t.Fatalf("token not rotated: %+v", pair)
	}
	if _, ok := rm.refreshTokens.tokens["refresh-xyz"]; ok {
		t.Fatalf("old refresh token still stored")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRefreshToken_UnknownAndExpired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(db, rm)

	if _, err := s.RefreshToken(context.Background(), "ghost"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("unknown token: want unauthorized, got %v", err)
	}

	if err := rm.refreshTokens.Create(context.Background(), "u-1", "stale", -time.Minute); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if _, err := s.RefreshToken(context.Background(), "stale"); !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("expired token: want ErrRefreshTokenExpired, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(nil, rm)
	u := seedUser(t, rm, "alice")

	got, err := s.GetUser(context.Background(), u.ID)
	if err != nil || got.Username != "alice" {
		t.Fatalf("GetUser: got (%+v, %v)", got, err)
	}
	if _, err := s.GetUser(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
