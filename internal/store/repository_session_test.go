package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestGetSession_Valid(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	validUntil := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"auth_token", "user_address", "valid_until"}).
		AddRow("jti-1", "wallet-1", validUntil)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("jti-1").
		WillReturnRows(rows)

	session, err := repo.GetSession(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.UserAddress != "wallet-1" {
		t.Errorf("expected wallet-1, got %s", session.UserAddress)
	}
}

func TestGetSession_ExpiredOrMissing(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"auth_token", "user_address", "valid_until"}))

	_, err := repo.GetSession(context.Background(), "gone")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreateSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	validUntil := time.Now().Add(time.Hour)
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("jti-1", "wallet-1", validUntil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateSession(context.Background(), models.Session{
		AuthToken: "jti-1", UserAddress: "wallet-1", ValidUntil: validUntil,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCleanupExpiredSessions_ReturnsRowCount(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions WHERE valid_until").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.CleanupExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows deleted, got %d", n)
	}
}
