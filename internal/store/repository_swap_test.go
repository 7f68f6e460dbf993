package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

func newTestSwapRepo(t *testing.T) (*swapRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &swapRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var swapColumns = []string{
	"id", "intent_id", "user_address", "input_token", "output_token",
	"input_amount", "output_amount", "fee_bps", "slippage_bps",
	"privacy_mode", "route_id", "status", "tx_hash", "error",
	"created_at", "updated_at", "settled_at",
}

func swapRow(now time.Time, status models.SwapStatus) *sqlmock.Rows {
	return sqlmock.NewRows(swapColumns).AddRow(
		"11111111-1111-1111-1111-111111111111", "intent-1", "wallet-1",
		"So11111111111111111111111111111111111111112",
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"1000000000", "", 20, 50,
		true, "", status, "", "",
		now, now, nil,
	)
}

func TestCreateSwap_Success(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	now := time.Now()
	params := models.CreateSwapParams{
		ID:          "11111111-1111-1111-1111-111111111111",
		UserAddress: "wallet-1",
		InputToken:  "So11111111111111111111111111111111111111112",
		OutputToken: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		InputAmount: "1000000000",
		FeeBps:      20,
		SlippageBps: 50,
		PrivacyMode: true,
	}

	rows := sqlmock.NewRows([]string{
		"id", "intent_id", "user_address", "input_token", "output_token",
		"input_amount", "fee_bps", "slippage_bps", "privacy_mode",
		"route_id", "status", "created_at", "updated_at",
	}).AddRow(
		params.ID, "intent-1", params.UserAddress, params.InputToken, params.OutputToken,
		params.InputAmount, params.FeeBps, params.SlippageBps, params.PrivacyMode,
		"", models.StatusEncryptedPending, now, now,
	)

	mock.ExpectQuery("INSERT INTO swaps").
		WithArgs(params.ID, "intent-1", params.UserAddress, params.InputToken,
			params.OutputToken, params.InputAmount, params.FeeBps,
			params.SlippageBps, params.PrivacyMode, "").
		WillReturnRows(rows)

	created, err := repo.CreateSwap(context.Background(), "intent-1", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != models.StatusEncryptedPending {
		t.Errorf("expected status ENCRYPTED_PENDING, got %s", created.Status)
	}
	if created.IntentID != "intent-1" {
		t.Errorf("expected intent_id intent-1, got %s", created.IntentID)
	}
}

func TestCreateSwap_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO swaps").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateSwap(context.Background(), "intent-1", models.CreateSwapParams{})
	if !errors.Is(err, ErrIntentAlreadyExists) {
		t.Fatalf("expected ErrIntentAlreadyExists, got %v", err)
	}
}

func TestCreateSwap_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO swaps").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateSwap(context.Background(), "intent-1", models.CreateSwapParams{})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestGetSwapByIntentID_Success(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM swaps").
		WithArgs("intent-1").
		WillReturnRows(swapRow(time.Now(), models.StatusEncryptedPending))

	swap, err := repo.GetSwapByIntentID(context.Background(), "intent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swap.IntentID != "intent-1" {
		t.Errorf("expected intent-1, got %s", swap.IntentID)
	}
	if swap.SettledAt != nil {
		t.Errorf("expected nil settled_at, got %v", swap.SettledAt)
	}
}

func TestGetSwapByIntentID_NotFound(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM swaps").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(swapColumns))

	_, err := repo.GetSwapByIntentID(context.Background(), "missing")
	if !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestTransitionStatus_Success(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE swaps").
		WithArgs("intent-1", models.StatusCompleted,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(swapRow(time.Now(), models.StatusCompleted))

	txHash := "5sig"
	swap, err := repo.TransitionStatus(context.Background(), "intent-1",
		models.StatusCompleted, models.StatusExtra{TxHash: &txHash})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swap.Status != models.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", swap.Status)
	}
}

func TestTransitionStatus_TerminalStateRejected(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	// Conditional update matches nothing...
	mock.ExpectQuery("UPDATE swaps").
		WillReturnRows(sqlmock.NewRows(swapColumns))

	// ...but the row exists in a terminal state.
	mock.ExpectQuery("SELECT status FROM swaps").
		WithArgs("intent-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("COMPLETED"))

	_, err := repo.TransitionStatus(context.Background(), "intent-1",
		models.StatusCancelled, models.StatusExtra{})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionStatus_UnknownIntent(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE swaps").
		WillReturnRows(sqlmock.NewRows(swapColumns))

	mock.ExpectQuery("SELECT status FROM swaps").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	_, err := repo.TransitionStatus(context.Background(), "missing",
		models.StatusFailed, models.StatusExtra{})
	if !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestAddStage_Success(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "swap_id", "name", "status", "started_at", "completed_at"}).
		AddRow(1, "swap-1", models.StageInitiated, "COMPLETED", now, now)

	mock.ExpectQuery("INSERT INTO swap_stages").
		WithArgs("swap-1", models.StageInitiated, "COMPLETED").
		WillReturnRows(rows)

	stage, err := repo.AddStage(context.Background(), "swap-1", models.StageInitiated, "COMPLETED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage.CompletedAt == nil {
		t.Error("expected completed_at to be set for a COMPLETED stage")
	}
}

func TestListStages_Ordered(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "swap_id", "name", "status", "started_at", "completed_at", "error"}).
		AddRow(1, "swap-1", models.StageInitiated, "COMPLETED", now, now, "").
		AddRow(2, "swap-1", models.StageExecuted, "IN_PROGRESS", now.Add(time.Second), nil, "")

	mock.ExpectQuery("SELECT (.+) FROM swap_stages").
		WithArgs("swap-1").
		WillReturnRows(rows)

	stages, err := repo.ListStages(context.Background(), "swap-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	if stages[1].CompletedAt != nil {
		t.Error("expected nil completed_at on in-progress stage")
	}
}

func TestListSwapsByUser_StatusFilter(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	status := models.StatusCompleted
	mock.ExpectQuery("SELECT (.+) FROM swaps WHERE user_address = (.+) AND status = ").
		WithArgs("wallet-1", "COMPLETED").
		WillReturnRows(swapRow(time.Now(), models.StatusCompleted))

	swaps, err := repo.ListSwapsByUser(context.Background(), "wallet-1", 20, 0, &status)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(swaps) != 1 {
		t.Fatalf("expected 1 swap, got %d", len(swaps))
	}
}

func TestListSwapsByUser_NoFilter(t *testing.T) {
	repo, mock, db := newTestSwapRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM swaps WHERE user_address = ").
		WithArgs("wallet-1").
		WillReturnRows(sqlmock.NewRows(swapColumns))

	swaps, err := repo.ListSwapsByUser(context.Background(), "wallet-1", 20, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(swaps) != 0 {
		t.Fatalf("expected empty page, got %d", len(swaps))
	}
}
