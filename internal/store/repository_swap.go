package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

// swapRepository is the PostgreSQL-backed implementation of [SwapRepository].
// It owns the swaps and swap_stages tables.
//
// The status machine is enforced here, not in the service layer: every
// status-changing statement is a conditional UPDATE keyed on the expected
// current state, so concurrent transitions for the same intent id resolve
// to exactly one winner and the losers get [ErrInvalidTransition].
type swapRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSwapRepository constructs a [SwapRepository] backed by the provided
// database connection and logger.
func NewSwapRepository(db *DB, logger *logger.Logger) SwapRepository {
	logger.Debug().Msg("creating swap repository")
	return &swapRepository{
		db:     db,
		logger: logger,
	}
}

// scanSwap reads one swap row in the canonical column order shared by all
// swap queries.
func scanSwap(row interface{ Scan(dest ...any) error }) (models.Swap, error) {
	var swap models.Swap
	var settledAt sql.NullTime

	err := row.Scan(
		&swap.ID,
		&swap.IntentID,
		&swap.UserAddress,
		&swap.InputToken,
		&swap.OutputToken,
		&swap.InputAmount,
		&swap.OutputAmount,
		&swap.FeeBps,
		&swap.SlippageBps,
		&swap.PrivacyMode,
		&swap.RouteID,
		&swap.Status,
		&swap.TxHash,
		&swap.Error,
		&swap.CreatedAt,
		&swap.UpdatedAt,
		&settledAt,
	)
	if err != nil {
		return models.Swap{}, err
	}

	if settledAt.Valid {
		swap.SettledAt = &settledAt.Time
	}

	return swap, nil
}

// CreateSwap inserts a new swap row in status ENCRYPTED_PENDING and returns
// the fully populated [models.Swap] with server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrIntentAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *swapRepository) CreateSwap(ctx context.Context, intentID string, params models.CreateSwapParams) (models.Swap, error) {
	log := logger.FromContext(ctx)

	var swap models.Swap
	row := r.db.QueryRowContext(ctx, createSwap,
		params.ID, intentID, params.UserAddress,
		params.InputToken, params.OutputToken, params.InputAmount,
		params.FeeBps, params.SlippageBps, params.PrivacyMode, params.RouteID,
	)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*swapRepository.CreateSwap").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Swap{}, ErrIntentAlreadyExists
		default:
			return models.Swap{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(
		&swap.ID, &swap.IntentID, &swap.UserAddress,
		&swap.InputToken, &swap.OutputToken, &swap.InputAmount,
		&swap.FeeBps, &swap.SlippageBps, &swap.PrivacyMode,
		&swap.RouteID, &swap.Status, &swap.CreatedAt, &swap.UpdatedAt,
	); err != nil {
		log.Err(err).Str("func", "*swapRepository.CreateSwap").Msg("error: scanning error")
		return models.Swap{}, err
	}

	return swap, nil
}

// GetSwapByIntentID retrieves the swap row matching intentID.
//
// Returns [ErrSwapNotFound] when no row matches.
func (r *swapRepository) GetSwapByIntentID(ctx context.Context, intentID string) (models.Swap, error) {
	log := logger.FromContext(ctx)

	swap, err := scanSwap(r.db.QueryRowContext(ctx, getSwapByIntentID, intentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Swap{}, ErrSwapNotFound
		}
		log.Err(err).Str("func", "*swapRepository.GetSwapByIntentID").Msg("error: query or scan failed")
		return models.Swap{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return swap, nil
}

// TransitionStatus atomically moves the swap identified by intentID from
// ENCRYPTED_PENDING to newStatus and writes the optional extra fields.
//
// Returns:
//   - [ErrSwapNotFound] when intentID matches no row at all.
//   - [ErrInvalidTransition] when the row exists but has already left
//     ENCRYPTED_PENDING (terminal states are never resurrected).
func (r *swapRepository) TransitionStatus(ctx context.Context, intentID string, newStatus models.SwapStatus, extra models.StatusExtra) (models.Swap, error) {
	log := logger.FromContext(ctx)

	swap, err := scanSwap(r.db.QueryRowContext(ctx, transitionSwapStatus,
		intentID, newStatus, extra.TxHash, extra.Error, extra.OutputAmount, extra.SettledAt,
	))
	if err == nil {
		return swap, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Str("func", "*swapRepository.TransitionStatus").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: conditional update failed")
		return models.Swap{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// Zero rows matched: distinguish "unknown intent" from "terminal state".
	var current models.SwapStatus
	switch err := r.db.QueryRowContext(ctx, getSwapStatusOnly, intentID).Scan(&current); {
	case errors.Is(err, sql.ErrNoRows):
		return models.Swap{}, ErrSwapNotFound
	case err != nil:
		log.Err(err).Str("func", "*swapRepository.TransitionStatus").Msg("error: status lookup failed")
		return models.Swap{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	log.Warn().
		Str("intent_id", intentID).
		Str("current_status", string(current)).
		Str("requested_status", string(newStatus)).
		Msg("rejected transition out of terminal status")

	return models.Swap{}, ErrInvalidTransition
}

// AddStage appends a stage row to the swap's history. The stage vocabulary
// is open; completion timestamps are set in SQL when the status is already
// final (COMPLETED/FAILED).
func (r *swapRepository) AddStage(ctx context.Context, swapID, name, status string) (models.SwapStage, error) {
	log := logger.FromContext(ctx)

	var stage models.SwapStage
	var completedAt sql.NullTime

	row := r.db.QueryRowContext(ctx, addSwapStage, swapID, name, status)
	if err := row.Scan(&stage.ID, &stage.SwapID, &stage.Name, &stage.Status, &stage.StartedAt, &completedAt); err != nil {
		log.Err(err).Str("func", "*swapRepository.AddStage").Msg("error: insert or scan failed")
		return models.SwapStage{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if completedAt.Valid {
		stage.CompletedAt = &completedAt.Time
	}

	return stage, nil
}

// ListStages returns the swap's stages ordered by start time.
func (r *swapRepository) ListStages(ctx context.Context, swapID string) ([]models.SwapStage, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listSwapStages, swapID)
	if err != nil {
		log.Err(err).Str("func", "*swapRepository.ListStages").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	stages := make([]models.SwapStage, 0, 8)
	for rows.Next() {
		var stage models.SwapStage
		var completedAt sql.NullTime
		if err := rows.Scan(&stage.ID, &stage.SwapID, &stage.Name, &stage.Status, &stage.StartedAt, &completedAt, &stage.Error); err != nil {
			log.Err(err).Str("func", "*swapRepository.ListStages").Msg("error: scanning error")
			return nil, err
		}
		if completedAt.Valid {
			stage.CompletedAt = &completedAt.Time
		}
		stages = append(stages, stage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stages, nil
}

// ListSwapsByUser returns the user's swaps newest first, with limit/offset
// pagination and an optional status filter. The query is built dynamically
// with squirrel because the filter set varies per call.
func (r *swapRepository) ListSwapsByUser(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) ([]models.Swap, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(
		"id", "intent_id", "user_address", "input_token", "output_token",
		"input_amount::text", "COALESCE(output_amount::text, '')",
		"fee_bps", "slippage_bps", "privacy_mode", "COALESCE(route_id, '')",
		"status", "COALESCE(tx_hash, '')", "COALESCE(error, '')",
		"created_at", "updated_at", "settled_at",
	).
		From("swaps").
		Where(sq.Eq{"user_address": userAddress}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar)

	if status != nil {
		builder = builder.Where(sq.Eq{"status": string(*status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*swapRepository.ListSwapsByUser").Msg("error: building query")
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*swapRepository.ListSwapsByUser").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	swaps := make([]models.Swap, 0, limit)
	for rows.Next() {
		swap, err := scanSwap(rows)
		if err != nil {
			log.Err(err).Str("func", "*swapRepository.ListSwapsByUser").Msg("error: scanning error")
			return nil, err
		}
		swaps = append(swaps, swap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return swaps, nil
}
