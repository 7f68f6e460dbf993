package store

const (
	upsertUser = `INSERT INTO users (address)
    VALUES ($1)
    ON CONFLICT (address) DO UPDATE SET updated_at = NOW()
    RETURNING address, created_at, updated_at;`

	createSwap = `INSERT INTO swaps (
			id,
			intent_id,
			user_address,
			input_token,
			output_token,
			input_amount,
			fee_bps,
			slippage_bps,
			privacy_mode,
			route_id
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, NULLIF($10, ''))
		RETURNING id, intent_id, user_address, input_token, output_token,
			input_amount::text, fee_bps, slippage_bps, privacy_mode,
			COALESCE(route_id, ''), status, created_at, updated_at;`

	getSwapByIntentID = `SELECT id, intent_id, user_address, input_token, output_token,
			input_amount::text, COALESCE(output_amount::text, ''), fee_bps,
			slippage_bps, privacy_mode, COALESCE(route_id, ''), status,
			COALESCE(tx_hash, ''), COALESCE(error, ''),
			created_at, updated_at, settled_at
		FROM swaps
		WHERE intent_id = $1;`

	// transitionSwapStatus is the status-machine guard: the UPDATE matches
	// only while the swap is still pending, so a swap that already reached a
	// terminal state is never moved again. Optional fields keep their
	// current value when the corresponding argument is NULL.
	transitionSwapStatus = `UPDATE swaps
		SET status = $2,
			tx_hash = COALESCE($3, tx_hash),
			error = COALESCE($4, error),
			output_amount = COALESCE($5::numeric, output_amount),
			settled_at = COALESCE($6, settled_at),
			updated_at = NOW()
		WHERE intent_id = $1 AND status = 'ENCRYPTED_PENDING'
		RETURNING id, intent_id, user_address, input_token, output_token,
			input_amount::text, COALESCE(output_amount::text, ''), fee_bps,
			slippage_bps, privacy_mode, COALESCE(route_id, ''), status,
			COALESCE(tx_hash, ''), COALESCE(error, ''),
			created_at, updated_at, settled_at;`

	getSwapStatusOnly = `SELECT status FROM swaps WHERE intent_id = $1;`

	addSwapStage = `INSERT INTO swap_stages (swap_id, name, status, completed_at)
		VALUES ($1, $2, $3,
			CASE WHEN $3 IN ('COMPLETED', 'FAILED') THEN NOW() END)
		RETURNING id, swap_id, name, status, started_at, completed_at;`

	listSwapStages = `SELECT id, swap_id, name, status, started_at, completed_at, COALESCE(error, '')
		FROM swap_stages
		WHERE swap_id = $1
		ORDER BY started_at, id;`

	getCachedQuote = `SELECT id, input_token, output_token, input_amount::text,
			output_amount::text, route_id, price_impact_bps, expires_at
		FROM quote_cache
		WHERE input_token = $1 AND output_token = $2
			AND input_amount = $3::numeric AND expires_at > NOW();`

	upsertCachedQuote = `INSERT INTO quote_cache (
			input_token, output_token, input_amount,
			output_amount, route_id, price_impact_bps, expires_at
		) VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7)
		ON CONFLICT (input_token, output_token, input_amount) DO UPDATE SET
			output_amount = EXCLUDED.output_amount,
			route_id = EXCLUDED.route_id,
			price_impact_bps = EXCLUDED.price_impact_bps,
			expires_at = EXCLUDED.expires_at;`

	invalidateQuotePair = `DELETE FROM quote_cache
		WHERE input_token = $1 AND output_token = $2;`

	cleanupExpiredQuotes = `DELETE FROM quote_cache WHERE expires_at < NOW();`

	createSession = `INSERT INTO sessions (auth_token, user_address, valid_until)
    VALUES ($1, $2, $3);`

	getSession = `SELECT auth_token, user_address, valid_until
    FROM sessions
    WHERE auth_token = $1 AND valid_until > NOW();`

	deleteSession = `DELETE FROM sessions WHERE auth_token = $1;`

	cleanupExpiredSessions = `DELETE FROM sessions WHERE valid_until < NOW();`

	upsertTokenMetadata = `INSERT INTO token_metadata (
			mint, symbol, name, decimals, logo_uri, is_verified
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mint) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			decimals = EXCLUDED.decimals,
			logo_uri = EXCLUDED.logo_uri,
			is_verified = EXCLUDED.is_verified;`

	getTokenMetadata = `SELECT mint, symbol, name, decimals, logo_uri, is_verified
		FROM token_metadata
		WHERE mint = $1;`

	listTokenMetadata = `SELECT mint, symbol, name, decimals, logo_uri, is_verified
		FROM token_metadata
		ORDER BY symbol;`

	incrementRateLimitWindow = `INSERT INTO rate_limits (
			user_address, endpoint, window_start, window_end
		) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_address, endpoint, window_start) DO UPDATE SET
			request_count = rate_limits.request_count + 1
		RETURNING request_count;`

	cleanupClosedRateLimitWindows = `DELETE FROM rate_limits WHERE window_end < NOW();`
)
