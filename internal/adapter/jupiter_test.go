package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
)

func newJupiterTestClient(t *testing.T, handler http.HandlerFunc) (QuoteProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Upstream{JupiterURL: srv.URL, RequestTimeout: 5 * time.Second}
	return NewJupiterClient(cfg, logger.Nop()), srv
}

func TestJupiterQuote_Success(t *testing.T) {
	client, _ := newJupiterTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "mintA", r.URL.Query().Get("inputMint"))
		assert.Equal(t, "1000000000", r.URL.Query().Get("amount"))
		assert.Equal(t, "50", r.URL.Query().Get("slippageBps"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outAmount":"987654321","routePlanId":"route-1","priceImpactPct":"0.12"}`))
	})

	quote, err := client.Quote(context.Background(), "mintA", "mintB", "1000000000", 50)
	require.NoError(t, err)
	assert.Equal(t, "987654321", quote.OutAmount)
	assert.Equal(t, "route-1", quote.RouteID)
	assert.Equal(t, 12, quote.PriceImpactBps)
}

func TestJupiterQuote_NoRoute(t *testing.T) {
	client, _ := newJupiterTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no route"}`, http.StatusNotFound)
	})

	_, err := client.Quote(context.Background(), "mintA", "mintB", "1", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRouteFound))
}

func TestJupiterQuote_UpstreamDown(t *testing.T) {
	client, _ := newJupiterTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.Quote(context.Background(), "mintA", "mintB", "1", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))

	// The upstream body must never leak into the error chain.
	assert.NotContains(t, err.Error(), "boom")
}

func TestJupiterBuildSwapTransaction_Success(t *testing.T) {
	client, _ := newJupiterTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/swap", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"swapTransaction":"base64tx=="}`))
	})

	tx, err := client.BuildSwapTransaction(context.Background(), "route-1", "wallet-1")
	require.NoError(t, err)
	assert.Equal(t, "base64tx==", tx)
}

func TestPctToBps(t *testing.T) {
	assert.Equal(t, 12, pctToBps("0.12"))
	assert.Equal(t, 12, pctToBps("0.129")) // exact, no float truncation artifacts
	assert.Equal(t, 100, pctToBps("1"))
	assert.Equal(t, 150, pctToBps("1.5"))
	assert.Equal(t, -12, pctToBps("-0.129"))
	assert.Equal(t, 0, pctToBps("not-a-number"))
}
