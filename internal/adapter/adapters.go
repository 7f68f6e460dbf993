package adapter

import (
	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
)

// NewAdapters wires every upstream client from the shared upstream config.
func NewAdapters(cfg config.Upstream, logger *logger.Logger) *Adapters {
	return &Adapters{
		QuoteProvider:       NewJupiterClient(cfg, logger),
		ConfidentialService: NewEncifherClient(cfg, logger),
		IntentsRelay:        NewNearRelayClient(cfg, logger),
		SolanaRPC:           NewSolanaRPCClient(cfg, logger),
	}
}
