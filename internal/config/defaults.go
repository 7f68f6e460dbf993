package config

import "time"

// defaultConfig returns the built-in fallback values applied when neither
// environment variables nor flags set a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "waveswap",
			TokenDuration: 24 * time.Hour,
			PrivacyFeeBps: 20,
			QuoteTTL:      15 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			RequestTimeout: 30 * time.Second,
		},
		Upstream: Upstream{
			JupiterURL:     "https://quote-api.jup.ag/v6",
			SolanaRPCURL:   "https://api.mainnet-beta.solana.com",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			SweepInterval: time.Minute,
		},
		RateLimit: RateLimit{
			Window:      60 * time.Second,
			MaxRequests: 60,
		},
	}
}
