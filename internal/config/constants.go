package config

import "time"

const (
	// Answer provider timeouts
	FinGenieTimeout = 90 * time.Second
	BankoraTimeout  = 60 * time.Second

	// Auth
	TokenTTL = 24 * time.Hour

	// HTTP server timeouts
	ReadTimeout  = 15 * time.Second
	WriteTimeout = 120 * time.Second
	IdleTimeout  = 120 * time.Second

	// Graceful shutdown deadline
	ShutdownTimeout = 30 * time.Second

	// Input limits
	MaxTitleLen   = 200
	MaxMessageLen = 8000
)

// BankoraFallbackPrefix is prepended to the query when the search-augmented
// provider is down and the request is rerouted to the general model.
const BankoraFallbackPrefix = "[Acting as Bankora-AI, a specialized system for Ghanaian banking information] "
