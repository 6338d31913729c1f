package configs

// HTTP defines configuration for the HTTP server. The Port specifies
// which port the server will bind to. The rate limit applies across all
// API routes; burst allows short spikes above the sustained rate.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// RateLimit is the sustained requests-per-second budget. Zero disables
	// limiting.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"50"`
	// RateBurst is the token-bucket burst size used with RateLimit.
	RateBurst int `env:"RATE_BURST" envDefault:"100"`
}
