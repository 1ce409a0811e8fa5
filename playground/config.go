package playground

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls how the client reaches the playground server.
type Config struct {
	// APIBaseURL is the base URL for gateway calls, without a trailing slash.
	APIBaseURL string `env:"PLAYGROUND_API_URL" envDefault:"http://localhost:8000"`
	// WSBaseURL is the base URL for push channels.
	WSBaseURL string `env:"PLAYGROUND_WS_URL" envDefault:"ws://localhost:8000"`

	HandshakeTimeout time.Duration `env:"PLAYGROUND_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	// ReadTimeout defaults to 0 (disabled): both channels sit idle for as
	// long as the user does, and the AI can take a while to answer.
	ReadTimeout  time.Duration `env:"PLAYGROUND_READ_TIMEOUT" envDefault:"0"`
	WriteTimeout time.Duration `env:"PLAYGROUND_WRITE_TIMEOUT" envDefault:"10s"`

	// SettleDelay is the wait between a mutating gateway call and reopening
	// the corresponding channel, so the server finishes provisioning the new
	// session before the client reconnects.
	SettleDelay time.Duration `env:"PLAYGROUND_SETTLE_DELAY" envDefault:"100ms"`

	// TransientErrorTTL is how long a rejected-move banner stays up unless an
	// accepted move clears it first.
	TransientErrorTTL time.Duration `env:"PLAYGROUND_ERROR_TTL" envDefault:"3s"`

	// LogFile, when set, receives client logs. The TUI owns the terminal, so
	// logging to stderr is not an option while it runs.
	LogFile string `env:"PLAYGROUND_LOG_FILE"`
}

// DefaultConfig returns sensible defaults for a local server.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:        "http://localhost:8000",
		WSBaseURL:         "ws://localhost:8000",
		HandshakeTimeout:  10 * time.Second,
		WriteTimeout:      10 * time.Second,
		SettleDelay:       100 * time.Millisecond,
		TransientErrorTTL: 3 * time.Second,
	}
}

// ConfigFromEnv builds a Config from PLAYGROUND_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, WrapError(ErrorInvalidConfig, "parse environment", err)
	}
	return cfg, nil
}
