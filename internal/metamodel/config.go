package metamodel

import "github.com/rs/zerolog"

// Config controls hierarchy construction.
type Config struct {
	// StrictAccessOverrides turns ignored member access overrides into
	// configuration errors instead of warnings.
	StrictAccessOverrides bool
	// Concurrency bounds how many hierarchies are built in parallel.
	// Values below 2 build sequentially.
	Concurrency int
	// Logger receives construction events.
	Logger zerolog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: 1,
		Logger:      zerolog.Nop(),
	}
}
