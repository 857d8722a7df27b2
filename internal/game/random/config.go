package random

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/config"
)

// FromConfig builds the Source selected by cfg.
//
// Precondition: cfg has passed config validation; logger must be non-nil.
// Postcondition: Returns a non-nil Source or an error for an unknown source kind.
func FromConfig(cfg config.RandomConfig, logger *zap.Logger) (Source, error) {
	var src Source
	switch cfg.Source {
	case config.SourceCrypto:
		src = NewCryptoSource()
	case config.SourceSeeded:
		src = NewSeededSource(cfg.Seed)
	default:
		return nil, fmt.Errorf("random: unknown source %q", cfg.Source)
	}
	if cfg.LogDraws {
		src = NewLoggedSource(src, logger)
	}
	return src, nil
}
