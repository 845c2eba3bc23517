package config

import (
	"fmt"
	"time"
)

// TokenServiceConfig points at the external custody/issuance service the
// ledger settles against.
type TokenServiceConfig struct {
	// Endpoint is the base URL of the token service, including the protocol
	// prefix.
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *TokenServiceConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("token service endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("token service timeout is required")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("token service max-retry-times is required")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("token service retry-interval is required")
	}

	return nil
}
