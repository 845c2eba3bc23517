package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	maxAnnualRatePercent = 100
	maxCooldown          = 365 * 24 * time.Hour
)

// LedgerConfig seeds the ledger on first start. Once a state surface exists
// in the database, the persisted values win over these.
type LedgerConfig struct {
	// Owner is the privileged identity allowed to mutate parameters.
	Owner             string        `mapstructure:"owner"`
	AnnualRatePercent uint64        `mapstructure:"annual-rate-percent"`
	Cooldown          time.Duration `mapstructure:"cooldown"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.Owner == "" {
		return errors.New("ledger owner is required")
	}
	if cfg.AnnualRatePercent > maxAnnualRatePercent {
		return fmt.Errorf("annual-rate-percent must be at most %d", maxAnnualRatePercent)
	}
	if cfg.Cooldown < 0 || cfg.Cooldown > maxCooldown {
		return errors.New("cooldown must be between 0 and 365 days")
	}

	return nil
}
