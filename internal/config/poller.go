package config

import (
	"errors"
	"time"
)

const defaultSnapshotInterval = 5 * time.Minute

type PollerConfig struct {
	// SnapshotInterval is how often the full ledger state surface is
	// re-persisted, healing any write-behind lag from failed per-operation
	// writes.
	SnapshotInterval time.Duration `mapstructure:"snapshot-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.SnapshotInterval < 0 {
		return errors.New("snapshot-interval must be positive")
	}
	if cfg.SnapshotInterval == 0 {
		cfg.SnapshotInterval = defaultSnapshotInterval
	}

	return nil
}
