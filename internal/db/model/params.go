package model

const GlobalParamsCollection = "global_params"

type BaseParamsDocument struct {
	Type    string `bson:"type"`
	Version uint32 `bson:"version"`
}

// LedgerParamsDocument holds the mutable accrual configuration and the
// privileged owner identity. A single versioned document of type LEDGER.
type LedgerParamsDocument struct {
	BaseParamsDocument `bson:",inline"`
	AnnualRatePercent  uint64 `bson:"annual_rate_percent"`
	CooldownSeconds    int64  `bson:"cooldown_seconds"`
	Owner              string `bson:"owner"`
}
