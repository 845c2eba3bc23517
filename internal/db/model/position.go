package model

import (
	"time"

	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
)

const PositionCollection = "positions"

type PositionDocument struct {
	ID          string    `bson:"_id"`
	Participant string    `bson:"participant"`
	Amount      uint64    `bson:"amount"`
	CreatedAt   time.Time `bson:"created_at"`
}

func FromPosition(pos ledger.Position) *PositionDocument {
	return &PositionDocument{
		ID:          pos.ID,
		Participant: pos.Participant,
		Amount:      pos.Amount,
		CreatedAt:   pos.CreatedAt,
	}
}

func (d *PositionDocument) ToPosition() ledger.Position {
	return ledger.Position{
		ID:          d.ID,
		Participant: d.Participant,
		Amount:      d.Amount,
		CreatedAt:   d.CreatedAt,
	}
}
