package model

import (
	"time"

	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
)

const PendingClaimCollection = "pending_claims"

// PendingClaimDocument is keyed by participant: the schema itself enforces at
// most one pending claim per participant.
type PendingClaimDocument struct {
	Participant string    `bson:"_id"`
	Principal   uint64    `bson:"principal"`
	Reward      uint64    `bson:"reward"`
	UnlockAt    time.Time `bson:"unlock_at"`
}

func FromPendingClaim(claim ledger.PendingClaim) *PendingClaimDocument {
	return &PendingClaimDocument{
		Participant: claim.Participant,
		Principal:   claim.Principal,
		Reward:      claim.Reward,
		UnlockAt:    claim.UnlockAt,
	}
}

func (d *PendingClaimDocument) ToPendingClaim() ledger.PendingClaim {
	return ledger.PendingClaim{
		Participant: d.Participant,
		Principal:   d.Principal,
		Reward:      d.Reward,
		UnlockAt:    d.UnlockAt,
	}
}
