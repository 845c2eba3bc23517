package types

import "time"

type EventTypes string

func (e EventTypes) String() string {
	return string(e)
}

const (
	EventStakedType               EventTypes = "staking.v1.EventStaked"
	EventClaimAppliedType         EventTypes = "staking.v1.EventClaimApplied"
	EventClaimedType              EventTypes = "staking.v1.EventClaimed"
	EventOwnershipTransferredType EventTypes = "staking.v1.EventOwnershipTransferred"
)

// StakedEvent is emitted after a position is recorded.
type StakedEvent struct {
	EventType   EventTypes `json:"event_type"`
	Participant string     `json:"participant"`
	PositionID  string     `json:"position_id"`
	Amount      uint64     `json:"amount"`
	StakedAt    time.Time  `json:"staked_at"`
}

// ClaimAppliedEvent is emitted when a participant's positions are frozen
// into a pending claim.
type ClaimAppliedEvent struct {
	EventType   EventTypes `json:"event_type"`
	Participant string     `json:"participant"`
	Principal   uint64     `json:"principal"`
	Reward      uint64     `json:"reward"`
	UnlockAt    time.Time  `json:"unlock_at"`
}

// ClaimedEvent is emitted after a pending claim settles.
type ClaimedEvent struct {
	EventType   EventTypes `json:"event_type"`
	Participant string     `json:"participant"`
	Principal   uint64     `json:"principal"`
	Reward      uint64     `json:"reward"`
}

// OwnershipTransferredEvent is emitted when the privileged identity changes,
// including renouncement (empty new owner).
type OwnershipTransferredEvent struct {
	EventType     EventTypes `json:"event_type"`
	PreviousOwner string     `json:"previous_owner"`
	NewOwner      string     `json:"new_owner"`
}
