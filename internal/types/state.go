package types

// Enum values for Participant State
type ParticipantState string

const (
	StateIdle     ParticipantState = "IDLE"
	StateStaked   ParticipantState = "STAKED"
	StateApplied  ParticipantState = "APPLIED"
	StateUnlocked ParticipantState = "UNLOCKED"
)

func (s ParticipantState) String() string {
	return string(s)
}
