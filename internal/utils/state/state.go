package state

import "github.com/stakelabs-io/token-staking-ledger/internal/types"

// participantStateChangeMap maps the current state of a participant to the
// states it can transition to. Staking while a claim is in flight keeps the
// participant in APPLIED/UNLOCKED, so those states loop on themselves.
var participantStateChangeMap = map[string][]string{
	types.StateIdle.String(): {
		types.StateStaked.String(),
	},
	types.StateStaked.String(): {
		types.StateStaked.String(),
		types.StateApplied.String(),
	},
	types.StateApplied.String(): {
		types.StateApplied.String(),
		types.StateUnlocked.String(),
	},
	types.StateUnlocked.String(): {
		types.StateUnlocked.String(),
		types.StateIdle.String(),
		types.StateStaked.String(),
	},
}

func IsQualifiedStateChange(currentState string, newState string) bool {
	qualifiedStates, ok := participantStateChangeMap[currentState]
	if !ok {
		return false
	}
	for _, state := range qualifiedStates {
		if state == newState {
			return true
		}
	}
	return false
}
