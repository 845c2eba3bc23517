package model

const LedgerStateCollection = "ledger_state"

// LedgerStateDocumentID is the _id of the single aggregate-state document.
const LedgerStateDocumentID = "ledger"

type LedgerStateDocument struct {
	ID          string `bson:"_id"`
	TotalStaked uint64 `bson:"total_staked"`
}
