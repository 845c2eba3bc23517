package tokenclient

import (
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
)

// TokenServiceInterface covers both custody transfers of the base token and
// issuance of the reward token against the external token service.
type TokenServiceInterface interface {
	ledger.BaseTokenService
	ledger.RewardTokenIssuer
}
