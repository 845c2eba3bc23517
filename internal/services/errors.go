package services

import (
	"errors"
	"net/http"

	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// mapLedgerError translates a ledger core failure into the status and error
// code the service boundary exposes. Unrecognized errors, including token
// service failures, surface as internal errors.
func mapLedgerError(err error) *types.Error {
	switch {
	case errors.Is(err, ledger.ErrClaimPending):
		return types.NewError(http.StatusConflict, types.Conflict, err)
	case errors.Is(err, ledger.ErrNoStaking),
		errors.Is(err, ledger.ErrNoRewards):
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	case errors.Is(err, ledger.ErrNoPendingClaim):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case errors.Is(err, ledger.ErrClaimTooEarly),
		errors.Is(err, ledger.ErrNotOwner):
		return types.NewError(http.StatusForbidden, types.Forbidden, err)
	case errors.Is(err, ledger.ErrRateOutOfRange),
		errors.Is(err, ledger.ErrCooldownOutOfRange):
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	default:
		return types.NewInternalServiceError(err)
	}
}
