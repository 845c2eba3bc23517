package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

type apiResponse struct {
	Data any `json:"data"`
}

type apiError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeData(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(apiResponse{Data: data}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, serviceErr *types.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(serviceErr.StatusCode)
	if err := json.NewEncoder(w).Encode(apiError{
		ErrorCode: serviceErr.ErrorCode.String(),
		Message:   serviceErr.Error(),
	}); err != nil {
		log.Error().Err(err).Msg("Failed to encode error response")
	}
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "invalid request body",
		))
		return body, false
	}
	return body, true
}

type positionResponse struct {
	ID          string    `json:"id"`
	Participant string    `json:"participant"`
	Amount      uint64    `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type pendingClaimResponse struct {
	Participant string    `json:"participant"`
	Principal   uint64    `json:"principal"`
	Reward      uint64    `json:"reward"`
	UnlockAt    time.Time `json:"unlockAt"`
}

func toPositionResponse(pos ledger.Position) positionResponse {
	return positionResponse{
		ID:          pos.ID,
		Participant: pos.Participant,
		Amount:      pos.Amount,
		CreatedAt:   pos.CreatedAt,
	}
}

func toPendingClaimResponse(claim ledger.PendingClaim) pendingClaimResponse {
	return pendingClaimResponse{
		Participant: claim.Participant,
		Principal:   claim.Principal,
		Reward:      claim.Reward,
		UnlockAt:    claim.UnlockAt,
	}
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Ping(r.Context()); err != nil {
		writeError(w, types.NewErrorWithMsg(
			http.StatusServiceUnavailable, types.InternalServiceError, "database unreachable",
		))
		return
	}
	writeData(w, http.StatusOK, "ok")
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	type stakeRequest struct {
		Participant string `json:"participant"`
		Amount      uint64 `json:"amount"`
	}
	body, ok := decodeBody[stakeRequest](w, r)
	if !ok {
		return
	}

	pos, serviceErr := s.service.Stake(r.Context(), body.Participant, body.Amount)
	if serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusCreated, toPositionResponse(pos))
}

func (s *Server) handleApplyClaim(w http.ResponseWriter, r *http.Request) {
	type applyClaimRequest struct {
		Participant string `json:"participant"`
	}
	body, ok := decodeBody[applyClaimRequest](w, r)
	if !ok {
		return
	}

	claim, serviceErr := s.service.ApplyClaim(r.Context(), body.Participant)
	if serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusCreated, toPendingClaimResponse(claim))
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	type claimRequest struct {
		Participant string `json:"participant"`
	}
	body, ok := decodeBody[claimRequest](w, r)
	if !ok {
		return
	}

	claim, serviceErr := s.service.Claim(r.Context(), body.Participant)
	if serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusOK, toPendingClaimResponse(claim))
}

func (s *Server) handleStakedTotal(w http.ResponseWriter, r *http.Request) {
	participant := chi.URLParam(r, "participant")
	total := s.service.GetStakedTotal(r.Context(), participant)
	writeData(w, http.StatusOK, map[string]uint64{"stakedTotal": total})
}

func (s *Server) handleRewardView(w http.ResponseWriter, r *http.Request) {
	participant := chi.URLParam(r, "participant")
	view, serviceErr := s.service.GetRewardView(r.Context(), participant)
	if serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusOK, view)
}

func (s *Server) handleParticipantState(w http.ResponseWriter, r *http.Request) {
	participant := chi.URLParam(r, "participant")
	state := s.service.GetParticipantState(r.Context(), participant)
	writeData(w, http.StatusOK, map[string]string{"state": state.String()})
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	participant := chi.URLParam(r, "participant")
	positions := s.service.GetPositions(r.Context(), participant)
	out := make([]positionResponse, 0, len(positions))
	for _, pos := range positions {
		out = append(out, toPositionResponse(pos))
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) handlePendingClaim(w http.ResponseWriter, r *http.Request) {
	participant := chi.URLParam(r, "participant")
	claim, ok := s.service.GetPendingClaim(r.Context(), participant)
	if !ok {
		writeError(w, types.NewErrorWithMsg(
			http.StatusNotFound, types.NotFound, "no pending claim",
		))
		return
	}
	writeData(w, http.StatusOK, toPendingClaimResponse(claim))
}

func (s *Server) handleGetParams(w http.ResponseWriter, r *http.Request) {
	params, owner := s.service.GetParams(r.Context())
	writeData(w, http.StatusOK, map[string]any{
		"annualRatePercent": params.AnnualRatePercent,
		"cooldownSeconds":   int64(params.Cooldown / time.Second),
		"owner":             owner,
	})
}

func (s *Server) handleTotalStaked(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]uint64{
		"totalStaked": s.service.GetTotalStaked(r.Context()),
	})
}

func (s *Server) handleSetAnnualRate(w http.ResponseWriter, r *http.Request) {
	type setRateRequest struct {
		Caller            string `json:"caller"`
		AnnualRatePercent uint64 `json:"annualRatePercent"`
	}
	body, ok := decodeBody[setRateRequest](w, r)
	if !ok {
		return
	}

	if serviceErr := s.service.SetAnnualRate(r.Context(), body.Caller, body.AnnualRatePercent); serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusOK, "updated")
}

func (s *Server) handleSetCooldown(w http.ResponseWriter, r *http.Request) {
	type setCooldownRequest struct {
		Caller          string `json:"caller"`
		CooldownSeconds int64  `json:"cooldownSeconds"`
	}
	body, ok := decodeBody[setCooldownRequest](w, r)
	if !ok {
		return
	}

	cooldown := time.Duration(body.CooldownSeconds) * time.Second
	if serviceErr := s.service.SetCooldown(r.Context(), body.Caller, cooldown); serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusOK, "updated")
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	type transferRequest struct {
		Caller   string `json:"caller"`
		NewOwner string `json:"newOwner"`
	}
	body, ok := decodeBody[transferRequest](w, r)
	if !ok {
		return
	}

	if serviceErr := s.service.TransferOwnership(r.Context(), body.Caller, body.NewOwner); serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusOK, "transferred")
}

func (s *Server) handleRenounceOwnership(w http.ResponseWriter, r *http.Request) {
	type renounceRequest struct {
		Caller string `json:"caller"`
	}
	body, ok := decodeBody[renounceRequest](w, r)
	if !ok {
		return
	}

	if serviceErr := s.service.RenounceOwnership(r.Context(), body.Caller); serviceErr != nil {
		writeError(w, serviceErr)
		return
	}
	writeData(w, http.StatusOK, "renounced")
}
