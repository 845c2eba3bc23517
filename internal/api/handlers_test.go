package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/services"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

type fakeService struct {
	position     ledger.Position
	claim        ledger.PendingClaim
	rewardView   services.RewardView
	state        types.ParticipantState
	params       ledger.Params
	owner        string
	totalStaked  uint64
	hasClaim     bool
	err          *types.Error
	lastCaller   string
	lastCooldown time.Duration
}

func (f *fakeService) Stake(ctx context.Context, participant string, amount uint64) (ledger.Position, *types.Error) {
	return f.position, f.err
}

func (f *fakeService) ApplyClaim(ctx context.Context, participant string) (ledger.PendingClaim, *types.Error) {
	return f.claim, f.err
}

func (f *fakeService) Claim(ctx context.Context, participant string) (ledger.PendingClaim, *types.Error) {
	return f.claim, f.err
}

func (f *fakeService) GetStakedTotal(ctx context.Context, participant string) uint64 {
	return f.totalStaked
}

func (f *fakeService) GetRewardView(ctx context.Context, participant string) (services.RewardView, *types.Error) {
	return f.rewardView, f.err
}

func (f *fakeService) GetParticipantState(ctx context.Context, participant string) types.ParticipantState {
	return f.state
}

func (f *fakeService) GetPositions(ctx context.Context, participant string) []ledger.Position {
	return []ledger.Position{f.position}
}

func (f *fakeService) GetPendingClaim(ctx context.Context, participant string) (ledger.PendingClaim, bool) {
	return f.claim, f.hasClaim
}

func (f *fakeService) GetTotalStaked(ctx context.Context) uint64 {
	return f.totalStaked
}

func (f *fakeService) GetParams(ctx context.Context) (ledger.Params, string) {
	return f.params, f.owner
}

func (f *fakeService) SetAnnualRate(ctx context.Context, caller string, percent uint64) *types.Error {
	f.lastCaller = caller
	return f.err
}

func (f *fakeService) SetCooldown(ctx context.Context, caller string, cooldown time.Duration) *types.Error {
	f.lastCaller = caller
	f.lastCooldown = cooldown
	return f.err
}

func (f *fakeService) TransferOwnership(ctx context.Context, caller, newOwner string) *types.Error {
	f.lastCaller = caller
	return f.err
}

func (f *fakeService) RenounceOwnership(ctx context.Context, caller string) *types.Error {
	f.lastCaller = caller
	return f.err
}

type fakeHealth struct {
	err error
}

func (f *fakeHealth) Ping(ctx context.Context) error { return f.err }

func newTestServer(t *testing.T, service *fakeService, health *fakeHealth) *httptest.Server {
	t.Helper()
	cfg := &config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         8080,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	srv := New(cfg, service, health)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestHandleStake(t *testing.T) {
	t.Run("returns created position", func(t *testing.T) {
		service := &fakeService{
			position: ledger.Position{
				ID:          "pos-1",
				Participant: "alice",
				Amount:      1_000,
				CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		}
		ts := newTestServer(t, service, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/stake", map[string]any{"participant": "alice", "amount": 1000})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		pos := decodeData[positionResponse](t, resp)
		assert.Equal(t, "pos-1", pos.ID)
		assert.Equal(t, uint64(1_000), pos.Amount)
	})

	t.Run("maps service error to status and code", func(t *testing.T) {
		service := &fakeService{
			err: types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "amount must be positive"),
		}
		ts := newTestServer(t, service, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/stake", map[string]any{"participant": "alice", "amount": 0})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		defer resp.Body.Close()
		var apiErr apiError
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
		assert.Equal(t, types.ValidationError.String(), apiErr.ErrorCode)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{}, &fakeHealth{})

		resp, err := http.Post(ts.URL+"/v1/stake", "application/json", bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleClaims(t *testing.T) {
	claim := ledger.PendingClaim{
		Participant: "alice",
		Principal:   1_000_000,
		Reward:      120_000,
		UnlockAt:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("apply claim returns frozen snapshot", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{claim: claim}, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/apply-claim", map[string]any{"participant": "alice"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		got := decodeData[pendingClaimResponse](t, resp)
		assert.Equal(t, uint64(120_000), got.Reward)
		assert.True(t, claim.UnlockAt.Equal(got.UnlockAt))
	})

	t.Run("claim too early is forbidden", func(t *testing.T) {
		service := &fakeService{
			err: types.NewErrorWithMsg(http.StatusForbidden, types.Forbidden, "claim too early"),
		}
		ts := newTestServer(t, service, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/claim", map[string]any{"participant": "alice"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("settled claim is returned", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{claim: claim}, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/claim", map[string]any{"participant": "alice"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		got := decodeData[pendingClaimResponse](t, resp)
		assert.Equal(t, uint64(1_000_000), got.Principal)
	})
}

func TestHandleProjections(t *testing.T) {
	service := &fakeService{
		rewardView:  services.RewardView{Pending: 120_000, Accruing: 60_000},
		state:       types.StateApplied,
		totalStaked: 1_500_000,
		params:      ledger.Params{AnnualRatePercent: 12, Cooldown: 24 * time.Hour},
		owner:       "owner",
		hasClaim:    false,
	}
	ts := newTestServer(t, service, &fakeHealth{})

	t.Run("staked total", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/participants/alice/staked")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeData[map[string]uint64](t, resp)
		assert.Equal(t, uint64(1_500_000), got["stakedTotal"])
	})

	t.Run("reward view keeps figures independent", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/participants/alice/rewards")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeData[services.RewardView](t, resp)
		assert.Equal(t, uint64(120_000), got.Pending)
		assert.Equal(t, uint64(60_000), got.Accruing)
	})

	t.Run("participant state", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/participants/alice/state")
		require.NoError(t, err)
		got := decodeData[map[string]string](t, resp)
		assert.Equal(t, "APPLIED", got["state"])
	})

	t.Run("missing pending claim is not found", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/participants/alice/pending-claim")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("params include owner", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/params")
		require.NoError(t, err)
		got := decodeData[map[string]any](t, resp)
		assert.Equal(t, "owner", got["owner"])
		assert.Equal(t, float64(86400), got["cooldownSeconds"])
	})

	t.Run("aggregate total", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/total-staked")
		require.NoError(t, err)
		got := decodeData[map[string]uint64](t, resp)
		assert.Equal(t, uint64(1_500_000), got["totalStaked"])
	})
}

func TestHandleParams(t *testing.T) {
	t.Run("set cooldown converts seconds", func(t *testing.T) {
		service := &fakeService{}
		ts := newTestServer(t, service, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/params/cooldown", map[string]any{
			"caller":          "owner",
			"cooldownSeconds": 3600,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "owner", service.lastCaller)
		assert.Equal(t, time.Hour, service.lastCooldown)
	})

	t.Run("non-owner rate change is forbidden", func(t *testing.T) {
		service := &fakeService{
			err: types.NewErrorWithMsg(http.StatusForbidden, types.Forbidden, "caller is not the owner"),
		}
		ts := newTestServer(t, service, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/params/rate", map[string]any{
			"caller":            "mallory",
			"annualRatePercent": 6,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("ownership renounce passes caller through", func(t *testing.T) {
		service := &fakeService{}
		ts := newTestServer(t, service, &fakeHealth{})

		resp := postJSON(t, ts.URL+"/v1/owner/renounce", map[string]any{"caller": "owner"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "owner", service.lastCaller)
	})
}

func TestHandleHealthcheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{}, &fakeHealth{})
		resp, err := http.Get(ts.URL + "/healthcheck")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unreachable database", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{}, &fakeHealth{err: errors.New("down")})
		resp, err := http.Get(ts.URL + "/healthcheck")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
