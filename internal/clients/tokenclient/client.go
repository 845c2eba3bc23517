package tokenclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
)

const (
	depositsPath    = "/api/v1/custody/deposits"
	withdrawalsPath = "/api/v1/custody/withdrawals"
	issuancesPath   = "/api/v1/rewards/issuances"
)

// Client talks to the external token service that holds custody of the base
// token and mints the reward token. Transfers are idempotent on the service
// side, so failed calls are retried with exponential backoff.
type Client struct {
	httpClient *http.Client
	cfg        *config.TokenServiceConfig
}

func NewClient(cfg *config.TokenServiceConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg: cfg,
	}
}

type transferRequest struct {
	Participant string `json:"participant"`
	Amount      uint64 `json:"amount"`
}

type transferResponse struct {
	TransferID string `json:"transfer_id"`
}

// TransferIn pulls the staked amount from the participant into custody.
func (c *Client) TransferIn(ctx context.Context, from string, amount uint64) error {
	_, err := clientCallWithRetry(ctx, func() (*transferResponse, error) {
		return c.post(ctx, depositsPath, &transferRequest{Participant: from, Amount: amount})
	}, c.cfg)
	if err != nil {
		return fmt.Errorf("deposit for %q failed: %w", from, err)
	}

	return nil
}

// TransferOut releases principal from custody back to the participant.
func (c *Client) TransferOut(ctx context.Context, to string, amount uint64) error {
	_, err := clientCallWithRetry(ctx, func() (*transferResponse, error) {
		return c.post(ctx, withdrawalsPath, &transferRequest{Participant: to, Amount: amount})
	}, c.cfg)
	if err != nil {
		return fmt.Errorf("withdrawal for %q failed: %w", to, err)
	}

	return nil
}

// Issue mints the reward token to the participant.
func (c *Client) Issue(ctx context.Context, to string, amount uint64) error {
	_, err := clientCallWithRetry(ctx, func() (*transferResponse, error) {
		return c.post(ctx, issuancesPath, &transferRequest{Participant: to, Amount: amount})
	}, c.cfg)
	if err != nil {
		return fmt.Errorf("reward issuance for %q failed: %w", to, err)
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, body *transferRequest) (*transferResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.cfg.Endpoint+path, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf(
			"token service returned %d for %s: %s", resp.StatusCode, path, string(errBody),
		)
	}

	var out transferResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return &out, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.TokenServiceConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("token service call failed, retrying with exponential backoff")
		}))
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
