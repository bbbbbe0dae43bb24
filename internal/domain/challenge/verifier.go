// Package challenge verifies human verification challenge responses
// against the external verification service.
package challenge

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/logging"
)

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verifier posts challenge responses to the verification endpoint.
// Every failure mode, transport errors included, counts as not passed.
type Verifier struct {
	client    *resty.Client
	secret    string
	verifyURL string
	logger    *logging.Logger
}

func NewVerifier(cfg config.ChallengeConfig, logger *logging.Logger) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{
		client:    resty.New().SetTimeout(timeout),
		secret:    cfg.Secret,
		verifyURL: cfg.VerifyURL,
		logger:    logger,
	}
}

// Verify checks one challenge response token. An empty token fails
// without a network round trip.
func (v *Verifier) Verify(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	var result verifyResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   v.secret,
			"response": token,
		}).
		SetResult(&result).
		Post(v.verifyURL)
	if err != nil {
		v.logger.Warn("challenge verification request failed: %v", err)
		return false
	}
	if resp.StatusCode() != 200 {
		v.logger.Warn("challenge verification returned status %d", resp.StatusCode())
		return false
	}
	if !result.Success {
		v.logger.Debug("challenge verification rejected: %v", result.ErrorCodes)
	}
	return result.Success
}
