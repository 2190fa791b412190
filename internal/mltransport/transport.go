// Package mltransport provides the shared HTTP plumbing for the model
// sidecar: request encoding, per-call timeout, and retry with backoff.
// Retries wrap only this network call, never the deterministic keyword and
// rule logic upstream.
package mltransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	maxAttempts    = 3
	baseBackoff    = 200 * time.Millisecond
)

// PredictRequest is the request body for POST /predict.
type PredictRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// DoPredict sends POST /predict to baseURL, decoding the response into
// respPtr. Transient failures (network errors, 5xx) are retried with
// exponential backoff; 4xx responses fail immediately.
func DoPredict(ctx context.Context, baseURL string, req *PredictRequest, respPtr any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		retryable, err := doPredictOnce(ctx, baseURL, body, respPtr)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

func doPredictOnce(ctx context.Context, baseURL string, body []byte, respPtr any) (retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: defaultTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return true, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError:
		return true, fmt.Errorf("model service returned %d", resp.StatusCode)
	default:
		return false, fmt.Errorf("model service returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(respPtr); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

// DoHealth sends GET /health. reachable is false when the service could
// not be contacted at all.
func DoHealth(ctx context.Context, baseURL string) (reachable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}

	client := &http.Client{Timeout: defaultTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true, fmt.Errorf("model service returned %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return true, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}
