// Package mlclient is the HTTP client for the model-serving sidecar that
// hosts the trained department, fallback and distress classifiers. Each
// model returns a probability vector over its fixed label set. The sidecar
// being down is an expected condition: callers degrade to keyword-only
// operation.
package mlclient

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dhruva-pgrs/triage/internal/mltransport"
)

// ErrUnavailable indicates the model service is unreachable.
var ErrUnavailable = errors.New("model service unavailable")

// Model names served by the sidecar.
const (
	ModelDepartment         = "department"
	ModelDepartmentFallback = "department_fallback"
	ModelDistress           = "distress"
)

// Client is an HTTP client for the model sidecar.
type Client struct {
	baseURL string
}

// PredictResponse is the probability vector returned by /predict. Labels
// and Probabilities are parallel slices.
type PredictResponse struct {
	Labels        []string  `json:"labels"`
	Probabilities []float64 `json:"probabilities"`
	ModelVersion  string    `json:"model_version,omitempty"`
}

// Best returns the arg-max label and its raw probability. ok is false when
// the vector is empty or malformed.
func (r *PredictResponse) Best() (label string, prob float64, ok bool) {
	if len(r.Labels) == 0 || len(r.Labels) != len(r.Probabilities) {
		return "", 0, false
	}
	best := 0
	for i, p := range r.Probabilities {
		if p > r.Probabilities[best] {
			best = i
		}
	}
	return r.Labels[best], r.Probabilities[best], true
}

// Top returns up to k (label, probability) pairs sorted by probability
// descending.
func (r *PredictResponse) Top(k int) []struct {
	Label string
	Prob  float64
} {
	if len(r.Labels) != len(r.Probabilities) {
		return nil
	}
	pairs := make([]struct {
		Label string
		Prob  float64
	}, len(r.Labels))
	for i := range r.Labels {
		pairs[i].Label = r.Labels[i]
		pairs[i].Prob = r.Probabilities[i]
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Prob > pairs[j].Prob })
	if k > 0 && len(pairs) > k {
		pairs = pairs[:k]
	}
	return pairs
}

// NewClient creates a new model sidecar client.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// Predict requests a probability vector from the named model for text.
func (c *Client) Predict(ctx context.Context, model, text string) (*PredictResponse, error) {
	req := &mltransport.PredictRequest{Model: model, Text: text}
	var result PredictResponse
	if err := mltransport.DoPredict(ctx, c.baseURL, req, &result); err != nil {
		return nil, fmt.Errorf("predict %s: %w", model, err)
	}
	return &result, nil
}

// Health checks if the model service is healthy.
func (c *Client) Health(ctx context.Context) error {
	reachable, err := mltransport.DoHealth(ctx, c.baseURL)
	if err != nil {
		if !reachable {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	return nil
}
