package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the default per-call timeout for the similarity service.
const DefaultTimeout = 10 * time.Second

// HTTPScorer calls an external similarity service over HTTP. The service
// accepts POST /similarity with {"text_a": ..., "text_b": ...} and responds
// with {"score": <float>}.
type HTTPScorer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPScorer creates a scorer for the similarity service at baseURL.
// A non-positive timeout falls back to DefaultTimeout.
func NewHTTPScorer(baseURL string, timeout time.Duration) *HTTPScorer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPScorer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type similarityRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

type similarityResponse struct {
	Score float64 `json:"score"`
}

// Score implements Scorer. Failures of any kind wrap ErrUnavailable so
// callers can degrade uniformly.
func (s *HTTPScorer) Score(ctx context.Context, textA, textB string) (float64, error) {
	body, err := json.Marshal(similarityRequest{TextA: textA, TextB: textB})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal similarity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/similarity", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create similarity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: HTTP status %d", ErrUnavailable, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var result similarityResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}

	return clampScore(result.Score), nil
}
