package semantic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPScorer_Score(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/similarity", r.URL.Path)

		var req similarityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "job text", req.TextA)
		assert.Equal(t, "resume text", req.TextB)

		_ = json.NewEncoder(w).Encode(similarityResponse{Score: 0.82})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 0)
	score, err := scorer.Score(context.Background(), "job text", "resume text")

	require.NoError(t, err)
	assert.InDelta(t, 0.82, score, 0.0001)
}

func TestHTTPScorer_ClampsOutOfRangeScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(similarityResponse{Score: 1.7})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 0)
	score, err := scorer.Score(context.Background(), "a", "b")

	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 0.0001)
}

func TestHTTPScorer_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 0)
	_, err := scorer.Score(context.Background(), "a", "b")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPScorer_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 0)
	_, err := scorer.Score(context.Background(), "a", "b")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPScorer_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(similarityResponse{Score: 0.5})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 20*time.Millisecond)
	_, err := scorer.Score(context.Background(), "a", "b")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPScorer_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorer := NewHTTPScorer(srv.URL, 0)
	_, err := scorer.Score(ctx, "a", "b")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
