package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceClassify(t *testing.T) {
	var got hfRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/facebook/bart-large-mnli", r.URL.Path)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(hfResponse{
			Sequence: got.Inputs,
			Labels:   []string{"General Feedback", "Feature Request"},
			Scores:   []float64{0.8, 0.2},
		})
	}))
	defer server.Close()

	hf := NewHuggingFace(server.URL+"/models/", "", "hf-token", WithHTTPClient(server.Client()))
	scores, err := hf.Classify(context.Background(), "The app looks nice today",
		[]string{"Feature Request", "General Feedback"}, DefaultHypothesisTemplate)
	require.NoError(t, err)

	assert.Equal(t, []LabelScore{
		{Label: "General Feedback", Score: 0.8},
		{Label: "Feature Request", Score: 0.2},
	}, scores)

	assert.Equal(t, "The app looks nice today", got.Inputs)
	assert.Equal(t, []string{"Feature Request", "General Feedback"}, got.Parameters.CandidateLabels)
	assert.Equal(t, "This text is about {}.", got.Parameters.HypothesisTemplate)
	assert.False(t, got.Parameters.MultiLabel)
}

func TestHuggingFaceListResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[{"label":"Feature Request","score":0.7},{"label":"General Feedback","score":0.3}]`))
	}))
	defer server.Close()

	hf := NewHuggingFace(server.URL, "my/model", "", WithHTTPClient(server.Client()))
	scores, err := hf.Classify(context.Background(), "add dark mode", []string{"Feature Request", "General Feedback"}, DefaultHypothesisTemplate)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "Feature Request", scores[0].Label)
}

func TestHuggingFaceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading","estimated_time":20}`, "Model is currently loading"},
		{"plain error", http.StatusBadGateway, `upstream down`, "status=502"},
		{"mismatched", http.StatusOK, `{"labels":["a","b"],"scores":[1]}`, "mismatched"},
		{"garbage", http.StatusOK, `not json`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			hf := NewHuggingFace(server.URL, DefaultHFModel, "", WithHTTPClient(server.Client()))
			_, err := hf.Classify(context.Background(), "x", []string{"a", "b"}, DefaultHypothesisTemplate)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestHuggingFaceCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hf := NewHuggingFace(server.URL, DefaultHFModel, "", WithHTTPClient(server.Client()))
	_, err := hf.Classify(ctx, "x", []string{"a"}, DefaultHypothesisTemplate)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreviewKeepsRunesWhole(t *testing.T) {
	got := preview("  modèle indisponible  ", 4)
	assert.Equal(t, "modè…", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "short", preview("short", 10))
}
