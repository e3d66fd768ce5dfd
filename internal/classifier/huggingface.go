package classifier

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

// DefaultHFModel is the zero-shot NLI model used when none is configured
const DefaultHFModel = "facebook/bart-large-mnli"

// HuggingFace is a ZeroShot backed by the Hugging Face inference API
type HuggingFace struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// HFOption configures a HuggingFace client
type HFOption func(*HuggingFace)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) HFOption {
	return func(h *HuggingFace) { h.httpClient = c }
}

// NewHuggingFace creates an inference API client for model under baseURL.
// token may be empty for public endpoints.
func NewHuggingFace(baseURL, model, token string, opts ...HFOption) *HuggingFace {
	if model == "" {
		model = DefaultHFModel
	}
	h := &HuggingFace{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template"`
	MultiLabel         bool     `json:"multi_label"`
}

// hfResponse is the classic pipeline shape: parallel label and score lists
type hfResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// Classify scores labels against text with the configured NLI model
func (h *HuggingFace) Classify(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]LabelScore, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			CandidateLabels:    labels,
			HypothesisTemplate: hypothesisTemplate,
			MultiLabel:         false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+h.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var apiErr hfError
		if json.Unmarshal(rb, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface status=%d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface status=%d body=%s", resp.StatusCode, preview(string(rb), 300))
	}

	return decodeHFScores(rb)
}

// decodeHFScores accepts both the {labels, scores} object and the newer
// [{label, score}] list returned by the inference API.
func decodeHFScores(data []byte) ([]LabelScore, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var scores []LabelScore
		if err := json.Unmarshal(trimmed, &scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores: %w", err)
		}
		return scores, nil
	}

	var out hfResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	if len(out.Labels) != len(out.Scores) {
		return nil, fmt.Errorf("mismatched labels (%d) and scores (%d)", len(out.Labels), len(out.Scores))
	}

	scores := make([]LabelScore, len(out.Labels))
	for i := range out.Labels {
		scores[i] = LabelScore{Label: out.Labels[i], Score: out.Scores[i]}
	}
	return scores, nil
}

// preview truncates long strings to n runes for error messages
func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
