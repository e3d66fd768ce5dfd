package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	dagodomain "github.com/aescanero/dago-libs/pkg/domain"
	"github.com/aescanero/dago-libs/pkg/ports"
	"github.com/aescanero/dago-query-router/internal/eval/template"
	"go.uber.org/zap"
)

// DefaultPrompt asks the model to score each hypothesis. Rendered with
// query, labels and hypotheses.
const DefaultPrompt = `You are a zero-shot text classifier for client support queries.
For each hypothesis, give a score between 0 and 1 for how strongly the text supports it.
The scores must sum to 1.

Text: {{json query}}

Hypotheses:
{{#each hypotheses}}{{inc @index}}. {{{this}}}
{{/each}}
Reply with ONLY a JSON array with one object per label, for example:
[{"label": "<label>", "score": 0.5}]

Labels: {{json labels}}`

// Completer sends a prompt to a language model and returns its reply
type Completer func(ctx context.Context, prompt string) (string, error)

// FromLLMClient adapts a dago LLM client to a Completer
func FromLLMClient(client ports.LLMClient, model string, maxTokens int) Completer {
	return func(ctx context.Context, prompt string) (string, error) {
		req := &dagodomain.LLMRequest{
			Model: model,
			Messages: []dagodomain.Message{
				{
					Role:    "user",
					Content: prompt,
				},
			},
			MaxTokens: maxTokens,
		}

		respInterface, err := client.GenerateCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("llm completion failed: %w", err)
		}

		resp, ok := respInterface.(*dagodomain.LLMResponse)
		if !ok {
			return "", fmt.Errorf("unexpected response type from LLM")
		}

		return resp.Content, nil
	}
}

// LLMZeroShot is a ZeroShot that delegates scoring to a language model
type LLMZeroShot struct {
	complete Completer
	engine   *template.Engine
	prompt   string
	logger   *zap.Logger
}

// NewLLMZeroShot creates an LLM-backed zero-shot classifier using DefaultPrompt
func NewLLMZeroShot(complete Completer, logger *zap.Logger) *LLMZeroShot {
	return &LLMZeroShot{
		complete: complete,
		engine:   template.NewEngine(),
		prompt:   DefaultPrompt,
		logger:   logger,
	}
}

// Classify renders the prompt, calls the model and parses its scores
func (l *LLMZeroShot) Classify(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]LabelScore, error) {
	hypotheses := make([]string, len(labels))
	for i, label := range labels {
		hypotheses[i] = template.Hypothesis(hypothesisTemplate, label)
	}

	prompt, err := l.engine.Render(l.prompt, map[string]interface{}{
		"query":      text,
		"labels":     labels,
		"hypotheses": hypotheses,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	l.logger.Debug("calling llm for zero-shot classification",
		zap.Int("num_labels", len(labels)),
	)

	response, err := l.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("llm response received",
		zap.String("response", response),
	)

	return parseLLMScores(response, labels)
}

// parseLLMScores reads a JSON score array. When the model ignored the format
// and answered with a bare label, that label gets the full score.
func parseLLMScores(response string, labels []string) ([]LabelScore, error) {
	body := strings.TrimSpace(stripCodeFences(response))

	var scores []LabelScore
	if err := json.Unmarshal([]byte(body), &scores); err == nil && len(scores) > 0 {
		for i := range scores {
			scores[i].Label = canonicalLabel(scores[i].Label, labels)
		}
		return scores, nil
	}

	label, ok := matchLabel(body, labels)
	if !ok {
		return nil, fmt.Errorf("llm response did not match any label: %q", preview(response, 120))
	}
	return []LabelScore{{Label: label, Score: 1}}, nil
}

// canonicalLabel maps a case-variant label back to its exact spelling
func canonicalLabel(label string, labels []string) string {
	for _, l := range labels {
		if strings.EqualFold(strings.TrimSpace(label), l) {
			return l
		}
	}
	return label
}

// matchLabel matches a free-text response to a label: exact first, then
// case-insensitive, then the first label the response contains
func matchLabel(response string, labels []string) (string, bool) {
	normalized := strings.TrimSpace(strings.Trim(strings.TrimSpace(response), `."'`))

	for _, l := range labels {
		if l == normalized {
			return l, true
		}
	}

	for _, l := range labels {
		if strings.EqualFold(l, normalized) {
			return l, true
		}
	}

	lower := strings.ToLower(normalized)
	for _, l := range labels {
		if strings.Contains(lower, strings.ToLower(l)) {
			return l, true
		}
	}

	return "", false
}

// stripCodeFences removes a surrounding markdown code block
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
