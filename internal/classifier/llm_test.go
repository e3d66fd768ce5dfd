package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testLabels = []string{"Account Access Issue", "Feature Request", "General Feedback"}

func TestLLMZeroShotPrompt(t *testing.T) {
	var prompt string
	complete := func(ctx context.Context, p string) (string, error) {
		prompt = p
		return `[{"label":"General Feedback","score":0.9},{"label":"Feature Request","score":0.1}]`, nil
	}

	zs := NewLLMZeroShot(complete, zap.NewNop())
	scores, err := zs.Classify(context.Background(), `It's "fine"`, testLabels, DefaultHypothesisTemplate)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, LabelScore{Label: "General Feedback", Score: 0.9}, scores[0])

	assert.Contains(t, prompt, `Text: "It's \"fine\""`)
	assert.Contains(t, prompt, "1. This text is about Account Access Issue.\n")
	assert.Contains(t, prompt, "3. This text is about General Feedback.\n")
	assert.Contains(t, prompt, `Labels: ["Account Access Issue","Feature Request","General Feedback"]`)
}

func TestLLMZeroShotCompleterError(t *testing.T) {
	cause := errors.New("rate limited")
	zs := NewLLMZeroShot(func(ctx context.Context, p string) (string, error) { return "", cause }, zap.NewNop())

	_, err := zs.Classify(context.Background(), "x", testLabels, DefaultHypothesisTemplate)
	assert.ErrorIs(t, err, cause)
}

func TestParseLLMScores(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []LabelScore
	}{
		{
			name:     "json array",
			response: `[{"label":"Feature Request","score":0.7},{"label":"General Feedback","score":0.3}]`,
			want:     []LabelScore{{"Feature Request", 0.7}, {"General Feedback", 0.3}},
		},
		{
			name:     "fenced json with case drift",
			response: "```json\n[{\"label\":\"feature request\",\"score\":1}]\n```",
			want:     []LabelScore{{"Feature Request", 1}},
		},
		{
			name:     "bare label",
			response: "General Feedback.",
			want:     []LabelScore{{"General Feedback", 1}},
		},
		{
			name:     "case insensitive label",
			response: "  account access issue ",
			want:     []LabelScore{{"Account Access Issue", 1}},
		},
		{
			name:     "label inside sentence",
			response: "This is clearly a Feature Request from the client",
			want:     []LabelScore{{"Feature Request", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLLMScores(tt.response, testLabels)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLLMScoresNoMatch(t *testing.T) {
	_, err := parseLLMScores("I am not sure", testLabels)
	assert.Error(t, err)
}

func TestSemanticOverLLM(t *testing.T) {
	complete := func(ctx context.Context, p string) (string, error) {
		return "General Feedback", nil
	}
	s := NewSemantic(NewLLMZeroShot(complete, zap.NewNop()), "", zap.NewNop())

	got, err := s.Classify(context.Background(), "The app looks nice today", domain.Categories())
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFeedback, got)
}
