package classifier

import (
	"context"
	"fmt"
	"math"

	"github.com/aescanero/dago-query-router/internal/domain"
	"go.uber.org/zap"
)

// DefaultHypothesisTemplate is the zero-shot hypothesis used for categories
const DefaultHypothesisTemplate = "This text is about {}."

// LabelScore is one scored candidate label
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ZeroShot scores candidate labels against a text
type ZeroShot interface {
	Classify(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]LabelScore, error)
}

// Semantic resolves a query to one category through a ZeroShot capability
type Semantic struct {
	zeroShot           ZeroShot
	hypothesisTemplate string
	logger             *zap.Logger
}

// NewSemantic creates a semantic classifier. An empty template selects
// DefaultHypothesisTemplate.
func NewSemantic(zeroShot ZeroShot, hypothesisTemplate string, logger *zap.Logger) *Semantic {
	if hypothesisTemplate == "" {
		hypothesisTemplate = DefaultHypothesisTemplate
	}
	return &Semantic{
		zeroShot:           zeroShot,
		hypothesisTemplate: hypothesisTemplate,
		logger:             logger,
	}
}

// Classify returns the highest scoring category among labels. There is no
// confidence threshold: a low score still yields a category.
func (s *Semantic) Classify(ctx context.Context, query string, labels []domain.Category) (domain.Category, error) {
	if len(labels) == 0 {
		return "", domain.Configuration(domain.StageClassify, "empty label set")
	}

	scores, err := s.zeroShot.Classify(ctx, query, domain.CategoryLabels(labels), s.hypothesisTemplate)
	if err != nil {
		return "", domain.ClassifierUnavailable(err)
	}

	category, score, err := top(scores, labels)
	if err != nil {
		return "", domain.ClassifierUnavailable(err)
	}

	s.logger.Debug("semantic classification",
		zap.String("category", string(category)),
		zap.Float64("score", score),
		zap.Int("num_scores", len(scores)),
	)

	return category, nil
}

// top picks the best score; ties go to the label listed first in labels
func top(scores []LabelScore, labels []domain.Category) (domain.Category, float64, error) {
	if len(scores) == 0 {
		return "", 0, fmt.Errorf("classifier returned no scores")
	}

	position := make(map[string]int, len(labels))
	for i, l := range labels {
		position[string(l)] = i
	}

	best := -1
	bestScore := math.Inf(-1)
	for _, s := range scores {
		idx, ok := position[s.Label]
		if !ok {
			return "", 0, fmt.Errorf("classifier returned unknown label %q", s.Label)
		}
		if math.IsNaN(s.Score) {
			continue
		}
		if s.Score > bestScore || (s.Score == bestScore && idx < best) {
			best = idx
			bestScore = s.Score
		}
	}

	if best < 0 {
		return "", 0, fmt.Errorf("classifier returned no usable scores")
	}

	return labels[best], bestScore, nil
}
