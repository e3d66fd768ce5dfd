package router

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-query-router/internal/domain"
	"go.uber.org/zap"
)

type classification struct {
	category  domain.Category
	path      domain.ClassificationPath
	ruleIndex int
}

// classify performs hybrid classification: fast CEL rules with semantic fallback
func (r *Router) classify(ctx context.Context, query string) (classification, error) {
	// Phase 1: fast rules
	match, ok, err := r.rules.Classify(ctx, query)
	if err != nil {
		return classification{}, domain.WithStage(domain.StageClassify, err)
	}

	if ok {
		r.logger.Debug("fast rule matched",
			zap.Int("rule_index", match.Index),
			zap.String("category", string(match.Category)),
		)
		return classification{category: match.Category, path: domain.PathRule, ruleIndex: match.Index}, nil
	}

	// Phase 2: no rule matched, ask the semantic classifier with the full label set
	r.logger.Debug("fast rules did not match, trying semantic classifier")

	category, err := r.semantic.Classify(ctx, query, r.catalog.Labels())
	if err != nil {
		if domain.KindOf(err) == "" {
			return classification{}, domain.ClassifierUnavailable(err)
		}
		return classification{}, domain.WithStage(domain.StageClassify, err)
	}

	if !category.Valid() {
		return classification{}, domain.ClassifierUnavailable(
			fmt.Errorf("semantic classifier returned unknown category %q", category),
		)
	}

	return classification{category: category, path: domain.PathSemantic, ruleIndex: -1}, nil
}
