// Package rules implements the fast-path category classifier: an ordered
// table of CEL predicates over the lowercased query. The first rule whose
// condition holds decides the category.
package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/aescanero/dago-query-router/internal/eval/cel"
	"go.uber.org/zap"
)

// Rule represents a CEL-based category rule
type Rule struct {
	Condition string          `json:"condition" yaml:"condition"`
	Target    domain.Category `json:"target" yaml:"target"`
}

// Match describes the rule that classified a query
type Match struct {
	Category  domain.Category
	Index     int
	Condition string
}

// Rules evaluates category rules in priority order
type Rules struct {
	rules     []Rule
	evaluator *cel.Evaluator
	logger    *zap.Logger
}

// KeywordCondition builds a condition that holds when the query contains any keyword.
// Keywords are lowercased since rules see the lowercased query.
func KeywordCondition(keywords ...string) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		terms = append(terms, fmt.Sprintf("%s.contains(%s)", cel.QueryVar, strconv.Quote(strings.ToLower(kw))))
	}
	return strings.Join(terms, " || ")
}

// New validates and compiles the rule table. An empty table is allowed and
// sends every query to the semantic classifier.
func New(ruleSet []Rule, evaluator *cel.Evaluator, logger *zap.Logger) (*Rules, error) {
	for i, rule := range ruleSet {
		if rule.Condition == "" {
			return nil, domain.Configuration(domain.StageStartup, "rule %d: condition is required", i)
		}
		if !rule.Target.Valid() {
			return nil, domain.Configuration(domain.StageStartup, "rule %d: unknown target category %q", i, rule.Target)
		}
		if err := evaluator.ValidateExpression(rule.Condition); err != nil {
			return nil, domain.Configuration(domain.StageStartup, "rule %d: invalid condition %q: %w", i, rule.Condition, err)
		}
	}

	return &Rules{
		rules:     append([]Rule(nil), ruleSet...),
		evaluator: evaluator,
		logger:    logger,
	}, nil
}

// Len returns the number of rules
func (r *Rules) Len() int { return len(r.rules) }

// Classify returns the category of the first matching rule. ok is false when
// no rule matched and the caller should fall back to semantic classification.
func (r *Rules) Classify(ctx context.Context, query string) (match Match, ok bool, err error) {
	vars := map[string]interface{}{
		cel.QueryVar: strings.ToLower(query),
	}

	for i, rule := range r.rules {
		r.logger.Debug("evaluating rule",
			zap.Int("rule_index", i),
			zap.String("condition", rule.Condition),
		)

		result, err := r.evaluator.Evaluate(ctx, rule.Condition, vars)
		if err != nil {
			return Match{}, false, domain.Configuration(domain.StageClassify, "rule %d: %w", i, err)
		}

		matched, isBool := result.(bool)
		if !isBool {
			return Match{}, false, domain.Configuration(domain.StageClassify, "rule %d: condition returned %T, want bool", i, result)
		}

		if matched {
			r.logger.Debug("rule matched",
				zap.Int("rule_index", i),
				zap.String("target", string(rule.Target)),
			)
			return Match{Category: rule.Target, Index: i, Condition: rule.Condition}, true, nil
		}
	}

	return Match{}, false, nil
}
