package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aescanero/dago-query-router/internal/catalog"
	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/aescanero/dago-query-router/internal/rules"
)

//go:embed routing.yaml
var defaultRouting []byte

// Routing is the routing catalog document
type Routing struct {
	Categories      []CategorySpec `yaml:"categories"`
	Rules           []RuleSpec     `yaml:"rules"`
	UrgencyKeywords []string       `yaml:"urgency_keywords"`
	Handlers        []HandlerSpec  `yaml:"handlers"`
}

// CategorySpec maps a category to its team and suggestions
type CategorySpec struct {
	Name        string   `yaml:"name"`
	Team        string   `yaml:"team"`
	Suggestions []string `yaml:"suggestions"`
}

// RuleSpec is one category rule. Exactly one of Keywords or Condition is set;
// Condition is a raw CEL expression over the lowercased `query`.
type RuleSpec struct {
	Category  string   `yaml:"category"`
	Keywords  []string `yaml:"keywords,omitempty"`
	Condition string   `yaml:"condition,omitempty"`
}

// HandlerSpec is a client handler of the pool
type HandlerSpec struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// LoadRouting reads the routing catalog at path, or the embedded default
// when path is empty. Every failure is a ConfigurationError.
func LoadRouting(path string) (*Routing, error) {
	data := defaultRouting
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.Configuration(domain.StageStartup, "failed to read routing file: %w", err)
		}
		data = b
	}
	return ParseRouting(data)
}

// ParseRouting decodes and validates a routing catalog document
func ParseRouting(data []byte) (*Routing, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Routing
	if err := dec.Decode(&r); err != nil {
		return nil, domain.Configuration(domain.StageStartup, "failed to parse routing file: %w", err)
	}

	if err := r.Validate(); err != nil {
		return nil, domain.Configuration(domain.StageStartup, "invalid routing file: %w", err)
	}

	return &r, nil
}

// Validate checks the document shape. Semantic checks (closed category set,
// CEL compilation) happen when the components are built.
func (r *Routing) Validate() error {
	if len(r.Categories) == 0 {
		return fmt.Errorf("categories are required")
	}

	for i, rule := range r.Rules {
		if rule.Category == "" {
			return fmt.Errorf("rule %d: category is required", i)
		}
		hasKeywords := len(rule.Keywords) > 0
		hasCondition := strings.TrimSpace(rule.Condition) != ""
		if hasKeywords == hasCondition {
			return fmt.Errorf("rule %d: exactly one of keywords or condition is required", i)
		}
		for j, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("rule %d: keyword %d is empty", i, j)
			}
		}
	}

	if len(r.UrgencyKeywords) == 0 {
		return fmt.Errorf("urgency_keywords are required")
	}

	if len(r.Handlers) == 0 {
		return fmt.Errorf("at least one handler is required")
	}

	return nil
}

// CatalogEntries converts the category section for catalog.New
func (r *Routing) CatalogEntries() []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(r.Categories))
	for _, c := range r.Categories {
		entries = append(entries, catalog.Entry{
			Category:    domain.Category(c.Name),
			Team:        c.Team,
			Suggestions: c.Suggestions,
		})
	}
	return entries
}

// CategoryRules converts the rule section, in priority order, for rules.New
func (r *Routing) CategoryRules() []rules.Rule {
	out := make([]rules.Rule, 0, len(r.Rules))
	for _, spec := range r.Rules {
		condition := spec.Condition
		if condition == "" {
			condition = rules.KeywordCondition(spec.Keywords...)
		}
		out = append(out, rules.Rule{
			Condition: condition,
			Target:    domain.Category(spec.Category),
		})
	}
	return out
}

// PoolHandlers converts the handler section, in registration order, for handler.NewPool
func (r *Routing) PoolHandlers() []domain.Handler {
	out := make([]domain.Handler, 0, len(r.Handlers))
	for _, h := range r.Handlers {
		out = append(out, domain.Handler{Name: h.Name, Email: h.Email})
	}
	return out
}
