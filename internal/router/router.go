package router

import (
	"context"
	"strings"
	"time"

	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/aescanero/dago-query-router/internal/rules"
	"go.uber.org/zap"
)

// CategoryRules is the deterministic fast path
type CategoryRules interface {
	Classify(ctx context.Context, query string) (rules.Match, bool, error)
}

// SemanticClassifier resolves any query to one of labels
type SemanticClassifier interface {
	Classify(ctx context.Context, query string, labels []domain.Category) (domain.Category, error)
}

// Catalog provides the static per-category lookups
type Catalog interface {
	Labels() []domain.Category
	TeamFor(category domain.Category) (string, error)
	SuggestionsFor(category domain.Category) ([]string, error)
}

// HandlerPool hands out the next handler
type HandlerPool interface {
	Assign() domain.Handler
}

// UrgencyDetector flags urgent queries
type UrgencyDetector interface {
	IsUrgent(query string) bool
}

// Router handles routing decisions
type Router struct {
	rules    CategoryRules
	semantic SemanticClassifier
	catalog  Catalog
	pool     HandlerPool
	urgency  UrgencyDetector
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Router
type Option func(*Router)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// NewRouter creates a new router. All collaborators are required.
func NewRouter(
	categoryRules CategoryRules,
	semantic SemanticClassifier,
	catalog Catalog,
	pool HandlerPool,
	urgency UrgencyDetector,
	logger *zap.Logger,
	opts ...Option,
) (*Router, error) {
	switch {
	case categoryRules == nil:
		return nil, domain.Configuration(domain.StageStartup, "category rules are required")
	case semantic == nil:
		return nil, domain.Configuration(domain.StageStartup, "semantic classifier is required")
	case catalog == nil:
		return nil, domain.Configuration(domain.StageStartup, "catalog is required")
	case pool == nil:
		return nil, domain.Configuration(domain.StageStartup, "handler pool is required")
	case urgency == nil:
		return nil, domain.Configuration(domain.StageStartup, "urgency detector is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Router{
		rules:    categoryRules,
		semantic: semantic,
		catalog:  catalog,
		pool:     pool,
		urgency:  urgency,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Route classifies a client query and assigns it to a team and handler
func (r *Router) Route(ctx context.Context, employeeName, employeeEmail, query string) (*domain.RoutingResult, error) {
	employeeName = strings.TrimSpace(employeeName)
	employeeEmail = strings.TrimSpace(employeeEmail)
	query = strings.TrimSpace(query)

	if err := validate(employeeName, employeeEmail, query); err != nil {
		r.logger.Debug("rejected routing request", zap.Error(err))
		return nil, err
	}

	decision, err := r.classify(ctx, query)
	if err != nil {
		r.logger.Error("classification failed",
			zap.String("kind", string(domain.KindOf(err))),
			zap.Error(err),
		)
		return nil, err
	}

	team, err := r.catalog.TeamFor(decision.category)
	if err != nil {
		return nil, r.fail(domain.StageTeam, err)
	}

	handler := r.pool.Assign()

	urgent := r.urgency.IsUrgent(query)

	suggestions, err := r.catalog.SuggestionsFor(decision.category)
	if err != nil {
		return nil, r.fail(domain.StageSuggest, err)
	}

	result := &domain.RoutingResult{
		EmployeeName:  employeeName,
		EmployeeEmail: employeeEmail,
		Query:         query,
		Category:      decision.category,
		Team:          team,
		Handler:       handler,
		Timestamp:     r.now(),
		Urgent:        urgent,
		Suggestions:   suggestions,
		Path:          decision.path,
		MatchedRule:   decision.ruleIndex,
	}

	r.logger.Info("routing decision",
		zap.String("category", string(result.Category)),
		zap.String("team", result.Team),
		zap.String("handler", result.Handler.Name),
		zap.Int("handler_load", result.Handler.Load),
		zap.Bool("urgent", result.Urgent),
		zap.String("path", string(result.Path)),
	)

	return result, nil
}

// validate checks the required fields, query first
func validate(employeeName, employeeEmail, query string) error {
	if query == "" {
		return domain.InvalidInput("query is required")
	}
	if employeeName == "" {
		return domain.InvalidInput("employee name is required")
	}
	if employeeEmail == "" {
		return domain.InvalidInput("employee email is required")
	}
	return nil
}

func (r *Router) fail(stage domain.Stage, err error) error {
	e := domain.WithStage(stage, err)
	r.logger.Error("routing failed",
		zap.String("stage", string(stage)),
		zap.String("kind", string(e.Kind)),
		zap.Error(e.Err),
	)
	return e
}
