// Package pipeline assembles the routing pipeline from configuration.
package pipeline

import (
	"fmt"
	"net/http"

	"github.com/aescanero/dago-adapters/pkg/llm"
	"github.com/aescanero/dago-query-router/internal/catalog"
	"github.com/aescanero/dago-query-router/internal/classifier"
	"github.com/aescanero/dago-query-router/internal/config"
	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/aescanero/dago-query-router/internal/eval/cel"
	"github.com/aescanero/dago-query-router/internal/handler"
	"github.com/aescanero/dago-query-router/internal/router"
	"github.com/aescanero/dago-query-router/internal/rules"
	"github.com/aescanero/dago-query-router/internal/urgency"
	"go.uber.org/zap"
)

// llmMaxTokens bounds the scoring reply, which is a short JSON array
const llmMaxTokens = 512

// Pipeline holds the router and the collaborators shells need to inspect
type Pipeline struct {
	Router  *router.Router
	Pool    *handler.Pool
	Catalog *catalog.Catalog
	Rules   *rules.Rules
}

// Build loads the routing file named by cfg and wires the router around zeroShot
func Build(cfg *config.Config, zeroShot classifier.ZeroShot, logger *zap.Logger) (*Pipeline, error) {
	routing, err := config.LoadRouting(cfg.RoutingFile)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(routing.CatalogEntries())
	if err != nil {
		return nil, err
	}

	categoryRules, err := rules.New(routing.CategoryRules(), cel.NewEvaluator(), logger)
	if err != nil {
		return nil, err
	}

	pool, err := handler.NewPool(routing.PoolHandlers())
	if err != nil {
		return nil, err
	}

	detector, err := urgency.New(routing.UrgencyKeywords)
	if err != nil {
		return nil, err
	}

	semantic := classifier.NewSemantic(zeroShot, cfg.HypothesisTemplate, logger)

	r, err := router.NewRouter(categoryRules, semantic, cat, pool, detector, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("routing pipeline initialized",
		zap.Int("rules", categoryRules.Len()),
		zap.Int("handlers", pool.Len()),
		zap.String("classifier", cfg.ClassifierProvider),
	)

	return &Pipeline{
		Router:  r,
		Pool:    pool,
		Catalog: cat,
		Rules:   categoryRules,
	}, nil
}

// NewZeroShot builds the zero-shot capability selected by CLASSIFIER_PROVIDER
func NewZeroShot(cfg *config.Config, logger *zap.Logger) (classifier.ZeroShot, error) {
	switch cfg.ClassifierProvider {
	case config.ProviderHuggingFace:
		if cfg.HFAPIToken == "" {
			logger.Warn("hf api token not provided (anonymous inference is rate limited)")
		}
		return classifier.NewHuggingFace(cfg.HFAPIURL, cfg.HFModel, cfg.HFAPIToken,
			classifier.WithHTTPClient(&http.Client{Timeout: cfg.ClassifierTimeout}),
		), nil

	case config.ProviderLLM:
		if cfg.LLMAPIKey == "" {
			return nil, domain.Configuration(domain.StageStartup, "LLM_API_KEY is required when CLASSIFIER_PROVIDER=llm")
		}
		client, err := llm.NewClient(&llm.Config{
			Provider: cfg.LLMProvider,
			APIKey:   cfg.LLMAPIKey,
			Logger:   logger,
		})
		if err != nil {
			return nil, domain.Configuration(domain.StageStartup, "failed to initialize llm client: %w", err)
		}
		logger.Info("llm client initialized",
			zap.String("provider", cfg.LLMProvider),
			zap.String("model", cfg.LLMModel),
		)
		return classifier.NewLLMZeroShot(classifier.FromLLMClient(client, cfg.LLMModel, llmMaxTokens), logger), nil

	default:
		return nil, domain.Configuration(domain.StageStartup, "unknown classifier provider %q", cfg.ClassifierProvider)
	}
}

// Describe renders the pipeline composition for startup logs
func (p *Pipeline) Describe() string {
	return fmt.Sprintf("rules=%d categories=%d handlers=%d", p.Rules.Len(), len(p.Catalog.Labels()), p.Pool.Len())
}
