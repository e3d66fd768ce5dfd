// Package router implements the query routing pipeline.
//
// A query is classified by the hybrid strategy: fast CEL category rules are
// evaluated in priority order, and only when none matches is the semantic
// (zero-shot) classifier consulted with the full category label set. The
// category then selects a team and remediation suggestions, the handler pool
// assigns the least loaded handler, and the urgency detector flags the query.
//
// Example:
//
//	r, err := router.NewRouter(categoryRules, semantic, cat, pool, detector, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := r.Route(ctx, "Ann", "ann@co.com", "I cannot access my account")
//	// result.Category == "Account Access Issue", result.Team == "Team A", result.Urgent == true
//
// Errors are *domain.Error values: InvalidInput for empty fields,
// ClassifierUnavailable when the semantic classifier fails, and
// ConfigurationError for a corrupted catalog. Each carries the failing stage.
package router
