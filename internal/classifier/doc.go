// Package classifier implements the semantic fallback used when no category
// rule matches a query.
//
// Semantic wraps a ZeroShot capability: a classifier that scores arbitrary
// candidate labels against a text using a hypothesis template such as
// "This text is about {}.". Semantic always resolves to exactly one label of
// the candidate set (the highest score, earliest label on ties) and reports
// any capability failure as a ClassifierUnavailable error. It never retries.
//
// Two ZeroShot implementations are provided:
//   - HuggingFace calls the Hugging Face inference API (facebook/bart-large-mnli by default)
//   - LLMZeroShot asks a general purpose LLM to score the labels, through a
//     Handlebars prompt rendered with the template engine
//
// Example usage:
//
//	zs := classifier.NewHuggingFace(cfg.HFAPIURL, cfg.HFModel, cfg.HFAPIToken)
//	semantic := classifier.NewSemantic(zs, "This text is about {}.", logger)
//
//	category, err := semantic.Classify(ctx, "The app looks nice today", domain.Categories())
package classifier
