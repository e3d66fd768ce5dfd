// Package cel provides a CEL (Common Expression Language) evaluator for category rules.
//
// CEL is a non-Turing complete expression language that provides fast, safe evaluation
// of conditions. Rules are evaluated against a single string variable, query, holding
// the lowercased client query.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	if err := evaluator.ValidateExpression(`query.contains("invoice")`); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := evaluator.Evaluate(ctx, `query.contains("invoice")`, map[string]interface{}{
//	    "query": "where is my invoice?",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := result.(bool) // true
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Size: size(query)
package cel
