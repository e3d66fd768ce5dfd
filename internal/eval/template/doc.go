// Package template provides a Handlebars template engine for rendering classifier prompts.
//
// The engine supports Handlebars syntax with custom helpers for common operations.
// Use triple braces for free text such as the client query: double braces HTML-escape
// their output.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	data := map[string]interface{}{
//	    "query":  "I cannot log in",
//	    "labels": []string{"Account Access Issue", "General Feedback"},
//	}
//
//	tmpl := "Query: {{{query}}}\n{{#each labels}}{{inc @index}}. {{this}}\n{{/each}}"
//	result, err := engine.Render(tmpl, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Query: I cannot log in
//	//         1. Account Access Issue
//	//         2. General Feedback
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is empty
//   - inc - Add one to an integer (1-based numbering of @index)
//   - hypothesis - Substitute a label into a zero-shot hypothesis template ("{}" placeholder)
//   - json - Render a value as a JSON literal
//   - join - Join array elements with separator
package template
