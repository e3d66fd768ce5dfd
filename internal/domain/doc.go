// Package domain defines the types shared by the query routing components:
// the closed category set, handlers, routing results and the typed errors
// returned by the pipeline.
package domain
