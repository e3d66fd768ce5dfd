// Package handler assigns routed queries to client handlers.
//
// The pool is a fixed set of handlers, each with a load counter. Assign picks
// the handler with the lowest load, breaking ties by registration order, and
// increments its counter under the same lock so concurrent callers never act
// on the same snapshot.
package handler

import (
	"strings"
	"sync"
	"unicode"

	"github.com/aescanero/dago-query-router/internal/domain"
)

// Pool is a load-balanced set of handlers
type Pool struct {
	mu       sync.Mutex
	handlers []domain.Handler
}

// NewPool creates a pool in registration order. Loads start at zero.
func NewPool(handlers []domain.Handler) (*Pool, error) {
	if len(handlers) == 0 {
		return nil, domain.Configuration(domain.StageStartup, "handler pool is empty")
	}

	seen := make(map[string]bool, len(handlers))
	pool := make([]domain.Handler, 0, len(handlers))
	for i, h := range handlers {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			return nil, domain.Configuration(domain.StageStartup, "handler %d: name is required", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, domain.Configuration(domain.StageStartup, "handler %d: duplicate name %q", i, name)
		}
		seen[key] = true

		pool = append(pool, domain.Handler{Name: capitalize(name), Email: strings.TrimSpace(h.Email)})
	}

	return &Pool{handlers: pool}, nil
}

// Assign selects the least loaded handler and increments its load.
// The returned value reflects the load after the increment.
func (p *Pool) Assign() domain.Handler {
	p.mu.Lock()
	defer p.mu.Unlock()

	best := 0
	for i := 1; i < len(p.handlers); i++ {
		if p.handlers[i].Load < p.handlers[best].Load {
			best = i
		}
	}

	p.handlers[best].Load++
	return p.handlers[best]
}

// Snapshot returns a copy of the handlers in registration order
func (p *Pool) Snapshot() []domain.Handler {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Handler(nil), p.handlers...)
}

// Len returns the number of handlers
func (p *Pool) Len() int {
	return len(p.handlers)
}

// capitalize upper-cases the first letter of a handler name
func capitalize(name string) string {
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
