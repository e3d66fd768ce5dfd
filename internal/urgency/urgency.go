// Package urgency flags queries that need immediate attention.
package urgency

import (
	"fmt"
	"strings"
)

// DefaultKeywords are the phrases that mark a query as urgent
var DefaultKeywords = []string{"cannot access", "crashed", "error", "fail"}

// Detector scans query text for urgency keywords
type Detector struct {
	keywords []string
}

// New creates a detector. Keywords are matched case-insensitively as substrings.
func New(keywords []string) (*Detector, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("at least one urgency keyword is required")
	}

	normalized := make([]string, 0, len(keywords))
	for i, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return nil, fmt.Errorf("urgency keyword %d is empty", i)
		}
		normalized = append(normalized, kw)
	}

	return &Detector{keywords: normalized}, nil
}

// IsUrgent reports whether query contains any urgency keyword
func (d *Detector) IsUrgent(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range d.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
