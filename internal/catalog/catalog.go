// Package catalog holds the static category lookups used by the router:
// the team mapping and the ordered remediation suggestions shown before a
// query is escalated to a human handler.
package catalog

import (
	"strings"

	"github.com/aescanero/dago-query-router/internal/domain"
)

// Entry describes the team and suggestions for one category
type Entry struct {
	Category    domain.Category
	Team        string
	Suggestions []string
}

// Catalog is an immutable category lookup table
type Catalog struct {
	labels      []domain.Category
	teams       map[domain.Category]string
	suggestions map[domain.Category][]string
}

// New builds a catalog and verifies that every category of the closed set
// has exactly one team and a non-empty suggestion list.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		labels:      domain.Categories(),
		teams:       make(map[domain.Category]string, len(entries)),
		suggestions: make(map[domain.Category][]string, len(entries)),
	}

	for i, e := range entries {
		if !e.Category.Valid() {
			return nil, domain.Configuration(domain.StageStartup, "catalog entry %d: unknown category %q", i, e.Category)
		}
		if _, dup := c.teams[e.Category]; dup {
			return nil, domain.Configuration(domain.StageStartup, "catalog entry %d: duplicate category %q", i, e.Category)
		}
		if strings.TrimSpace(e.Team) == "" {
			return nil, domain.Configuration(domain.StageStartup, "catalog entry %d: team is required for %q", i, e.Category)
		}
		if len(e.Suggestions) == 0 {
			return nil, domain.Configuration(domain.StageStartup, "catalog entry %d: no suggestions for %q", i, e.Category)
		}
		for j, s := range e.Suggestions {
			if strings.TrimSpace(s) == "" {
				return nil, domain.Configuration(domain.StageStartup, "catalog entry %d: suggestion %d is empty", i, j)
			}
		}

		c.teams[e.Category] = e.Team
		c.suggestions[e.Category] = append([]string(nil), e.Suggestions...)
	}

	for _, category := range c.labels {
		if _, ok := c.teams[category]; !ok {
			return nil, domain.Configuration(domain.StageStartup, "category %q has no catalog entry", category)
		}
	}

	return c, nil
}

// Labels returns the full label set in its fixed order
func (c *Catalog) Labels() []domain.Category {
	return append([]domain.Category(nil), c.labels...)
}

// TeamFor returns the team responsible for category
func (c *Catalog) TeamFor(category domain.Category) (string, error) {
	team, ok := c.teams[category]
	if !ok {
		return "", domain.Configuration(domain.StageTeam, "no team mapped for category %q", category)
	}
	return team, nil
}

// SuggestionsFor returns a copy of the ordered suggestions for category
func (c *Catalog) SuggestionsFor(category domain.Category) ([]string, error) {
	s, ok := c.suggestions[category]
	if !ok {
		return nil, domain.Configuration(domain.StageSuggest, "no suggestions for category %q", category)
	}
	return append([]string(nil), s...), nil
}

// Entries returns the catalog contents in label order
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.labels))
	for _, category := range c.labels {
		entries = append(entries, Entry{
			Category:    category,
			Team:        c.teams[category],
			Suggestions: append([]string(nil), c.suggestions[category]...),
		})
	}
	return entries
}
