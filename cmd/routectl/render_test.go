package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-query-router/internal/catalog"
	"github.com/aescanero/dago-query-router/internal/config"
	"github.com/aescanero/dago-query-router/internal/domain"
)

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, &domain.RoutingResult{
		EmployeeName:  "Ben",
		EmployeeEmail: "ben@x.com",
		Query:         "Please add bulk export, I cannot access old reports",
		Category:      domain.CategoryFeature,
		Team:          "Team D",
		Handler:       domain.Handler{Name: "Alpha", Email: "alpha@gmail.com", Load: 1},
		Timestamp:     time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Urgent:        true,
		Suggestions:   []string{"first step", "second step"},
		Path:          domain.PathRule,
		MatchedRule:   3,
	})

	out := buf.String()
	assert.Contains(t, out, "Feature Request")
	assert.Contains(t, out, "Team D")
	assert.Contains(t, out, "Alpha <alpha@gmail.com>")
	assert.Contains(t, out, "2026-03-04 05:06:07")
	assert.Contains(t, out, "rule #4")
	assert.Contains(t, out, "URGENT")
	assert.Contains(t, out, "  1. first step\n")
	assert.Contains(t, out, "  2. second step\n")
}

func TestRenderResultNotUrgent(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, &domain.RoutingResult{
		Category:    domain.CategoryFeedback,
		Suggestions: []string{"thanks"},
		Path:        domain.PathSemantic,
		MatchedRule: -1,
	})

	out := buf.String()
	assert.NotContains(t, out, "URGENT")
	assert.Contains(t, out, "semantic")
}

func TestRenderCatalog(t *testing.T) {
	routing, err := config.LoadRouting("")
	require.NoError(t, err)
	cat, err := catalog.New(routing.CatalogEntries())
	require.NoError(t, err)

	var buf bytes.Buffer
	renderCatalog(&buf, cat)
	renderHandlers(&buf, routing.PoolHandlers())

	out := buf.String()
	for _, c := range domain.Categories() {
		assert.Contains(t, out, string(c))
	}
	assert.Contains(t, out, "Team E")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "Gamma")
}
