package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNumberedLabels(t *testing.T) {
	e := NewEngine()

	out, err := e.Render("{{#each labels}}{{inc @index}}. {{this}}\n{{/each}}", map[string]interface{}{
		"labels": []string{"Feature Request", "General Feedback"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1. Feature Request\n2. General Feedback\n", out)
}

func TestRenderHelpers(t *testing.T) {
	e := NewEngine()
	data := map[string]interface{}{
		"query":    `He said "it crashed"`,
		"template": "This text is about {}.",
		"labels":   []string{"a", "b"},
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"triple stash keeps quotes", "{{{query}}}", `He said "it crashed"`},
		{"json", "{{json query}}", `"He said \"it crashed\""`},
		{"hypothesis", `{{hypothesis template "Billing / Invoice Query"}}`, "This text is about Billing / Invoice Query."},
		{"lowercase", "{{lowercase template}}", "this text is about {}."},
		{"join", `{{join labels ", "}}`, "a, b"},
		{"default", `{{default missing "N/A"}}`, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Render(tt.tmpl, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNewEngineTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewEngine()
		NewEngine()
	})
}

func TestRenderParseError(t *testing.T) {
	e := NewEngine()
	_, err := e.Render("{{#each labels}}", map[string]interface{}{"labels": []string{"a"}})
	assert.Error(t, err)
}

func TestHypothesis(t *testing.T) {
	assert.Equal(t, "This text is about Feature Request.", Hypothesis("This text is about {}.", "Feature Request"))
}
