package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	e := NewEvaluator()
	ctx := context.Background()

	tests := []struct {
		name  string
		expr  string
		query string
		want  bool
	}{
		{"contains match", `query.contains("invoice")`, "my invoice is wrong", true},
		{"contains miss", `query.contains("invoice")`, "my password is wrong", false},
		{"disjunction", `query.contains("crash") || query.contains("fail")`, "login failed", true},
		{"size", `size(query) > 3`, "hi", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(ctx, tt.expr, map[string]interface{}{QueryVar: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateCachesPrograms(t *testing.T) {
	e := NewEvaluator()
	vars := map[string]interface{}{QueryVar: "billing"}

	_, err := e.Evaluate(context.Background(), `query == "billing"`, vars)
	require.NoError(t, err)
	assert.Len(t, e.cache, 1)

	_, err = e.Evaluate(context.Background(), `query == "billing"`, vars)
	require.NoError(t, err)
	assert.Len(t, e.cache, 1)
}

func TestEvaluateReturnsNativeValues(t *testing.T) {
	e := NewEvaluator()
	vars := map[string]interface{}{QueryVar: "billing question"}

	got, err := e.Evaluate(context.Background(), `query.contains("billing")`, vars)
	require.NoError(t, err)
	matched, ok := got.(bool)
	require.True(t, ok, "want bool, got %T", got)
	assert.True(t, matched)

	got, err = e.Evaluate(context.Background(), `size(query)`, vars)
	require.NoError(t, err)
	assert.Equal(t, int64(16), got)
}

func TestEvaluateCompileError(t *testing.T) {
	e := NewEvaluator()
	_, err := e.Evaluate(context.Background(), `query.contains(`, map[string]interface{}{QueryVar: "x"})
	assert.Error(t, err)
}

func TestValidateExpression(t *testing.T) {
	e := NewEvaluator()

	assert.NoError(t, e.ValidateExpression(`query.contains("account")`))
	assert.Error(t, e.ValidateExpression(`size(query)`), "non-boolean result")
	assert.Error(t, e.ValidateExpression(`unknown.contains("x")`), "undeclared variable")
}
