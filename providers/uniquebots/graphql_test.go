package uniquebots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestDeclaresVariablesInOrder(t *testing.T) {
	req, err := newRequest(`{ bot(id: $bot_id) { guilds(patch: $guild_count) } }`,
		Var("bot_id", "83089103"),
		Var("guild_count", 250),
	)
	require.NoError(t, err)
	assert.Equal(t,
		"query ($bot_id: String!, $guild_count: Int!) { bot(id: $bot_id) { guilds(patch: $guild_count) } }",
		req.Query)
	assert.Equal(t, map[string]any{"bot_id": "83089103", "guild_count": 250}, req.Variables)
}

func TestNewRequestScalarInference(t *testing.T) {
	req, err := newRequest("{ x }",
		Var("a", 1),
		Var("b", "s"),
		Var("c", true),
		Var("d", 1.5),
	)
	require.NoError(t, err)
	assert.Equal(t, "query ($a: Int!, $b: String!, $c: Boolean!, $d: Float!) { x }", req.Query)
}

func TestNewRequestNoVariables(t *testing.T) {
	req, err := newRequest("{ me { id } }")
	require.NoError(t, err)
	assert.Equal(t, "{ me { id } }", req.Query)
	assert.Nil(t, req.Variables)
}

func TestNewRequestRejectsUnknownScalar(t *testing.T) {
	_, err := newRequest("{ x }", Var("a", struct{}{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$a")
}
