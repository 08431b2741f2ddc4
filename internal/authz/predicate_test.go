package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicate_Empty(t *testing.T) {
	p := New()
	assert.True(t, p.Empty())
	assert.Equal(t, "TRUE", p.SQL(1))
	assert.Empty(t, p.Args())
	assert.Equal(t, 1, p.NextIndex(1))
}

func TestPredicate_RendersPositionalPlaceholders(t *testing.T) {
	p := New()
	p.And("organisation_id = ?", int64(7))
	p.And("agent_id = ?", int64(3))

	assert.Equal(t, "organisation_id = $1 AND agent_id = $2", p.SQL(1))
	assert.Equal(t, []any{int64(7), int64(3)}, p.Args())
	assert.Equal(t, 3, p.NextIndex(1))
}

func TestPredicate_StartOffset(t *testing.T) {
	p := New()
	p.And("l.id = ?", int64(42))

	// A repository that already bound $1 starts the predicate at $2.
	assert.Equal(t, "l.id = $2", p.SQL(2))
	assert.Equal(t, 3, p.NextIndex(2))
}

func TestPredicate_MultiPlaceholderClause(t *testing.T) {
	p := New()
	p.And("(user_id = ? OR affected_agent_id = ?)", int64(9), int64(4))

	assert.Equal(t, "(user_id = $1 OR affected_agent_id = $2)", p.SQL(1))
	assert.Equal(t, []any{int64(9), int64(4)}, p.Args())
}
