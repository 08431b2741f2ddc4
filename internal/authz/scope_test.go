package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadhub-backend/internal/domain"
)

func TestNormalize_NonAdminCannotPickOrgOrUser(t *testing.T) {
	scope := Organisor(10, 5)
	lookup := func(agentID int64) (int64, error) { return 5, nil }

	f := Normalize(scope, Filter{OrgID: 99, UserID: 42, AgentID: 3}, lookup)

	assert.Equal(t, int64(5), f.OrgID)
	assert.Zero(t, f.UserID)
	assert.Equal(t, int64(3), f.AgentID)
}

func TestNormalize_ForeignAgentFilterSilentlyReset(t *testing.T) {
	scope := Organisor(10, 5)
	lookup := func(agentID int64) (int64, error) { return 8, nil } // other tenant

	f := Normalize(scope, Filter{AgentID: 3}, lookup)

	assert.Zero(t, f.AgentID)
	assert.Equal(t, int64(5), f.OrgID)
}

func TestNormalize_UnknownAgentFilterReset(t *testing.T) {
	scope := Admin(1)
	lookup := func(agentID int64) (int64, error) { return 0, domain.ErrNotFound }

	f := Normalize(scope, Filter{OrgID: 5, AgentID: 77}, lookup)

	assert.Zero(t, f.AgentID)
	assert.Equal(t, int64(5), f.OrgID)
}

func TestNormalize_AdminKeepsMatchingAgentFilter(t *testing.T) {
	scope := Admin(1)
	lookup := func(agentID int64) (int64, error) { return 5, nil }

	f := Normalize(scope, Filter{OrgID: 5, AgentID: 3, UserID: 42}, lookup)

	assert.Equal(t, int64(3), f.AgentID)
	assert.Equal(t, int64(42), f.UserID)
}

func TestLeadScope(t *testing.T) {
	t.Run("AdminUnfiltered", func(t *testing.T) {
		p := LeadScope(Admin(1), Filter{}, "l")
		assert.Equal(t, "TRUE", p.SQL(1))
	})

	t.Run("OrganisorPinnedToOrg", func(t *testing.T) {
		p := LeadScope(Organisor(10, 5), Filter{}, "l")
		assert.Equal(t, "l.organisation_id = $1", p.SQL(1))
		assert.Equal(t, []any{int64(5)}, p.Args())
	})

	t.Run("AgentPinnedToSelf", func(t *testing.T) {
		p := LeadScope(AgentScope(20, 5, 3), Filter{}, "l")
		assert.Equal(t, "l.organisation_id = $1 AND l.agent_id = $2", p.SQL(1))
		assert.Equal(t, []any{int64(5), int64(3)}, p.Args())
	})
}

func TestTaskScope_AgentSeesOnlyOwnAssignments(t *testing.T) {
	p := TaskScope(AgentScope(20, 5, 3), Filter{UserID: 99}, "t")
	assert.Equal(t, "t.organisation_id = $1 AND t.assigned_to = $2", p.SQL(1))
	assert.Equal(t, []any{int64(5), int64(20)}, p.Args())
}

func TestTaskScope_AgentFilterReachesAssignee(t *testing.T) {
	t.Run("Organisor", func(t *testing.T) {
		p := TaskScope(Organisor(10, 5), Filter{AgentID: 3}, "t")
		assert.Equal(t, "t.organisation_id = $1 AND t.assigned_to IN (SELECT user_id FROM agents WHERE id = $2)", p.SQL(1))
		assert.Equal(t, []any{int64(5), int64(3)}, p.Args())
	})

	t.Run("Admin", func(t *testing.T) {
		p := TaskScope(Admin(1), Filter{OrgID: 5, AgentID: 3}, "t")
		assert.Equal(t, "t.organisation_id = $1 AND t.assigned_to IN (SELECT user_id FROM agents WHERE id = $2)", p.SQL(1))
		assert.Equal(t, []any{int64(5), int64(3)}, p.Args())
	})
}

func TestOrderScope_AgentReachesOrdersThroughLeads(t *testing.T) {
	p := OrderScope(AgentScope(20, 5, 3), Filter{}, "o")
	assert.Contains(t, p.SQL(1), "o.lead_id IN (SELECT id FROM leads WHERE agent_id = $2)")
	assert.Equal(t, []any{int64(5), int64(3)}, p.Args())
}

func TestActivityScope_AgentSeesOwnAndAboutThem(t *testing.T) {
	p := ActivityScope(AgentScope(20, 5, 3), Filter{}, "a")
	assert.Equal(t, "a.organisation_id = $1 AND (a.user_id = $2 OR a.affected_agent_id = $3)", p.SQL(1))
	assert.Equal(t, []any{int64(5), int64(20), int64(3)}, p.Args())
}

func TestAgentListScope(t *testing.T) {
	t.Run("AgentSeesOnlySelf", func(t *testing.T) {
		p := AgentListScope(AgentScope(20, 5, 3), Filter{}, "a")
		assert.Equal(t, "a.id = $1", p.SQL(1))
		assert.Equal(t, []any{int64(3)}, p.Args())
	})

	t.Run("AdminNarrowsByOrg", func(t *testing.T) {
		p := AgentListScope(Admin(1), Filter{OrgID: 5}, "a")
		assert.Equal(t, "a.organisation_id = $1", p.SQL(1))
	})
}

func TestCanViewOrganisor(t *testing.T) {
	assert.True(t, CanViewOrganisor(Admin(1), 99))
	assert.True(t, CanViewOrganisor(Organisor(10, 5), 10))
	assert.False(t, CanViewOrganisor(Organisor(10, 5), 11))
	assert.False(t, CanViewOrganisor(AgentScope(20, 5, 3), 20))
}
