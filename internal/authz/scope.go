// Package authz resolves a caller into a Scope value once per request and
// turns that Scope into the SQL predicates restricting which rows of each
// entity the caller can see or mutate. Records outside the predicate are
// reported as not found, never forbidden.
package authz

import (
	"leadhub-backend/internal/domain"
)

// Scope is the resolved identity of a caller: the operative role plus the
// tenancy coordinates that role carries. OrgID is zero for admins; AgentID
// is the caller's Agent row id and set only for agents.
type Scope struct {
	Role    domain.Role
	UserID  int64
	OrgID   int64
	AgentID int64
}

func Admin(userID int64) Scope {
	return Scope{Role: domain.RoleAdmin, UserID: userID}
}

func Organisor(userID, orgID int64) Scope {
	return Scope{Role: domain.RoleOrganisor, UserID: userID, OrgID: orgID}
}

func AgentScope(userID, orgID, agentID int64) Scope {
	return Scope{Role: domain.RoleAgent, UserID: userID, OrgID: orgID, AgentID: agentID}
}

func (s Scope) IsAdmin() bool     { return s.Role == domain.RoleAdmin }
func (s Scope) IsOrganisor() bool { return s.Role == domain.RoleOrganisor }
func (s Scope) IsAgent() bool     { return s.Role == domain.RoleAgent }

// Filter carries optional list narrowing supplied by the caller. Admins may
// narrow by organisation, agent and acting user; organisors only by agent.
// AgentID must be validated (and reset) against the effective organisation
// before predicate construction; see Normalize.
type Filter struct {
	OrgID   int64
	AgentID int64
	UserID  int64
}

// AgentLookup reports the organisation an agent belongs to, or ErrNotFound.
// Normalize uses it to drop forged or cross-tenant agent filters.
type AgentLookup func(agentID int64) (orgID int64, err error)

// Normalize reconciles a caller-supplied filter with the scope. A foreign or
// unknown (organisation, agent) combination silently resets the agent filter
// rather than erroring; non-admins never get to pick an organisation or user.
func Normalize(s Scope, f Filter, lookup AgentLookup) Filter {
	if !s.IsAdmin() {
		f.OrgID = s.OrgID
		f.UserID = 0
	}
	if f.AgentID != 0 {
		orgID, err := lookup(f.AgentID)
		if err != nil || (f.OrgID != 0 && orgID != f.OrgID) {
			f.AgentID = 0
		}
	}
	return f
}

// LeadScope builds the visibility predicate for leads. Column names are
// relative to the given table alias.
func LeadScope(s Scope, f Filter, alias string) *Predicate {
	p := New()
	switch s.Role {
	case domain.RoleAdmin:
		if f.OrgID != 0 {
			p.And(alias+".organisation_id = ?", f.OrgID)
		}
		if f.AgentID != 0 {
			p.And(alias+".agent_id = ?", f.AgentID)
		}
	case domain.RoleOrganisor:
		p.And(alias+".organisation_id = ?", s.OrgID)
		if f.AgentID != 0 {
			p.And(alias+".agent_id = ?", f.AgentID)
		}
	case domain.RoleAgent:
		p.And(alias+".organisation_id = ?", s.OrgID)
		p.And(alias+".agent_id = ?", s.AgentID)
	}
	return p
}

// TaskScope builds the visibility predicate for tasks. Agents see only
// tasks assigned to them. Tasks carry an assignee user id rather than an
// agent id, so an agent filter reaches assigned_to through the agents table.
func TaskScope(s Scope, f Filter, alias string) *Predicate {
	p := New()
	switch s.Role {
	case domain.RoleAdmin:
		if f.OrgID != 0 {
			p.And(alias+".organisation_id = ?", f.OrgID)
		}
		if f.UserID != 0 {
			p.And(alias+".assigned_to = ?", f.UserID)
		}
		if f.AgentID != 0 {
			p.And(alias+".assigned_to IN (SELECT user_id FROM agents WHERE id = ?)", f.AgentID)
		}
	case domain.RoleOrganisor:
		p.And(alias+".organisation_id = ?", s.OrgID)
		if f.AgentID != 0 {
			p.And(alias+".assigned_to IN (SELECT user_id FROM agents WHERE id = ?)", f.AgentID)
		}
	case domain.RoleAgent:
		p.And(alias+".organisation_id = ?", s.OrgID)
		p.And(alias+".assigned_to = ?", s.UserID)
	}
	return p
}

// OrderScope builds the visibility predicate for orders. Agents reach
// orders through the leads assigned to them.
func OrderScope(s Scope, f Filter, alias string) *Predicate {
	p := New()
	switch s.Role {
	case domain.RoleAdmin:
		if f.OrgID != 0 {
			p.And(alias+".organisation_id = ?", f.OrgID)
		}
	case domain.RoleOrganisor:
		p.And(alias+".organisation_id = ?", s.OrgID)
	case domain.RoleAgent:
		p.And(alias+".organisation_id = ?", s.OrgID)
		p.And(alias+".lead_id IN (SELECT id FROM leads WHERE agent_id = ?)", s.AgentID)
	}
	if f.AgentID != 0 && !s.IsAgent() {
		p.And(alias+".lead_id IN (SELECT id FROM leads WHERE agent_id = ?)", f.AgentID)
	}
	return p
}

// ActivityScope builds the visibility predicate for the activity log.
// Agents see entries authored by them OR about them (affected_agent),
// even when the author is someone else.
func ActivityScope(s Scope, f Filter, alias string) *Predicate {
	p := New()
	switch s.Role {
	case domain.RoleAdmin:
		if f.OrgID != 0 {
			p.And(alias+".organisation_id = ?", f.OrgID)
		}
		if f.UserID != 0 {
			p.And(alias+".user_id = ?", f.UserID)
		}
	case domain.RoleOrganisor:
		p.And(alias+".organisation_id = ?", s.OrgID)
		if f.AgentID != 0 {
			p.And(alias+".affected_agent_id = ?", f.AgentID)
		}
	case domain.RoleAgent:
		p.And(alias+".organisation_id = ?", s.OrgID)
		p.And("("+alias+".user_id = ? OR "+alias+".affected_agent_id = ?)", s.UserID, s.AgentID)
	}
	return p
}

// CategoryScope builds the visibility predicate for lead categories.
func CategoryScope(s Scope, f Filter, alias string) *Predicate {
	p := New()
	if s.IsAdmin() {
		if f.OrgID != 0 {
			p.And(alias+".organisation_id = ?", f.OrgID)
		}
		return p
	}
	p.And(alias+".organisation_id = ?", s.OrgID)
	return p
}

// AgentListScope builds the visibility predicate for agent listings.
// Agents see only themselves.
func AgentListScope(s Scope, f Filter, alias string) *Predicate {
	p := New()
	switch s.Role {
	case domain.RoleAdmin:
		if f.OrgID != 0 {
			p.And(alias+".organisation_id = ?", f.OrgID)
		}
	case domain.RoleOrganisor:
		p.And(alias+".organisation_id = ?", s.OrgID)
	case domain.RoleAgent:
		p.And(alias+".id = ?", s.AgentID)
	}
	return p
}

// CanViewOrganisor gates self-profile access: non-admins may only address
// the organisor record belonging to their own user.
func CanViewOrganisor(s Scope, organisorUserID int64) bool {
	if s.IsAdmin() {
		return true
	}
	return s.IsOrganisor() && s.UserID == organisorUserID
}
