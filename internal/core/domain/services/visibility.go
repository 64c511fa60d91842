package services

import (
	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
)

// ScopeKind selects which rows of a listing a principal may see.
type ScopeKind int

const (
	// ScopeNone matches nothing. It is the zero value.
	ScopeNone ScopeKind = iota
	// ScopeAll matches everything.
	ScopeAll
	// ScopeAgent matches packages the agent sent or received, or that are headed to the
	// agent's branch.
	ScopeAgent
	// ScopeBranch matches rows tied to one branch.
	ScopeBranch
	// ScopeCompany matches rows tied to one company.
	ScopeCompany
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeAgent:
		return "agent"
	case ScopeBranch:
		return "branch"
	case ScopeCompany:
		return "company"
	default:
		return "none"
	}
}

// Scope is a role-derived filter over packages or tickets. Storage adapters translate it
// into a query predicate; the ids that are irrelevant for a kind are left zero.
//
// Package scopes:
//
//	agent          sender_agent = agent OR receiver_agent = agent OR destination_branch = branch
//	branch admin   origin_branch = branch OR destination_branch = branch
//	company admin  origin_branch.company = company OR destination_branch.company = company
//	system admin   everything
//
// Ticket scopes:
//
//	agent, company admin  ticket.company = company
//	branch admin          ticket.branch = branch
//	system admin          everything
type Scope struct {
	kind      ScopeKind
	agentID   kernel.UUID
	branchID  kernel.UUID
	companyID kernel.UUID
}

// NoScope matches nothing.
func NoScope() Scope {
	return Scope{kind: ScopeNone}
}

// NewPackageScope resolves the package visibility of a principal. Roles are checked in
// the order agent, branch admin, company admin; system admins and superusers without a
// narrower role see everything. A role whose affiliation is incomplete sees nothing.
func NewPackageScope(p identity.Principal) Scope {
	if !p.IsAuthenticated() {
		return NoScope()
	}

	switch p.Role() {
	case identity.Agent:
		if p.AgentID() == nil || p.BranchID() == nil {
			return NoScope()
		}
		return Scope{kind: ScopeAgent, agentID: *p.AgentID(), branchID: *p.BranchID()}
	case identity.BranchAdmin:
		if p.BranchID() == nil {
			return NoScope()
		}
		return Scope{kind: ScopeBranch, branchID: *p.BranchID()}
	case identity.CompanyAdmin:
		if p.CompanyID() == nil {
			return NoScope()
		}
		return Scope{kind: ScopeCompany, companyID: *p.CompanyID()}
	case identity.SystemAdmin:
		return Scope{kind: ScopeAll}
	default:
		if p.IsSuperuser() {
			return Scope{kind: ScopeAll}
		}
		return NoScope()
	}
}

// NewTicketScope resolves the ticket visibility of a principal. Superusers see every
// ticket regardless of role.
func NewTicketScope(p identity.Principal) Scope {
	if !p.IsAuthenticated() {
		return NoScope()
	}
	if p.IsSuperuser() {
		return Scope{kind: ScopeAll}
	}

	switch p.Role() {
	case identity.Agent, identity.CompanyAdmin:
		if p.CompanyID() == nil {
			return NoScope()
		}
		return Scope{kind: ScopeCompany, companyID: *p.CompanyID()}
	case identity.BranchAdmin:
		if p.BranchID() == nil {
			return NoScope()
		}
		return Scope{kind: ScopeBranch, branchID: *p.BranchID()}
	case identity.SystemAdmin:
		return Scope{kind: ScopeAll}
	default:
		return NoScope()
	}
}

func (s Scope) Kind() ScopeKind        { return s.kind }
func (s Scope) AgentID() kernel.UUID   { return s.agentID }
func (s Scope) BranchID() kernel.UUID  { return s.branchID }
func (s Scope) CompanyID() kernel.UUID { return s.companyID }

// IsEmpty reports whether the scope can never match.
func (s Scope) IsEmpty() bool {
	return s.kind == ScopeNone
}

// AllowsPackage evaluates a package scope in memory. originCompanyID and
// destinationCompanyID are the companies of the package's origin and destination branches.
func (s Scope) AllowsPackage(p *shipment.Package, originCompanyID, destinationCompanyID kernel.UUID) bool {
	if p.Validate() != nil {
		return false
	}

	switch s.kind {
	case ScopeAll:
		return true
	case ScopeAgent:
		received := p.ReceiverAgentID() != nil && p.ReceiverAgentID().IsEqual(s.agentID)
		return p.SenderAgentID().IsEqual(s.agentID) || received || p.IsDestinedFor(s.branchID)
	case ScopeBranch:
		return p.OriginBranchID().IsEqual(s.branchID) || p.IsDestinedFor(s.branchID)
	case ScopeCompany:
		return originCompanyID.IsEqual(s.companyID) || destinationCompanyID.IsEqual(s.companyID)
	default:
		return false
	}
}

// AllowsTicket evaluates a ticket scope in memory.
func (s Scope) AllowsTicket(t *shipment.Ticket) bool {
	if t.Validate() != nil {
		return false
	}

	switch s.kind {
	case ScopeAll:
		return true
	case ScopeBranch:
		return t.BranchID().IsEqual(s.branchID)
	case ScopeCompany:
		return t.CompanyID().IsEqual(s.companyID)
	default:
		return false
	}
}
