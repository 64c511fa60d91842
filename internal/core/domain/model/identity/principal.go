package identity

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal or Anonymous")

// Principal is the authenticated requester with its affiliation already resolved by the
// identity collaborator. Affiliation fields are optional: a company admin has no branch,
// a system admin has neither.
type Principal struct {
	userID    *kernel.UUID
	role      Role
	superuser bool
	companyID *kernel.UUID
	branchID  *kernel.UUID
	agentID   *kernel.UUID

	guard guard.ConstructorGuard
}

// Affiliation groups the optional organization links of a principal.
type Affiliation struct {
	CompanyID *kernel.UUID
	BranchID  *kernel.UUID
	AgentID   *kernel.UUID
}

// NewPrincipal builds an authenticated principal. An unknown role is allowed: such a
// principal is authenticated but authorized for nothing.
func NewPrincipal(userID kernel.UUID, role Role, superuser bool, affiliation Affiliation) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}
	return Principal{
		userID:    &userID,
		role:      role,
		superuser: superuser,
		companyID: affiliation.CompanyID,
		branchID:  affiliation.BranchID,
		agentID:   affiliation.AgentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Anonymous is the unauthenticated principal.
func Anonymous() Principal {
	return Principal{guard: guard.NewConstructorGuard()}
}

func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

func (p Principal) IsAuthenticated() bool {
	return p.userID != nil
}

// UserID returns the identity record id; nil for Anonymous.
func (p Principal) UserID() *kernel.UUID {
	return p.userID
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) IsSuperuser() bool {
	return p.superuser
}

func (p Principal) CompanyID() *kernel.UUID {
	return p.companyID
}

func (p Principal) BranchID() *kernel.UUID {
	return p.branchID
}

func (p Principal) AgentID() *kernel.UUID {
	return p.agentID
}

// IsAgent reports whether the principal acts as an agent and carries an agent id.
func (p Principal) IsAgent() bool {
	return p.IsAuthenticated() && p.role == Agent && p.agentID != nil
}
