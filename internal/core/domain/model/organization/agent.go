package organization

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent")

// Agent is a company employee who registers and receives packages at a branch. It is
// bound one-to-one to an identity record (userID). The company is not stored on the agent;
// it is the company of the agent's branch and is carried here once resolved.
type Agent struct {
	id        kernel.UUID
	userID    kernel.UUID
	name      string
	branchID  kernel.UUID
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAgent builds an agent. companyID must be the company of branchID.
func NewAgent(id, userID kernel.UUID, name string, branchID, companyID kernel.UUID) (*Agent, error) {
	a := &Agent{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&a.id, id),
		setRef(&a.userID, "user", userID),
		setName(&a.name, "agent name", name),
		setRef(&a.branchID, "branch", branchID),
		setRef(&a.companyID, "company", companyID),
	); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) ID() kernel.UUID        { return a.id }
func (a *Agent) UserID() kernel.UUID    { return a.userID }
func (a *Agent) Name() string           { return a.name }
func (a *Agent) BranchID() kernel.UUID  { return a.branchID }
func (a *Agent) CompanyID() kernel.UUID { return a.companyID }

// WorksAt reports whether the agent is affiliated with the branch.
func (a *Agent) WorksAt(branchID kernel.UUID) bool {
	return a.branchID.IsEqual(branchID)
}
