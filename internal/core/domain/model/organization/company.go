package organization

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany")
	ErrBranchIsNotConstructed  = errors.New("Branch must be created via NewBranch")
)

// Contact is the optional contact information of a company.
type Contact struct {
	Address string
	Phone   string
	Email   string
}

// Company is the tenant. It owns branches and vehicles; drivers and agents belong to it
// through their branch.
type Company struct {
	id      kernel.UUID
	name    string
	contact Contact

	guard guard.ConstructorGuard
}

func NewCompany(id kernel.UUID, name string, contact Contact) (*Company, error) {
	c := &Company{contact: contact, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&c.id, id),
		setName(&c.name, "company name", name),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Company) Validate() error {
	if c == nil {
		return ErrCompanyIsNotConstructed
	}
	return c.guard.Validate(ErrCompanyIsNotConstructed)
}

func (c *Company) ID() kernel.UUID  { return c.id }
func (c *Company) Name() string     { return c.name }
func (c *Company) Contact() Contact { return c.contact }

// Branch belongs to exactly one company. It is the unit of shipment origin and destination
// and the affiliation unit for agents and branch admins.
type Branch struct {
	id        kernel.UUID
	name      string
	location  string
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBranch(id kernel.UUID, name, location string, companyID kernel.UUID) (*Branch, error) {
	b := &Branch{location: strings.TrimSpace(location), guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&b.id, id),
		setName(&b.name, "branch name", name),
		setRef(&b.companyID, "company", companyID),
	); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

func (b *Branch) ID() kernel.UUID        { return b.id }
func (b *Branch) Name() string           { return b.name }
func (b *Branch) Location() string       { return b.location }
func (b *Branch) CompanyID() kernel.UUID { return b.companyID }

// BelongsTo reports whether the branch is operated by the given company.
func (b *Branch) BelongsTo(companyID kernel.UUID) bool {
	return b.companyID.IsEqual(companyID)
}

func setID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}

func setRef(dst *kernel.UUID, paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	*dst = id
	return nil
}

func setName(dst *string, paramName, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	*dst = value
	return nil
}
