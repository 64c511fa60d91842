package identity

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

// Role is the closed set of affiliations a principal can act under. It is resolved once,
// when a token is authenticated, and every authorization decision switches on it.
type Role int

const (
	// UnknownRole is the zero value. Principals with this role see and do nothing.
	UnknownRole Role = iota
	SystemAdmin
	CompanyAdmin
	BranchAdmin
	Agent
)

var roleNames = map[Role]string{
	SystemAdmin:  "system admin",
	CompanyAdmin: "company admin",
	BranchAdmin:  "branch admin",
	Agent:        "agent",
}

// ParseRole maps the role name carried by an identity token onto Role.
// Matching ignores case and accepts "_" or "-" in place of the space.
func ParseRole(name string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	for role, roleName := range roleNames {
		if roleName == normalized {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", name))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
