// Package seedfile reads reference data from YAML. Identifiers are derived from natural
// keys, so loading the same file twice updates rows instead of duplicating them.
package seedfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// namespace scopes the name based identifiers of seeded rows.
var namespace = uuid.MustParse("5b0e9a64-2f0c-4f43-9a53-6d1c3cde7a10")

type File struct {
	Companies  []Company `yaml:"companies"`
	Categories []string  `yaml:"categories"`
}

type Company struct {
	Name     string    `yaml:"name"`
	Address  string    `yaml:"address"`
	Phone    string    `yaml:"phone"`
	Email    string    `yaml:"email"`
	Branches []Branch  `yaml:"branches"`
	Vehicles []Vehicle `yaml:"vehicles"`
}

type Branch struct {
	Name     string   `yaml:"name"`
	Location string   `yaml:"location"`
	Agents   []Agent  `yaml:"agents"`
	Drivers  []Driver `yaml:"drivers"`
}

type Agent struct {
	Name string `yaml:"name"`
	// UserID is the subject of the agent's access tokens.
	UserID string `yaml:"user_id"`
}

type Driver struct {
	Name          string `yaml:"name"`
	LicenseNumber string `yaml:"license_number"`
	Phone         string `yaml:"phone"`
}

type Vehicle struct {
	PlateNumber string `yaml:"plate_number"`
	Model       string `yaml:"model"`
	// Driver is the license number of a driver of the same company.
	Driver string `yaml:"driver"`
}

// Parse decodes a seed file. Unknown keys are rejected.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

// Organization turns the file into domain objects.
func (f File) Organization() (commands.Organization, error) {
	var org commands.Organization

	for _, c := range f.Companies {
		company, err := organization.NewCompany(id("company", c.Name), c.Name, organization.Contact{
			Address: c.Address,
			Phone:   c.Phone,
			Email:   c.Email,
		})
		if err != nil {
			return commands.Organization{}, err
		}
		org.Companies = append(org.Companies, company)

		drivers := make(map[string]kernel.UUID)
		for _, b := range c.Branches {
			branch, err := organization.NewBranch(id("branch", c.Name, b.Name), b.Name, b.Location, company.ID())
			if err != nil {
				return commands.Organization{}, err
			}
			org.Branches = append(org.Branches, branch)

			for _, a := range b.Agents {
				userID, err := kernel.UUIDFromString(a.UserID)
				if err != nil {
					return commands.Organization{}, errs.NewValueIsInvalidErrorWithCause("user_id", err)
				}
				agent, err := organization.NewAgent(id("agent", a.UserID), userID, a.Name, branch.ID(), company.ID())
				if err != nil {
					return commands.Organization{}, err
				}
				org.Agents = append(org.Agents, agent)
			}

			for _, d := range b.Drivers {
				driver, err := organization.NewDriver(
					id("driver", d.LicenseNumber), d.Name, d.LicenseNumber, d.Phone, branch.ID(), company.ID(),
				)
				if err != nil {
					return commands.Organization{}, err
				}
				org.Drivers = append(org.Drivers, driver)
				drivers[d.LicenseNumber] = driver.ID()
			}
		}

		for _, v := range c.Vehicles {
			driverID, ok := drivers[v.Driver]
			if !ok {
				return commands.Organization{}, errs.NewObjectNotFoundError("driver", v.Driver)
			}
			vehicle, err := organization.NewVehicle(id("vehicle", v.PlateNumber), v.PlateNumber, v.Model, company.ID(), driverID)
			if err != nil {
				return commands.Organization{}, err
			}
			org.Vehicles = append(org.Vehicles, vehicle)
		}
	}

	for _, name := range f.Categories {
		category, err := organization.NewCategory(id("category", name), name)
		if err != nil {
			return commands.Organization{}, err
		}
		org.Categories = append(org.Categories, category)
	}

	return org, nil
}

func id(kind string, keys ...string) kernel.UUID {
	raw := uuid.NewSHA1(namespace, []byte(kind+"/"+strings.Join(keys, "/")))
	// A name based UUID is never the nil UUID.
	u, _ := kernel.UUIDFromBytes(raw[:])
	return u
}
