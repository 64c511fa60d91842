package organizationrepo_test

import (
	"context"
	"testing"

	"parcelhub/internal/adapters/out/postgres/organizationrepo"
	"parcelhub/internal/adapters/out/postgres/pgtest"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OrganizationRepositoryIntegrationTestSuite struct {
	pgtest.Suite
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestCompany_SaveAndGet() {
	ctx := context.Background()
	repo := organizationrepo.NewGormCompanyRepository(suite.DB)

	company, err := organization.NewCompany(kernel.NewUUID(), "Acme", organization.Contact{
		Address: "1 Moi Avenue",
		Phone:   "+254700000000",
		Email:   "ops@acme.test",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Save(ctx, company))

	loaded, err := repo.Get(ctx, company.ID())
	suite.Require().NoError(err)
	suite.Equal(company.ID(), loaded.ID())
	suite.Equal("Acme", loaded.Name())
	suite.Equal(company.Contact(), loaded.Contact())
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestCompany_SaveTwice_Overwrites() {
	ctx := context.Background()
	repo := organizationrepo.NewGormCompanyRepository(suite.DB)
	id := kernel.NewUUID()

	first, err := organization.NewCompany(id, "Acme", organization.Contact{})
	suite.Require().NoError(err)
	renamed, err := organization.NewCompany(id, "Acme Logistics", organization.Contact{})
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Save(ctx, first))
	suite.Require().NoError(repo.Save(ctx, renamed))

	loaded, err := repo.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Acme Logistics", loaded.Name())
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestAgent_Get_CarriesBranchCompany() {
	ctx := context.Background()
	world := pgtest.Seed(ctx, suite.Require(), suite.DB)
	repo := organizationrepo.NewGormAgentRepository(suite.DB)

	loaded, err := repo.Get(ctx, world.KisumuAgent.ID())

	suite.Require().NoError(err)
	suite.Equal(world.KisumuAgent.UserID(), loaded.UserID())
	suite.Equal(world.Kisumu.ID(), loaded.BranchID())
	suite.Equal(world.Globex.ID(), loaded.CompanyID())
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestAgent_SameUserTwice_Conflict() {
	ctx := context.Background()
	world := pgtest.Seed(ctx, suite.Require(), suite.DB)
	repo := organizationrepo.NewGormAgentRepository(suite.DB)

	duplicate, err := organization.NewAgent(
		kernel.NewUUID(), world.NairobiAgent.UserID(), "Impostor", world.Mombasa.ID(), world.Acme.ID(),
	)
	suite.Require().NoError(err)

	err = repo.Save(ctx, duplicate)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestDriver_Get_CarriesBranchCompany() {
	ctx := context.Background()
	world := pgtest.Seed(ctx, suite.Require(), suite.DB)
	repo := organizationrepo.NewGormDriverRepository(suite.DB)

	loaded, err := repo.Get(ctx, world.GlobexDriver.ID())

	suite.Require().NoError(err)
	suite.Equal("Kamau", loaded.Name())
	suite.Equal("DL-0002", loaded.LicenseNumber())
	suite.Equal(world.Globex.ID(), loaded.CompanyID())
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestVehicle_Get() {
	ctx := context.Background()
	world := pgtest.Seed(ctx, suite.Require(), suite.DB)
	repo := organizationrepo.NewGormVehicleRepository(suite.DB)

	loaded, err := repo.Get(ctx, world.Vehicle.ID())

	suite.Require().NoError(err)
	suite.Equal("KDA 123A", loaded.PlateNumber())
	suite.True(loaded.IsDrivenBy(world.Driver.ID()))
	suite.Equal(world.Acme.ID(), loaded.CompanyID())
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	ctx := context.Background()
	id := kernel.NewUUID()

	_, err := organizationrepo.NewGormCompanyRepository(suite.DB).Get(ctx, id)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = organizationrepo.NewGormBranchRepository(suite.DB).Get(ctx, id)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = organizationrepo.NewGormAgentRepository(suite.DB).Get(ctx, id)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = organizationrepo.NewGormDriverRepository(suite.DB).Get(ctx, id)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = organizationrepo.NewGormVehicleRepository(suite.DB).Get(ctx, id)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = organizationrepo.NewGormCategoryRepository(suite.DB).Get(ctx, id)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrganizationRepositoryIntegrationTestSuite) TestSave_NotConstructed_ReturnsError() {
	err := organizationrepo.NewGormBranchRepository(suite.DB).Save(context.Background(), &organization.Branch{})

	suite.Require().ErrorIs(err, organization.ErrBranchIsNotConstructed)
}

func TestOrganizationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationRepositoryIntegrationTestSuite))
}
