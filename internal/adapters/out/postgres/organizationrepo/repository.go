package organizationrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsert inserts dto or overwrites every column of the row with the same primary key.
func upsert(ctx context.Context, db *gorm.DB, dto any) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(dto).Error
}

func first(ctx context.Context, db *gorm.DB, dst any, paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := db.WithContext(ctx).First(dst, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(paramName, id.String())
		}
		return err
	}
	return nil
}

// affiliated loads an agent or driver joined with its branch so the company comes along.
func affiliated(ctx context.Context, db *gorm.DB, table, columns, paramName string, id kernel.UUID) (affiliatedRow, error) {
	var row affiliatedRow
	if err := id.Validate(); err != nil {
		return row, err
	}

	result := db.WithContext(ctx).
		Table(table+" AS t").
		Select(columns+", t.branch_id, b.company_id").
		Joins("JOIN branches b ON b.id = t.branch_id").
		Where("t.id = ?", id.Bytes()).
		Scan(&row)
	if result.Error != nil {
		return row, result.Error
	}
	if result.RowsAffected == 0 {
		return row, errs.NewObjectNotFoundError(paramName, id.String())
	}
	return row, nil
}

// GormCompanyRepository implements ports.CompanyRepository.
type GormCompanyRepository struct {
	db *gorm.DB
}

func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

func (r *GormCompanyRepository) Save(ctx context.Context, company *organization.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}
	dto := companyFromDomain(company)
	return upsert(ctx, r.db, &dto)
}

func (r *GormCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Company, error) {
	var dto CompanyDTO
	if err := first(ctx, r.db, &dto, "company", id); err != nil {
		return nil, err
	}
	return companyToDomain(dto)
}

// GormBranchRepository implements ports.BranchRepository.
type GormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func (r *GormBranchRepository) Save(ctx context.Context, branch *organization.Branch) error {
	if err := branch.Validate(); err != nil {
		return err
	}
	dto := branchFromDomain(branch)
	return upsert(ctx, r.db, &dto)
}

func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Branch, error) {
	var dto BranchDTO
	if err := first(ctx, r.db, &dto, "branch", id); err != nil {
		return nil, err
	}
	return branchToDomain(dto)
}

// GormAgentRepository implements ports.AgentRepository. Agents are loaded together with
// the company of their branch.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Save stores the agent. A user id already bound to another agent is a conflict.
func (r *GormAgentRepository) Save(ctx context.Context, agent *organization.Agent) error {
	if err := agent.Validate(); err != nil {
		return err
	}
	dto := agentFromDomain(agent)
	if err := upsert(ctx, r.db, &dto); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("user", err)
		}
		return err
	}
	return nil
}

func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Agent, error) {
	row, err := affiliated(ctx, r.db, "agents", "t.id, t.user_id, t.name", "agent", id)
	if err != nil {
		return nil, err
	}
	return agentToDomain(row)
}

// GormDriverRepository implements ports.DriverRepository.
type GormDriverRepository struct {
	db *gorm.DB
}

func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

func (r *GormDriverRepository) Save(ctx context.Context, driver *organization.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	dto := driverFromDomain(driver)
	if err := upsert(ctx, r.db, &dto); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("license_number", err)
		}
		return err
	}
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Driver, error) {
	row, err := affiliated(ctx, r.db, "drivers", "t.id, t.name, t.license_number, t.phone", "driver", id)
	if err != nil {
		return nil, err
	}
	return driverToDomain(row)
}

// GormVehicleRepository implements ports.VehicleRepository.
type GormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *organization.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	dto := vehicleFromDomain(vehicle)
	if err := upsert(ctx, r.db, &dto); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("plate_number", err)
		}
		return err
	}
	return nil
}

func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Vehicle, error) {
	var dto VehicleDTO
	if err := first(ctx, r.db, &dto, "vehicle", id); err != nil {
		return nil, err
	}
	return vehicleToDomain(dto)
}

// GormCategoryRepository implements ports.CategoryRepository.
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *organization.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	dto := categoryFromDomain(category)
	return upsert(ctx, r.db, &dto)
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Category, error) {
	var dto CategoryDTO
	if err := first(ctx, r.db, &dto, "category", id); err != nil {
		return nil, err
	}
	return categoryToDomain(dto)
}
