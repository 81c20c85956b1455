package customerrepo

import (
	"context"
	"errors"

	"distribution/internal/core/domain/model/customer"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add saves a new customer to the database.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddTier saves a new credit tier to the database.
func (r *GormCustomerRepository) AddTier(ctx context.Context, tier *customer.Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}

	dto := TierDTO{
		ID:             tier.ID().Bytes(),
		TenantID:       tier.TenantID().Bytes(),
		Name:           tier.Name(),
		CreditAllowed:  tier.CreditAllowed(),
		CreditLimit:    tier.CreditLimit(),
		MaxOrderAmount: tier.MaxOrderAmount(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a customer by id within a tenant without locking.
func (r *GormCustomerRepository) Get(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error) {
	return r.get(ctx, id, tenantID, false)
}

// GetForUpdate retrieves a customer by id within a tenant and takes a
// SELECT ... FOR UPDATE row lock, serializing debt ledger writes for the
// remainder of the enclosing transaction.
func (r *GormCustomerRepository) GetForUpdate(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error) {
	return r.get(ctx, id, tenantID, true)
}

func (r *GormCustomerRepository) get(
	ctx context.Context,
	id, tenantID kernel.UUID,
	forUpdate bool,
) (*customer.Customer, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto CustomerDTO
	err := db.First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes the customer's debt ledger columns. Identity and tier
// assignment are managed elsewhere and stay untouched.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("DebtBalance", "CreditBalance").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetTier retrieves a credit tier by id within a tenant.
func (r *GormCustomerRepository) GetTier(ctx context.Context, id, tenantID kernel.UUID) (*customer.Tier, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}

	var dto TierDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer tier", id.String())
		}
		return nil, err
	}

	return tierToDomain(dto)
}
