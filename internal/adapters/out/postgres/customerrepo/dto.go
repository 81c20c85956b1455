// Package customerrepo persists customers, their credit tiers, and the
// per-customer debt ledger.
package customerrepo

import (
	"distribution/internal/core/domain/model/customer"
	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDTO represents the database structure for customer rows.
// debt_balance is only written under a row lock taken by GetForUpdate.
type CustomerDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID  `gorm:"type:uuid;index"`
	CreatedByUserID uuid.UUID  `gorm:"type:uuid;index"`
	Name            string     `gorm:"type:varchar(255)"`
	TierID          *uuid.UUID `gorm:"type:uuid;index"`

	DebtBalance   decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreditBalance decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for customers.
func (CustomerDTO) TableName() string {
	return "customers"
}

// TierDTO represents the credit tier catalog. Null credit_limit means
// unlimited credit, null max_order_amount means no per-order cap.
type TierDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;index"`
	Name           string    `gorm:"type:varchar(255)"`
	CreditAllowed  bool
	CreditLimit    *decimal.Decimal `gorm:"type:numeric(14,2)"`
	MaxOrderAmount *decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for customer tiers.
func (TierDTO) TableName() string {
	return "customer_tiers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	var tierID *uuid.UUID
	if id := aggregate.TierID(); id != nil {
		raw := id.Bytes()
		tierID = &raw
	}

	return CustomerDTO{
		ID:              aggregate.ID().Bytes(),
		TenantID:        aggregate.TenantID().Bytes(),
		CreatedByUserID: aggregate.CreatedByUserID().Bytes(),
		Name:            aggregate.Name(),
		TierID:          tierID,
		DebtBalance:     aggregate.DebtBalance(),
		CreditBalance:   aggregate.CreditBalance(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedByUserID[:])
	if err != nil {
		return nil, err
	}

	var tierID *kernel.UUID
	if dto.TierID != nil {
		tID, tierErr := kernel.UUIDFromBytes((*dto.TierID)[:])
		if tierErr != nil {
			return nil, tierErr
		}
		tierID = &tID
	}

	return customer.RestoreCustomer(
		id, tenantID, createdBy, dto.Name, tierID,
		dto.DebtBalance, dto.CreditBalance,
	)
}

func tierToDomain(dto TierDTO) (*customer.Tier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return customer.NewTier(
		id, tenantID, dto.Name,
		dto.CreditAllowed, dto.CreditLimit, dto.MaxOrderAmount,
	)
}
