// Package tenantrepo persists tenant settings used by order numbering.
package tenantrepo

import (
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/tenant"

	"github.com/google/uuid"
)

// TenantDTO represents the database structure for tenant rows.
type TenantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255)"`
	OrderPrefix string    `gorm:"type:varchar(16)"`
	Timezone    string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for tenants.
func (TenantDTO) TableName() string {
	return "tenants"
}

func fromDomain(aggregate *tenant.Tenant) TenantDTO {
	return TenantDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		OrderPrefix: aggregate.OrderPrefix(),
		Timezone:    aggregate.Timezone(),
	}
}

func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return tenant.NewTenant(id, dto.Name, dto.OrderPrefix, dto.Timezone)
}
