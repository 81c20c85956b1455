// Package productrepo persists the product stock ledger.
package productrepo

import (
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for product rows. The
// stock_quantity/reserved_quantity pair forms the availability ledger;
// both columns are only written under a row lock.
type ProductDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID       `gorm:"type:uuid;index"`
	Name             string          `gorm:"type:varchar(255)"`
	Price            decimal.Decimal `gorm:"type:numeric(14,2)"`
	StockQuantity    int
	ReservedQuantity int
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:               aggregate.ID().Bytes(),
		TenantID:         aggregate.TenantID().Bytes(),
		Name:             aggregate.Name(),
		Price:            aggregate.Price(),
		StockQuantity:    aggregate.StockQuantity(),
		ReservedQuantity: aggregate.ReservedQuantity(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id, tenantID, dto.Name, dto.Price,
		dto.StockQuantity, dto.ReservedQuantity,
	)
}
