package product

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed indicates that the Product was not properly
// initialized through the NewProduct or RestoreProduct constructor functions.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// priceTolerance is the maximum drift allowed between the price quoted to the
// caller and the current catalog price: one cent.
var priceTolerance = decimal.NewFromFloat(0.01)

// Product is the stock-ledger view of a catalog product. It tracks the
// on-hand quantity and the quantity already committed to open orders, and
// guards order placement against overselling and against stale quoted prices.
//
// Key business rules:
//   - available = stockQuantity - reservedQuantity
//   - Reserve fails when the requested quantity exceeds what is available
//   - Release clamps reservedQuantity at zero rather than going negative
//   - CheckPrice rejects a quoted price that drifted more than one cent from
//     the current price
type Product struct {
	id       kernel.UUID
	tenantID kernel.UUID

	// name is a human-readable identifier, used in logs and error reporting
	name string

	// price is the current catalog price per unit
	price decimal.Decimal

	// stockQuantity is the quantity physically on hand
	stockQuantity int

	// reservedQuantity is the quantity committed to open orders but not yet
	// shipped
	reservedQuantity int

	guard guard.ConstructorGuard
}

// NewProduct creates a product with no outstanding reservations.
func NewProduct(id, tenantID kernel.UUID, name string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	product := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		product.setID(id),
		product.setTenantID(tenantID),
		product.setName(name),
		product.setPrice(price),
		product.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// RestoreProduct reconstructs a product from persistent storage, including
// its outstanding reservations.
//
// reservedQuantity greater than stockQuantity is tolerated: external
// receiving flows may shrink stock underneath open reservations. Such a
// product simply has nothing available to reserve.
func RestoreProduct(
	id, tenantID kernel.UUID,
	name string,
	price decimal.Decimal,
	stockQuantity, reservedQuantity int,
) (*Product, error) {
	product := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		product.setID(id),
		product.setTenantID(tenantID),
		product.setName(name),
		product.setPrice(price),
		product.setStockQuantity(stockQuantity),
		product.setReservedQuantity(reservedQuantity),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks that the product was built through one of its constructors.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// TenantID returns the tenant that owns the product.
func (p *Product) TenantID() kernel.UUID {
	return p.tenantID
}

// Name returns the human-readable product name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price per unit.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// StockQuantity returns the quantity physically on hand.
func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

// ReservedQuantity returns the quantity committed to open orders.
func (p *Product) ReservedQuantity() int {
	return p.reservedQuantity
}

// Available returns the quantity free to promise to a new order. It can be
// negative when stock shrank underneath open reservations.
func (p *Product) Available() int {
	return p.stockQuantity - p.reservedQuantity
}

// Reserve commits qty units to an open order. It fails with
// InsufficientStock when qty exceeds the available quantity, leaving the
// ledger untouched.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty",
			fmt.Errorf("%d is not greater than 0", qty),
		)
	}

	if qty > p.Available() {
		return errs.NewInsufficientStockError(p.id.String(), qty, p.Available())
	}

	p.reservedQuantity += qty
	return nil
}

// Release returns qty units from an open order back to the free pool. The
// result is clamped at zero. The clamp is a safety valve against double
// release, not a ledger correction.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty",
			fmt.Errorf("%d is not greater than 0", qty),
		)
	}

	p.reservedQuantity -= qty
	if p.reservedQuantity < 0 {
		p.reservedQuantity = 0
	}
	return nil
}

// CheckPrice verifies that the price quoted to the caller still matches the
// current catalog price. A drift of up to one cent is tolerated; anything
// beyond fails with PriceChanged carrying both prices.
func (p *Product) CheckPrice(quoted decimal.Decimal) error {
	if p.price.Sub(quoted).Abs().GreaterThan(priceTolerance) {
		return errs.NewPriceChangedError(p.id.String(), quoted.String(), p.price.String())
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Product) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	p.tenantID = tenantID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is negative", price),
		)
	}

	p.price = price
	return nil
}

func (p *Product) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stockQuantity",
			fmt.Errorf("%d is less than 0", stockQuantity),
		)
	}

	p.stockQuantity = stockQuantity
	return nil
}

func (p *Product) setReservedQuantity(reservedQuantity int) error {
	if reservedQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"reservedQuantity",
			fmt.Errorf("%d is less than 0", reservedQuantity),
		)
	}

	p.reservedQuantity = reservedQuantity
	return nil
}
