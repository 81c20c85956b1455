package commands_test

import (
	"context"
	"testing"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/customer"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/outbox"
	"distribution/internal/core/domain/model/product"
	"distribution/internal/core/domain/model/tenant"
	"distribution/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id, tenantID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountCreatedSince(
	ctx context.Context, tenantID kernel.UUID, since time.Time,
) (int, error) {
	args := m.Called(ctx, tenantID, since)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id, tenantID kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetForUpdate(
	ctx context.Context, id, tenantID kernel.UUID,
) (*customer.Customer, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetTier(ctx context.Context, id, tenantID kernel.UUID) (*customer.Tier, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Tier), args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUndispatched(ctx context.Context, limit int) ([]*outbox.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Event), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPlanLimitChecker struct{ mock.Mock }

func (m *MockPlanLimitChecker) CanCreateOrder(
	ctx context.Context, tenantID kernel.UUID,
) (ports.PlanLimitDecision, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(ports.PlanLimitDecision), args.Error(1)
}

func (m *MockPlanLimitChecker) RecordOrderCreated(ctx context.Context, tenantID kernel.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockUoW satisfies every unit-of-work interface the command handlers use,
// including the batch coordinator's savepoints.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SavePoint(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUoW) RollbackTo(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) TenantRepository() ports.TenantRepository {
	args := m.Called()
	return args.Get(0).(ports.TenantRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

// Factory adapters in the style of the composition root.
type createOrderUoWFactoryFunc func() commands.CreateOrderUoW

func (f createOrderUoWFactoryFunc) Create() commands.CreateOrderUoW { return f() }

type lifecycleUoWFactoryFunc func() commands.LifecycleUoW

func (f lifecycleUoWFactoryFunc) Create() commands.LifecycleUoW { return f() }

type batchUoWFactoryFunc func() commands.BatchUoW

func (f batchUoWFactoryFunc) Create() commands.BatchUoW { return f() }

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

// Test fixtures.

func newActor(t *testing.T, tenantID kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), tenantID, role)
	require.NoError(t, err)
	return actor
}

func newTestTenant(t *testing.T, id kernel.UUID) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(id, "Acme Distribution", "ORD-", "UTC")
	require.NoError(t, err)
	return tn
}

func newTestCustomer(t *testing.T, tenantID, createdBy kernel.UUID, tierID *kernel.UUID) *customer.Customer {
	t.Helper()
	cust, err := customer.NewCustomer(kernel.NewUUID(), tenantID, createdBy, "Corner Shop", tierID)
	require.NoError(t, err)
	return cust
}

func newTestProduct(t *testing.T, tenantID kernel.UUID, price decimal.Decimal, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), tenantID, "Sparkling Water 1L", price, stock)
	require.NoError(t, err)
	return p
}

func newTestItem(t *testing.T, productID kernel.UUID, price decimal.Decimal, qty int) *order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(), productID, price, qty, price.Mul(decimal.NewFromInt(int64(qty))),
	)
	require.NoError(t, err)
	return item
}

func newTestAmounts(t *testing.T, total decimal.Decimal) order.Amounts {
	t.Helper()
	amounts, err := order.NewAmounts(total, decimal.Zero, decimal.Zero, total)
	require.NoError(t, err)
	return amounts
}

func newTestOrder(
	t *testing.T, tenantID, customerID, createdBy kernel.UUID, items []*order.Item, total decimal.Decimal,
) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderParams{
		ID:          kernel.NewUUID(),
		TenantID:    tenantID,
		OrderNumber: "ORD-011015",
		CustomerID:  customerID,
		SalesRepID:  createdBy,
		CreatedBy:   createdBy,
		Amounts:     newTestAmounts(t, total),
		Items:       items,
		Now:         time.Now().UTC(),
	})
	require.NoError(t, err)
	return o
}
