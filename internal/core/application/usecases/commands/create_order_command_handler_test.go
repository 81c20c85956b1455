package commands_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/customer"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/services"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderHandler(
	uow commands.CreateOrderUoW, planLimits ports.PlanLimitChecker,
) commands.CreateOrderCommandHandler {
	factory := createOrderUoWFactoryFunc(func() commands.CreateOrderUoW { return uow })
	return commands.NewCreateOrderCommandHandler(
		factory,
		planLimits,
		services.NewCreditPolicy(),
		services.NewOrderNumberGenerator(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func allowedPlanLimits(tenantID kernel.UUID) *MockPlanLimitChecker {
	planLimits := new(MockPlanLimitChecker)
	planLimits.On("CanCreateOrder", mock.Anything, tenantID).
		Return(ports.PlanLimitDecision{Allowed: true, Current: 3, Max: 100}, nil)
	planLimits.On("RecordOrderCreated", mock.Anything, tenantID).Return(nil)
	return planLimits
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	cust := newTestCustomer(t, tenantID, actor.UserID(), nil)

	price := decimal.RequireFromString("10.00")
	p := newTestProduct(t, tenantID, price, 5)
	item := newTestItem(t, p.ID(), price, 3)
	total := decimal.RequireFromString("30.00")

	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, []*order.Item{item}, newTestAmounts(t, total), "ring the bell", nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("TenantRepository").Return(tenantRepo)
	uow.On("OutboxRepository").Return(outboxRepo)

	customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)
	customerRepo.On("Update", mock.Anything, cust).Return(nil)
	productRepo.On("GetForUpdate", mock.Anything, p.ID(), tenantID).Return(p, nil)
	productRepo.On("Update", mock.Anything, p).Return(nil)
	tenantRepo.On("Get", mock.Anything, tenantID).Return(newTestTenant(t, tenantID), nil)
	orderRepo.On("CountCreatedSince", mock.Anything, tenantID, mock.Anything).Return(2, nil)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Event")).Return(nil)

	handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
	created, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, order.StatusPending, created.Status())
	assert.Equal(t, order.PaymentUnpaid, created.PaymentStatus())
	assert.True(t, strings.HasPrefix(created.OrderNumber(), "ORD-03"),
		"third order of the day should carry sequence 03, got %s", created.OrderNumber())

	history := created.History()
	require.Len(t, history, 1)
	assert.Nil(t, history[0].FromStatus())
	assert.Equal(t, order.StatusPending, history[0].ToStatus())

	assert.Equal(t, 3, p.ReservedQuantity())
	assert.True(t, cust.DebtBalance().Equal(total),
		"debt should grow by the order total, got %s", cust.DebtBalance())

	uow.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PlanLimitExhausted(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleTenantAdmin)
	cust := newTestCustomer(t, tenantID, actor.UserID(), nil)

	price := decimal.RequireFromString("10.00")
	item := newTestItem(t, kernel.NewUUID(), price, 1)
	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, []*order.Item{item}, newTestAmounts(t, price), "", nil,
	)
	require.NoError(t, err)

	planLimits := new(MockPlanLimitChecker)
	planLimits.On("CanCreateOrder", mock.Anything, tenantID).
		Return(ports.PlanLimitDecision{Allowed: false, Current: 100, Max: 100}, nil)

	uow := new(MockUoW)
	handler := newCreateOrderHandler(uow, planLimits)

	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrLimitExceeded)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ForeignCustomerForbidden(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	otherRep := kernel.NewUUID()
	cust := newTestCustomer(t, tenantID, otherRep, nil)

	price := decimal.RequireFromString("10.00")
	item := newTestItem(t, kernel.NewUUID(), price, 1)
	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, []*order.Item{item}, newTestAmounts(t, price), "", nil,
	)
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CustomerRepository").Return(customerRepo)

	handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	cust := newTestCustomer(t, tenantID, actor.UserID(), nil)

	price := decimal.RequireFromString("10.00")
	p := newTestProduct(t, tenantID, price, 1)
	item := newTestItem(t, p.ID(), price, 2)
	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, []*order.Item{item}, newTestAmounts(t, price), "", nil,
	)
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)
	productRepo := new(MockProductRepository)
	productRepo.On("GetForUpdate", mock.Anything, p.ID(), tenantID).Return(p, nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("ProductRepository").Return(productRepo)

	handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInsufficientStock)

	assert.Equal(t, 0, p.ReservedQuantity(), "a rejected order must not reserve stock")
	assert.True(t, cust.DebtBalance().IsZero(), "a rejected order must not touch debt")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// Two lines of the same product must be checked and reserved as one summed
// quantity against a single locked row, not line by line against the same
// pre-order snapshot.
func TestCreateOrderCommandHandler_Handle_DuplicateProductLines_SummedAgainstStock(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	cust := newTestCustomer(t, tenantID, actor.UserID(), nil)

	price := decimal.RequireFromString("10.00")
	p := newTestProduct(t, tenantID, price, 1)
	items := []*order.Item{
		newTestItem(t, p.ID(), price, 1),
		newTestItem(t, p.ID(), price, 1),
	}
	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, items, newTestAmounts(t, decimal.RequireFromString("20.00")), "", nil,
	)
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)
	productRepo := new(MockProductRepository)
	productRepo.On("GetForUpdate", mock.Anything, p.ID(), tenantID).Return(p, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("ProductRepository").Return(productRepo)

	handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInsufficientStock,
		"two 1-unit lines of a 1-unit product must not pass the stock check")

	assert.Equal(t, 0, p.ReservedQuantity(), "a rejected order must not reserve stock")
	productRepo.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateProductLines_ReserveSum(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	cust := newTestCustomer(t, tenantID, actor.UserID(), nil)

	price := decimal.RequireFromString("10.00")
	p := newTestProduct(t, tenantID, price, 5)
	items := []*order.Item{
		newTestItem(t, p.ID(), price, 2),
		newTestItem(t, p.ID(), price, 3),
	}
	total := decimal.RequireFromString("50.00")
	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, items, newTestAmounts(t, total), "", nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("CountCreatedSince", mock.Anything, tenantID, mock.Anything).Return(0, nil)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo := new(MockProductRepository)
	productRepo.On("GetForUpdate", mock.Anything, p.ID(), tenantID).Return(p, nil).Once()
	productRepo.On("Update", mock.Anything, p).Return(nil).Once()
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)
	customerRepo.On("Update", mock.Anything, cust).Return(nil)
	tenantRepo := new(MockTenantRepository)
	tenantRepo.On("Get", mock.Anything, tenantID).Return(newTestTenant(t, tenantID), nil)
	outboxRepo := new(MockOutboxRepository)
	outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Event")).Return(nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("TenantRepository").Return(tenantRepo)
	uow.On("OutboxRepository").Return(outboxRepo)

	handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
	created, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 5, p.ReservedQuantity(),
		"reservation must equal the summed quantity across both lines")
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PriceChanged(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	cust := newTestCustomer(t, tenantID, actor.UserID(), nil)

	currentPrice := decimal.RequireFromString("10.00")
	quotedPrice := decimal.RequireFromString("9.50")
	p := newTestProduct(t, tenantID, currentPrice, 10)
	item := newTestItem(t, p.ID(), quotedPrice, 1)
	cmd, err := commands.NewCreateOrderCommand(
		actor, cust.ID(), nil, []*order.Item{item}, newTestAmounts(t, quotedPrice), "", nil,
	)
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)
	productRepo := new(MockProductRepository)
	productRepo.On("GetForUpdate", mock.Anything, p.ID(), tenantID).Return(p, nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("ProductRepository").Return(productRepo)

	handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPriceChanged)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// Tier credit limit 1000 with current debt 900: a 150 order is rejected, a
// 50 order is accepted and the debt becomes 950.
func TestCreateOrderCommandHandler_Handle_CreditLimit(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		wantErr  bool
		wantDebt string
	}{
		{name: "over the limit", total: "150.00", wantErr: true},
		{name: "within the limit", total: "50.00", wantDebt: "950.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenantID := kernel.NewUUID()
			actor := newActor(t, tenantID, kernel.RoleSalesRep)

			limit := decimal.RequireFromString("1000.00")
			tier, err := customer.NewTier(kernel.NewUUID(), tenantID, "wholesale", true, &limit, nil)
			require.NoError(t, err)

			tierID := tier.ID()
			cust, err := customer.RestoreCustomer(
				kernel.NewUUID(), tenantID, actor.UserID(), "Corner Shop", &tierID,
				decimal.RequireFromString("900.00"), decimal.Zero,
			)
			require.NoError(t, err)

			total := decimal.RequireFromString(tt.total)
			price := total
			p := newTestProduct(t, tenantID, price, 10)
			item := newTestItem(t, p.ID(), price, 1)
			cmd, err := commands.NewCreateOrderCommand(
				actor, cust.ID(), nil, []*order.Item{item}, newTestAmounts(t, total), "", nil,
			)
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			orderRepo.On("CountCreatedSince", mock.Anything, tenantID, mock.Anything).Return(0, nil)
			orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
			productRepo := new(MockProductRepository)
			productRepo.On("GetForUpdate", mock.Anything, p.ID(), tenantID).Return(p, nil)
			productRepo.On("Update", mock.Anything, p).Return(nil)
			customerRepo := new(MockCustomerRepository)
			customerRepo.On("GetForUpdate", mock.Anything, cust.ID(), tenantID).Return(cust, nil)
			customerRepo.On("GetTier", mock.Anything, tier.ID(), tenantID).Return(tier, nil)
			customerRepo.On("Update", mock.Anything, cust).Return(nil)
			tenantRepo := new(MockTenantRepository)
			tenantRepo.On("Get", mock.Anything, tenantID).Return(newTestTenant(t, tenantID), nil)
			outboxRepo := new(MockOutboxRepository)
			outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Event")).Return(nil)

			uow := new(MockUoW)
			uow.On("Begin", mock.Anything).Return(nil)
			uow.On("Rollback", mock.Anything).Return(nil)
			uow.On("Commit", mock.Anything).Return(nil)
			uow.On("OrderRepository").Return(orderRepo)
			uow.On("ProductRepository").Return(productRepo)
			uow.On("CustomerRepository").Return(customerRepo)
			uow.On("TenantRepository").Return(tenantRepo)
			uow.On("OutboxRepository").Return(outboxRepo)

			handler := newCreateOrderHandler(uow, allowedPlanLimits(tenantID))
			_, err = handler.Handle(t.Context(), cmd)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrCreditLimitExceeded)
				uow.AssertNotCalled(t, "Commit", mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.True(t, cust.DebtBalance().Equal(decimal.RequireFromString(tt.wantDebt)),
				"debt should be %s, got %s", tt.wantDebt, cust.DebtBalance())
		})
	}
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	handler := newCreateOrderHandler(new(MockUoW), new(MockPlanLimitChecker))
	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
