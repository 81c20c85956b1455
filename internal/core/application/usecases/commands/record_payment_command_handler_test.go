package commands_test

import (
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRecordPaymentCommand(t *testing.T) {
	actor := newActor(t, kernel.NewUUID(), kernel.RoleSupervisor)

	_, err := commands.NewRecordPaymentCommand(actor, kernel.NewUUID(), order.PaymentPaid)
	require.NoError(t, err)

	_, err = commands.NewRecordPaymentCommand(actor, kernel.NewUUID(), order.PaymentStatus("settled"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var cmd commands.RecordPaymentCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrRecordPaymentCommandIsNotConstructed)
}

func TestRecordPaymentCommandHandler_Handle(t *testing.T) {
	tenantID := kernel.NewUUID()
	price := decimal.RequireFromString("10.00")
	items := func() []*order.Item { return []*order.Item{newTestItem(t, kernel.NewUUID(), price, 1)} }

	t.Run("supervisor records payment", func(t *testing.T) {
		actor := newActor(t, tenantID, kernel.RoleSupervisor)
		o := newTestOrder(t, tenantID, kernel.NewUUID(), kernel.NewUUID(), items(), price)

		cmd, err := commands.NewRecordPaymentCommand(actor, o.ID(), order.PaymentPaid)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, o.ID(), tenantID).Return(o, nil)
		orderRepo.On("Update", mock.Anything, o).Return(nil)

		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)

		factory := orderUoWFactoryFunc(func() commands.OrderUoW { return uow })
		handler := commands.NewRecordPaymentCommandHandler(factory)

		require.NoError(t, handler.Handle(t.Context(), cmd))
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		uow.AssertExpectations(t)
	})

	t.Run("driver forbidden", func(t *testing.T) {
		actor := newActor(t, tenantID, kernel.RoleDriver)
		o := newTestOrder(t, tenantID, kernel.NewUUID(), kernel.NewUUID(), items(), price)

		cmd, err := commands.NewRecordPaymentCommand(actor, o.ID(), order.PaymentPaid)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, o.ID(), tenantID).Return(o, nil)

		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)

		factory := orderUoWFactoryFunc(func() commands.OrderUoW { return uow })
		handler := commands.NewRecordPaymentCommandHandler(factory)

		err = handler.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
