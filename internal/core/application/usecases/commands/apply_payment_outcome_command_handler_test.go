package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
)

func newPaymentOutcomeHandler(repo *MockOrderRepository, notifier *MockNotificationPublisher) commands.ApplyPaymentOutcomeCommandHandler {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	return commands.NewApplyPaymentOutcomeCommandHandler(factory, notifier)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := newCreatedOrder(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewApplyPaymentOutcomeCommand(o.ID(), true, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()

	notifier := new(MockNotificationPublisher)
	notifier.On("NotifyStatusChanged", ctx, o.ID(), order.Created, order.AcceptedByRestaurant).Return(nil).Once()

	h := newPaymentOutcomeHandler(repo, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.AcceptedByRestaurant, o.Status())
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_Failure(t *testing.T) {
	ctx := t.Context()
	o := newCreatedOrder(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewApplyPaymentOutcomeCommand(o.ID(), false, "card declined")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()

	notifier := new(MockNotificationPublisher)
	notifier.On("NotifyStatusChanged", ctx, o.ID(), order.Created, order.Failed).Return(nil).Once()

	h := newPaymentOutcomeHandler(repo, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Failed, o.Status())
	assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
}

func TestApplyPaymentOutcomeCommandHandler_Handle_OrderNotAwaitingPayment(t *testing.T) {
	ctx := t.Context()
	o := newOrderInStatus(t, kernel.NewUUID(), kernel.NewUUID(), order.Preparing)

	cmd, err := commands.NewApplyPaymentOutcomeCommand(o.ID(), true, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	h := newPaymentOutcomeHandler(repo, new(MockNotificationPublisher))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Preparing, o.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
