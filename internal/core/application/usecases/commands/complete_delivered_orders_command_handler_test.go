package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// newDeliveredOrderAt restores a delivered order whose delivery happened at
// the given time, so sweep tests can control the age of the order.
func newDeliveredOrderAt(t *testing.T, deliveredAt time.Time) *order.Order {
	t.Helper()

	customerID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), "Pad Thai", 1500, 1, "")
	require.NoError(t, err)

	placed, err := order.NewStatusChange(order.Created, deliveredAt.Add(-time.Hour), customerID, "")
	require.NoError(t, err)
	delivered, err := order.NewStatusChange(order.Delivered, deliveredAt, kernel.NewUUID(), "")
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                 kernel.NewUUID(),
		OrderNumber:        kernel.NewOrderNumber(),
		CustomerID:         customerID,
		RestaurantID:       kernel.NewUUID(),
		Items:              []order.Item{item},
		Pricing:            order.Pricing{SubtotalCents: 1500, DeliveryFeeCents: 299, TaxCents: 120, TotalCents: 1919},
		Status:             order.Delivered,
		History:            []order.StatusChange{placed, delivered},
		PaymentStatus:      order.PaymentPaid,
		ActualDeliveryTime: &deliveredAt,
		Version:            8,
	})
	require.NoError(t, err)
	return o
}

func newSweepHandler(repo *MockOrderRepository, notifier *MockNotificationPublisher) commands.CompleteDeliveredOrdersCommandHandler {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	return commands.NewCompleteDeliveredOrdersCommandHandler(factory, notifier)
}

func TestCompleteDeliveredOrdersCommandHandler_Handle_CompletesStaleOnly(t *testing.T) {
	ctx := t.Context()
	stale := newDeliveredOrderAt(t, time.Now().UTC().Add(-2*time.Hour))
	fresh := newDeliveredOrderAt(t, time.Now().UTC())

	cmd, err := commands.NewCompleteDeliveredOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Delivered).Return([]*order.Order{stale, fresh}, nil).Once()
	repo.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
	repo.On("Update", ctx, stale).Return(nil).Once()

	notifier := new(MockNotificationPublisher)
	notifier.On("NotifyStatusChanged", ctx, stale.ID(), order.Delivered, order.Completed).Return(nil).Once()

	h := newSweepHandler(repo, notifier)
	completed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, completed)
	assert.Equal(t, order.Completed, stale.Status())
	assert.Equal(t, order.Delivered, fresh.Status())

	history := stale.History()
	last := history[len(history)-1]
	assert.Equal(t, order.SystemActorID, last.ActorID())
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCompleteDeliveredOrdersCommandHandler_Handle_NothingToDo(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCompleteDeliveredOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Delivered).Return([]*order.Order{}, nil).Once()

	h := newSweepHandler(repo, new(MockNotificationPublisher))
	completed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, completed)
}

func TestCompleteDeliveredOrdersCommandHandler_Handle_SkipsLostRace(t *testing.T) {
	ctx := t.Context()
	stale := newDeliveredOrderAt(t, time.Now().UTC().Add(-2*time.Hour))

	cmd, err := commands.NewCompleteDeliveredOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Delivered).Return([]*order.Order{stale}, nil).Once()
	repo.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
	// A customer confirmed concurrently; the compare-and-swap loses.
	repo.On("Update", ctx, stale).Return(errs.NewVersionConflictError("order", 8, 9)).Once()

	notifier := new(MockNotificationPublisher)

	h := newSweepHandler(repo, notifier)
	completed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, completed)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteDeliveredOrdersCommandHandler_Handle_SkipsAlreadyConfirmed(t *testing.T) {
	ctx := t.Context()
	stale := newDeliveredOrderAt(t, time.Now().UTC().Add(-2*time.Hour))
	confirmed := newDeliveredOrderAt(t, time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, confirmed.TransitionTo(order.Completed, confirmed.CustomerID(), "", "", time.Now().UTC()))

	cmd, err := commands.NewCompleteDeliveredOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Delivered).Return([]*order.Order{stale, confirmed}, nil).Once()
	repo.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
	repo.On("Get", ctx, confirmed.ID()).Return(confirmed, nil).Once()
	repo.On("Update", ctx, stale).Return(nil).Once()

	notifier := new(MockNotificationPublisher)
	notifier.On("NotifyStatusChanged", ctx, stale.ID(), order.Delivered, order.Completed).Return(nil).Once()

	h := newSweepHandler(repo, notifier)
	completed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	repo.AssertExpectations(t)
}
