package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
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
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if orders := args.Get(0); orders != nil {
		return orders.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockOrderRepository) CountCouponRedemptions(ctx context.Context, customerID kernel.UUID, code string) (int64, error) {
	args := m.Called(ctx, customerID, code)
	return args.Get(0).(int64), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if c := args.Get(0); c != nil {
		return c.(*coupon.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) ResolveItems(ctx context.Context, restaurantID kernel.UUID, itemIDs []kernel.UUID) ([]services.CatalogItem, error) {
	args := m.Called(ctx, restaurantID, itemIDs)
	if items := args.Get(0); items != nil {
		return items.([]services.CatalogItem), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCatalogClient) DeliveryFeePolicy(ctx context.Context, restaurantID kernel.UUID) (services.DeliveryFeePolicy, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(services.DeliveryFeePolicy), args.Error(1)
}
func (m *MockCatalogClient) RestaurantOwner(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) NotifyStatusChanged(ctx context.Context, orderID kernel.UUID, oldStatus, newStatus order.Status) error {
	args := m.Called(ctx, orderID, oldStatus, newStatus)
	return args.Error(0)
}

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
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) CouponRepository() ports.CouponRepository {
	args := m.Called()
	return args.Get(0).(ports.CouponRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// newCreatedOrder builds a freshly placed order for handler tests.
func newCreatedOrder(t *testing.T, customerID, restaurantID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Margherita", 1200, 2, "")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewOrderNumber(),
		customerID,
		restaurantID,
		[]order.Item{item},
		order.Pricing{SubtotalCents: 2400, DeliveryFeeCents: 299, TaxCents: 192, TotalCents: 2891},
		"",
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

// newOrderInStatus walks a fresh order along the lifecycle graph into the
// requested state, paying it first when the path leaves the created state.
func newOrderInStatus(t *testing.T, customerID, restaurantID kernel.UUID, target order.Status) *order.Order {
	t.Helper()

	o := newCreatedOrder(t, customerID, restaurantID)
	if target == order.Created {
		return o
	}

	now := time.Now().UTC()
	require.NoError(t, o.ApplyPaymentOutcome(true, "", now))

	path := []order.Status{
		order.Preparing, order.ReadyForPickup, order.PickedUp,
		order.OnTheWay, order.Delivered, order.Completed,
	}
	for _, status := range path {
		if o.Status() == target {
			return o
		}
		require.NoError(t, o.TransitionTo(status, order.SystemActorID, "", "", now))
	}
	require.Equal(t, target, o.Status())
	return o
}
