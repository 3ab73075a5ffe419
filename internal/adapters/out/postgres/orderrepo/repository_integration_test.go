package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/orderrepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers to verify persistence,
// optimistic concurrency, and history behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE order_status_changes, order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(couponCode string) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Margherita", 1200, 2, "no basil")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewOrderNumber(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{item},
		order.Pricing{
			SubtotalCents:    2400,
			DiscountCents:    0,
			DeliveryFeeCents: 299,
			TaxCents:         192,
			TotalCents:       2891,
		},
		couponCode,
		nil,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	aggregate := suite.createTestOrder("")

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	var orderCount, itemCount, historyCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&itemCount).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.StatusChangeDTO{}).Count(&historyCount).Error)
	suite.Equal(int64(1), orderCount)
	suite.Equal(int64(1), itemCount)
	suite.Equal(int64(1), historyCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()
	original := suite.createTestOrder("WELCOME10")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.IsEqual(retrieved))
	suite.Equal(original.OrderNumber().String(), retrieved.OrderNumber().String())
	suite.Equal(order.Created, retrieved.Status())
	suite.Equal(order.PaymentPending, retrieved.PaymentStatus())
	suite.Equal(original.Pricing(), retrieved.Pricing())
	suite.Equal("WELCOME10", retrieved.CouponCode())
	suite.Equal(int64(1), retrieved.Version())

	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal("Margherita", retrieved.Items()[0].Name())
	suite.Equal(int64(1200), retrieved.Items()[0].UnitPriceCents())
	suite.Equal(2, retrieved.Items()[0].Quantity())

	suite.Require().Len(retrieved.History(), 1)
	suite.Equal(order.Created, retrieved.History()[0].Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_ExistingOrder_Found() {
	ctx := context.Background()
	original := suite.createTestOrder("")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetByNumber(ctx, original.OrderNumber())
	suite.Require().NoError(err)
	suite.True(original.IsEqual(retrieved))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryOnly() {
	ctx := context.Background()
	aggregate := suite.createTestOrder("")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.ApplyPaymentOutcome(true, "", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AcceptedByRestaurant, retrieved.Status())
	suite.Equal(order.PaymentPaid, retrieved.PaymentStatus())
	suite.Equal(int64(2), retrieved.Version())

	history := retrieved.History()
	suite.Require().Len(history, 2)
	suite.Equal(order.Created, history[0].Status())
	suite.Equal(order.AcceptedByRestaurant, history[1].Status())
	suite.True(order.SystemActorID.IsEqual(history[1].ActorID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	aggregate := suite.createTestOrder("")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// Two copies of the same row; both mutate from version 1.
	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ApplyPaymentOutcome(true, "", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ApplyPaymentOutcome(false, "card declined", time.Now().UTC()))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionConflict)

	// The winner's write is intact.
	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AcceptedByRestaurant, retrieved.Status())
	suite.Equal(int64(2), retrieved.Version())
	suite.Len(retrieved.History(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_NotFound() {
	ctx := context.Background()
	aggregate := suite.createTestOrder("")
	suite.Require().NoError(aggregate.ApplyPaymentOutcome(true, "", time.Now().UTC()))

	err := suite.repository.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellationMetadata() {
	ctx := context.Background()
	aggregate := suite.createTestOrder("")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	actor := aggregate.CustomerID()
	suite.Require().NoError(aggregate.TransitionTo(
		order.Cancelled, actor, "", "changed my mind", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
	suite.Equal("changed my mind", retrieved.CancellationReason())
	suite.Require().NotNil(retrieved.CancelledBy())
	suite.True(actor.IsEqual(*retrieved.CancelledBy()))
	suite.NotNil(retrieved.CancelledAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersByStatus() {
	ctx := context.Background()

	created := suite.createTestOrder("")
	suite.Require().NoError(suite.repository.Add(ctx, created))

	accepted := suite.createTestOrder("")
	suite.Require().NoError(accepted.ApplyPaymentOutcome(true, "", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, accepted))

	inCreated, err := suite.repository.GetAllInStatus(ctx, order.Created)
	suite.Require().NoError(err)
	suite.Require().Len(inCreated, 1)
	suite.True(created.IsEqual(inCreated[0]))

	inAccepted, err := suite.repository.GetAllInStatus(ctx, order.AcceptedByRestaurant)
	suite.Require().NoError(err)
	suite.Require().Len(inAccepted, 1)
	suite.True(accepted.IsEqual(inAccepted[0]))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountCouponRedemptions_ExcludesTerminalFailures() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	redeemed := suite.redeemedOrder(customerID, "SAVE5")
	suite.Require().NoError(suite.repository.Add(ctx, redeemed))

	cancelled := suite.redeemedOrder(customerID, "SAVE5")
	suite.Require().NoError(cancelled.TransitionTo(
		order.Cancelled, customerID, "", "changed my mind", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	otherCoupon := suite.redeemedOrder(customerID, "WELCOME10")
	suite.Require().NoError(suite.repository.Add(ctx, otherCoupon))

	otherCustomer := suite.redeemedOrder(kernel.NewUUID(), "SAVE5")
	suite.Require().NoError(suite.repository.Add(ctx, otherCustomer))

	count, err := suite.repository.CountCouponRedemptions(ctx, customerID, "SAVE5")
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

// redeemedOrder creates an order for the customer that carries the coupon code.
func (suite *OrderRepositoryIntegrationTestSuite) redeemedOrder(customerID kernel.UUID, code string) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Pad Thai", 1550, 1, "")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewOrderNumber(),
		customerID,
		kernel.NewUUID(),
		[]order.Item{item},
		order.Pricing{
			SubtotalCents:    1550,
			DiscountCents:    500,
			DeliveryFeeCents: 299,
			TaxCents:         84,
			TotalCents:       1433,
		},
		code,
		nil,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
