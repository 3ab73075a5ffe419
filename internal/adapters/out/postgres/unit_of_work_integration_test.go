package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/couponrepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/orderrepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&couponrepo.CouponDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_status_changes, order_items, orders, coupons").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(couponCode string) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Margherita", 1200, 2, "")
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

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create_IsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CouponRepository())
	suite.NotNil(uow2.OrderRepository())
	suite.NotNil(uow2.CouponRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	// Multiple begin calls are safe.
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.createTestOrder("")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.createTestOrder("")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Zero(count)
}

// TestOrderAndCouponCommitTogether covers the order placement write pattern:
// the order insert and the coupon usage increment share one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestOrderAndCouponCommitTogether() {
	ctx := context.Background()

	now := time.Now().UTC()
	testCoupon, err := coupon.NewCoupon("WELCOME10", coupon.DiscountPercentage, 10,
		0, 0, nil, 1, now.Add(-time.Hour), now.AddDate(0, 1, 0))
	suite.Require().NoError(err)
	suite.Require().NoError(
		couponrepo.NewGormCouponRepository(suite.db).Add(ctx, testCoupon))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CouponRepository().IncrementUsage(ctx, "WELCOME10"))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder("WELCOME10")))
	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := couponrepo.NewGormCouponRepository(suite.db).GetByCode(ctx, "WELCOME10")
	suite.Require().NoError(err)
	suite.Equal(int64(1), retrieved.UsageCount())
}

// TestRollback_LeavesCouponCounterUntouched verifies the increment never
// survives a failed order placement.
func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_LeavesCouponCounterUntouched() {
	ctx := context.Background()

	now := time.Now().UTC()
	testCoupon, err := coupon.NewCoupon("SAVE5", coupon.DiscountFixed, 500,
		0, 0, nil, 1, now.Add(-time.Hour), now.AddDate(0, 1, 0))
	suite.Require().NoError(err)
	suite.Require().NoError(
		couponrepo.NewGormCouponRepository(suite.db).Add(ctx, testCoupon))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CouponRepository().IncrementUsage(ctx, "SAVE5"))
	suite.Require().NoError(uow.Rollback(ctx))

	retrieved, err := couponrepo.NewGormCouponRepository(suite.db).GetByCode(ctx, "SAVE5")
	suite.Require().NoError(err)
	suite.Zero(retrieved.UsageCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
