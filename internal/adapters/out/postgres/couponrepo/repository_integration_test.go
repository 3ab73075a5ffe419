package couponrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/couponrepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CouponRepositoryIntegrationTestSuite provides integration tests for
// GormCouponRepository using PostgreSQL containers, with a focus on the
// atomic usage-counter increment.
type CouponRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *couponrepo.GormCouponRepository
}

func (suite *CouponRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&couponrepo.CouponDTO{}))
}

func (suite *CouponRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE coupons").Error)
	suite.repository = couponrepo.NewGormCouponRepository(suite.db)
}

func (suite *CouponRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CouponRepositoryIntegrationTestSuite) createTestCoupon(code string, usageLimit *int64) *coupon.Coupon {
	now := time.Now().UTC()
	c, err := coupon.NewCoupon(code, coupon.DiscountPercentage, 10,
		1000, 500, usageLimit, 1, now.Add(-time.Hour), now.AddDate(0, 1, 0))
	suite.Require().NoError(err)
	return c
}

func (suite *CouponRepositoryIntegrationTestSuite) TestGetByCode_ExistingCoupon_RoundTrips() {
	ctx := context.Background()
	limit := int64(100)
	original := suite.createTestCoupon("WELCOME10", &limit)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetByCode(ctx, "welcome10")
	suite.Require().NoError(err)

	suite.Equal("WELCOME10", retrieved.Code())
	suite.Equal(coupon.DiscountPercentage, retrieved.DiscountType())
	suite.Equal(int64(10), retrieved.DiscountValue())
	suite.Equal(int64(1000), retrieved.MinOrderCents())
	suite.Equal(int64(500), retrieved.MaxDiscountCents())
	suite.Require().NotNil(retrieved.UsageLimit())
	suite.Equal(int64(100), *retrieved.UsageLimit())
	suite.Zero(retrieved.UsageCount())
	suite.True(retrieved.IsActive())
}

func (suite *CouponRepositoryIntegrationTestSuite) TestGetByCode_MissingCoupon_NotFound() {
	_, err := suite.repository.GetByCode(context.Background(), "NOPE")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CouponRepositoryIntegrationTestSuite) TestIncrementUsage_CountsUp() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestCoupon("SAVE5", nil)))

	suite.Require().NoError(suite.repository.IncrementUsage(ctx, "SAVE5"))
	suite.Require().NoError(suite.repository.IncrementUsage(ctx, "save5"))

	retrieved, err := suite.repository.GetByCode(ctx, "SAVE5")
	suite.Require().NoError(err)
	suite.Equal(int64(2), retrieved.UsageCount())
}

func (suite *CouponRepositoryIntegrationTestSuite) TestIncrementUsage_StopsAtLimit() {
	ctx := context.Background()
	limit := int64(2)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestCoupon("LIMITED", &limit)))

	suite.Require().NoError(suite.repository.IncrementUsage(ctx, "LIMITED"))
	suite.Require().NoError(suite.repository.IncrementUsage(ctx, "LIMITED"))

	err := suite.repository.IncrementUsage(ctx, "LIMITED")
	suite.Require().ErrorIs(err, coupon.ErrCouponInvalid)

	var invalidErr *coupon.CouponInvalidError
	suite.Require().ErrorAs(err, &invalidErr)
	suite.Equal(coupon.ReasonUsageLimitExceeded, invalidErr.Reason)

	// The counter never moves past the limit.
	retrieved, getErr := suite.repository.GetByCode(ctx, "LIMITED")
	suite.Require().NoError(getErr)
	suite.Equal(int64(2), retrieved.UsageCount())
}

func (suite *CouponRepositoryIntegrationTestSuite) TestIncrementUsage_MissingCoupon_NotFound() {
	err := suite.repository.IncrementUsage(context.Background(), "NOPE")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCouponRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CouponRepositoryIntegrationTestSuite))
}
