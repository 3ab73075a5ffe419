package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/notify"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/menurepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/queries"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
	"github.com/DevHubFusionX/food-delivery-backend/internal/jobs"
)

// CompositionRoot wires adapters, domain services, and use cases together.
// All construction happens here so the rest of the code depends only on
// interfaces.
type CompositionRoot struct {
	config Config

	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    ports.CatalogClient
	notifier   ports.NotificationPublisher
	pricing    services.PricingEngine
	gate       services.AuthorizationGate
}

// NewCompositionRoot creates the composition root from the loaded config and
// an open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    menurepo.NewGormCatalogClient(gormDB),
		notifier:   notify.NewLogPublisher(logger),
		pricing:    services.NewPricingEngine(config.TaxRateBasisPoints),
		gate:       services.NewAuthorizationGate(),
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.catalog, c.pricing)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.catalog, c.gate, c.notifier)
}

func (c *CompositionRoot) CreateApplyPaymentOutcomeCommandHandler() commands.ApplyPaymentOutcomeCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyPaymentOutcomeCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRiderCommandHandler(f, c.catalog)
}

func (c *CompositionRoot) CreateCompleteDeliveredOrdersCommandHandler() commands.CompleteDeliveredOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveredOrdersCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled jobs with the configured grace period.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	grace := time.Duration(c.config.CompletionGraceMinutes) * time.Minute
	return jobs.NewJobManager(c.CreateCompleteDeliveredOrdersCommandHandler(), grace, logger)
}

// FuncOrderUoWFactory adapts a closure to the commands.OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
