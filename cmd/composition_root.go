package cmd

import (
	"log/slog"
	"strconv"

	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/auditrepo"
	"marketplace/internal/adapters/out/postgres/providerrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	providers  *providerrepo.GormProviderRepository
	auditLog   ports.AuditLog
	notifier   ports.NotificationPublisher
	calculator services.CommissionCalculator
	pricer     services.DeliveryPricer
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	providers := providerrepo.NewGormProviderRepository(gormDB)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		providers:  providers,
		auditLog:   auditrepo.NewGormAuditLog(gormDB),
		notifier:   notify.NewSlogNotificationPublisher(logger),
		calculator: services.NewCommissionCalculator(providers),
		pricer:     services.NewDeliveryPricer(buildPricingConfig(config)),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateDeliveryOrderCommandHandler() commands.CreateDeliveryOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryOrderCommandHandler(
		f, c.providers, c.calculator, c.pricer, c.auditLog, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateMarketplaceOrderCommandHandler() commands.CreateMarketplaceOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMarketplaceOrderCommandHandler(
		f, c.calculator, c.pricer, c.auditLog, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateQuotedOrderCommandHandler() commands.CreateQuotedOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateQuotedOrderCommandHandler(
		f, c.providers, c.calculator, c.auditLog, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignProviderCommandHandler() commands.AssignProviderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignProviderCommandHandler(
		f, c.providers, c.auditLog, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(
		f, c.calculator, c.auditLog, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReconcileCommissionsCommandHandler() commands.ReconcileCommissionsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileCommissionsCommandHandler(f, c.auditLog, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

// buildPricingConfig overlays the configured pricing knobs on the default
// pricing table. Unset or malformed values keep the defaults.
func buildPricingConfig(config Config) services.PricingConfig {
	pricing := services.DefaultPricingConfig()

	if money, ok := parseMoney(config.DeliveryBasePrice); ok {
		pricing.BasePrice = money
	}
	if money, ok := parseMoney(config.DeliveryPricePerKm); ok {
		pricing.PricePerKm = money
	}
	if money, ok := parseMoney(config.DeliveryPricePerKg); ok {
		pricing.PricePerKg = money
	}

	if enabled, err := strconv.ParseBool(config.FreeDeliveryEnabled); err == nil {
		pricing.FreeDeliveryEnabled = enabled
	}
	if radius, err := strconv.ParseFloat(config.FreeDeliveryRadiusKm, 64); err == nil && radius >= 0 {
		pricing.FreeDeliveryRadiusKm = radius
	}

	return pricing
}

func parseMoney(value string) (kernel.Money, bool) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return kernel.Money{}, false
	}

	money, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Money{}, false
	}
	return money, true
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
