package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, including the optimistic-concurrency guard and
// the jsonb payload round trips.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) money(value float64) kernel.Money {
	m, err := kernel.NewMoneyFromFloat(value)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) createDeliveryOrder() *order.Order {
	pickup, err := kernel.NewGeoPoint(9.0765, 7.3986)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(9.0579, 7.4951)
	suite.Require().NoError(err)
	details, err := order.NewDeliveryDetails(pickup, dropoff, "documents", 2.5, order.Bike, 11.3, 34)
	suite.Require().NoError(err)
	number, err := kernel.NewOrderNumber("DLV", time.Now())
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), number, order.Delivery,
		kernel.NewUUID(), suite.money(20.00), details, time.Now())
	suite.Require().NoError(err)

	err = aggregate.SetCommission(decimal.NewFromInt(15), suite.money(3.00), suite.money(17.00))
	suite.Require().NoError(err)

	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) createMarketplaceOrder() *order.Order {
	line, err := order.NewLine(kernel.NewUUID(), "rice 5kg", suite.money(6.00), 2)
	suite.Require().NoError(err)
	details, err := order.NewMarketplaceDetails([]order.Line{line}, suite.money(12.00), suite.money(3.50))
	suite.Require().NoError(err)
	number, err := kernel.NewOrderNumber("MKT", time.Now())
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), number, order.Marketplace,
		kernel.NewUUID(), suite.money(15.50), details, time.Now())
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) assignDriver(aggregate *order.Order) kernel.UUID {
	driverID := kernel.NewUUID()
	ref, err := order.NewProviderRef(driverID, order.Driver)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AssignProvider(ref, aggregate.CustomerID(), time.Now()))
	return driverID
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_DeliveryOrder_RoundTrips() {
	ctx := context.Background()
	aggregate := suite.createDeliveryOrder()
	driverID := suite.assignDriver(aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(aggregate.ID()))
	suite.True(restored.OrderNumber().IsEqual(aggregate.OrderNumber()))
	suite.Equal(order.Delivery, restored.OrderType())
	suite.Equal(order.ProviderAssigned, restored.Status())
	suite.Require().NotNil(restored.ProviderRef())
	suite.True(restored.ProviderRef().ID().IsEqual(driverID))
	suite.Equal(order.Driver, restored.ProviderRef().Kind())
	suite.True(restored.GrossAmount().Equals(suite.money(20.00)))
	suite.True(restored.CommissionAmount().Equals(suite.money(3.00)))
	suite.True(restored.ProviderPayout().Equals(suite.money(17.00)))
	suite.True(restored.CommissionRate().Equal(decimal.NewFromInt(15)))
	suite.Equal(1, restored.Version())
	suite.Len(restored.History(), 2)

	details, ok := restored.Details().(order.DeliveryDetails)
	suite.Require().True(ok)
	suite.Equal("documents", details.Description())
	suite.Equal(order.Bike, details.Vehicle())
	suite.InDelta(11.3, details.DistanceKm(), 0.0001)
	suite.Equal(34, details.EtaMinutes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_MarketplaceOrder_RoundTrips() {
	ctx := context.Background()
	aggregate := suite.createMarketplaceOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	details, ok := restored.Details().(order.MarketplaceDetails)
	suite.Require().True(ok)
	suite.Require().Len(details.Lines(), 1)
	suite.Equal("rice 5kg", details.Lines()[0].ProductName())
	suite.Equal(2, details.Lines()[0].Quantity())
	suite.True(details.Subtotal().Equals(suite.money(12.00)))
	suite.True(details.DeliveryFee().Equals(suite.money(3.50)))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	aggregate := suite.createDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.assignDriver(aggregate)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ProviderAssigned, restored.Status())
	suite.Equal(2, restored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	aggregate := suite.createDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// two readers load the same version
	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.assignDriver(first)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.assignDriver(second)
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConcurrentModification)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(restored.ProviderRef().ID().IsEqual(first.ProviderRef().ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	aggregate := suite.createDeliveryOrder()

	err := suite.repository.Update(context.Background(), aggregate)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalAndSoftDeleted() {
	ctx := context.Background()

	active := suite.createDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, active))

	cancelled := suite.createDeliveryOrder()
	suite.Require().NoError(cancelled.TransitionTo(order.Cancelled, cancelled.CustomerID(), "", time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	deleted := suite.createDeliveryOrder()
	deleted.SoftDelete()
	suite.Require().NoError(suite.repository.Add(ctx, deleted))

	orders, err := suite.repository.GetAllActive(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(active.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllCompleted_ReturnsCompletedOnly() {
	ctx := context.Background()

	pending := suite.createDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	completed := suite.createDeliveryOrder()
	driverID := suite.assignDriver(completed)
	suite.Require().NoError(completed.TransitionTo(order.InProgress, driverID, "", time.Now()))
	suite.Require().NoError(completed.TransitionTo(order.Completed, driverID, "", time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, completed))

	orders, err := suite.repository.GetAllCompleted(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(completed.ID()))
	suite.Equal(order.Completed, orders[0].Status())
	suite.False(orders[0].CanModifyCommission())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
