package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
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

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) money(value float64) kernel.Money {
	m, err := kernel.NewMoneyFromFloat(value)
	suite.Require().NoError(err)
	return m
}

func (suite *GetOrderQueryHandlerTestSuite) createDeliveryOrder() *order.Order {
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

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder_MapsAllFields() {
	ctx := context.Background()
	aggregate := suite.createDeliveryOrder()

	driverID := kernel.NewUUID()
	ref, err := order.NewProviderRef(driverID, order.Driver)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AssignProvider(ref, aggregate.CustomerID(), time.Now()))

	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(aggregate.ID()))
	suite.Equal(aggregate.OrderNumber().String(), result.OrderNumber)
	suite.Equal("delivery", result.OrderType)
	suite.Equal("provider_assigned", result.Status)
	suite.Equal("pending", result.PaymentStatus)
	suite.True(result.CustomerID.IsEqual(aggregate.CustomerID()))
	suite.Require().NotNil(result.ProviderID)
	suite.True(result.ProviderID.IsEqual(driverID))
	suite.Equal("driver", result.ProviderKind)
	suite.True(result.GrossAmount.Equal(decimal.NewFromFloat(20.00)))
	suite.True(result.CommissionRate.Equal(decimal.NewFromInt(15)))
	suite.True(result.CommissionAmount.Equal(decimal.NewFromFloat(3.00)))
	suite.True(result.ProviderPayout.Equal(decimal.NewFromFloat(17.00)))
	suite.Require().Len(result.History, 2)
	suite.Equal("created", result.History[0].Status)
	suite.Equal("provider_assigned", result.History[1].Status)
	suite.Nil(result.CompletedAt)
	suite.Equal(1, result.Version)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnassignedOrder_HasNoProvider() {
	ctx := context.Background()
	aggregate := suite.createDeliveryOrder()
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("created", result.Status)
	suite.Nil(result.ProviderID)
	suite.Empty(result.ProviderKind)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_MissingOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_SoftDeletedOrder_ReturnsNotFound() {
	ctx := context.Background()
	aggregate := suite.createDeliveryOrder()
	aggregate.SoftDelete()
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
