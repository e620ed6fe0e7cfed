package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, value float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(value)
	require.NoError(t, err)
	return m
}

func newCheckoutHandler(
	factory commands.CheckoutUoWFactory,
	src services.RateSource,
	auditLog *RecordingAuditLog,
	notifier *RecordingNotifier,
) commands.CreateMarketplaceOrderCommandHandler {
	return commands.NewCreateMarketplaceOrderCommandHandler(
		factory,
		services.NewCommissionCalculator(src),
		services.NewDeliveryPricer(services.DefaultPricingConfig()),
		auditLog,
		notifier,
		nil,
	)
}

func newCatalogProduct(t *testing.T, sellerID kernel.UUID, name string, price float64, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), sellerID, name, mustMoney(t, price), stock)
	require.NoError(t, err)
	return p
}

func cartLineFor(t *testing.T, p *product.Product, quantity int) product.CartLine {
	t.Helper()
	line, err := product.NewCartLine(p, quantity)
	require.NoError(t, err)
	return line
}

func TestCreateMarketplaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	rice := newCatalogProduct(t, sellerID, "rice 5kg", 10.00, 40)
	cmd, _ := commands.NewCreateMarketplaceOrderCommand(kernel.NewUUID(), customerID, nil, nil)

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetLines", mock.Anything, customerID).
		Return([]product.CartLine{cartLineFor(t, rice, 3)}, nil).Once()
	cartRepo.On("Clear", mock.Anything, customerID).Return(nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", mock.Anything, rice.ID()).Return(rice, nil).Once()
	productRepo.On("DecrementStock", mock.Anything, rice.ID(), 3).Return(nil).Once()

	var persisted *order.Order
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*order.Order)
		}).Return(nil).Once()

	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	auditLog := &RecordingAuditLog{}
	notifier := &RecordingNotifier{}
	h := newCheckoutHandler(factory, nil, auditLog, notifier)

	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order.Marketplace, persisted.OrderType())
	assert.Equal(t, order.ProviderAssigned, persisted.Status())
	assert.True(t, persisted.ProviderRef().ID().IsEqual(sellerID))
	assert.True(t, persisted.GrossAmount().Equals(mustMoney(t, 30.00)))
	// default marketplace rate is 10 percent
	assert.True(t, persisted.CommissionAmount().Equals(mustMoney(t, 3.00)))
	assert.True(t, persisted.ProviderPayout().Equals(mustMoney(t, 27.00)))

	assert.Equal(t, []audit.EventType{audit.OrderCreated, audit.CommissionComputed},
		auditLog.EventTypes())
	recipients := notifier.Recipients()
	require.Len(t, recipients, 2)
	assert.True(t, recipients[0].IsEqual(customerID))
	assert.True(t, recipients[1].IsEqual(sellerID))

	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateMarketplaceOrderCommandHandler_Handle_SellerOverrideRate(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	rice := newCatalogProduct(t, sellerID, "rice 5kg", 10.00, 40)
	cmd, _ := commands.NewCreateMarketplaceOrderCommand(kernel.NewUUID(), customerID, nil, nil)

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetLines", mock.Anything, customerID).
		Return([]product.CartLine{cartLineFor(t, rice, 3)}, nil).Once()
	cartRepo.On("Clear", mock.Anything, customerID).Return(nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", mock.Anything, rice.ID()).Return(rice, nil).Once()
	productRepo.On("DecrementStock", mock.Anything, rice.ID(), 3).Return(nil).Once()

	var persisted *order.Order
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*order.Order)
		}).Return(nil).Once()

	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	src := &fixedRateSource{rate: decimal.NewFromInt(8)}
	h := newCheckoutHandler(factory, src, &RecordingAuditLog{}, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	// gross 30.00 at the seller's 8 percent override
	assert.True(t, persisted.CommissionRate().Equal(decimal.NewFromInt(8)))
	assert.True(t, persisted.CommissionAmount().Equals(mustMoney(t, 2.40)))
	assert.True(t, persisted.ProviderPayout().Equals(mustMoney(t, 27.60)))
}

func TestCreateMarketplaceOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewCreateMarketplaceOrderCommand(kernel.NewUUID(), customerID, nil, nil)

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetLines", mock.Anything, customerID).Return([]product.CartLine{}, nil).Once()

	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCheckoutHandler(factory, nil, &RecordingAuditLog{}, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateMarketplaceOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	rice := newCatalogProduct(t, sellerID, "rice 5kg", 10.00, 2)
	cmd, _ := commands.NewCreateMarketplaceOrderCommand(kernel.NewUUID(), customerID, nil, nil)

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetLines", mock.Anything, customerID).
		Return([]product.CartLine{cartLineFor(t, rice, 3)}, nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", mock.Anything, rice.ID()).Return(rice, nil).Once()

	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	auditLog := &RecordingAuditLog{}
	h := newCheckoutHandler(factory, nil, auditLog, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "rice 5kg")
	assert.Empty(t, auditLog.EventTypes())
	productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateMarketplaceOrderCommandHandler_Handle_MixedSellers(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	rice := newCatalogProduct(t, kernel.NewUUID(), "rice 5kg", 10.00, 40)
	oil := newCatalogProduct(t, kernel.NewUUID(), "palm oil 1l", 4.00, 10)
	cmd, _ := commands.NewCreateMarketplaceOrderCommand(kernel.NewUUID(), customerID, nil, nil)

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetLines", mock.Anything, customerID).
		Return([]product.CartLine{cartLineFor(t, rice, 1), cartLineFor(t, oil, 1)}, nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", mock.Anything, rice.ID()).Return(rice, nil).Once()
	productRepo.On("Get", mock.Anything, oil.ID()).Return(oil, nil).Once()

	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCheckoutHandler(factory, nil, &RecordingAuditLog{}, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one seller")
}
