package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuotedHandler(
	factory commands.OrderUoWFactory,
	resolver ports.ProviderResolver,
	src services.RateSource,
	auditLog *RecordingAuditLog,
	notifier *RecordingNotifier,
) commands.CreateQuotedOrderCommandHandler {
	return commands.NewCreateQuotedOrderCommandHandler(
		factory,
		resolver,
		services.NewCommissionCalculator(src),
		auditLog,
		notifier,
		nil,
	)
}

func expectSuccessfulAdd(t *testing.T, ctx context.Context, persisted **order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	t.Helper()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			*persisted = args.Get(1).(*order.Order)
		}).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}

func TestCreateQuotedOrderCommandHandler_Handle_Sourcing(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	cmd, _ := commands.NewCreateSourcingOrderCommand(kernel.NewUUID(), customerID,
		agentID, mustMoney(t, 500.00), "200 solar lanterns, CE certified")

	resolver := new(MockProviderResolver)
	resolver.On("Resolve", mock.Anything, agentID).Return(ports.ProviderRecord{
		ID:     agentID,
		Kind:   order.SourcingAgent,
		Active: true,
	}, nil).Once()

	var persisted *order.Order
	factory, uow, repo := expectSuccessfulAdd(t, ctx, &persisted)

	auditLog := &RecordingAuditLog{}
	notifier := &RecordingNotifier{}
	h := newQuotedHandler(factory, resolver, nil, auditLog, notifier)

	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order.Sourcing, persisted.OrderType())
	assert.Equal(t, order.ProviderAssigned, persisted.Status())
	assert.True(t, persisted.ProviderRef().ID().IsEqual(agentID))
	// sourcing default is 5 percent
	assert.True(t, persisted.CommissionRate().Equal(decimal.NewFromInt(5)))
	assert.True(t, persisted.CommissionAmount().Equals(mustMoney(t, 25.00)))
	assert.True(t, persisted.ProviderPayout().Equals(mustMoney(t, 475.00)))

	recipients := notifier.Recipients()
	require.Len(t, recipients, 2)
	assert.True(t, recipients[1].IsEqual(agentID))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestCreateQuotedOrderCommandHandler_Handle_SourcingAgentOverride(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	cmd, _ := commands.NewCreateSourcingOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		agentID, mustMoney(t, 100.00), "requirements")

	resolver := new(MockProviderResolver)
	resolver.On("Resolve", mock.Anything, agentID).Return(ports.ProviderRecord{
		ID:     agentID,
		Kind:   order.SourcingAgent,
		Active: true,
	}, nil).Once()

	var persisted *order.Order
	factory, _, _ := expectSuccessfulAdd(t, ctx, &persisted)

	src := &fixedRateSource{rate: decimal.NewFromInt(7)}
	h := newQuotedHandler(factory, resolver, src, &RecordingAuditLog{}, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, persisted.CommissionRate().Equal(decimal.NewFromInt(7)))
}

func TestCreateQuotedOrderCommandHandler_Handle_Coaching(t *testing.T) {
	ctx := t.Context()
	coachID := kernel.NewUUID()
	sessionAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	cmd, _ := commands.NewCreateCoachingOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		coachID, mustMoney(t, 80.00), "customs clearance basics", sessionAt, 60)

	resolver := new(MockProviderResolver)
	resolver.On("Resolve", mock.Anything, coachID).Return(ports.ProviderRecord{
		ID:     coachID,
		Kind:   order.ImportCoach,
		Active: true,
	}, nil).Once()

	var persisted *order.Order
	factory, _, _ := expectSuccessfulAdd(t, ctx, &persisted)

	// import coaches cannot override, so a stored rate must be ignored
	src := &fixedRateSource{rate: decimal.NewFromInt(1)}
	h := newQuotedHandler(factory, resolver, src, &RecordingAuditLog{}, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order.Coaching, persisted.OrderType())
	assert.True(t, persisted.CommissionRate().Equal(decimal.NewFromInt(10)))

	details, ok := persisted.Details().(order.CoachingDetails)
	require.True(t, ok)
	assert.Equal(t, "customs clearance basics", details.Topic())
}

func TestCreateQuotedOrderCommandHandler_Handle_WrongProviderKind(t *testing.T) {
	ctx := t.Context()
	providerID := kernel.NewUUID()
	cmd, _ := commands.NewCreateSourcingOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		providerID, mustMoney(t, 500.00), "requirements")

	resolver := new(MockProviderResolver)
	resolver.On("Resolve", mock.Anything, providerID).Return(ports.ProviderRecord{
		ID:     providerID,
		Kind:   order.ImportCoach,
		Active: true,
	}, nil).Once()

	factory := new(MockOrderUoWFactory)
	h := newQuotedHandler(factory, resolver, nil, &RecordingAuditLog{}, &RecordingNotifier{})

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot serve sourcing orders")
	factory.AssertNotCalled(t, "Create")
}
