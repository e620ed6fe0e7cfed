package commands_test

import (
	"context"
	"errors"
	"sync"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetAllCompleted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}
func (m *MockProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetLines(ctx context.Context, customerID kernel.UUID) ([]product.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.CartLine), args.Error(1)
}
func (m *MockCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
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

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockCheckoutUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}
func (m *MockCheckoutUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockProviderResolver struct{ mock.Mock }

func (m *MockProviderResolver) Resolve(ctx context.Context, id kernel.UUID) (ports.ProviderRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.ProviderRecord), args.Error(1)
}
func (m *MockProviderResolver) Add(_ context.Context, _ ports.ProviderRecord) error {
	return errors.New("not implemented in mock")
}

// fixedRateSource always reports the same commission override rate.
type fixedRateSource struct {
	rate decimal.Decimal
}

func (s *fixedRateSource) OverrideRate(_ context.Context, _ order.ProviderRef) (decimal.Decimal, bool, error) {
	return s.rate, true, nil
}

// RecordingAuditLog keeps appended events in memory so tests can assert on
// the post-commit audit trail.
type RecordingAuditLog struct {
	mu     sync.Mutex
	events []*audit.Event

	failWith error
}

func (l *RecordingAuditLog) Append(_ context.Context, event *audit.Event) error {
	if l.failWith != nil {
		return l.failWith
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *RecordingAuditLog) Query(_ context.Context, filter ports.AuditFilter) ([]*audit.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	matched := make([]*audit.Event, 0, len(l.events))
	for _, e := range l.events {
		if filter.EventType != audit.UnknownEventType && e.EventType() != filter.EventType {
			continue
		}
		if filter.OrderID != nil && (e.OrderID() == nil || !e.OrderID().IsEqual(*filter.OrderID)) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}

func (l *RecordingAuditLog) EventTypes() []audit.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	types := make([]audit.EventType, 0, len(l.events))
	for _, e := range l.events {
		types = append(types, e.EventType())
	}
	return types
}

// RecordingNotifier keeps published notifications in memory.
type RecordingNotifier struct {
	mu            sync.Mutex
	notifications []ports.Notification

	failWith error
}

func (n *RecordingNotifier) Publish(_ context.Context, notification ports.Notification) error {
	if n.failWith != nil {
		return n.failWith
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
	return nil
}

func (n *RecordingNotifier) Recipients() []kernel.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	recipients := make([]kernel.UUID, 0, len(n.notifications))
	for _, notification := range n.notifications {
		recipients = append(recipients, notification.UserID)
	}
	return recipients
}
