package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateMarketplaceOrderCommandHandler handles cart checkout. The order
// creation, the per-line stock decrements, and the cart clearing all run in
// one transaction: if any line fails validation or runs out of stock, no
// stock is decremented and no order is created.
type CreateMarketplaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	calculator services.CommissionCalculator
	pricer     services.DeliveryPricer
	auditLog   ports.AuditLog
	notifier   ports.NotificationPublisher
	logger     *slog.Logger
}

// NewCreateMarketplaceOrderCommandHandler creates a handler for cart
// checkout operations.
func NewCreateMarketplaceOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	calculator services.CommissionCalculator,
	pricer services.DeliveryPricer,
	auditLog ports.AuditLog,
	notifier ports.NotificationPublisher,
	logger *slog.Logger,
) CreateMarketplaceOrderCommandHandler {
	return CreateMarketplaceOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		pricer:     pricer,
		auditLog:   auditLog,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the checkout command.
//
// The cart must be non-empty and every line's product still active with
// sufficient stock. The subtotal comes from the line snapshots captured at
// add-to-cart time, not the live catalog prices. The stock decrement per
// line is a conditional update so a concurrent checkout of the same product
// cannot oversell; any failure rolls the whole checkout back.
func (h *CreateMarketplaceOrderCommandHandler) Handle(ctx context.Context, cmd CreateMarketplaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartLines, err := uow.CartRepository().GetLines(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}
	if len(cartLines) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}

	sellerID, orderLines, err := h.validateCart(ctx, uow.ProductRepository(), cartLines)
	if err != nil {
		return err
	}

	subtotal := kernel.ZeroMoney()
	for _, line := range orderLines {
		subtotal = subtotal.Add(line.Total())
	}
	deliveryFee := h.deliveryFee(cmd)
	gross := subtotal.Add(deliveryFee)

	details, err := order.NewMarketplaceDetails(orderLines, subtotal, deliveryFee)
	if err != nil {
		return err
	}

	number, err := kernel.NewOrderNumber(order.Marketplace.NumberPrefix(), now)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), number, order.Marketplace,
		cmd.CustomerID(), gross, details, now)
	if err != nil {
		return err
	}

	sellerRef, err := order.NewProviderRef(sellerID, order.Seller)
	if err != nil {
		return err
	}
	if err = aggregate.AssignProvider(sellerRef, cmd.CustomerID(), now); err != nil {
		return err
	}

	commission := h.calculator.Calculate(ctx, order.Marketplace, gross, &sellerRef)
	if err = aggregate.SetCommission(commission.Rate, commission.Amount, commission.Payout); err != nil {
		return err
	}

	for _, line := range cartLines {
		if err = uow.ProductRepository().DecrementStock(ctx, line.ProductID(), line.Quantity()); err != nil {
			return err
		}
	}

	if err = uow.CartRepository().Clear(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.collectEffects(aggregate, commission, sellerID).Drain(ctx)
	return nil
}

// validateCart re-checks every cart line against the live catalog: the
// product must exist, be active, have sufficient stock, and belong to the
// same seller as the rest of the cart. Returns the seller id and the order
// line snapshots.
func (h *CreateMarketplaceOrderCommandHandler) validateCart(
	ctx context.Context,
	products ports.ProductRepository,
	cartLines []product.CartLine,
) (kernel.UUID, []order.Line, error) {
	var sellerID kernel.UUID
	orderLines := make([]order.Line, 0, len(cartLines))

	for i, cartLine := range cartLines {
		p, err := products.Get(ctx, cartLine.ProductID())
		if err != nil {
			return kernel.UUID{}, nil, err
		}
		if err = p.CheckAvailability(cartLine.Quantity()); err != nil {
			return kernel.UUID{}, nil, err
		}

		if i == 0 {
			sellerID = p.SellerID()
		} else if !sellerID.IsEqual(p.SellerID()) {
			return kernel.UUID{}, nil, errs.NewValueIsInvalidErrorWithCause("cart",
				fmt.Errorf("lines belong to more than one seller"))
		}

		line, err := order.NewLine(cartLine.ProductID(), cartLine.ProductName(),
			cartLine.UnitPrice(), cartLine.Quantity())
		if err != nil {
			return kernel.UUID{}, nil, err
		}
		orderLines = append(orderLines, line)
	}

	return sellerID, orderLines, nil
}

func (h *CreateMarketplaceOrderCommandHandler) deliveryFee(cmd CreateMarketplaceOrderCommand) kernel.Money {
	if cmd.Pickup() == nil || cmd.Destination() == nil {
		return kernel.ZeroMoney()
	}
	distanceKm := h.pricer.Distance(*cmd.Pickup(), *cmd.Destination())
	return h.pricer.DeliveryFee(distanceKm)
}

func (h *CreateMarketplaceOrderCommandHandler) collectEffects(
	aggregate *order.Order,
	commission services.CommissionResult,
	sellerID kernel.UUID,
) *postCommitEffects {
	effects := newPostCommitEffects(h.logger)
	orderID := aggregate.ID()

	effects.Add("audit order_created", auditEffect(h.auditLog, audit.OrderCreated,
		aggregate.CustomerID(), audit.ActorCustomer, &orderID, map[string]string{
			"order_number": aggregate.OrderNumber().String(),
			"order_type":   aggregate.OrderType().String(),
			"gross":        aggregate.GrossAmount().String(),
		}))
	effects.Add("audit commission_computed", auditEffect(h.auditLog, audit.CommissionComputed,
		aggregate.CustomerID(), audit.ActorSystem, &orderID, map[string]string{
			"rate":   commission.Rate.String(),
			"amount": commission.Amount.String(),
			"payout": commission.Payout.String(),
		}))
	effects.Add("notify customer", notifyEffect(h.notifier, ports.Notification{
		UserID:   aggregate.CustomerID(),
		Title:    "Order placed",
		Message:  "Your order " + aggregate.OrderNumber().String() + " has been placed.",
		Category: "order_created",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))
	effects.Add("notify seller", notifyEffect(h.notifier, ports.Notification{
		UserID:   sellerID,
		Title:    "New order received",
		Message:  "You have received order " + aggregate.OrderNumber().String() + ".",
		Category: "order_created",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))

	return effects
}
