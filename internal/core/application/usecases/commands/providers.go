package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// resolveProviderRef looks up a provider by id and builds the reference for
// the given vertical. The resolved kind must serve the vertical.
func resolveProviderRef(
	ctx context.Context,
	resolver ports.ProviderResolver,
	providerID kernel.UUID,
	orderType order.Type,
) (order.ProviderRef, error) {
	record, err := resolver.Resolve(ctx, providerID)
	if err != nil {
		return order.ProviderRef{}, err
	}
	if !record.Kind.ServesVertical(orderType) {
		return order.ProviderRef{}, errs.NewValueIsInvalidErrorWithCause("provider",
			fmt.Errorf("%s cannot serve %s orders", record.Kind, orderType))
	}
	return order.NewProviderRef(record.ID, record.Kind)
}
