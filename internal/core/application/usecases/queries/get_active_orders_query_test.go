package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery_AllVerticals(t *testing.T) {
	query, err := queries.NewGetActiveOrdersQuery(nil)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Nil(t, query.OrderType())
}

func TestNewGetActiveOrdersQuery_SingleVertical(t *testing.T) {
	orderType := order.Delivery

	query, err := queries.NewGetActiveOrdersQuery(&orderType)

	require.NoError(t, err)
	require.NotNil(t, query.OrderType())
	assert.Equal(t, order.Delivery, *query.OrderType())
}

func TestNewGetActiveOrdersQuery_InvalidVertical(t *testing.T) {
	orderType := order.Type(99)

	_, err := queries.NewGetActiveOrdersQuery(&orderType)

	require.Error(t, err)
}

func TestGetActiveOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
