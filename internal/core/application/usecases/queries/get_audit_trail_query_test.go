package queries_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAuditTrailQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	query, err := queries.NewGetAuditTrailQuery(orderID, from, to)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
	assert.Equal(t, from, query.From())
	assert.Equal(t, to, query.To())
}

func TestNewGetAuditTrailQuery_UnboundedWindow(t *testing.T) {
	query, err := queries.NewGetAuditTrailQuery(kernel.NewUUID(), time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.True(t, query.From().IsZero())
	assert.True(t, query.To().IsZero())
}

func TestNewGetAuditTrailQuery_InvalidID(t *testing.T) {
	var empty kernel.UUID

	_, err := queries.NewGetAuditTrailQuery(empty, time.Time{}, time.Time{})

	require.Error(t, err)
}

func TestGetAuditTrailQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAuditTrailQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAuditTrailQueryIsNotConstructed)
}
