package product_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, value float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(value)
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	validID := kernel.NewUUID()
	validSeller := kernel.NewUUID()

	t.Run("should create valid active product", func(t *testing.T) {
		p, err := product.NewProduct(validID, validSeller, "rice 5kg", mustMoney(t, 12.50), 40)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(validID))
		assert.True(t, p.SellerID().IsEqual(validSeller))
		assert.Equal(t, "rice 5kg", p.Name())
		assert.True(t, p.Price().Equals(mustMoney(t, 12.50)))
		assert.Equal(t, 40, p.Stock())
		assert.True(t, p.IsActive())
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := product.NewProduct(invalidID, validSeller, "rice 5kg", mustMoney(t, 12.50), 40)

		require.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		p, err := product.NewProduct(validID, validSeller, "", mustMoney(t, 12.50), 40)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "product name")
	})

	t.Run("should fail with negative stock", func(t *testing.T) {
		p, err := product.NewProduct(validID, validSeller, "rice 5kg", mustMoney(t, 12.50), -1)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "stock")
	})

	t.Run("should allow zero stock", func(t *testing.T) {
		p, err := product.NewProduct(validID, validSeller, "rice 5kg", mustMoney(t, 12.50), 0)

		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("should fail validation for zero value product", func(t *testing.T) {
		var p product.Product

		assert.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
	})
}

func TestRestoreProduct(t *testing.T) {
	t.Run("should restore inactive product", func(t *testing.T) {
		p, err := product.RestoreProduct(kernel.NewUUID(), kernel.NewUUID(), "rice 5kg",
			mustMoney(t, 12.50), 40, false)

		require.NoError(t, err)
		assert.False(t, p.IsActive())
	})
}

func TestProductCheckAvailability(t *testing.T) {
	newProduct := func(t *testing.T, stock int) *product.Product {
		t.Helper()
		p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "rice 5kg",
			mustMoney(t, 12.50), stock)
		require.NoError(t, err)
		return p
	}

	t.Run("should allow request within stock", func(t *testing.T) {
		p := newProduct(t, 10)

		assert.NoError(t, p.CheckAvailability(10))
		assert.NoError(t, p.CheckAvailability(1))
	})

	t.Run("should reject request above stock with typed error", func(t *testing.T) {
		p := newProduct(t, 3)

		err := p.CheckAvailability(5)

		require.Error(t, err)
		assert.ErrorIs(t, err, product.ErrInsufficientStock)

		var stockErr *product.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, "rice 5kg", stockErr.ProductName)
		assert.Equal(t, 5, stockErr.Requested)
		assert.Equal(t, 3, stockErr.Available)
	})

	t.Run("should reject deactivated product", func(t *testing.T) {
		p := newProduct(t, 10)
		p.Deactivate()

		err := p.CheckAvailability(1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not available for sale")
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		p := newProduct(t, 10)

		assert.Error(t, p.CheckAvailability(0))
		assert.Error(t, p.CheckAvailability(-1))
	})
}

func TestCartLine(t *testing.T) {
	t.Run("should snapshot name and price from product", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "rice 5kg",
			mustMoney(t, 12.50), 40)
		require.NoError(t, err)

		line, err := product.NewCartLine(p, 3)

		require.NoError(t, err)
		assert.True(t, line.ProductID().IsEqual(p.ID()))
		assert.Equal(t, "rice 5kg", line.ProductName())
		assert.True(t, line.UnitPrice().Equals(mustMoney(t, 12.50)))
		assert.Equal(t, 3, line.Quantity())
		assert.True(t, line.Total().Equals(mustMoney(t, 37.50)))
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "rice 5kg",
			mustMoney(t, 12.50), 40)
		require.NoError(t, err)

		_, err = product.NewCartLine(p, 0)

		require.Error(t, err)
	})

	t.Run("should restore line from persisted snapshot", func(t *testing.T) {
		productID := kernel.NewUUID()

		line, err := product.RestoreCartLine(productID, "rice 5kg", mustMoney(t, 11.00), 2)

		require.NoError(t, err)
		assert.True(t, line.ProductID().IsEqual(productID))
		assert.True(t, line.Total().Equals(mustMoney(t, 22.00)))
	})
}
