package services

import (
	"testing"

	"shopapi/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyBasket(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")

	// No basket at all and an existing-but-empty basket report the same.
	_, err := Checkout(db, user.ID)
	assert.ErrorIs(t, err, ErrEmptyBasket)

	_, err = GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)
	_, err = Checkout(db, user.ID)
	assert.ErrorIs(t, err, ErrEmptyBasket)
}

func TestCheckoutSuccess(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	p1 := createProduct(t, db, "Sneaker", "25.00")
	p2 := createProduct(t, db, "Socks", "9.99")
	size := createSize(t, db, "M", 1)
	setStock(t, db, p1.ID, size.ID, 10)

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: p1.ID, SizeID: &size.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: p2.ID, Quantity: 1})
	require.NoError(t, err)

	order, err := Checkout(db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("59.99")), "total %s", order.TotalPrice)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, order.Items[1].Price.Equal(decimal.RequireFromString("9.99")))

	assert.Equal(t, 8, stockQuantity(t, db, p1.ID, size.ID))

	basket, err := GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, basketLineCount(t, db, basket.ID))
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	p1 := createProduct(t, db, "Sneaker", "25.00")
	p2 := createProduct(t, db, "Boot", "80.00")
	size := createSize(t, db, "M", 1)
	setStock(t, db, p1.ID, size.ID, 10)
	setStock(t, db, p2.ID, size.ID, 3)

	// First line is satisfiable, second is not; nothing may stick.
	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: p1.ID, SizeID: &size.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: p2.ID, SizeID: &size.ID, Quantity: 5})
	require.NoError(t, err)

	_, err = Checkout(db, user.ID)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Boot", insufficient.Product)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)

	assert.Equal(t, 10, stockQuantity(t, db, p1.ID, size.ID))
	assert.Equal(t, 3, stockQuantity(t, db, p2.ID, size.ID))

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 0, orderCount)
	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)

	basket, err := GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, basketLineCount(t, db, basket.ID))
}

func TestCheckoutMissingStockRowIsUnconstrained(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")
	size := createSize(t, db, "M", 1)
	// No storage row for (product, size) at all.

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &size.ID, Quantity: 100})
	require.NoError(t, err)

	order, err := Checkout(db, user.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100, order.Items[0].Quantity)
}

func TestCheckoutDrainsStockExactlyOnce(t *testing.T) {
	db := setupDB(t)
	first := createUser(t, db, "a@example.com")
	second := createUser(t, db, "b@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")
	size := createSize(t, db, "M", 1)
	setStock(t, db, product.ID, size.ID, 1)

	_, err := AddBasketItem(db, first.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &size.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = AddBasketItem(db, second.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &size.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = Checkout(db, first.ID)
	require.NoError(t, err)

	// The single unit is gone; the second checkout must fail and the
	// quantity must never go negative.
	_, err = Checkout(db, second.ID)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, stockQuantity(t, db, product.ID, size.ID))
}

func TestCheckoutSnapshotsPricesAgainstLaterChanges(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	order, err := Checkout(db, user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("new_price", decimal.RequireFromString("99.99")).Error)

	reloaded, err := GetOrder(db, user.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("25.00")), "price %s", reloaded.Items[0].Price)
	assert.True(t, reloaded.TotalPrice.Equal(decimal.RequireFromString("50.00")), "total %s", reloaded.TotalPrice)
}

func TestCheckoutUsesPriceAtCheckoutNotAtAddTime(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("new_price", decimal.RequireFromString("19.00")).Error)

	order, err := Checkout(db, user.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("19.00")), "price %s", order.Items[0].Price)
}
