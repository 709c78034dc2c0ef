package services

import (
	"testing"

	"shopapi/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateBasketIsIdempotent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")

	first, err := GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)
	second, err := GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Basket{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddBasketItemIncrementsExistingLine(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")
	size := createSize(t, db, "M", 1)

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{
		ProductID: product.ID, SizeID: &size.ID, Quantity: 2,
	})
	require.NoError(t, err)
	item, err := AddBasketItem(db, user.ID, models.BasketItemInput{
		ProductID: product.ID, SizeID: &size.ID, Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)

	basket, err := GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, basketLineCount(t, db, basket.ID))
}

func TestAddBasketItemKeepsSizesOnSeparateLines(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")
	m := createSize(t, db, "M", 1)
	l := createSize(t, db, "L", 2)

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &m.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &l.ID, Quantity: 1})
	require.NoError(t, err)

	basket, err := GetOrCreateBasket(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, basketLineCount(t, db, basket.ID))
}

func TestAddBasketItemValidation(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, Quantity: 0})
	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, err = AddBasketItem(db, user.ID, models.BasketItemInput{Quantity: 1})
	assert.ErrorAs(t, err, &invalid)

	_, err = AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: 9999, Quantity: 1})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	missingSize := uint(9999)
	_, err = AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &missingSize, Quantity: 1})
	assert.ErrorAs(t, err, &notFound)
}

func TestAddBasketItemIgnoresStock(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")
	size := createSize(t, db, "M", 1)
	setStock(t, db, product.ID, size.ID, 1)

	// The basket may hold more than is in stock; only checkout enforces it.
	item, err := AddBasketItem(db, user.ID, models.BasketItemInput{
		ProductID: product.ID, SizeID: &size.ID, Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
}

func TestRemoveBasketItem(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")
	size := createSize(t, db, "M", 1)

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, SizeID: &size.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, RemoveBasketItem(db, user.ID, models.BasketItemRef{ProductID: product.ID, SizeID: &size.ID}))

	var notFound *NotFoundError
	err = RemoveBasketItem(db, user.ID, models.BasketItemRef{ProductID: product.ID, SizeID: &size.ID})
	assert.ErrorAs(t, err, &notFound)
}

func TestBasketTotalsUseCurrentPrices(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")

	_, err := AddBasketItem(db, user.ID, models.BasketItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	basket, err := LoadBasket(db, user.ID)
	require.NoError(t, err)
	view := models.NewBasketView(*basket)
	assert.Equal(t, 2, view.TotalItems)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("50.00")), "subtotal %s", view.Subtotal)

	// Price changes must show up on the next read, not a cached total.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("new_price", decimal.RequireFromString("30.00")).Error)

	basket, err = LoadBasket(db, user.ID)
	require.NoError(t, err)
	view = models.NewBasketView(*basket)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("60.00")), "subtotal %s", view.Subtotal)
}
