package services

import (
	"testing"

	"shopapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavoriteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")

	first, created, err := AddFavorite(db, user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := AddFavorite(db, user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")

	_, _, err := AddFavorite(db, user.ID, 9999)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRemoveFavorite(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "a@example.com")
	product := createProduct(t, db, "Sneaker", "25.00")

	_, _, err := AddFavorite(db, user.ID, product.ID)
	require.NoError(t, err)
	require.NoError(t, RemoveFavorite(db, user.ID, product.ID))

	var notFound *NotFoundError
	err = RemoveFavorite(db, user.ID, product.ID)
	assert.ErrorAs(t, err, &notFound)
}
