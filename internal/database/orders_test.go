package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gvcargo/internal/models"
)

func makeTestOrder(userID int64, code string) *models.Order {
	lat, lon := 41.2995, 69.2401
	return &models.Order{
		UserID:        userID,
		FullName:      "Иванов Иван",
		Phone:         "+998901234567",
		OrderNumber:   "TB-555",
		OrderDate:     time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Latitude:      &lat,
		Longitude:     &lon,
		ApplicantCode: code,
		Location:      "https://maps.google.com/?q=41.2995,69.2401",
	}
}

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	order := makeTestOrder(user.ID, "Gv1001")
	require.NoError(t, db.CreateOrder(ctx, order))
	assert.NotZero(t, order.ID)

	count, err := db.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrder_DuplicateApplicantCode(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(user.ID, "Gv1001")))

	err = db.CreateOrder(ctx, makeTestOrder(user.ID, "Gv1001"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateApplicantCode)
}

func TestGetOrdersByTelegramID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	alice, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)
	bob, err := db.GetOrCreateUser(ctx, 200, "bob")
	require.NoError(t, err)

	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(alice.ID, "Gv1001")))
	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(bob.ID, "Gv1002")))
	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(alice.ID, "Gv1003")))

	orders, err := db.GetOrdersByTelegramID(ctx, 100)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Insertion order, with the owner's Telegram identity joined in
	assert.Equal(t, "Gv1001", orders[0].ApplicantCode)
	assert.Equal(t, "Gv1003", orders[1].ApplicantCode)
	assert.Equal(t, int64(100), orders[0].TelegramID)

	empty, err := db.GetOrdersByTelegramID(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetOrderByApplicantCode(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)
	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(user.ID, "Gv1001")))

	t.Run("found", func(t *testing.T) {
		order, err := db.GetOrderByApplicantCode(ctx, "Gv1001")
		require.NoError(t, err)
		assert.Equal(t, "Иванов Иван", order.FullName)
		assert.Equal(t, int64(100), order.TelegramID)
		require.NotNil(t, order.Latitude)
		assert.InDelta(t, 41.2995, *order.Latitude, 0.0001)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := db.GetOrderByApplicantCode(ctx, "Gv9999")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestGetOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	created := makeTestOrder(user.ID, "Gv1001")
	require.NoError(t, db.CreateOrder(ctx, created))

	order, err := db.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gv1001", order.ApplicantCode)

	_, err = db.GetOrder(ctx, 12345)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetAllOrders(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(user.ID, "Gv1001")))
	require.NoError(t, db.CreateOrder(ctx, makeTestOrder(user.ID, "Gv1002")))

	orders, err := db.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Gv1001", orders[0].ApplicantCode)
	assert.Equal(t, "Gv1002", orders[1].ApplicantCode)
}

func TestOrderWithoutLocation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetOrCreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	order := makeTestOrder(user.ID, "Gv1001")
	order.Latitude = nil
	order.Longitude = nil
	order.Location = ""
	require.NoError(t, db.CreateOrder(ctx, order))

	got, err := db.GetOrderByApplicantCode(ctx, "Gv1001")
	require.NoError(t, err)
	assert.Nil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.False(t, got.HasLocation())
}
