package store_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/store"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setup(t *testing.T) (store.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return store.NewRedisStore(client, time.Second), mock
}

func TestRedisGet(t *testing.T) {
	ctx := t.Context()
	testKey := "test:get"
	testValue := TestData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		// Act
		found, err := redisStore.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Key Missing", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetErr(redis.Nil)

		// Act
		found, err := redisStore.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)

		var result TestData

		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(testKey).SetErr(expectedErr)

		// Act
		found, err := redisStore.Get(ctx, testKey, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to get key %s from redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed JSON is treated as absent", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)

		result := TestData{Field1: "stale"}

		mock.ExpectGet(testKey).SetVal(`{"field1": "value1", "field2": "not_an_int"}`)

		// Act
		found, err := redisStore.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err, "malformed data must not surface as an error")
		assert.False(t, found)
		assert.Equal(t, TestData{}, result, "destination should be reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisSet(t *testing.T) {
	ctx := t.Context()
	testKey := store.KeyCart
	testValue := []models.CartLine{{Product: models.Product{ID: 1, Price: 10, Stock: 5}, Quantity: 2}}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - No Expiry", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, 0).SetVal("OK")

		// Act
		err := redisStore.Set(ctx, testKey, testValue)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)

		// Act
		err := redisStore.Set(ctx, testKey, make(chan int))

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key "+testKey)

		var jsonErr *json.UnsupportedTypeError

		assert.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet(), "no redis calls expected")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisStore, mock := setup(t)
		expectedErr := errors.New("redis SET failed")

		mock.ExpectSet(testKey, jsonData, 0).SetErr(expectedErr)

		// Act
		err := redisStore.Set(ctx, testKey, testValue)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to set key %s in redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisRemove(t *testing.T) {
	ctx := t.Context()
	testKey := store.KeyBuyNow

	t.Run("Success", func(t *testing.T) {
		redisStore, mock := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		require.NoError(t, redisStore.Remove(ctx, testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing key is not an error", func(t *testing.T) {
		redisStore, mock := setup(t)

		mock.ExpectDel(testKey).SetVal(0)

		require.NoError(t, redisStore.Remove(ctx, testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisStore, mock := setup(t)
		expectedErr := errors.New("redis DEL failed")

		mock.ExpectDel(testKey).SetErr(expectedErr)

		err := redisStore.Remove(ctx, testKey)

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to delete key %s from redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cart", store.KeyCart)
	assert.Equal(t, "buyNow", store.KeyBuyNow)
	assert.Equal(t, "candidate", store.KeyCandidate)
	assert.Equal(t, "orders", store.KeyOrders)
}
