package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/persistence/model"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.KeyValueModel{}))
	return db
}

func openRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func stores(t *testing.T, prefix string) map[string]adapter.KeyValueStore {
	_, client := openRedis(t)
	return map[string]adapter.KeyValueStore{
		"gorm":   NewGormKeyValueStore(openSQLite(t), prefix),
		"redis":  NewRedisKeyValueStore(client, prefix),
		"memory": NewMemoryKeyValueStore(),
	}
}

func TestKeyValueStores(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t, "") {
		t.Run(name, func(t *testing.T) {
			t.Run("missing key reports ErrKeyNotFound", func(t *testing.T) {
				_, err := store.Get(ctx, "ewallet_budgets")
				require.ErrorIs(t, err, domainerror.ErrKeyNotFound)
			})

			t.Run("set then get returns the value", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "ewallet_onboarded", "true"))
				value, err := store.Get(ctx, "ewallet_onboarded")
				require.NoError(t, err)
				assert.Equal(t, "true", value)
			})

			t.Run("set replaces the previous value", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "ewallet_transactions", `[]`))
				require.NoError(t, store.Set(ctx, "ewallet_transactions", `[{"id":"a"}]`))
				value, err := store.Get(ctx, "ewallet_transactions")
				require.NoError(t, err)
				assert.Equal(t, `[{"id":"a"}]`, value)
			})

			t.Run("delete is idempotent", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "ewallet_sync_queue", `["a"]`))
				require.NoError(t, store.Delete(ctx, "ewallet_sync_queue"))
				require.NoError(t, store.Delete(ctx, "ewallet_sync_queue"))
				_, err := store.Get(ctx, "ewallet_sync_queue")
				require.ErrorIs(t, err, domainerror.ErrKeyNotFound)
			})

			t.Run("ping succeeds", func(t *testing.T) {
				assert.NoError(t, store.Ping(ctx))
			})

			t.Run("concurrent writers to distinct keys", func(t *testing.T) {
				keys := []string{"ewallet_transactions", "ewallet_preferences", "ewallet_budgets", "ewallet_onboarded"}
				var wg sync.WaitGroup
				for _, key := range keys {
					wg.Add(1)
					go func(key string) {
						defer wg.Done()
						for i := 0; i < 10; i++ {
							assert.NoError(t, store.Set(ctx, key, key))
						}
					}(key)
				}
				wg.Wait()

				for _, key := range keys {
					value, err := store.Get(ctx, key)
					require.NoError(t, err)
					assert.Equal(t, key, value)
				}
			})
		})
	}
}

func TestKeyValueStores_Prefix(t *testing.T) {
	ctx := context.Background()

	t.Run("gorm", func(t *testing.T) {
		db := openSQLite(t)
		alice := NewGormKeyValueStore(db, "alice:")
		bob := NewGormKeyValueStore(db, "bob:")

		require.NoError(t, alice.Set(ctx, "ewallet_onboarded", "true"))
		_, err := bob.Get(ctx, "ewallet_onboarded")
		require.ErrorIs(t, err, domainerror.ErrKeyNotFound)

		var row model.KeyValueModel
		require.NoError(t, db.Where("slot_key = ?", "alice:ewallet_onboarded").First(&row).Error)
		assert.Equal(t, "true", row.Value)
		assert.False(t, row.UpdatedAt.IsZero())
	})

	t.Run("redis", func(t *testing.T) {
		mr, client := openRedis(t)
		store := NewRedisKeyValueStore(client, "alice:")

		require.NoError(t, store.Set(ctx, "ewallet_onboarded", "false"))
		value, err := mr.Get("alice:ewallet_onboarded")
		require.NoError(t, err)
		assert.Equal(t, "false", value)
		assert.Zero(t, mr.TTL("alice:ewallet_onboarded"))
	})
}

func TestRedisKeyValueStore_Unavailable(t *testing.T) {
	mr, client := openRedis(t)
	store := NewRedisKeyValueStore(client, "")
	mr.SetError("ERR storage offline")

	err := store.Set(context.Background(), "ewallet_onboarded", "true")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerror.ErrKeyNotFound)

	_, err = store.Get(context.Background(), "ewallet_onboarded")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerror.ErrKeyNotFound)
}
