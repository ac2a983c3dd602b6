package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "e2_products", cfg.Storage.KeyProducts)
	assert.Equal(t, "e2_cart", cfg.Storage.KeyCart)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Checkout.Restock)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Redis")
	v.Set("REDIS_DB", "3")
	v.Set("HTTP_PORT", "9090")
	v.Set("CHECKOUT_RESTOCK", "true")
	v.Set("STORAGE_KEY_CART", "carrito")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Checkout.Restock)
	assert.Equal(t, "carrito", cfg.Storage.KeyCart)
}

func TestFromViper_ValoresInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("STORAGE_KEY_CART", "e2_products")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("HTTP_PORT", "abc")
	v.Set("CHECKOUT_RESTOCK", "quizás")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Checkout.Restock)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/tienda?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
