package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("REDIS_DB", "")

	cfg := LoadConfig()
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":3000", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "admin", cfg.AdminUsername)
}

func TestLoadConfig_TypedValues(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CARD_PAYMENT_AMOUNT", "2500")
	t.Setenv("CARD_PAYMENT_CURRENCY", "eur")

	cfg := LoadConfig()
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, int64(2500), cfg.CardPaymentAmount)
	assert.Equal(t, "eur", cfg.CardPaymentCurrency)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("REDIS_DB", "two")

	cfg := LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}
