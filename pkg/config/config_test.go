package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "vi", cfg.App.DefaultLang)
	assert.Equal(t, 300*time.Second, cfg.Export.PreviewTTL)
	assert.Equal(t, 20, cfg.Export.OrderIDMaxAttempts)
	assert.True(t, cfg.Export.Compensate)
	assert.False(t, cfg.Export.UpdateERPQuantity)
	assert.Equal(t, 10*time.Minute, cfg.Report.UndoWindow)
	assert.False(t, cfg.DB.Enabled(), "sin DB_HOST ni DATABASE_URL el diario queda en memoria")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_EnvComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("API_URL", "http://192.168.10.87:3000/")
	v.Set("EXPORT_PREVIEW_TTL_SECONDS", "60")
	v.Set("EXPORT_COMPENSATE", "false")
	v.Set("ORDER_ID_RETRY_RPS", "2.5")
	v.Set("DB_HOST", "db")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://192.168.10.87:3000", cfg.Backend.WarehouseURL, "se elimina la barra final")
	assert.Equal(t, time.Minute, cfg.Export.PreviewTTL)
	assert.False(t, cfg.Export.Compensate)
	assert.InDelta(t, 2.5, cfg.Export.OrderIDRetryRPS, 0.0001)
	assert.True(t, cfg.DB.Enabled())
	assert.Contains(t, cfg.DB.ConnectionString(), "postgres://postgres:@db:5432/warehouse_web")
}

func TestFromViper_ProveedorEmailInvalido(t *testing.T) {
	v := viper.New()
	v.Set("EMAIL_PROVIDER", "pigeon")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_TTLInvalido(t *testing.T) {
	v := viper.New()
	v.Set("EXPORT_PREVIEW_TTL_SECONDS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}
