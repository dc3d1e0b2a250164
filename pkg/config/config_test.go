package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
service_name = "storefront"
version = "1.0.0"

[http]
port = 8080
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 86400, cfg.Redis.CartTTL)
	assert.Equal(t, "shopping.orders", cfg.Kafka.OrderTopic)
	assert.Equal(t, "info", cfg.Logger.Level)

	assert.InDelta(t, 0.08, cfg.Cart.TaxRate, 1e-9)
	assert.InDelta(t, 500, cfg.Cart.FreeShippingThreshold, 1e-9)
	assert.InDelta(t, 25, cfg.Cart.ShippingCost, 1e-9)
}

func TestLoadOverridesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[cart]
tax_rate = 0.1
free_shipping_threshold = 300.0
shipping_cost = 15.0
`))
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.Cart.TaxRate, 1e-9)
	assert.InDelta(t, 300, cfg.Cart.FreeShippingThreshold, 1e-9)
	assert.InDelta(t, 15, cfg.Cart.ShippingCost, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidateRejectsMissingServiceName(t *testing.T) {
	_, err := Load(writeConfig(t, `
version = "1.0.0"

[http]
port = 8080
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_name")
}

func TestValidateRejectsBadPort(t *testing.T) {
	_, err := Load(writeConfig(t, `
service_name = "storefront"

[http]
port = 70000
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidateRequiresDSNWhenDatabaseEnabled(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[database]
enabled = true
dsn = ""
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")
}

func TestValidateRejectsNegativeCartRules(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[cart]
tax_rate = -0.01
`))
	assert.Error(t, err)
}
