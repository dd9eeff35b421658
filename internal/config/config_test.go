package config

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/pkg/ptr"
)

func TestDomainPolicy_Defaults(t *testing.T) {
	policy := PolicyConfig{}.DomainPolicy()

	assert.Equal(t, domain.DefaultPolicy(), policy)
}

func TestDomainPolicy_ZeroIsHonored(t *testing.T) {
	// Явно заданный ноль — это ноль, а не сигнал подставить дефолт
	policy := PolicyConfig{
		CommissionBps:      ptr.Ptr(int64(0)),
		NoShowGraceMinutes: ptr.Ptr(int64(0)),
	}.DomainPolicy()

	assert.Equal(t, int64(0), policy.CommissionBps)
	assert.Equal(t, time.Duration(0), policy.NoShowGrace)
	assert.Equal(t, domain.DefaultPolicy().EURRateUnits, policy.EURRateUnits)
}

func TestDomainPolicy_Overrides(t *testing.T) {
	policy := PolicyConfig{
		EURRateUnits:       ptr.Ptr(int64(60_000_000)),
		CommissionBps:      ptr.Ptr(int64(500)),
		NoShowGraceMinutes: ptr.Ptr(int64(30)),
	}.DomainPolicy()

	assert.Equal(t, int64(60_000_000), policy.EURRateUnits)
	assert.Equal(t, int64(500), policy.CommissionBps)
	assert.Equal(t, 30*time.Minute, policy.NoShowGrace)
}

func TestDecode_PolicyZeroSurvivesTOML(t *testing.T) {
	var cfg Config
	_, err := toml.Decode(`
[policy]
commission_bps = 0
no_show_grace_minutes = 0
`, &cfg)
	require.NoError(t, err)

	require.NotNil(t, cfg.Policy.CommissionBps)
	assert.Equal(t, int64(0), *cfg.Policy.CommissionBps)
	require.NotNil(t, cfg.Policy.NoShowGraceMinutes)
	assert.Equal(t, int64(0), *cfg.Policy.NoShowGraceMinutes)
	assert.Nil(t, cfg.Policy.EURRateUnits)
}

func validConfig() Config {
	return Config{
		Server:   ServerConfig{HTTPPort: 8080},
		Database: DatabaseConfig{Host: "localhost", DBName: "escrow"},
		Auth:     AuthConfig{JWTSecret: "secret"},
	}
}

func TestValidate_PolicyBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"zero commission allowed", func(c *Config) {
			c.Policy.CommissionBps = ptr.Ptr(int64(0))
		}, true},
		{"negative commission rejected", func(c *Config) {
			c.Policy.CommissionBps = ptr.Ptr(int64(-1))
		}, false},
		{"commission above 100% rejected", func(c *Config) {
			c.Policy.CommissionBps = ptr.Ptr(int64(10001))
		}, false},
		{"zero grace allowed", func(c *Config) {
			c.Policy.NoShowGraceMinutes = ptr.Ptr(int64(0))
		}, true},
		{"negative grace rejected", func(c *Config) {
			c.Policy.NoShowGraceMinutes = ptr.Ptr(int64(-5))
		}, false},
		{"zero eur rate rejected", func(c *Config) {
			c.Policy.EURRateUnits = ptr.Ptr(int64(0))
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
