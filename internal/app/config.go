package app

import (
	"github.com/spf13/viper"

	"odx/internal/domain"
)

// Config is the process configuration surface, consumed once at startup.
type Config struct {
	InstanceURL string `mapstructure:"instanceUrl"`
	GatewayURL  string `mapstructure:"gatewayUrl"`
	Database    string `mapstructure:"database"`
	APIKey      string `mapstructure:"apiKey"`
	UserID      int    `mapstructure:"userId"`

	// CatalogPath optionally points at a YAML glossary catalog override.
	CatalogPath string `mapstructure:"catalogPath"`
	// MetricsAddr enables the /metrics listener when non-empty.
	MetricsAddr string `mapstructure:"metricsAddr"`
	// EnrichmentConcurrency bounds parallel fields_get fetches.
	EnrichmentConcurrency int `mapstructure:"enrichmentConcurrency"`

	// DryRun performs full startup but skips the stdio serve loop. Useful
	// for startup smoke verification.
	DryRun bool `mapstructure:"dryRun"`
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("enrichmentConcurrency", domain.DefaultEnrichmentConcurrency)

	// Env names match the original deployment surface, so no common prefix.
	_ = v.BindEnv("instanceUrl", "ODOO_URL")
	_ = v.BindEnv("gatewayUrl", "ODOO_GATEWAY_URL")
	_ = v.BindEnv("database", "ODOO_DB")
	_ = v.BindEnv("apiKey", "ODOO_API_KEY")
	_ = v.BindEnv("userId", "ODOO_UID")
	_ = v.BindEnv("catalogPath", "ODX_CATALOG")
	_ = v.BindEnv("metricsAddr", "ODX_METRICS_ADDR")
	_ = v.BindEnv("dryRun", "DRY_RUN")

	return v
}

// LoadConfig reads configuration from the environment, plus an optional YAML
// file layered underneath the env values.
func LoadConfig(path string) (Config, error) {
	v := newConfigViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, domain.E(domain.CodeInvalidArgument, "config.load", "config file parse failed", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, domain.E(domain.CodeInvalidArgument, "config.load", "config decode failed", err)
	}
	return cfg, nil
}
