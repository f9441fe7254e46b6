// Package config loads application configuration from file and
// environment, and owns global logger initialization.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Scorer   ScorerConfig   `yaml:"scorer" mapstructure:"scorer"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ResolverConfig configures the cross-reference pass.
type ResolverConfig struct {
	MinOEMCount   int     `yaml:"min_oem_count" mapstructure:"min_oem_count"`
	NameThreshold float64 `yaml:"name_threshold" mapstructure:"name_threshold"`
}

// ScorerConfig holds the point tables for lead scoring. Every value is a
// documented constant of the scoring scheme; defaults come from
// scorer.DefaultScorerConfig.
type ScorerConfig struct {
	// Multi-OEM presence (max 40).
	MultiOEM3Plus int `yaml:"multi_oem_3plus" mapstructure:"multi_oem_3plus"`
	MultiOEM2     int `yaml:"multi_oem_2" mapstructure:"multi_oem_2"`
	MultiOEM1     int `yaml:"multi_oem_1" mapstructure:"multi_oem_1"`

	// Incentive-state priority (max 20).
	IncentiveHigh   int `yaml:"incentive_high" mapstructure:"incentive_high"`
	IncentiveMedium int `yaml:"incentive_medium" mapstructure:"incentive_medium"`

	// Commercial capability from enriched employee counts (max 20).
	CommercialLarge int `yaml:"commercial_large" mapstructure:"commercial_large"`
	CommercialMid   int `yaml:"commercial_mid" mapstructure:"commercial_mid"`
	CommercialSmall int `yaml:"commercial_small" mapstructure:"commercial_small"`
	CommercialResi  int `yaml:"commercial_resi" mapstructure:"commercial_resi"`

	// Commercial capability fallback from OEM tier labels when no
	// employee count is available.
	TierEstimateMid      int `yaml:"tier_estimate_mid" mapstructure:"tier_estimate_mid"`
	TierEstimateSmall    int `yaml:"tier_estimate_small" mapstructure:"tier_estimate_small"`
	TierEstimateBaseline int `yaml:"tier_estimate_baseline" mapstructure:"tier_estimate_baseline"`

	// Geographic territory value (max 10).
	GeoTopDecile int `yaml:"geo_top_decile" mapstructure:"geo_top_decile"`
	GeoTopList   int `yaml:"geo_top_list" mapstructure:"geo_top_list"`
	GeoBaseline  int `yaml:"geo_baseline" mapstructure:"geo_baseline"`

	// Incentive-deadline urgency (max 10).
	UrgencyCritical int `yaml:"urgency_critical" mapstructure:"urgency_critical"`
	UrgencyHigh     int `yaml:"urgency_high" mapstructure:"urgency_high"`
	UrgencyMedium   int `yaml:"urgency_medium" mapstructure:"urgency_medium"`
	UrgencyLow      int `yaml:"urgency_low" mapstructure:"urgency_low"`

	// Bonus dimensions.
	OMCommercialBonus int `yaml:"om_commercial_bonus" mapstructure:"om_commercial_bonus"`
	OMBonus           int `yaml:"om_bonus" mapstructure:"om_bonus"`
	MultiTradeBonus   int `yaml:"multi_trade_bonus" mapstructure:"multi_trade_bonus"`

	// Priority tier thresholds (inclusive lower bounds).
	HotThreshold    int `yaml:"hot_threshold" mapstructure:"hot_threshold"`
	HighThreshold   int `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold int `yaml:"medium_threshold" mapstructure:"medium_threshold"`
}

// ServerConfig configures the read-only results server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROSPECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "prospector.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("resolver.min_oem_count", 2)
	v.SetDefault("resolver.name_threshold", 0.85)
	v.SetDefault("scorer.multi_oem_3plus", 40)
	v.SetDefault("scorer.multi_oem_2", 30)
	v.SetDefault("scorer.multi_oem_1", 8)
	v.SetDefault("scorer.incentive_high", 20)
	v.SetDefault("scorer.incentive_medium", 10)
	v.SetDefault("scorer.commercial_large", 20)
	v.SetDefault("scorer.commercial_mid", 15)
	v.SetDefault("scorer.commercial_small", 10)
	v.SetDefault("scorer.commercial_resi", 5)
	v.SetDefault("scorer.tier_estimate_mid", 15)
	v.SetDefault("scorer.tier_estimate_small", 10)
	v.SetDefault("scorer.tier_estimate_baseline", 5)
	v.SetDefault("scorer.geo_top_decile", 10)
	v.SetDefault("scorer.geo_top_list", 7)
	v.SetDefault("scorer.geo_baseline", 3)
	v.SetDefault("scorer.urgency_critical", 10)
	v.SetDefault("scorer.urgency_high", 7)
	v.SetDefault("scorer.urgency_medium", 5)
	v.SetDefault("scorer.urgency_low", 2)
	v.SetDefault("scorer.om_commercial_bonus", 20)
	v.SetDefault("scorer.om_bonus", 10)
	v.SetDefault("scorer.multi_trade_bonus", 25)
	v.SetDefault("scorer.hot_threshold", 90)
	v.SetDefault("scorer.high_threshold", 70)
	v.SetDefault("scorer.medium_threshold", 50)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
