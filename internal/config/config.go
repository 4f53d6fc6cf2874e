package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
)

// Config holds the full application configuration.
type Config struct {
	Financing FinancingConfig `yaml:"financing" mapstructure:"financing"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// FinancingConfig holds the financing offer the tool models scenarios under.
type FinancingConfig struct {
	InterestRate    float64 `yaml:"interest_rate" mapstructure:"interest_rate"`
	TermMonths      int     `yaml:"term_months" mapstructure:"term_months"`
	ClosingCostRate float64 `yaml:"closing_cost_rate" mapstructure:"closing_cost_rate"`
}

// Terms converts the config section into financing terms for the core.
func (f FinancingConfig) Terms() mortgage.FinancingTerms {
	return mortgage.FinancingTerms{
		InterestRate:    f.InterestRate,
		TermMonths:      f.TermMonths,
		ClosingCostRate: f.ClosingCostRate,
	}
}

// SearchConfig holds restriction defaults applied when flags leave them unset.
type SearchConfig struct {
	TaxRate    float64 `yaml:"tax_rate" mapstructure:"tax_rate"`
	HOAMonthly float64 `yaml:"hoa_monthly" mapstructure:"hoa_monthly"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// BatchConfig configures batch scenario evaluation.
type BatchConfig struct {
	MaxConcurrentScenarios int `yaml:"max_concurrent_scenarios" mapstructure:"max_concurrent_scenarios"`
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
	v.SetEnvPrefix("MORTGAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("financing.term_months", mortgage.DefaultTermMonths)
	v.SetDefault("financing.closing_cost_rate", mortgage.DefaultClosingCostRate)
	v.SetDefault("store.path", "mortgage-cli.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("batch.max_concurrent_scenarios", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
