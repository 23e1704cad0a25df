package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"xc60-deals/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Model    ModelConfig    `mapstructure:"model"`
	Output   OutputConfig   `mapstructure:"output"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// SourcesConfig names the scraped CSV inputs per dealer source.
type SourcesConfig struct {
	VolvoSelekt string `mapstructure:"volvo_selekt"`
	Bilia       string `mapstructure:"bilia"`
	Rejmes      string `mapstructure:"rejmes"`
}

// ModelConfig governs the regression fit.
type ModelConfig struct {
	ReferenceYear int `mapstructure:"reference_year"`
	MinRecords    int `mapstructure:"min_records"`
}

// OutputConfig sets report and chart destinations.
type OutputConfig struct {
	Dir         string `mapstructure:"dir"`
	ChartWidth  int    `mapstructure:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height"`
	TopDeals    int    `mapstructure:"top_deals"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("XC60DEALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "xc60-deals")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("sources.volvo_selekt", "data/volvo_selekt.csv")
	v.SetDefault("sources.bilia", "data/bilia.csv")
	v.SetDefault("sources.rejmes", "data/rejmes.csv")

	v.SetDefault("model.reference_year", 0)
	v.SetDefault("model.min_records", 25)

	v.SetDefault("output.dir", "out")
	v.SetDefault("output.chart_width", 1280)
	v.SetDefault("output.chart_height", 720)
	v.SetDefault("output.top_deals", 10)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Model.MinRecords <= 0 {
		return fmt.Errorf("model.min_records must be greater than zero")
	}
	if c.Model.ReferenceYear != 0 && (c.Model.ReferenceYear < 1990 || c.Model.ReferenceYear > 2099) {
		return fmt.Errorf("model.reference_year must be 0 (current year) or within 1990-2099")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Output.TopDeals <= 0 {
		return fmt.Errorf("output.top_deals must be greater than zero")
	}
	if c.Sources.VolvoSelekt == "" && c.Sources.Bilia == "" && c.Sources.Rejmes == "" {
		return fmt.Errorf("at least one source path must be configured")
	}
	return nil
}

// ResolveReferenceYear returns the configured reference year, or the current
// year when unset.
func (c *Config) ResolveReferenceYear(now time.Time) int {
	if c.Model.ReferenceYear != 0 {
		return c.Model.ReferenceYear
	}
	return now.Year()
}
