package config

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/rxtech-lab/argo-backtest/pkg/marketdata"
	"gopkg.in/yaml.v3"
)

// PolygonAPIKeyEnv is read when the configuration carries no Polygon key.
const PolygonAPIKeyEnv = "POLYGON_API_KEY"

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	RiskFreeRate    float64                 `yaml:"risk_free_rate" json:"risk_free_rate" validate:"gte=-1,lte=1" jsonschema:"title=Risk-Free Rate,description=Annual risk-free rate used by Sharpe Sortino and alpha,default=0.05"`
	BenchmarkTicker string                  `yaml:"benchmark_ticker" json:"benchmark_ticker" validate:"required" jsonschema:"title=Benchmark Ticker,description=Ticker used for alpha and beta,default=SPY"`
	Period          string                  `yaml:"period" json:"period" validate:"required" jsonschema:"title=Period,description=Default lookback such as 12mo or 2y,default=12mo"`
	Interval        string                  `yaml:"interval" json:"interval" validate:"required" jsonschema:"title=Interval,description=Default bar interval,default=1d"`
	Provider        marketdata.ProviderType `yaml:"provider" json:"provider" validate:"required,oneof=file polygon binance" jsonschema:"title=Provider,description=Market data provider,enum=file,enum=polygon,enum=binance,default=file"`
	DataDir         string                  `yaml:"data_dir" json:"data_dir" validate:"required_if=Provider file" jsonschema:"title=Data Directory,description=Directory of Parquet or CSV files for the file provider,default=data"`
	PolygonAPIKey   string                  `yaml:"polygon_api_key" json:"polygon_api_key" validate:"required_if=Provider polygon" jsonschema:"title=Polygon API Key,description=Falls back to the POLYGON_API_KEY environment variable"`
	CacheTTL        time.Duration           `yaml:"cache_ttl" json:"cache_ttl" validate:"gte=0" jsonschema:"title=Cache TTL,description=How long fetched market data stays cached. 0 disables the cache,default=12h"`
	DatabasePath    string                  `yaml:"database_path" json:"database_path" jsonschema:"title=Database Path,description=DuckDB file storing run records. Empty keeps them in memory"`
	ResultsFolder   string                  `yaml:"results_folder" json:"results_folder" jsonschema:"title=Results Folder,description=Directory receiving per-run reports. Empty disables reports"`
	ListenAddr      string                  `yaml:"listen_addr" json:"listen_addr" validate:"required" jsonschema:"title=Listen Address,description=Address of the HTTP server,default=:8080"`
	Precision       int32                   `yaml:"precision" json:"precision" validate:"gte=0,lte=12" jsonschema:"title=Precision,description=Decimal places kept in persisted statistics,default=4"`
	Strategy        strategy.Params         `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy,description=Default strategy parameters"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		RiskFreeRate:    0.05,
		BenchmarkTicker: "SPY",
		Period:          "12mo",
		Interval:        "1d",
		Provider:        marketdata.ProviderFile,
		DataDir:         "data",
		CacheTTL:        marketdata.DefaultCacheTTL,
		ListenAddr:      ":8080",
		Precision:       4,
		Strategy:        strategy.DefaultParams(),
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return finalize(Default())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment fallbacks and validates.
func Parse(data []byte) (Config, error) {
	config := Default()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	return finalize(config)
}

func finalize(config Config) (Config, error) {
	if config.PolygonAPIKey == "" {
		config.PolygonAPIKey = os.Getenv(PolygonAPIKeyEnv)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the struct tags, the default period and interval and the strategy parameters.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if _, err := types.ParsePeriod(c.Period); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid default period", err)
	}

	if _, err := marketdata.ParseInterval(c.Interval); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid default interval", err)
	}

	if err := c.Strategy.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid default strategy parameters", err)
	}

	return nil
}

// MarketData returns the provider configuration.
func (c Config) MarketData() marketdata.Config {
	return marketdata.Config{
		Type:          c.Provider,
		DataDir:       c.DataDir,
		PolygonAPIKey: c.PolygonAPIKey,
		CacheTTL:      c.CacheTTL,
	}
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:        "string",
					Title:       "Duration",
					Description: "Go duration such as 30m or 12h",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "argo-backtest-config"
	schema.Description = "Configuration schema for argo-backtest"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
