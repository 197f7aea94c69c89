// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string           `toml:"environment" default:"development"`
	Logging     LoggingConfig    `toml:"logging"`
	Analytics   AnalyticsConfig  `toml:"analytics"`
	Benchmarks  BenchmarksConfig `toml:"benchmarks"`
	Storage     StorageConfig    `toml:"storage"`
	Metrics     MetricsConfig    `toml:"metrics"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" default:"info"`
	Format string `toml:"format" default:"console"` // "console" or "json"
}

// AnalyticsConfig holds the tunable constants of the analytics engine
type AnalyticsConfig struct {
	XIRR               XIRRConfig                   `toml:"xirr"`
	Concentration      ConcentrationConfig          `toml:"concentration"`
	Alignment          AlignmentConfig              `toml:"alignment"`
	Personas           map[string]PersonaAllocation `toml:"personas"`
	MinGrowthPoints    int                          `toml:"min_growth_points" default:"12" validate:"gte=2"`
	CategoryVolatility map[string]float64           `toml:"category_volatility"`
	DefaultVolatility  float64                      `toml:"default_volatility" default:"15" validate:"gte=0"`
}

// XIRRConfig holds Newton-Raphson solver settings
type XIRRConfig struct {
	Guess         float64 `toml:"guess" default:"0.1" validate:"gt=-1"`
	Tolerance     float64 `toml:"tolerance" default:"0.0001" validate:"gt=0"`
	MaxIterations int     `toml:"max_iterations" default:"100" validate:"gt=0"`
}

// ConcentrationConfig holds the percentage thresholds for concentration flags.
// A value at or above High is HIGH; at or above Medium (and below High) is MEDIUM.
type ConcentrationConfig struct {
	SingleHoldingMedium float64 `toml:"single_holding_medium" default:"15" validate:"gt=0"`
	SingleHoldingHigh   float64 `toml:"single_holding_high" default:"25" validate:"gtfield=SingleHoldingMedium"`
	CategoryMedium      float64 `toml:"category_medium" default:"40" validate:"gt=0"`
	CategoryHigh        float64 `toml:"category_high" default:"60" validate:"gtfield=CategoryMedium"`
	AssetTypeMedium     float64 `toml:"asset_type_medium" default:"60" validate:"gt=0"`
	AssetTypeHigh       float64 `toml:"asset_type_high" default:"80" validate:"gtfield=AssetTypeMedium"`
}

// AlignmentConfig holds allocation alignment thresholds
type AlignmentConfig struct {
	DefaultPersona   string  `toml:"default_persona" default:"General"`
	DeviationPct     float64 `toml:"deviation_pct" default:"10" validate:"gt=0"`
	WellAlignedPct   float64 `toml:"well_aligned_pct" default:"5" validate:"gte=0"`
	ConcentrationPct float64 `toml:"concentration_pct" default:"40" validate:"gt=0"`
	Top3Pct          float64 `toml:"top3_pct" default:"70" validate:"gt=0"`
	Top3MinHoldings  int     `toml:"top3_min_holdings" default:"5"`
	DominantClassPct float64 `toml:"dominant_class_pct" default:"90" validate:"gt=0"`
	MinHoldings      int     `toml:"min_holdings" default:"3"`
}

// PersonaAllocation is the ideal equity/other split for an investor persona
type PersonaAllocation struct {
	Equity      float64 `toml:"equity" validate:"gte=0,lte=100"`
	Other       float64 `toml:"other" validate:"gte=0,lte=100"`
	Description string  `toml:"description"`
}

// BenchmarksConfig maps portfolio categories to benchmark indices and static annual rates
type BenchmarksConfig struct {
	DefaultCategory string                   `toml:"default_category" default:"Other"`
	Categories      map[string]BenchmarkRate `toml:"categories"`
}

// BenchmarkRate is the benchmark index name and its assumed annual return in percent
type BenchmarkRate struct {
	Index      string  `toml:"index"`
	StaticRate float64 `toml:"static_rate"`
}

// StorageConfig holds the read-only data source configuration
type StorageConfig struct {
	Backend   string `toml:"backend" default:"file" validate:"oneof=file surrealdb"`
	Path      string `toml:"path" default:"data"`
	Address   string `toml:"address" default:"ws://localhost:8000/rpc"`
	Namespace string `toml:"namespace" default:"folio"`
	Database  string `toml:"database" default:"folio"`
	Username  string `toml:"username" default:"root"`
	Password  string `toml:"password" default:"root"`
	Portfolio string `toml:"portfolio" default:"default"`
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultPersonas returns the built-in persona allocations
func DefaultPersonas() map[string]PersonaAllocation {
	return map[string]PersonaAllocation{
		"Conservative":           {Equity: 20, Other: 80, Description: "Stability-focused with minimal equity exposure"},
		"Moderate":               {Equity: 45, Other: 55, Description: "Balanced growth with controlled risk"},
		"Aggressive":             {Equity: 70, Other: 30, Description: "Growth-oriented with higher equity tolerance"},
		"Early Career Builder":   {Equity: 50, Other: 50, Description: "Long horizon allows moderate equity"},
		"Mid-Career Optimizer":   {Equity: 40, Other: 60, Description: "Balanced approach with debt focus"},
		"Pre-Retirement Planner": {Equity: 25, Other: 75, Description: "Capital preservation priority"},
		"Wealth Preserver":       {Equity: 15, Other: 85, Description: "Minimal volatility exposure"},
		"General":                {Equity: 35, Other: 65, Description: "Conservative balanced allocation"},
	}
}

// DefaultBenchmarks returns the built-in category benchmark table
func DefaultBenchmarks() map[string]BenchmarkRate {
	return map[string]BenchmarkRate{
		"Large Cap": {Index: "NIFTY 50", StaticRate: 12.0},
		"Mid Cap":   {Index: "NIFTY Midcap 150", StaticRate: 15.0},
		"Small Cap": {Index: "NIFTY Smallcap 250", StaticRate: 18.0},
		"Debt":      {Index: "CRISIL Composite Bond Fund Index", StaticRate: 7.5},
		"Hybrid":    {Index: "NIFTY Hybrid Index", StaticRate: 10.0},
		"Equity":    {Index: "NIFTY 500", StaticRate: 13.0},
		"Other":     {Index: "NIFTY 500", StaticRate: 13.0},
	}
}

// DefaultCategoryVolatility returns assumed annualised volatility (percent) per category
func DefaultCategoryVolatility() map[string]float64 {
	return map[string]float64{
		"Large Cap": 15,
		"Mid Cap":   22,
		"Small Cap": 28,
		"ELSS":      18,
		"Hybrid":    10,
		"Debt":      5,
		"EQUITY":    20,
	}
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	config := &Config{}
	if err := defaults.Set(config); err != nil {
		// Only reachable with malformed default tags.
		panic(fmt.Sprintf("invalid config defaults: %v", err))
	}
	fillDefaultTables(config)
	return config
}

// fillDefaultTables adds built-in table entries that the loaded config does not override
func fillDefaultTables(config *Config) {
	if config.Analytics.Personas == nil {
		config.Analytics.Personas = make(map[string]PersonaAllocation)
	}
	for name, p := range DefaultPersonas() {
		if _, ok := config.Analytics.Personas[name]; !ok {
			config.Analytics.Personas[name] = p
		}
	}

	if config.Benchmarks.Categories == nil {
		config.Benchmarks.Categories = make(map[string]BenchmarkRate)
	}
	for name, b := range DefaultBenchmarks() {
		if _, ok := config.Benchmarks.Categories[name]; !ok {
			config.Benchmarks.Categories[name] = b
		}
	}

	if config.Analytics.CategoryVolatility == nil {
		config.Analytics.CategoryVolatility = make(map[string]float64)
	}
	for name, v := range DefaultCategoryVolatility() {
		if _, ok := config.Analytics.CategoryVolatility[name]; !ok {
			config.Analytics.CategoryVolatility[name] = v
		}
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	fillDefaultTables(config)

	applyEnvOverrides(config)

	if err := ValidateStruct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, ok := config.Benchmarks.Categories[config.Benchmarks.DefaultCategory]; !ok {
		return nil, fmt.Errorf("invalid configuration: default benchmark category %q has no entry", config.Benchmarks.DefaultCategory)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("FOLIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if backend := os.Getenv("FOLIO_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = strings.ToLower(backend)
	}
	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}
	if addr := os.Getenv("FOLIO_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if v := os.Getenv("FOLIO_STORAGE_USERNAME"); v != "" {
		config.Storage.Username = v
	}
	if v := os.Getenv("FOLIO_STORAGE_PASSWORD"); v != "" {
		config.Storage.Password = v
	}
	if v := os.Getenv("FOLIO_PORTFOLIO"); v != "" {
		config.Storage.Portfolio = v
	}

	if persona := os.Getenv("FOLIO_PERSONA"); persona != "" {
		config.Analytics.Alignment.DefaultPersona = persona
	}

	if v := os.Getenv("FOLIO_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Metrics.Enabled = b
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolvePersona returns the persona name and allocation to use.
// Unknown or empty names fall back to the configured default persona, then "General".
func (c *AnalyticsConfig) ResolvePersona(name string) (string, PersonaAllocation) {
	if p, ok := c.Personas[name]; ok && name != "" {
		return name, p
	}
	if p, ok := c.Personas[c.Alignment.DefaultPersona]; ok {
		return c.Alignment.DefaultPersona, p
	}
	return "General", DefaultPersonas()["General"]
}
