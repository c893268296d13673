package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zappabad/candleview/internal/chart"
	"github.com/zappabad/candleview/internal/dataset"
	"github.com/zappabad/candleview/internal/logging"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "CANDLEVIEW_"

// Config holds the application configuration.
type Config struct {
	// DataPath is a .json or .parquet dataset. Empty uses a generated series.
	DataPath string `env:"DATA_PATH"`
	// ChartKind is bars, candlestick or line.
	ChartKind string `env:"CHART_KIND" envDefault:"candlestick"`
	// OptionsPath is an optional YAML file decoded over the chart defaults.
	OptionsPath string `env:"OPTIONS_PATH"`
	// FrameInterval is the delay of a deferred pan frame.
	FrameInterval time.Duration `env:"FRAME_INTERVAL" envDefault:"16ms"`

	// SampleBars and SampleChunkSize shape the generated series.
	SampleBars      int `env:"SAMPLE_BARS" envDefault:"5000"`
	SampleChunkSize int `env:"SAMPLE_CHUNK_SIZE" envDefault:"500"`

	LogFile       string `env:"LOG_FILE"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`
}

// Load reads configuration from the environment and an optional .env file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FrameInterval <= 0 {
		return Config{}, fmt.Errorf("frame interval must be positive, got %s", cfg.FrameInterval)
	}
	return cfg, nil
}

// Kind returns the configured chart variant.
func (c Config) Kind() (chart.Kind, error) {
	return chart.ParseKind(c.ChartKind)
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	return logging.Config{
		File:       c.LogFile,
		Level:      c.LogLevel,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
	}
}

// Generate returns the synthetic series configuration.
func (c Config) Generate() dataset.GenerateConfig {
	g := dataset.DefaultGenerateConfig()
	g.Count = c.SampleBars
	g.ChunkSize = c.SampleChunkSize
	return g
}

// LoadOptions decodes the YAML file at path over base. Keys absent from the
// file keep their base value. An empty path returns base unchanged.
func LoadOptions(path string, base chart.Options) (chart.Options, error) {
	if path == "" {
		return base, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return chart.Options{}, fmt.Errorf("read options: %w", err)
	}
	return ParseOptions(b, base)
}

// ParseOptions decodes a YAML document over base and validates the result.
func ParseOptions(b []byte, base chart.Options) (chart.Options, error) {
	opts := base
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return chart.Options{}, fmt.Errorf("parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return chart.Options{}, err
	}
	return opts, nil
}
