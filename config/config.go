package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del pricer.
type Config struct {
	Pricer  PricerConfig  `yaml:"pricer"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// PricerConfig controla el comportamiento del engine y de los sweeps.
type PricerConfig struct {
	WatchIntervalSeconds int     `yaml:"watch_interval_seconds"`
	Granularity          int     `yaml:"granularity"`      // subdivisiones por eje [1, 100]
	Range                float64 `yaml:"range"`            // banda simétrica [0.1, 0.99]
	Workers              int     `yaml:"workers"`          // goroutines para sweeps 2D (0 = NumCPU×2)
	SolverTolerance      float64 `yaml:"solver_tolerance"` // tolerancia del solver de IV
}

// APIConfig contiene los base URLs de las APIs externas.
type APIConfig struct {
	MarketBase    string `yaml:"market_base"`
	ReferenceBase string `yaml:"reference_base"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del .env sobreescriben los del YAML para las keys que
// correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// WatchInterval devuelve el intervalo de re-pricing como time.Duration.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Pricer.WatchIntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MARKET_BASE"); v != "" {
		cfg.API.MarketBase = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Pricer.WatchIntervalSeconds <= 0 {
		cfg.Pricer.WatchIntervalSeconds = 60
	}
	if cfg.Pricer.Granularity <= 0 {
		cfg.Pricer.Granularity = 30
	}
	if cfg.Pricer.Range <= 0 {
		cfg.Pricer.Range = 0.20
	}
	if cfg.Pricer.SolverTolerance <= 0 {
		cfg.Pricer.SolverTolerance = 1e-5
	}
	if cfg.API.MarketBase == "" {
		cfg.API.MarketBase = "https://query1.finance.yahoo.com"
	}
	if cfg.API.ReferenceBase == "" {
		cfg.API.ReferenceBase = "https://raw.githubusercontent.com/datasets/s-and-p-500-companies/main/data"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "greekbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
