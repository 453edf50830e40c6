package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Scout/internal/scoring"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Hermes      HermesConfig      `yaml:"hermes"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Port             int    `yaml:"port"`
	MetricsPort      int    `yaml:"metrics_port"`
	AdminToken       string `yaml:"admin_token"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type InterpreterConfig struct {
	URL       string `yaml:"url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type ScoringConfig struct {
	Weights           ScoringWeights `yaml:"weights"`
	DefaultTopK       int            `yaml:"default_top_k"`
	MaxTopK           int            `yaml:"max_top_k"`
	Workers           int            `yaml:"workers"`
	CandidateLimit    int            `yaml:"candidate_limit"`
	LocationThreshold float64        `yaml:"location_threshold"`
}

type ScoringWeights struct {
	Skill          float64 `yaml:"skill"`
	Location       float64 `yaml:"location"`
	Experience     float64 `yaml:"experience"`
	Availability   float64 `yaml:"availability"`
	Specialization float64 `yaml:"specialization"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutMs) * time.Millisecond
}

func (c *Config) InterpreterTimeout() time.Duration {
	return time.Duration(c.Interpreter.TimeoutMs) * time.Millisecond
}

// RankerConfig converts the scoring section into the ranker's settings.
func (c *Config) RankerConfig() scoring.RankerConfig {
	w := c.Scoring.Weights
	return scoring.RankerConfig{
		DefaultWeights: scoring.WeightSet{
			Skill:          w.Skill,
			Location:       w.Location,
			Experience:     w.Experience,
			Availability:   w.Availability,
			Specialization: w.Specialization,
		},
		DefaultTopK:       c.Scoring.DefaultTopK,
		MaxTopK:           c.Scoring.MaxTopK,
		Workers:           c.Scoring.Workers,
		LocationThreshold: c.Scoring.LocationThreshold,
	}
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             8700,
			MetricsPort:      8701,
			RequestTimeoutMs: 10000,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Interpreter: InterpreterConfig{
			URL:       "http://localhost:8710",
			TimeoutMs: 15000,
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Skill:          0.30,
				Location:       0.20,
				Experience:     0.20,
				Availability:   0.10,
				Specialization: 0.20,
			},
			DefaultTopK:       scoring.DefaultTopK,
			MaxTopK:           scoring.DefaultMaxTopK,
			Workers:           0,
			CandidateLimit:    1000,
			LocationThreshold: scoring.DefaultLocationThreshold,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	weights := cfg.RankerConfig().DefaultWeights
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring.weights: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCOUT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SCOUT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SCOUT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SCOUT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SCOUT_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("SCOUT_INTERPRETER_URL"); v != "" {
		cfg.Interpreter.URL = v
	}
	if v := os.Getenv("SCOUT_DEFAULT_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.DefaultTopK = n
		}
	}
	if v := os.Getenv("SCOUT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.Workers = n
		}
	}
	if v := os.Getenv("SCOUT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SCOUT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
