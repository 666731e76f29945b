package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // hours
	} `yaml:"jwt"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	// Quota defaults applied to new users at registration. Zero caps are
	// stored as given; nil-semantics (unlimited) come from the role and
	// subscription checks, not from these numbers.
	Quota struct {
		FreeMaxItems     int     `yaml:"free_max_items"`
		FreeMaxStorageMB float64 `yaml:"free_max_storage_mb"`
		ReconcileMinutes int     `yaml:"reconcile_minutes"`
	} `yaml:"quota"`
}

var AppConfig *Config

// LoadConfig reads config.yaml and overlays environment variables. A .env
// file is honored when present. DATABASE_URL alone is enough to boot, which
// is what the test environment uses.
func LoadConfig() {
	var cfg Config

	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file: %v", err)
		}
	} else {
		cfg.Database.DSN = dbURL
	}

	if serverEnv != "" {
		cfg.Server.Env = serverEnv
	}
	if portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
	if jwtSecret != "" {
		cfg.JWT.Secret = jwtSecret
	}

	// Fallbacks for bare environments.
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24
	}
	if cfg.Quota.FreeMaxItems == 0 {
		cfg.Quota.FreeMaxItems = 50
	}
	if cfg.Quota.FreeMaxStorageMB == 0 {
		cfg.Quota.FreeMaxStorageMB = 500
	}
	if cfg.Quota.ReconcileMinutes == 0 {
		cfg.Quota.ReconcileMinutes = 60
	}

	AppConfig = &cfg
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
