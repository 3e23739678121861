package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds the HTTP surface settings.
type AppConfig struct {
	Port               string   `json:"Port"`
	JWTSecret          string   `json:"JWTSecret"`
	GinMode            string   `json:"GinMode"`
	GinLogPath         string   `json:"GinLogPath"`
	AllowedOrigins     []string `json:"AllowedOrigins"`
	RateLimitPerMinute int      `json:"RateLimitPerMinute"`
}

// DatabaseConfig holds MySQL connection settings.
type DatabaseConfig struct {
	Host     string `json:"Host"`
	Port     string `json:"Port"`
	User     string `json:"User"`
	Password string `json:"Password"`
	Name     string `json:"Name"`
}

// RedisConfig holds cache settings. An empty Host disables caching.
type RedisConfig struct {
	Host     string `json:"Host"`
	Port     int    `json:"Port"`
	DB       int    `json:"DB"`
	Password string `json:"Password"`
}

// LogConfig holds application log settings.
type LogConfig struct {
	Level      string `json:"Level"`
	Path       string `json:"Path"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   bool   `json:"Compress"`
}

// EngineConfig holds evaluation knobs.
type EngineConfig struct {
	StreakLookbackDays int    `json:"StreakLookbackDays"`
	DefaultTimezone    string `json:"DefaultTimezone"`
	CacheTTLSeconds    int    `json:"CacheTTLSeconds"`
}

// Config is the full application configuration.
// Sensitive data never has defaults inside code and must be provided via the
// config file or the environment.
type Config struct {
	App      AppConfig      `json:"app"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Log      LogConfig      `json:"log"`
	Engine   EngineConfig   `json:"engine"`
}

var cfg Config
var loaded bool

// Load reads the configuration once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() Config {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.App.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() Config {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads the JSON file into cfg if present. Returns an error
// only for invalid JSON; a missing file is fine.
func loadJSONConfig(path string, out *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return json.Unmarshal(b, out)
}

func applyDefaults(c *Config) {
	if c.App.Port == "" {
		c.App.Port = "8080"
	}
	if c.App.GinMode == "" {
		c.App.GinMode = "release"
	}
	if c.App.GinLogPath == "" {
		c.App.GinLogPath = "logs/access.log"
	}
	if len(c.App.AllowedOrigins) == 0 {
		c.App.AllowedOrigins = []string{"*"}
	}
	if c.App.RateLimitPerMinute == 0 {
		c.App.RateLimitPerMinute = 120
	}

	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == "" {
		c.Database.Port = "3306"
	}
	if c.Database.User == "" {
		c.Database.User = "habitd"
	}
	if c.Database.Name == "" {
		c.Database.Name = "habitd"
	}

	// Redis.Host intentionally has no default: caching stays off unless
	// configured.
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Path == "" {
		c.Log.Path = "logs/habitd.log"
	}

	if c.Engine.StreakLookbackDays == 0 {
		c.Engine.StreakLookbackDays = 30
	}
	if c.Engine.DefaultTimezone == "" {
		c.Engine.DefaultTimezone = "UTC"
	}
	if c.Engine.CacheTTLSeconds == 0 {
		c.Engine.CacheTTLSeconds = 300
	}
}

func applyEnvOverrides(c *Config) {
	setString(&c.App.Port, "APP_PORT")
	setString(&c.App.JWTSecret, "JWT_SECRET")
	setString(&c.App.GinMode, "GIN_MODE")
	setString(&c.App.GinLogPath, "GIN_LOG_PATH")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				origins = append(origins, s)
			}
		}
		if len(origins) > 0 {
			c.App.AllowedOrigins = origins
		}
	}
	setInt(&c.App.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")

	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setInt(&c.Redis.DB, "REDIS_DB")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Path, "LOG_PATH")
	setInt(&c.Log.MaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.Log.MaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.Log.MaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.Log.Compress, "LOG_COMPRESS")

	setInt(&c.Engine.StreakLookbackDays, "STREAK_LOOKBACK_DAYS")
	setString(&c.Engine.DefaultTimezone, "DEFAULT_TIMEZONE")
	setInt(&c.Engine.CacheTTLSeconds, "CACHE_TTL_SECONDS")
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func setBool(target *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
