package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/aegis-support/aegis/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Analysis sharedConfig.AnalysisConfig `mapstructure:"analysis"`
	Monitor  sharedConfig.MonitorConfig  `mapstructure:"monitor"`
	Cache    sharedConfig.CacheConfig    `mapstructure:"cache"`
	LLM      sharedConfig.LLMConfig      `mapstructure:"llm"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("AEGIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine: defaults plus environment
		// variables carry a full configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "aegis_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "change-me-in-production")
	viper.SetDefault("auth.access_exp_hours", 12)
	viper.SetDefault("auth.bcrypt_cost", 12)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Analysis defaults
	viper.SetDefault("analysis.similarity_min_score", 0.3)
	viper.SetDefault("analysis.similarity_top_k", 5)
	viper.SetDefault("analysis.confidence_threshold", 0.6)

	// Monitor defaults
	viper.SetDefault("monitor.breach_threshold_hours", 24)
	viper.SetDefault("monitor.sweep_interval_minutes", 5)
	viper.SetDefault("monitor.escalation_window_days", 7)
	viper.SetDefault("monitor.escalation_min_issues", 3)

	// Cache TTL defaults, in seconds
	viper.SetDefault("cache.customer_history_ttl", 300)
	viper.SetDefault("cache.similarity_ttl", 600)
	viper.SetDefault("cache.template_ttl", 3600)
	viper.SetDefault("cache.default_ttl", 300)
	viper.SetDefault("cache.memory_max_entries", 1000)

	// Text generator defaults
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.model", "claude-sonnet-4-5")
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("llm.timeout_seconds", 15)
}
