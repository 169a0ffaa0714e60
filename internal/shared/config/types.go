package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	AccessExpHours int    `mapstructure:"access_exp_hours"`
	BcryptCost     int    `mapstructure:"bcrypt_cost"`
}

// AnalysisConfig holds the knobs for the issue analysis pipeline.
type AnalysisConfig struct {
	// SimilarityMinScore is the minimum cosine similarity for a match
	// to be reported.
	SimilarityMinScore float64 `mapstructure:"similarity_min_score"`
	// SimilarityTopK caps the number of similar issues returned.
	SimilarityTopK int `mapstructure:"similarity_top_k"`
	// ConfidenceThreshold below which a classification is flagged for
	// human review.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// MonitorConfig holds the critical issue monitor knobs.
type MonitorConfig struct {
	// BreachThresholdHours is the age past which an unattended open
	// issue is considered in breach.
	BreachThresholdHours int `mapstructure:"breach_threshold_hours"`
	// SweepIntervalMinutes is the scheduler interval between sweeps.
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
	// EscalationWindowDays is the lookback window for the customer
	// escalation predicate.
	EscalationWindowDays int `mapstructure:"escalation_window_days"`
	// EscalationMinIssues is the open High/Critical issue count that
	// triggers a customer escalation alert.
	EscalationMinIssues int `mapstructure:"escalation_min_issues"`
}

// CacheConfig holds per-namespace TTLs in seconds. Staleness tolerance
// differs per data kind, so TTLs are configured per namespace rather
// than globally.
type CacheConfig struct {
	CustomerHistoryTTL int `mapstructure:"customer_history_ttl"`
	SimilarityTTL      int `mapstructure:"similarity_ttl"`
	TemplateTTL        int `mapstructure:"template_ttl"`
	DefaultTTL         int `mapstructure:"default_ttl"`
	MemoryMaxEntries   int `mapstructure:"memory_max_entries"`
}

type LLMConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	MaxTokens      int    `mapstructure:"max_tokens"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}
