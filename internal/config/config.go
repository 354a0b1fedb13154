package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Oracle    OracleConfig
	Session   SessionConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Log       LogConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 配置文件所在目录（运行时设置，供热加载使用）
	Path string `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// OracleConfig 外部分析后端（CareerQuest Oracle）的连接参数
type OracleConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// 以下时长在配置文件中均以毫秒填写
	RequestTimeout    time.Duration `mapstructure:"request_timeout_ms"`
	HealthTimeout     time.Duration `mapstructure:"health_timeout_ms"`
	MockLoginDelay    time.Duration `mapstructure:"mock_login_delay_ms"`
	MockAnalysisDelay time.Duration `mapstructure:"mock_analysis_delay_ms"`
}

type SessionConfig struct {
	Store      string        `mapstructure:"store"` // memory | redis | mysql
	CookieName string        `mapstructure:"cookie_name"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
	TTL        time.Duration `mapstructure:"ttl_hours"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMySQL  = "mysql"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("oracle.base_url", "http://localhost:5001")
	v.SetDefault("oracle.request_timeout_ms", 5000)
	v.SetDefault("oracle.health_timeout_ms", 5000)
	v.SetDefault("oracle.mock_login_delay_ms", 1000)
	v.SetDefault("oracle.mock_analysis_delay_ms", 2000)

	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.cookie_name", "careerquest_session")
	v.SetDefault("session.key_prefix", "careerQuestUser")
	v.SetDefault("session.ttl_hours", 24)

	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("log.file", "logs/app.log")

	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CAREER_QUEST")
	v.AutomaticEnv()

	setDefaults(v)

	// Oracle
	v.BindEnv("oracle.base_url", "ORACLE_BASE_URL")

	// Session / JWT
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "SERVER_PORT")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Path = path

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize 将配置文件中的整数换算为 time.Duration
func normalize(cfg *Config) {
	cfg.Oracle.RequestTimeout = cfg.Oracle.RequestTimeout * time.Millisecond
	cfg.Oracle.HealthTimeout = cfg.Oracle.HealthTimeout * time.Millisecond
	cfg.Oracle.MockLoginDelay = cfg.Oracle.MockLoginDelay * time.Millisecond
	cfg.Oracle.MockAnalysisDelay = cfg.Oracle.MockAnalysisDelay * time.Millisecond
	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Session.TTL = cfg.Session.TTL * time.Hour
}

func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Oracle.BaseURL == "" {
		return fmt.Errorf("oracle.base_url is required")
	}
	switch c.Session.Store {
	case StoreMemory, StoreRedis, StoreMySQL:
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	return nil
}
