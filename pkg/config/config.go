package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TLS            bool
	CertFile       string
	KeyFile        string
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string // sqlite, mysql, postgres, memory
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	MigrationDir    string
	SkipMigrations  bool
}

// AuthConfig contém configurações de autenticação
type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SecureCookies   bool
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// CacheConfig contém configurações do cache
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
	Redis   RedisOptions
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Format     string // json, console
	Production bool
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	ServiceName   string
	SamplingRatio float64
}

// LoadConfig carrega a configuração de diversas fontes (arquivo, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/courseplatform")

	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Variáveis de ambiente com prefixo CP_
	v.SetEnvPrefix("CP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readtimeout", 5*time.Second)
	v.SetDefault("server.writetimeout", 10*time.Second)
	v.SetDefault("server.idletimeout", 30*time.Second)
	v.SetDefault("server.maxheaderbytes", 1<<20)
	v.SetDefault("server.tls", false)

	// Database
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./courseplatform.db")
	v.SetDefault("database.maxidleconns", 10)
	v.SetDefault("database.maxopenconns", 50)
	v.SetDefault("database.connmaxlifetime", time.Hour)
	v.SetDefault("database.slowthreshold", 200*time.Millisecond)
	v.SetDefault("database.migrationdir", "./migrations")
	v.SetDefault("database.skipmigrations", false)

	// Auth: token de acesso curto, refresh em escala de dias
	v.SetDefault("auth.accesstokenttl", 30*time.Second)
	v.SetDefault("auth.refreshtokenttl", 7*24*time.Hour)
	v.SetDefault("auth.securecookies", true)

	// Cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.db", 0)

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheuspath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.production", true)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.servicename", "course-platform")
	v.SetDefault("tracing.samplingratio", 0.1)
}
