package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/diillson/course-platform-go/pkg/config"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20,
			TLS:            false,
			CertFile:       "",
			KeyFile:        "",
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./courseplatform.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 1 * time.Hour,
			SlowThreshold:   200 * time.Millisecond,
			MigrationDir:    "./migrations",
			SkipMigrations:  false,
		},
		Auth: config.AuthConfig{
			JWTSecret:       "troque-este-segredo-com-pelo-menos-32-bytes",
			AccessTokenTTL:  30 * time.Second,
			RefreshTokenTTL: 168 * time.Hour,
			SecureCookies:   true,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
			Redis: config.RedisOptions{
				Address:  "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			Production: true,
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			ServiceName:   "course-platform",
			SamplingRatio: 0.1,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Printf("Erro ao gravar arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuração padrão gravada em %s\n", outputPath)
	fmt.Println("Atenção: defina um JWT secret forte antes de usar em produção.")
}
