package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/diillson/course-platform-go/internal/app"
	"github.com/diillson/course-platform-go/pkg/config"
	"github.com/diillson/course-platform-go/pkg/logging"
	"github.com/diillson/course-platform-go/pkg/telemetry"
)

// setupServer monta o servidor HTTP ou HTTPS conforme a configuração
func setupServer(router *gin.Engine, cfg *config.Config, logger *zap.Logger) *http.Server {
	env := os.Getenv("ENV")

	if env == "development" || !cfg.Server.TLS {
		logger.Info("Iniciando em modo HTTP",
			zap.Bool("tls_disabled", !cfg.Server.TLS),
			zap.String("env", env),
			zap.Int("port", cfg.Server.Port))

		return &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}
	}

	// Certificados próprios, quando fornecidos
	if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
		logger.Info("Usando certificados TLS fornecidos",
			zap.String("certFile", cfg.Server.CertFile),
			zap.String("keyFile", cfg.Server.KeyFile))

		go startHTTPRedirector(logger)

		return &http.Server{
			Addr:    ":443",
			Handler: router,
			TLSConfig: &tls.Config{
				MinVersion: tls.VersionTLS13,
			},
		}
	}

	// Sem certificados próprios, tentar Let's Encrypt
	var domains []string
	if serverDomains := os.Getenv("SERVER_DOMAINS"); serverDomains != "" {
		domains = strings.Split(serverDomains, ",")
	}

	validDomains := make([]string, 0, len(domains))
	for _, domain := range domains {
		if domain != "" && domain != "localhost" && domain != "127.0.0.1" {
			validDomains = append(validDomains, domain)
		}
	}

	if len(validDomains) == 0 {
		logger.Warn("Nenhum domínio válido configurado para Let's Encrypt. Usando HTTP.")
		return &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: router,
		}
	}

	logger.Info("Inicializando Let's Encrypt", zap.Strings("domains", validDomains))

	certManager := autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(validDomains...),
		Cache:      autocert.DirCache("./certs"),
		Email:      os.Getenv("LETSENCRYPT_EMAIL"),
	}

	// Servidor HTTP para desafios ACME e redirecionamento HTTPS
	go func() {
		httpServer := &http.Server{
			Addr:    ":80",
			Handler: certManager.HTTPHandler(http.HandlerFunc(redirectHTTPS)),
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Erro no servidor HTTP para Let's Encrypt", zap.Error(err))
		}
	}()

	return &http.Server{
		Addr:    ":443",
		Handler: router,
		TLSConfig: &tls.Config{
			GetCertificate: certManager.GetCertificate,
			MinVersion:     tls.VersionTLS13,
		},
	}
}

// startHTTPRedirector redireciona tráfego HTTP para HTTPS
func startHTTPRedirector(logger *zap.Logger) {
	httpServer := &http.Server{
		Addr:    ":80",
		Handler: http.HandlerFunc(redirectHTTPS),
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Erro no servidor HTTP para redirecionamento", zap.Error(err))
	}
}

func redirectHTTPS(w http.ResponseWriter, r *http.Request) {
	target := "https://" + r.Host + r.URL.Path
	if len(r.URL.RawQuery) > 0 {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func main() {
	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(
			context.Background(),
			cfg.Tracing.ServiceName,
			cfg.Tracing.Endpoint,
			cfg.Tracing.SamplingRatio,
			logger,
		)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado",
				zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	application, err := app.NewAppWithConfig(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.Close()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	application.RegisterRoutes(router)

	server := setupServer(router, cfg, logger)

	go func() {
		var err error
		if server.TLSConfig != nil {
			logger.Info("Iniciando servidor HTTPS", zap.String("addr", server.Addr))
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Erro ao encerrar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado com sucesso")
}
