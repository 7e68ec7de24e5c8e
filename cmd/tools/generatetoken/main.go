package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/database"
	"github.com/diillson/course-platform-go/pkg/security"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// Ferramenta de operação: emite um token de acesso para um usuário
// existente. Como os tokens carregam o hash da senha vigente na emissão,
// o usuário precisa ser carregado do banco, pois não dá para cunhar um
// token válido só com o ID.
func main() {
	var (
		userID   string
		ttl      time.Duration
		dbDriver string
		dbDSN    string
	)

	flag.StringVar(&userID, "user_id", "", "ID do usuário")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "Validade do token")
	flag.StringVar(&dbDriver, "driver", "sqlite", "Driver do banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dbDSN, "dsn", "./courseplatform.db", "DSN do banco de dados")
	flag.Parse()

	if userID == "" {
		fmt.Println("Erro: O ID do usuário não pode ser vazio.")
		fmt.Println("Uso: go run cmd/tools/generatetoken/main.go -user_id=<ID do usuário>")
		os.Exit(1)
	}

	secretKey := security.GetJWTSecret()
	if len(secretKey) == 0 {
		fmt.Println("Erro: Nenhum segredo JWT configurado.")
		fmt.Println("Configure JWT_SECRET_KEY ou CP_AUTH_JWT_SECRET_KEY com o mesmo segredo usado pelo servidor.")
		os.Exit(1)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := database.Config{
		Driver:          dbDriver,
		DSN:             dbDSN,
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        gormlogger.Error,
		SlowThreshold:   200 * time.Millisecond,
		SkipMigrations:  true,
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	users := database.NewUserRepository(db.DB(), logger)
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		fmt.Printf("Erro ao buscar usuário: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Printf("Erro: Usuário '%s' não encontrado.\n", userID)
		os.Exit(1)
	}

	keyManager, err := security.NewKeyManager(secretKey, ttl, ttl, logger)
	if err != nil {
		fmt.Printf("Erro ao inicializar gerenciador de chaves: %v\n", err)
		os.Exit(1)
	}

	tokenString, err := keyManager.GenerateToken(user.ID, user.Password, string(user.Privilege), ttl)
	if err != nil {
		fmt.Printf("Erro ao gerar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nToken JWT gerado:")
	fmt.Println("------------------------------------------")
	fmt.Println(tokenString)
	fmt.Println("------------------------------------------")
	fmt.Printf("\nDetalhes do token:\n")
	fmt.Printf("ID do usuário: %s\n", user.ID)
	fmt.Printf("Privilégio: %s\n", user.Privilege)
	fmt.Printf("Expira em: %s\n", time.Now().Add(ttl).Format(time.RFC3339))
	fmt.Println("\nUse este token no cabeçalho Authorization:")
	fmt.Printf("Authorization: Bearer %s\n", tokenString)
	fmt.Println("\nO token deixa de valer se a senha do usuário mudar depois da emissão.")
}
