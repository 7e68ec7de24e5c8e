package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/diillson/course-platform-go/internal/adapter/database"
	"github.com/diillson/course-platform-go/pkg/logging"
)

func main() {
	var (
		action       string
		name         string
		driver       string
		dsn          string
		migrationDir string
	)

	flag.StringVar(&action, "action", "migrate", "Ação (migrate, status, create)")
	flag.StringVar(&name, "name", "", "Nome da migração (apenas para action=create)")
	flag.StringVar(&driver, "driver", "sqlite", "Driver de banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dsn, "dsn", "./courseplatform.db", "DSN do banco de dados")
	flag.StringVar(&migrationDir, "dir", "./migrations", "Diretório de migrações")
	flag.Parse()

	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := database.Config{
		Driver:          driver,
		DSN:             dsn,
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        gormlogger.Info,
		SlowThreshold:   200 * time.Millisecond,
		MigrationDir:    migrationDir,
	}

	ctx := context.Background()

	switch action {
	case "migrate":
		// NewDatabase aplica as migrações pendentes na inicialização
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Migrações aplicadas com sucesso")

	case "status":
		dbConfig.SkipMigrations = true
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		statuses, err := db.MigrationStatus(ctx)
		if err != nil {
			logger.Fatal("Falha ao consultar estado das migrações", zap.Error(err))
		}

		if len(statuses) == 0 {
			fmt.Println("Nenhuma migração encontrada.")
			return
		}

		for _, s := range statuses {
			if s.Applied {
				fmt.Printf("%d  %-30s aplicada em %s\n", s.Version, s.Name, s.AppliedAt.Format(time.RFC3339))
			} else {
				fmt.Printf("%d  %-30s pendente\n", s.Version, s.Name)
			}
		}

	case "create":
		if name == "" {
			logger.Fatal("Nome da migração é obrigatório para action=create")
		}

		dbConfig.SkipMigrations = true
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		path, err := db.CreateMigration(name)
		if err != nil {
			logger.Fatal("Falha ao criar migração", zap.Error(err))
		}

		logger.Info("Migração criada", zap.String("path", path))

	default:
		logger.Fatal("Ação desconhecida", zap.String("action", action))
	}
}
