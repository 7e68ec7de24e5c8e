package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/database"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Ferramenta de bootstrap: cria (ou sobrescreve) um administrador direto
// no banco, sem passar pela API. Útil quando ainda não existe nenhum
// administrador para autorizar a criação de outros.
func main() {
	var (
		email     string
		username  string
		cpf       string
		firstName string
		lastName  string
		password  string
		dbDriver  string
		dbDSN     string
		verbose   bool
	)

	flag.StringVar(&email, "email", "", "E-mail do administrador")
	flag.StringVar(&username, "username", "", "Nome de usuário do administrador")
	flag.StringVar(&cpf, "cpf", "", "CPF do administrador")
	flag.StringVar(&firstName, "first_name", "", "Primeiro nome do administrador")
	flag.StringVar(&lastName, "last_name", "", "Sobrenome do administrador")
	flag.StringVar(&password, "password", "", "Senha do administrador")
	flag.StringVar(&dbDriver, "driver", "sqlite", "Driver do banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dbDSN, "dsn", "./courseplatform.db", "DSN do banco de dados")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	if email == "" || username == "" || cpf == "" || firstName == "" || lastName == "" || password == "" {
		fmt.Println("Erro: email, username, cpf, first_name, last_name e password não podem ser vazios.")
		flag.Usage()
		os.Exit(1)
	}

	cfg := zap.NewProductionConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		cfg.OutputPaths = []string{"stderr"}
	}

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
		SkipMigrations:  true, // Pular migrações para esta ferramenta
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Garantir que a tabela de usuários existe
	if !db.DB().Migrator().HasTable(&model.UserEntity{}) {
		if err := db.DB().AutoMigrate(&model.UserEntity{}); err != nil {
			fmt.Printf("Erro ao criar tabela de usuários: %v\n", err)
			os.Exit(1)
		}
	}

	var existingUser model.UserEntity
	result := db.DB().Where("email = ?", email).First(&existingUser)

	isUpdate := false

	if result.Error == nil {
		isUpdate = true
		fmt.Printf("Usuário '%s' já existe. Deseja sobrescrevê-lo? (s/n): ", email)
		var response string
		fmt.Scanln(&response)

		if response != "s" && response != "S" {
			fmt.Println("Operação cancelada pelo usuário.")
			os.Exit(0)
		}

		db.DB().Delete(&existingUser)
	} else if result.Error != gorm.ErrRecordNotFound {
		fmt.Printf("Erro ao verificar usuário existente: %v\n", result.Error)
		os.Exit(1)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Erro ao processar senha: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	adminUser := model.UserEntity{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		CPF:          cpf,
		FirstName:    firstName,
		LastName:     lastName,
		Password:     string(hashedPassword),
		Privilege:    string(model.PrivilegeAdministrator),
		IssuedAt:     now,
		LastAccessAt: now,
	}

	if err := db.DB().Create(&adminUser).Error; err != nil {
		fmt.Printf("Erro ao salvar usuário no banco de dados: %v\n", err)
		os.Exit(1)
	}

	// Mostrar apenas informações relevantes e não sensíveis
	fmt.Println("\n╭────────────────────────────────────────────────╮")
	if isUpdate {
		fmt.Println("│   Administrador atualizado com sucesso         │")
	} else {
		fmt.Println("│   Administrador criado com sucesso             │")
	}
	fmt.Println("├────────────────────────────────────────────────┤")
	fmt.Printf("│ ID: %-42s │\n", adminUser.ID)
	fmt.Printf("│ Email: %-39s │\n", email)
	fmt.Printf("│ Username: %-36s │\n", username)
	fmt.Printf("│ Privilégio: %-34s │\n", adminUser.Privilege)
	fmt.Println("╰────────────────────────────────────────────────╯")
	fmt.Println("\nUse este ID para gerar um token de acesso com:")
	fmt.Printf("go run cmd/tools/generatetoken/main.go -user_id=%s\n\n", adminUser.ID)
}
