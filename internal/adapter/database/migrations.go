package database

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration representa uma migração de banco de dados aplicada
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

// MigrationManager gerencia migrações SQL versionadas.
// Arquivos seguem o formato YYYYMMDDHHMMSS_nome.sql.
type MigrationManager struct {
	db        *gorm.DB
	logger    *zap.Logger
	directory string
}

// NewMigrationManager cria um novo gerenciador de migrações
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, directory string) *MigrationManager {
	return &MigrationManager{
		db:        db,
		logger:    logger,
		directory: directory,
	}
}

// Initialize cria a tabela de migrações se não existir
func (m *MigrationManager) Initialize(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}
	return nil
}

// ApplyMigrations aplica todas as migrações pendentes, em ordem de versão,
// cada uma dentro de uma transação
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	var applied []Migration
	if err := m.db.WithContext(ctx).Order("version").Find(&applied).Error; err != nil {
		return fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}

	appliedVersions := make(map[int64]bool, len(applied))
	for _, migration := range applied {
		appliedVersions[migration.Version] = true
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})

	for _, file := range files {
		if appliedVersions[file.Version] {
			continue
		}

		m.logger.Info("Aplicando migração",
			zap.Int64("version", file.Version),
			zap.String("name", file.Name))

		content, err := os.ReadFile(file.Path)
		if err != nil {
			return fmt.Errorf("falha ao ler arquivo de migração: %w", err)
		}

		tx := m.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("falha ao iniciar transação: %w", tx.Error)
		}

		for _, sqlCmd := range splitSQLCommands(string(content)) {
			if err := tx.Exec(sqlCmd).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("falha ao executar migração %d: %w", file.Version, err)
			}
		}

		if err := tx.Create(&Migration{
			Version:   file.Version,
			Name:      file.Name,
			AppliedAt: time.Now(),
		}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("falha ao registrar migração: %w", err)
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("falha ao confirmar transação: %w", err)
		}

		m.logger.Info("Migração aplicada com sucesso",
			zap.Int64("version", file.Version),
			zap.String("name", file.Name))
	}

	return nil
}

// splitSQLCommands divide o conteúdo do arquivo em comandos individuais.
// Suficiente para DDL simples; strings contendo ponto e vírgula não são
// suportadas em arquivos de migração.
func splitSQLCommands(sql string) []string {
	var commands []string
	for _, cmd := range strings.Split(sql, ";") {
		cmd = strings.TrimSpace(cmd)
		if cmd != "" {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// MigrationFile representa um arquivo de migração no disco
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// findMigrationFiles encontra todos os arquivos de migração .sql
func (m *MigrationManager) findMigrationFiles() ([]MigrationFile, error) {
	var files []MigrationFile

	if _, err := os.Stat(m.directory); os.IsNotExist(err) {
		m.logger.Debug("Diretório de migrações não existe", zap.String("dir", m.directory))
		return nil, nil
	}

	err := filepath.Walk(m.directory, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), ".sql") {
			return nil
		}

		parts := strings.SplitN(info.Name(), "_", 2)
		if len(parts) != 2 {
			m.logger.Warn("Formato de arquivo de migração inválido", zap.String("file", info.Name()))
			return nil
		}

		version, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			m.logger.Warn("Versão de migração inválida", zap.String("file", info.Name()))
			return nil
		}

		files = append(files, MigrationFile{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			Path:    path,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// MigrationStatus descreve uma migração conhecida e se já foi aplicada
type MigrationStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Status lista as migrações do diretório em ordem de versão, marcando as
// já aplicadas. Migrações registradas no banco cujo arquivo sumiu também
// aparecem na lista.
func (m *MigrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	var applied []Migration
	if err := m.db.WithContext(ctx).Order("version").Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}

	appliedByVersion := make(map[int64]Migration, len(applied))
	for _, migration := range applied {
		appliedByVersion[migration.Version] = migration
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return nil, fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}

	var statuses []MigrationStatus
	seen := make(map[int64]bool, len(files))

	for _, file := range files {
		status := MigrationStatus{Version: file.Version, Name: file.Name}
		if record, ok := appliedByVersion[file.Version]; ok {
			status.Applied = true
			status.AppliedAt = record.AppliedAt
		}
		statuses = append(statuses, status)
		seen[file.Version] = true
	}

	for _, record := range applied {
		if !seen[record.Version] {
			statuses = append(statuses, MigrationStatus{
				Version:   record.Version,
				Name:      record.Name,
				Applied:   true,
				AppliedAt: record.AppliedAt,
			})
		}
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Version < statuses[j].Version
	})

	return statuses, nil
}

// CreateMigration cria um novo arquivo de migração vazio
func (m *MigrationManager) CreateMigration(name string) (string, error) {
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	timestamp := time.Now().Format("20060102150405")

	if err := os.MkdirAll(m.directory, 0755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório: %w", err)
	}

	path := filepath.Join(m.directory, fmt.Sprintf("%s_%s.sql", timestamp, name))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("falha ao fechar arquivo: %w", err)
	}

	return path, nil
}
