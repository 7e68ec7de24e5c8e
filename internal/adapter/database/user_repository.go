package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/google/uuid"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository implementa repository.UserRepository sobre GORM
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository cria um novo repositório de usuários
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// CreateUser persiste um novo usuário
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	entity := user.ToEntity()
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar usuário", zap.Error(err))
		return nil, fmt.Errorf("falha ao criar usuário: %w", err)
	}

	return entity.ToModel(), nil
}

// DeleteUser remove um usuário pelo id
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&model.UserEntity{}, "id = ?", id).Error; err != nil {
		r.logger.Error("falha ao remover usuário", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("falha ao remover usuário: %w", err)
	}
	return nil
}

// ExistsAdmin informa se já existe ao menos um administrador
func (r *UserRepository) ExistsAdmin(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserEntity{}).
		Where("privilege = ?", string(model.PrivilegeAdministrator)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("falha ao contar administradores: %w", err)
	}
	return count > 0, nil
}

// GetUserByID obtém um usuário pelo id
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUserBy(ctx, "id = ?", id)
}

// GetUserByUsername obtém um usuário pelo username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUserBy(ctx, "username = ?", username)
}

// GetUserByEmail obtém um usuário pelo e-mail
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUserBy(ctx, "email = ?", email)
}

// GetUserByCPF obtém um usuário pelo CPF
func (r *UserRepository) GetUserByCPF(ctx context.Context, cpf string) (*model.User, error) {
	return r.getUserBy(ctx, "cpf = ?", cpf)
}

func (r *UserRepository) getUserBy(ctx context.Context, query string, arg string) (*model.User, error) {
	var entity model.UserEntity
	if err := r.db.WithContext(ctx).Where(query, arg).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("falha ao buscar usuário", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return entity.ToModel(), nil
}

// ReplaceUserByID substitui integralmente os dados de um usuário
func (r *UserRepository) ReplaceUserByID(ctx context.Context, id string, user *model.User) (*model.User, error) {
	entity := user.ToEntity()
	entity.ID = id

	result := r.db.WithContext(ctx).
		Model(&model.UserEntity{}).
		Where("id = ?", id).
		Select("email", "username", "cpf", "first_name", "last_name", "password", "privilege", "last_access_at").
		Updates(entity)
	if result.Error != nil {
		r.logger.Error("falha ao atualizar usuário", zap.String("id", id), zap.Error(result.Error))
		return nil, fmt.Errorf("falha ao atualizar usuário: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.getUserBy(ctx, "id = ?", id)
}
