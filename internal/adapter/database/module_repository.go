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

// ModuleRepository implementa repository.ModuleRepository sobre GORM
type ModuleRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewModuleRepository cria um novo repositório de módulos
func NewModuleRepository(db *gorm.DB, logger *zap.Logger) repository.ModuleRepository {
	return &ModuleRepository{db: db, logger: logger}
}

// CreateModule persiste um novo módulo
func (r *ModuleRepository) CreateModule(ctx context.Context, module *model.Module) (*model.Module, error) {
	entity := module.ToEntity()
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar módulo", zap.String("name", module.Name), zap.Error(err))
		return nil, fmt.Errorf("falha ao criar módulo: %w", err)
	}

	return entity.ToModel(), nil
}

// GetModuleByID obtém um módulo pelo id
func (r *ModuleRepository) GetModuleByID(ctx context.Context, id string) (*model.Module, error) {
	var entity model.ModuleEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("falha ao buscar módulo", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar módulo: %w", err)
	}
	return entity.ToModel(), nil
}

// GetModuleByCourseIDAndName obtém um módulo pelo par (curso, nome)
func (r *ModuleRepository) GetModuleByCourseIDAndName(ctx context.Context, courseID, name string) (*model.Module, error) {
	var entity model.ModuleEntity
	if err := r.db.WithContext(ctx).
		Where("course_id = ? AND name = ?", courseID, name).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("falha ao buscar módulo por nome",
			zap.String("courseID", courseID), zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar módulo por nome: %w", err)
	}
	return entity.ToModel(), nil
}

// GetModulesByCourseID retorna todos os módulos de um curso
func (r *ModuleRepository) GetModulesByCourseID(ctx context.Context, courseID string) ([]*model.Module, error) {
	var entities []model.ModuleEntity
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar módulos do curso",
			zap.String("courseID", courseID), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar módulos do curso: %w", err)
	}

	modules := make([]*model.Module, 0, len(entities))
	for i := range entities {
		modules = append(modules, entities[i].ToModel())
	}
	return modules, nil
}

// ReplaceModuleByID substitui integralmente os dados de um módulo
func (r *ModuleRepository) ReplaceModuleByID(ctx context.Context, id string, module *model.Module) error {
	entity := module.ToEntity()
	entity.ID = id

	if err := r.db.WithContext(ctx).
		Model(&model.ModuleEntity{}).
		Where("id = ?", id).
		Select("course_id", "name", "description").
		Updates(entity).Error; err != nil {
		r.logger.Error("falha ao atualizar módulo", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("falha ao atualizar módulo: %w", err)
	}
	return nil
}
