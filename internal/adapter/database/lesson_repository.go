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

// LessonRepository implementa repository.LessonRepository sobre GORM
type LessonRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLessonRepository cria um novo repositório de aulas
func NewLessonRepository(db *gorm.DB, logger *zap.Logger) repository.LessonRepository {
	return &LessonRepository{db: db, logger: logger}
}

// CreateLesson persiste uma nova aula
func (r *LessonRepository) CreateLesson(ctx context.Context, lesson *model.Lesson) (*model.Lesson, error) {
	entity := lesson.ToEntity()
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar aula", zap.String("name", lesson.Name), zap.Error(err))
		return nil, fmt.Errorf("falha ao criar aula: %w", err)
	}

	return entity.ToModel(), nil
}

// GetLessonByID obtém uma aula pelo id
func (r *LessonRepository) GetLessonByID(ctx context.Context, id string) (*model.Lesson, error) {
	var entity model.LessonEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("falha ao buscar aula", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar aula: %w", err)
	}
	return entity.ToModel(), nil
}

// GetLessonByModuleIDAndName obtém uma aula pelo par (módulo, nome)
func (r *LessonRepository) GetLessonByModuleIDAndName(ctx context.Context, moduleID, name string) (*model.Lesson, error) {
	var entity model.LessonEntity
	if err := r.db.WithContext(ctx).
		Where("module_id = ? AND name = ?", moduleID, name).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("falha ao buscar aula por nome",
			zap.String("moduleID", moduleID), zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar aula por nome: %w", err)
	}
	return entity.ToModel(), nil
}

// GetAllLessonsByModuleID retorna todas as aulas de um módulo
func (r *LessonRepository) GetAllLessonsByModuleID(ctx context.Context, moduleID string) ([]*model.Lesson, error) {
	var entities []model.LessonEntity
	if err := r.db.WithContext(ctx).Where("module_id = ?", moduleID).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar aulas do módulo",
			zap.String("moduleID", moduleID), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar aulas do módulo: %w", err)
	}

	lessons := make([]*model.Lesson, 0, len(entities))
	for i := range entities {
		lessons = append(lessons, entities[i].ToModel())
	}
	return lessons, nil
}
