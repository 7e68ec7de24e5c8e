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

// TestRepository implementa repository.TestRepository sobre GORM
type TestRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTestRepository cria um novo repositório de testes
func NewTestRepository(db *gorm.DB, logger *zap.Logger) repository.TestRepository {
	return &TestRepository{db: db, logger: logger}
}

// CreateTest persiste um novo teste
func (r *TestRepository) CreateTest(ctx context.Context, test *model.Test) (*model.Test, error) {
	entity, err := test.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar alternativas: %w", err)
	}
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar teste", zap.String("moduleID", test.ModuleID), zap.Error(err))
		return nil, fmt.Errorf("falha ao criar teste: %w", err)
	}

	return entity.ToModel()
}

// GetTestByID obtém um teste pelo id
func (r *TestRepository) GetTestByID(ctx context.Context, id string) (*model.Test, error) {
	var entity model.TestEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("falha ao buscar teste", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar teste: %w", err)
	}
	return entity.ToModel()
}

// GetAllTestsByModuleID retorna todos os testes de um módulo
func (r *TestRepository) GetAllTestsByModuleID(ctx context.Context, moduleID string) ([]*model.Test, error) {
	var entities []model.TestEntity
	if err := r.db.WithContext(ctx).Where("module_id = ?", moduleID).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar testes do módulo",
			zap.String("moduleID", moduleID), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar testes do módulo: %w", err)
	}
	return r.toModels(entities)
}

// GetAllTestsByQuestion retorna todos os testes com a mesma pergunta
func (r *TestRepository) GetAllTestsByQuestion(ctx context.Context, question string) ([]*model.Test, error) {
	var entities []model.TestEntity
	if err := r.db.WithContext(ctx).Where("question = ?", question).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar testes por pergunta", zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar testes por pergunta: %w", err)
	}
	return r.toModels(entities)
}

func (r *TestRepository) toModels(entities []model.TestEntity) ([]*model.Test, error) {
	tests := make([]*model.Test, 0, len(entities))
	for i := range entities {
		test, err := entities[i].ToModel()
		if err != nil {
			// Entidade com JSON corrompido não derruba a listagem inteira
			r.logger.Error("falha ao desserializar alternativas do teste",
				zap.String("id", entities[i].ID), zap.Error(err))
			continue
		}
		tests = append(tests, test)
	}
	return tests, nil
}

// CreateAnswer persiste a resposta de um usuário a um teste
func (r *TestRepository) CreateAnswer(ctx context.Context, answer *model.Answer) (*model.Answer, error) {
	entity := answer.ToEntity()
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar resposta",
			zap.String("testID", answer.TestID),
			zap.String("userID", answer.UserID),
			zap.Error(err))
		return nil, fmt.Errorf("falha ao criar resposta: %w", err)
	}

	return entity.ToModel(), nil
}

// GetAllAnswersByUserAndTestID retorna as respostas de um usuário a um teste
func (r *TestRepository) GetAllAnswersByUserAndTestID(ctx context.Context, userID, testID string) ([]*model.Answer, error) {
	var entities []model.AnswerEntity
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar respostas",
			zap.String("userID", userID),
			zap.String("testID", testID),
			zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar respostas: %w", err)
	}

	answers := make([]*model.Answer, 0, len(entities))
	for i := range entities {
		answers = append(answers, entities[i].ToModel())
	}
	return answers, nil
}
