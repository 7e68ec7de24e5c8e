package repository

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
)

// TestRepository define a interface para armazenamento de testes e respostas
type TestRepository interface {
	// CreateTest persiste um novo teste
	CreateTest(ctx context.Context, test *model.Test) (*model.Test, error)

	// GetTestByID obtém um teste pelo id
	GetTestByID(ctx context.Context, id string) (*model.Test, error)

	// GetAllTestsByModuleID retorna todos os testes de um módulo
	GetAllTestsByModuleID(ctx context.Context, moduleID string) ([]*model.Test, error)

	// GetAllTestsByQuestion retorna todos os testes com a mesma pergunta
	GetAllTestsByQuestion(ctx context.Context, question string) ([]*model.Test, error)

	// CreateAnswer persiste a resposta de um usuário a um teste
	CreateAnswer(ctx context.Context, answer *model.Answer) (*model.Answer, error)

	// GetAllAnswersByUserAndTestID retorna as respostas de um usuário a um teste
	GetAllAnswersByUserAndTestID(ctx context.Context, userID, testID string) ([]*model.Answer, error)
}
