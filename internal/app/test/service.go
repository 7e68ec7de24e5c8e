package test

import (
	"context"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/policy"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"go.uber.org/zap"
)

// CreateTestRequest contém os dados de criação de um teste
type CreateTestRequest struct {
	ModuleID      string
	Question      string
	Answers       []string
	CorrectAnswer string
}

// CreateAnswerRequest contém os dados da resposta de um estudante
type CreateAnswerRequest struct {
	TestID string
	Answer string
}

// Service implementa os casos de uso de testes e respostas
type Service struct {
	users    repository.UserRepository
	tests    repository.TestRepository
	resolver *identity.Resolver
	logger   *zap.Logger
}

// NewService cria um novo serviço de testes
func NewService(users repository.UserRepository, tests repository.TestRepository, resolver *identity.Resolver, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		tests:    tests,
		resolver: resolver,
		logger:   logger,
	}
}

// CreateTest cria um teste em um módulo. A pergunta é única dentro do
// módulo, não globalmente.
func (s *Service) CreateTest(ctx context.Context, rawToken string, req CreateTestRequest) (*model.Test, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return nil, err
	}

	testsInModule, err := s.tests.GetAllTestsByModuleID(ctx, req.ModuleID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	for _, t := range testsInModule {
		if t.Question == req.Question {
			return nil, apierrors.Conflict("Teste com a mesma pergunta já existe neste módulo", nil)
		}
	}

	created, err := s.tests.CreateTest(ctx, &model.Test{
		ModuleID:      req.ModuleID,
		Question:      req.Question,
		Answers:       req.Answers,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		s.logger.Error("erro ao criar teste",
			zap.String("module_id", req.ModuleID),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.logger.Info("teste criado",
		zap.String("id", created.ID),
		zap.String("module_id", created.ModuleID))

	return created, nil
}

// GetTestByID obtém um teste pelo id
func (s *Service) GetTestByID(ctx context.Context, id string) (*model.Test, error) {
	t, err := s.tests.GetTestByID(ctx, id)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if t == nil {
		return nil, apierrors.NotFound("Teste", nil)
	}

	return t, nil
}

// GetAllTestsByModuleID retorna todos os testes de um módulo. Módulo sem
// testes resulta em lista vazia, não em erro.
func (s *Service) GetAllTestsByModuleID(ctx context.Context, moduleID string) ([]*model.Test, error) {
	tests, err := s.tests.GetAllTestsByModuleID(ctx, moduleID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return tests, nil
}

// GetAllTestsByQuestion retorna todos os testes com a mesma pergunta
func (s *Service) GetAllTestsByQuestion(ctx context.Context, question string) ([]*model.Test, error) {
	tests, err := s.tests.GetAllTestsByQuestion(ctx, question)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return tests, nil
}

// CreateAnswer registra a resposta do estudante autenticado a um teste
func (s *Service) CreateAnswer(ctx context.Context, rawToken string, req CreateAnswerRequest) (*model.Answer, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeStudent); err != nil {
		return nil, err
	}

	t, err := s.tests.GetTestByID(ctx, req.TestID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if t == nil {
		return nil, apierrors.NotFound("Teste", nil)
	}

	answer, err := s.tests.CreateAnswer(ctx, &model.Answer{
		TestID: t.ID,
		UserID: user.ID,
		Answer: req.Answer,
	})
	if err != nil {
		s.logger.Error("erro ao criar resposta",
			zap.String("test_id", req.TestID),
			zap.String("user_id", user.ID),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	return answer, nil
}

// GetAllAnswersByUserAndTestID retorna as respostas do usuário autenticado
// a um teste
func (s *Service) GetAllAnswersByUserAndTestID(ctx context.Context, rawToken, testID string) ([]*model.Answer, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	t, err := s.tests.GetTestByID(ctx, testID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if t == nil {
		return nil, apierrors.NotFound("Teste", nil)
	}

	answers, err := s.tests.GetAllAnswersByUserAndTestID(ctx, user.ID, t.ID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return answers, nil
}
