package memory

import (
	"context"
	"sync"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/google/uuid"
)

// TestRepository implementa repository.TestRepository em memória
type TestRepository struct {
	mu      sync.RWMutex
	tests   map[string]*model.Test
	answers map[string]*model.Answer
}

// NewTestRepository cria um repositório de testes em memória
func NewTestRepository() repository.TestRepository {
	return &TestRepository{
		tests:   make(map[string]*model.Test),
		answers: make(map[string]*model.Answer),
	}
}

func (r *TestRepository) CreateTest(ctx context.Context, test *model.Test) (*model.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *test
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Answers = append([]string(nil), test.Answers...)
	r.tests[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *TestRepository) GetTestByID(ctx context.Context, id string) (*model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	test, ok := r.tests[id]
	if !ok {
		return nil, nil
	}
	result := *test
	return &result, nil
}

func (r *TestRepository) GetAllTestsByModuleID(ctx context.Context, moduleID string) ([]*model.Test, error) {
	return r.filterTests(func(t *model.Test) bool { return t.ModuleID == moduleID })
}

func (r *TestRepository) GetAllTestsByQuestion(ctx context.Context, question string) ([]*model.Test, error) {
	return r.filterTests(func(t *model.Test) bool { return t.Question == question })
}

// filterTests retorna sempre um slice não-nil, como os repositórios gorm
func (r *TestRepository) filterTests(match func(*model.Test) bool) ([]*model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tests := make([]*model.Test, 0)
	for _, test := range r.tests {
		if match(test) {
			result := *test
			tests = append(tests, &result)
		}
	}
	return tests, nil
}

func (r *TestRepository) CreateAnswer(ctx context.Context, answer *model.Answer) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *answer
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.answers[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *TestRepository) GetAllAnswersByUserAndTestID(ctx context.Context, userID, testID string) ([]*model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	answers := make([]*model.Answer, 0)
	for _, answer := range r.answers {
		if answer.UserID == userID && answer.TestID == testID {
			result := *answer
			answers = append(answers, &result)
		}
	}
	return answers, nil
}
