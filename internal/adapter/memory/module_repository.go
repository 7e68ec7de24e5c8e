package memory

import (
	"context"
	"sync"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/google/uuid"
)

// ModuleRepository implementa repository.ModuleRepository em memória
type ModuleRepository struct {
	mu      sync.RWMutex
	modules map[string]*model.Module
}

// NewModuleRepository cria um repositório de módulos em memória
func NewModuleRepository() repository.ModuleRepository {
	return &ModuleRepository{modules: make(map[string]*model.Module)}
}

func (r *ModuleRepository) CreateModule(ctx context.Context, module *model.Module) (*model.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *module
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.modules[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *ModuleRepository) GetModuleByID(ctx context.Context, id string) (*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	module, ok := r.modules[id]
	if !ok {
		return nil, nil
	}
	result := *module
	return &result, nil
}

func (r *ModuleRepository) GetModuleByCourseIDAndName(ctx context.Context, courseID, name string) (*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.modules {
		if module.CourseID == courseID && module.Name == name {
			result := *module
			return &result, nil
		}
	}
	return nil, nil
}

func (r *ModuleRepository) GetModulesByCourseID(ctx context.Context, courseID string) ([]*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var modules []*model.Module
	for _, module := range r.modules {
		if module.CourseID == courseID {
			result := *module
			modules = append(modules, &result)
		}
	}
	return modules, nil
}

func (r *ModuleRepository) ReplaceModuleByID(ctx context.Context, id string, module *model.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[id]; !ok {
		return nil
	}

	stored := *module
	stored.ID = id
	r.modules[id] = &stored
	return nil
}
