package repository

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
)

// ModuleRepository define a interface para armazenamento de módulos
type ModuleRepository interface {
	// CreateModule persiste um novo módulo
	CreateModule(ctx context.Context, module *model.Module) (*model.Module, error)

	// GetModuleByID obtém um módulo pelo id
	GetModuleByID(ctx context.Context, id string) (*model.Module, error)

	// GetModuleByCourseIDAndName obtém um módulo pelo par (curso, nome)
	GetModuleByCourseIDAndName(ctx context.Context, courseID, name string) (*model.Module, error)

	// GetModulesByCourseID retorna todos os módulos de um curso
	GetModulesByCourseID(ctx context.Context, courseID string) ([]*model.Module, error)

	// ReplaceModuleByID substitui integralmente os dados de um módulo
	ReplaceModuleByID(ctx context.Context, id string, module *model.Module) error
}
