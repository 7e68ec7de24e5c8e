package module

import (
	"context"
	"fmt"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/policy"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"go.uber.org/zap"
)

// CreateModuleRequest contém os dados de criação de um módulo
type CreateModuleRequest struct {
	Name        string
	Description string
}

// UpdateModuleRequest contém os campos de atualização parcial de um módulo
type UpdateModuleRequest struct {
	Name        string
	Description string
}

// Service implementa os casos de uso de módulos
type Service struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	modules     repository.ModuleRepository
	enrollments repository.EnrollmentRepository
	resolver    *identity.Resolver
	logger      *zap.Logger
}

// NewService cria um novo serviço de módulos
func NewService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	modules repository.ModuleRepository,
	enrollments repository.EnrollmentRepository,
	resolver *identity.Resolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:       users,
		courses:     courses,
		modules:     modules,
		enrollments: enrollments,
		resolver:    resolver,
		logger:      logger,
	}
}

// CreateModule cria um módulo em um curso do administrador autenticado.
// O nome do módulo é único dentro do curso, não globalmente.
func (s *Service) CreateModule(ctx context.Context, rawToken, courseID string, req CreateModuleRequest) (*model.Module, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return nil, err
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, apierrors.NotFound("Curso", nil)
	}

	if err := policy.RequireCourseOwner(user, course); err != nil {
		return nil, err
	}

	sameName, err := s.modules.GetModuleByCourseIDAndName(ctx, course.ID, req.Name)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if sameName != nil {
		return nil, apierrors.Conflict(fmt.Sprintf("Módulo com nome %q já existe neste curso", req.Name), nil)
	}

	mod, err := s.modules.CreateModule(ctx, &model.Module{
		CourseID:    course.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.logger.Error("erro ao criar módulo",
			zap.String("course_id", course.ID),
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.logger.Info("módulo criado",
		zap.String("id", mod.ID),
		zap.String("course_id", course.ID))

	return mod, nil
}

// GetModuleByID retorna um módulo se o usuário autenticado for o dono do
// curso ou estiver matriculado nele
func (s *Service) GetModuleByID(ctx context.Context, rawToken, moduleID string) (*model.Module, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	mod, err := s.modules.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if mod == nil {
		return nil, apierrors.NotFound("Módulo", nil)
	}

	course, err := s.courses.GetCourseByID(ctx, mod.CourseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, apierrors.NotFound("Curso", nil)
	}

	if err := policy.CanAccessCourseContent(ctx, user, course, s.enrollments); err != nil {
		return nil, err
	}

	return mod, nil
}

// GetModulesByCourseID retorna os módulos de um curso, sob a mesma regra
// de visibilidade de GetModuleByID
func (s *Service) GetModulesByCourseID(ctx context.Context, rawToken, courseID string) ([]*model.Module, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, apierrors.NotFound("Curso", nil)
	}

	if err := policy.CanAccessCourseContent(ctx, user, course, s.enrollments); err != nil {
		return nil, err
	}

	modules, err := s.modules.GetModulesByCourseID(ctx, course.ID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return modules, nil
}

// UpdateModuleByID aplica atualização parcial em um módulo de um curso do
// administrador autenticado; campos vazios não alteram nada
func (s *Service) UpdateModuleByID(ctx context.Context, rawToken, moduleID string, req UpdateModuleRequest) (*model.Module, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return nil, err
	}

	mod, err := s.modules.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if mod == nil {
		return nil, apierrors.BadRequest("Não foi possível encontrar o módulo", nil)
	}

	course, err := s.courses.GetCourseByID(ctx, mod.CourseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	if err := policy.RequireCourseOwner(user, course); err != nil {
		return nil, err
	}

	if req.Name != "" {
		mod.Name = req.Name
	}

	if req.Description != "" {
		mod.Description = req.Description
	}

	if err := s.modules.ReplaceModuleByID(ctx, mod.ID, mod); err != nil {
		s.logger.Error("erro ao atualizar módulo", zap.String("id", mod.ID), zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	return mod, nil
}
