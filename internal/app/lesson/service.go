package lesson

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

// CreateLessonRequest contém os dados de criação de uma aula
type CreateLessonRequest struct {
	Name        string
	Description string
	URL         string
}

// Service implementa os casos de uso de aulas
type Service struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	modules     repository.ModuleRepository
	lessons     repository.LessonRepository
	enrollments repository.EnrollmentRepository
	resolver    *identity.Resolver
	logger      *zap.Logger
}

// NewService cria um novo serviço de aulas
func NewService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	modules repository.ModuleRepository,
	lessons repository.LessonRepository,
	enrollments repository.EnrollmentRepository,
	resolver *identity.Resolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:       users,
		courses:     courses,
		modules:     modules,
		lessons:     lessons,
		enrollments: enrollments,
		resolver:    resolver,
		logger:      logger,
	}
}

// loadModuleAndCourse carrega o módulo e o curso dono dele
func (s *Service) loadModuleAndCourse(ctx context.Context, moduleID string) (*model.Module, *model.Course, error) {
	mod, err := s.modules.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, nil, apierrors.InternalServer("", err)
	}
	if mod == nil {
		return nil, nil, apierrors.NotFound("Módulo", nil)
	}

	course, err := s.courses.GetCourseByID(ctx, mod.CourseID)
	if err != nil {
		return nil, nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, nil, apierrors.NotFound("Curso", nil)
	}

	return mod, course, nil
}

// CreateLesson cria uma aula em um módulo de um curso do administrador
// autenticado. O nome é único dentro do módulo.
func (s *Service) CreateLesson(ctx context.Context, rawToken, moduleID string, req CreateLessonRequest) (*model.Lesson, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return nil, err
	}

	mod, course, err := s.loadModuleAndCourse(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	if err := policy.RequireCourseOwner(user, course); err != nil {
		return nil, err
	}

	sameName, err := s.lessons.GetLessonByModuleIDAndName(ctx, mod.ID, req.Name)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if sameName != nil {
		return nil, apierrors.Conflict(fmt.Sprintf("Aula com nome %q já existe neste módulo", req.Name), nil)
	}

	created, err := s.lessons.CreateLesson(ctx, &model.Lesson{
		ModuleID:    mod.ID,
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		s.logger.Error("erro ao criar aula",
			zap.String("module_id", mod.ID),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.logger.Info("aula criada",
		zap.String("id", created.ID),
		zap.String("module_id", mod.ID))

	return created, nil
}

// GetLessonByID retorna uma aula sob a regra de visibilidade do curso
func (s *Service) GetLessonByID(ctx context.Context, rawToken, lessonID string) (*model.Lesson, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	l, err := s.lessons.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if l == nil {
		return nil, apierrors.NotFound("Aula", nil)
	}

	_, course, err := s.loadModuleAndCourse(ctx, l.ModuleID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanAccessCourseContent(ctx, user, course, s.enrollments); err != nil {
		return nil, err
	}

	return l, nil
}

// GetAllLessonsByModuleID retorna as aulas de um módulo sob a regra de
// visibilidade do curso
func (s *Service) GetAllLessonsByModuleID(ctx context.Context, rawToken, moduleID string) ([]*model.Lesson, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	mod, course, err := s.loadModuleAndCourse(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanAccessCourseContent(ctx, user, course, s.enrollments); err != nil {
		return nil, err
	}

	lessons, err := s.lessons.GetAllLessonsByModuleID(ctx, mod.ID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return lessons, nil
}
