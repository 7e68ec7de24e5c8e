package course

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/policy"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/infra/metrics"
	"github.com/diillson/course-platform-go/pkg/cache"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"go.uber.org/zap"
)

const (
	coursesCacheKey = "courses"
	cacheTTL        = 5 * time.Minute
)

// CreateCourseRequest contém os dados de criação de um curso
type CreateCourseRequest struct {
	Name  string
	Photo string
	Price float64
}

// UpdateCourseRequest contém os campos de atualização parcial de um curso
type UpdateCourseRequest struct {
	Name  string
	Photo string
	Price float64
}

// Service implementa os casos de uso de cursos
type Service struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	resolver    *identity.Resolver
	cache       cache.Cache
	metrics     *metrics.APIMetrics
	logger      *zap.Logger
}

// NewService cria um novo serviço de cursos
func NewService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	resolver *identity.Resolver,
	cacheProvider cache.Cache,
	apiMetrics *metrics.APIMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		resolver:    resolver,
		cache:       cacheProvider,
		metrics:     apiMetrics,
		logger:      logger,
	}
}

// CreateCourse cria um curso cujo dono é o administrador autenticado
func (s *Service) CreateCourse(ctx context.Context, rawToken string, req CreateCourseRequest) (*model.Course, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return nil, err
	}

	sameName, err := s.courses.GetCourseByName(ctx, req.Name)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if sameName != nil {
		return nil, apierrors.Conflict(fmt.Sprintf("Curso com nome %q já existe", req.Name), nil)
	}

	course, err := s.courses.CreateCourse(ctx, &model.Course{
		Name:              req.Name,
		Photo:             req.Photo,
		Price:             req.Price,
		OwnerID:           user.ID,
		Rating:            0,
		NumberOfRatings:   0,
		EnrollmentsNumber: 0,
	})
	if err != nil {
		s.logger.Error("erro ao criar curso", zap.String("name", req.Name), zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.invalidateCache(ctx)

	s.logger.Info("curso criado",
		zap.String("id", course.ID),
		zap.String("owner_id", user.ID))

	return course, nil
}

// GetCourseByID obtém um curso pelo id; endpoint público
func (s *Service) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, apierrors.NotFound("Curso", nil)
	}

	return course, nil
}

// GetAllCourses retorna todos os cursos, com cache de curta duração
func (s *Service) GetAllCourses(ctx context.Context) ([]*model.Course, error) {
	var cached []*model.Course
	found, err := s.cache.Get(ctx, coursesCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	courses, err := s.courses.GetAllCourses(ctx)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	if err := s.cache.Set(ctx, coursesCacheKey, courses, cacheTTL); err != nil {
		s.logger.Warn("falha ao atualizar cache de cursos", zap.Error(err))
	}

	return courses, nil
}

// GetCoursesByOwner retorna os cursos do administrador autenticado
func (s *Service) GetCoursesByOwner(ctx context.Context, rawToken string) ([]*model.Course, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return nil, err
	}

	courses, err := s.courses.GetAllCoursesByOwnerID(ctx, user.ID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return courses, nil
}

// UpdateCourse aplica atualização parcial em um curso do administrador
// autenticado. O nome só muda se o novo nome ainda não estiver em uso;
// campos vazios não alteram nada.
func (s *Service) UpdateCourse(ctx context.Context, rawToken, courseID string, req UpdateCourseRequest) (*model.Course, error) {
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

	if req.Name != "" {
		existing, err := s.courses.GetCourseByName(ctx, req.Name)
		if err != nil {
			return nil, apierrors.InternalServer("", err)
		}
		if existing == nil {
			course.Name = req.Name
		}
	}

	if req.Photo != "" {
		course.Photo = req.Photo
	}

	if req.Price != 0 {
		course.Price = req.Price
	}

	updated, err := s.courses.ReplaceCourseByID(ctx, course.ID, course)
	if err != nil {
		s.logger.Error("erro ao atualizar curso", zap.String("id", course.ID), zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.invalidateCache(ctx)

	return updated, nil
}

// RateCourse registra a avaliação de um estudante matriculado. Cada
// matrícula avalia no máximo uma vez: o flag hasRatedCourse transita de
// false para true exatamente uma vez e a nota entra nos agregados do curso.
func (s *Service) RateCourse(ctx context.Context, rawToken, courseID string, rating float64) (*model.Course, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeStudent); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.FindEnrollmentByStudentIDAndCourseID(ctx, user.ID, courseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if enrollment == nil {
		return nil, apierrors.BadRequest("Não há matrícula para este curso", nil)
	}

	if enrollment.HasRatedCourse {
		return nil, apierrors.Conflict("Curso já foi avaliado", nil)
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, apierrors.BadRequest(fmt.Sprintf("Não foi possível encontrar o curso %s", courseID), nil)
	}

	course.NumberOfRatings++
	course.Rating += rating

	if _, err := s.enrollments.SetHasRatedCourseByID(ctx, enrollment.ID); err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	if _, err := s.courses.ReplaceCourseByID(ctx, course.ID, course); err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	if s.metrics != nil {
		s.metrics.CourseRated()
	}

	s.invalidateCache(ctx)

	return course, nil
}

// DeleteCourse remove um curso do administrador autenticado
func (s *Service) DeleteCourse(ctx context.Context, rawToken, courseID string) error {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeAdministrator); err != nil {
		return err
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return apierrors.InternalServer("", err)
	}
	if course == nil {
		return apierrors.NotFound("Curso", nil)
	}

	if err := policy.RequireCourseOwner(user, course); err != nil {
		return err
	}

	if err := s.courses.DeleteCourseByID(ctx, course.ID); err != nil {
		s.logger.Error("erro ao remover curso", zap.String("id", course.ID), zap.Error(err))
		return apierrors.InternalServer("", err)
	}

	s.invalidateCache(ctx)

	s.logger.Info("curso removido", zap.String("id", course.ID))
	return nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, coursesCacheKey); err != nil {
		s.logger.Warn("falha ao invalidar cache de cursos", zap.Error(err))
	}
}
