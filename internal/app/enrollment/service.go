package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/policy"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/infra/metrics"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"go.uber.org/zap"
)

// Service implementa os casos de uso de matrículas
type Service struct {
	users       repository.UserRepository
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	resolver    *identity.Resolver
	metrics     *metrics.APIMetrics
	logger      *zap.Logger
}

// NewService cria um novo serviço de matrículas
func NewService(
	users repository.UserRepository,
	enrollments repository.EnrollmentRepository,
	courses repository.CourseRepository,
	resolver *identity.Resolver,
	apiMetrics *metrics.APIMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:       users,
		enrollments: enrollments,
		courses:     courses,
		resolver:    resolver,
		metrics:     apiMetrics,
		logger:      logger,
	}
}

// CreateEnrollment matricula o estudante autenticado em um curso. Duas
// requisições concorrentes podem passar juntas pela checagem de
// existência; a restrição de unicidade (estudante, curso) no repositório
// garante que só uma matrícula é persistida, e a segunda vira Conflict.
func (s *Service) CreateEnrollment(ctx context.Context, rawToken, courseID string) (*model.Enrollment, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeStudent); err != nil {
		return nil, err
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if course == nil {
		return nil, apierrors.NotFound("Curso", nil)
	}

	alreadyEnrolled, err := s.enrollments.ExistsEnrollmentForStudentAtCourse(ctx, user.ID, course.ID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if alreadyEnrolled {
		return nil, apierrors.Conflict(fmt.Sprintf("Já existe matrícula no curso %s", course.Name), nil)
	}

	enrollment, err := s.enrollments.CreateEnrollment(ctx, &model.Enrollment{
		StudentID: user.ID,
		CourseID:  course.ID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentExists) {
			return nil, apierrors.Conflict(fmt.Sprintf("Já existe matrícula no curso %s", course.Name), err)
		}
		s.logger.Error("erro ao criar matrícula",
			zap.String("student_id", user.ID),
			zap.String("course_id", course.ID),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	course.EnrollmentsNumber++
	if _, err := s.courses.ReplaceCourseByID(ctx, course.ID, course); err != nil {
		s.logger.Warn("falha ao atualizar contador de matrículas do curso",
			zap.String("course_id", course.ID),
			zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.EnrollmentCreated()
	}

	s.logger.Info("matrícula criada",
		zap.String("id", enrollment.ID),
		zap.String("student_id", user.ID),
		zap.String("course_id", course.ID))

	return enrollment, nil
}

// FindEnrollmentsByStudent lista as matrículas do estudante autenticado
func (s *Service) FindEnrollmentsByStudent(ctx context.Context, rawToken string) ([]*model.Enrollment, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := policy.RequirePrivilege(user, model.PrivilegeStudent); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.FindEnrollmentsByStudentID(ctx, user.ID)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return enrollments, nil
}
