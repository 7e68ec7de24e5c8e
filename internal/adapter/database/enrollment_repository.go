package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/google/uuid"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnrollmentRepository implementa repository.EnrollmentRepository sobre GORM
type EnrollmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewEnrollmentRepository cria um novo repositório de matrículas
func NewEnrollmentRepository(db *gorm.DB, logger *zap.Logger) repository.EnrollmentRepository {
	tracer := otel.GetTracerProvider().Tracer("course-platform.repository.enrollment")

	return &EnrollmentRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// CreateEnrollment persiste uma nova matrícula. A restrição de unicidade
// (estudante, curso) do banco é traduzida em repository.ErrEnrollmentExists,
// cobrindo requisições concorrentes que passem pela checagem da aplicação.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) (*model.Enrollment, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"EnrollmentRepository.CreateEnrollment",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "enrollments"),
		),
	)
	defer span.End()

	entity := enrollment.ToEntity()
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			span.AddEvent("enrollment.duplicate")
			span.SetStatus(codes.Ok, "")
			return nil, repository.ErrEnrollmentExists
		}
		r.logger.Error("falha ao criar matrícula",
			zap.String("studentID", enrollment.StudentID),
			zap.String("courseID", enrollment.CourseID),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao criar matrícula: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// FindEnrollmentsByStudentID retorna todas as matrículas de um estudante
func (r *EnrollmentRepository) FindEnrollmentsByStudentID(ctx context.Context, studentID string) ([]*model.Enrollment, error) {
	ctx, span := r.tracer.Start(ctx, "EnrollmentRepository.FindEnrollmentsByStudentID")
	defer span.End()

	var entities []model.EnrollmentEntity
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar matrículas do estudante",
			zap.String("studentID", studentID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar matrículas do estudante: %w", err)
	}

	enrollments := make([]*model.Enrollment, 0, len(entities))
	for i := range entities {
		enrollments = append(enrollments, entities[i].ToModel())
	}

	span.SetAttributes(attribute.Int("enrollments.count", len(enrollments)))
	span.SetStatus(codes.Ok, "")
	return enrollments, nil
}

// FindEnrollmentByStudentIDAndCourseID obtém a matrícula de um estudante em um curso
func (r *EnrollmentRepository) FindEnrollmentByStudentIDAndCourseID(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	ctx, span := r.tracer.Start(ctx, "EnrollmentRepository.FindEnrollmentByStudentIDAndCourseID")
	defer span.End()

	var entity model.EnrollmentEntity
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "")
			return nil, nil
		}
		r.logger.Error("falha ao buscar matrícula",
			zap.String("studentID", studentID),
			zap.String("courseID", courseID),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar matrícula: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// ExistsEnrollmentForStudentAtCourse informa se o estudante está matriculado no curso
func (r *EnrollmentRepository) ExistsEnrollmentForStudentAtCourse(ctx context.Context, studentID, courseID string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "EnrollmentRepository.ExistsEnrollmentForStudentAtCourse")
	defer span.End()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.EnrollmentEntity{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		span.SetStatus(codes.Error, "database error")
		return false, fmt.Errorf("falha ao verificar matrícula: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return count > 0, nil
}

// SetHasRatedCourseByID marca a matrícula como já tendo avaliado o curso
func (r *EnrollmentRepository) SetHasRatedCourseByID(ctx context.Context, enrollmentID string) (*model.Enrollment, error) {
	ctx, span := r.tracer.Start(ctx, "EnrollmentRepository.SetHasRatedCourseByID")
	defer span.End()

	result := r.db.WithContext(ctx).
		Model(&model.EnrollmentEntity{}).
		Where("id = ?", enrollmentID).
		Update("has_rated_course", true)
	if result.Error != nil {
		r.logger.Error("falha ao marcar avaliação na matrícula",
			zap.String("enrollmentID", enrollmentID), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao marcar avaliação na matrícula: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		span.SetStatus(codes.Ok, "")
		return nil, nil
	}

	var entity model.EnrollmentEntity
	if err := r.db.WithContext(ctx).Where("id = ?", enrollmentID).First(&entity).Error; err != nil {
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar matrícula atualizada: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}
