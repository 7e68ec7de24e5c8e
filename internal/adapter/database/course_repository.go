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

// CourseRepository implementa repository.CourseRepository sobre GORM
type CourseRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewCourseRepository cria um novo repositório de cursos
func NewCourseRepository(db *gorm.DB, logger *zap.Logger) repository.CourseRepository {
	tracer := otel.GetTracerProvider().Tracer("course-platform.repository.course")

	return &CourseRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// CreateCourse persiste um novo curso
func (r *CourseRepository) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"CourseRepository.CreateCourse",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "courses"),
		),
	)
	defer span.End()

	entity := course.ToEntity()
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar curso", zap.String("name", course.Name), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao criar curso: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// DeleteCourseByID remove um curso pelo id
func (r *CourseRepository) DeleteCourseByID(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "CourseRepository.DeleteCourseByID")
	defer span.End()

	if err := r.db.WithContext(ctx).Delete(&model.CourseEntity{}, "id = ?", id).Error; err != nil {
		r.logger.Error("falha ao remover curso", zap.String("id", id), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao remover curso: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetCourseByID obtém um curso pelo id
func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*model.Course, error) {
	ctx, span := r.tracer.Start(ctx, "CourseRepository.GetCourseByID")
	defer span.End()

	return r.getCourseBy(ctx, span, "id = ?", id)
}

// GetCourseByName obtém um curso pelo nome
func (r *CourseRepository) GetCourseByName(ctx context.Context, name string) (*model.Course, error) {
	ctx, span := r.tracer.Start(ctx, "CourseRepository.GetCourseByName")
	defer span.End()

	return r.getCourseBy(ctx, span, "name = ?", name)
}

func (r *CourseRepository) getCourseBy(ctx context.Context, span trace.Span, query string, arg string) (*model.Course, error) {
	var entity model.CourseEntity
	if err := r.db.WithContext(ctx).Where(query, arg).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "")
			return nil, nil
		}
		r.logger.Error("falha ao buscar curso", zap.String("query", query), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar curso: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// GetAllCourses retorna todos os cursos
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*model.Course, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"CourseRepository.GetAllCourses",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "courses"),
		),
	)
	defer span.End()

	var entities []model.CourseEntity
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar cursos", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar cursos: %w", err)
	}

	courses := make([]*model.Course, 0, len(entities))
	for i := range entities {
		courses = append(courses, entities[i].ToModel())
	}

	span.SetAttributes(attribute.Int("courses.count", len(courses)))
	span.SetStatus(codes.Ok, "")
	return courses, nil
}

// GetAllCoursesByOwnerID retorna todos os cursos de um administrador
func (r *CourseRepository) GetAllCoursesByOwnerID(ctx context.Context, ownerID string) ([]*model.Course, error) {
	ctx, span := r.tracer.Start(ctx, "CourseRepository.GetAllCoursesByOwnerID")
	defer span.End()

	var entities []model.CourseEntity
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar cursos do administrador",
			zap.String("ownerID", ownerID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar cursos do administrador: %w", err)
	}

	courses := make([]*model.Course, 0, len(entities))
	for i := range entities {
		courses = append(courses, entities[i].ToModel())
	}

	span.SetStatus(codes.Ok, "")
	return courses, nil
}

// ReplaceCourseByID substitui integralmente os dados de um curso
func (r *CourseRepository) ReplaceCourseByID(ctx context.Context, id string, course *model.Course) (*model.Course, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"CourseRepository.ReplaceCourseByID",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "courses"),
		),
	)
	defer span.End()

	entity := course.ToEntity()
	entity.ID = id

	result := r.db.WithContext(ctx).
		Model(&model.CourseEntity{}).
		Where("id = ?", id).
		Select("name", "photo", "price", "owner_id", "rating", "number_of_ratings", "enrollments_number").
		Updates(entity)
	if result.Error != nil {
		r.logger.Error("falha ao atualizar curso", zap.String("id", id), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao atualizar curso: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		span.SetStatus(codes.Ok, "")
		return nil, nil
	}

	return r.getCourseBy(ctx, span, "id = ?", id)
}
