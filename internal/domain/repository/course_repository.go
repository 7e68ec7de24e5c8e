package repository

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
)

// CourseRepository define a interface para armazenamento de cursos
type CourseRepository interface {
	// CreateCourse persiste um novo curso
	CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error)

	// DeleteCourseByID remove um curso pelo id
	DeleteCourseByID(ctx context.Context, id string) error

	// GetCourseByID obtém um curso pelo id
	GetCourseByID(ctx context.Context, id string) (*model.Course, error)

	// GetCourseByName obtém um curso pelo nome
	GetCourseByName(ctx context.Context, name string) (*model.Course, error)

	// GetAllCourses retorna todos os cursos
	GetAllCourses(ctx context.Context) ([]*model.Course, error)

	// GetAllCoursesByOwnerID retorna todos os cursos de um administrador
	GetAllCoursesByOwnerID(ctx context.Context, ownerID string) ([]*model.Course, error)

	// ReplaceCourseByID substitui integralmente os dados de um curso
	ReplaceCourseByID(ctx context.Context, id string, course *model.Course) (*model.Course, error)
}
