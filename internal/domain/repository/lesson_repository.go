package repository

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
)

// LessonRepository define a interface para armazenamento de aulas
type LessonRepository interface {
	// CreateLesson persiste uma nova aula
	CreateLesson(ctx context.Context, lesson *model.Lesson) (*model.Lesson, error)

	// GetLessonByID obtém uma aula pelo id
	GetLessonByID(ctx context.Context, id string) (*model.Lesson, error)

	// GetLessonByModuleIDAndName obtém uma aula pelo par (módulo, nome)
	GetLessonByModuleIDAndName(ctx context.Context, moduleID, name string) (*model.Lesson, error)

	// GetAllLessonsByModuleID retorna todas as aulas de um módulo
	GetAllLessonsByModuleID(ctx context.Context, moduleID string) ([]*model.Lesson, error)
}
