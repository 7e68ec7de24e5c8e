package memory

import (
	"context"
	"sync"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/google/uuid"
)

// LessonRepository implementa repository.LessonRepository em memória
type LessonRepository struct {
	mu      sync.RWMutex
	lessons map[string]*model.Lesson
}

// NewLessonRepository cria um repositório de aulas em memória
func NewLessonRepository() repository.LessonRepository {
	return &LessonRepository{lessons: make(map[string]*model.Lesson)}
}

func (r *LessonRepository) CreateLesson(ctx context.Context, lesson *model.Lesson) (*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *lesson
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.lessons[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *LessonRepository) GetLessonByID(ctx context.Context, id string) (*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lesson, ok := r.lessons[id]
	if !ok {
		return nil, nil
	}
	result := *lesson
	return &result, nil
}

func (r *LessonRepository) GetLessonByModuleIDAndName(ctx context.Context, moduleID, name string) (*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, lesson := range r.lessons {
		if lesson.ModuleID == moduleID && lesson.Name == name {
			result := *lesson
			return &result, nil
		}
	}
	return nil, nil
}

func (r *LessonRepository) GetAllLessonsByModuleID(ctx context.Context, moduleID string) ([]*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lessons []*model.Lesson
	for _, lesson := range r.lessons {
		if lesson.ModuleID == moduleID {
			result := *lesson
			lessons = append(lessons, &result)
		}
	}
	return lessons, nil
}
