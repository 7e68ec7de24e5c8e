package memory

import (
	"context"
	"sync"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/google/uuid"
)

// CourseRepository implementa repository.CourseRepository em memória
type CourseRepository struct {
	mu      sync.RWMutex
	courses map[string]*model.Course
}

// NewCourseRepository cria um repositório de cursos em memória
func NewCourseRepository() repository.CourseRepository {
	return &CourseRepository{courses: make(map[string]*model.Course)}
}

func (r *CourseRepository) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *course
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.courses[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *CourseRepository) DeleteCourseByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.courses, id)
	return nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	course, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	result := *course
	return &result, nil
}

func (r *CourseRepository) GetCourseByName(ctx context.Context, name string) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, course := range r.courses {
		if course.Name == name {
			result := *course
			return &result, nil
		}
	}
	return nil, nil
}

func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]*model.Course, 0, len(r.courses))
	for _, course := range r.courses {
		result := *course
		courses = append(courses, &result)
	}
	return courses, nil
}

func (r *CourseRepository) GetAllCoursesByOwnerID(ctx context.Context, ownerID string) ([]*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var courses []*model.Course
	for _, course := range r.courses {
		if course.OwnerID == ownerID {
			result := *course
			courses = append(courses, &result)
		}
	}
	return courses, nil
}

func (r *CourseRepository) ReplaceCourseByID(ctx context.Context, id string, course *model.Course) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return nil, nil
	}

	stored := *course
	stored.ID = id
	r.courses[id] = &stored

	result := stored
	return &result, nil
}
