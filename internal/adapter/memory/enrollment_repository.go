package memory

import (
	"context"
	"sync"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/google/uuid"
)

// EnrollmentRepository implementa repository.EnrollmentRepository em memória
type EnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[string]*model.Enrollment
}

// NewEnrollmentRepository cria um repositório de matrículas em memória
func NewEnrollmentRepository() repository.EnrollmentRepository {
	return &EnrollmentRepository{enrollments: make(map[string]*model.Enrollment)}
}

func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) (*model.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mesma semântica do índice único (estudante, curso) do banco
	for _, existing := range r.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return nil, repository.ErrEnrollmentExists
		}
	}

	stored := *enrollment
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.enrollments[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *EnrollmentRepository) FindEnrollmentsByStudentID(ctx context.Context, studentID string) ([]*model.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var enrollments []*model.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.StudentID == studentID {
			result := *enrollment
			enrollments = append(enrollments, &result)
		}
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) FindEnrollmentByStudentIDAndCourseID(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, enrollment := range r.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			result := *enrollment
			return &result, nil
		}
	}
	return nil, nil
}

func (r *EnrollmentRepository) ExistsEnrollmentForStudentAtCourse(ctx context.Context, studentID, courseID string) (bool, error) {
	enrollment, err := r.FindEnrollmentByStudentIDAndCourseID(ctx, studentID, courseID)
	if err != nil {
		return false, err
	}
	return enrollment != nil, nil
}

func (r *EnrollmentRepository) SetHasRatedCourseByID(ctx context.Context, enrollmentID string) (*model.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	enrollment, ok := r.enrollments[enrollmentID]
	if !ok {
		return nil, nil
	}

	enrollment.HasRatedCourse = true

	result := *enrollment
	return &result, nil
}
