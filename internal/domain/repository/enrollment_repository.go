package repository

import (
	"context"
	"errors"

	"github.com/diillson/course-platform-go/internal/domain/model"
)

// ErrEnrollmentExists é retornado quando a restrição de unicidade
// (estudante, curso) é violada na camada de armazenamento.
var ErrEnrollmentExists = errors.New("matrícula já existe para este estudante e curso")

// EnrollmentRepository define a interface para armazenamento de matrículas
type EnrollmentRepository interface {
	// CreateEnrollment persiste uma nova matrícula. Retorna
	// ErrEnrollmentExists se já houver matrícula para o par (estudante, curso).
	CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) (*model.Enrollment, error)

	// FindEnrollmentsByStudentID retorna todas as matrículas de um estudante
	FindEnrollmentsByStudentID(ctx context.Context, studentID string) ([]*model.Enrollment, error)

	// FindEnrollmentByStudentIDAndCourseID obtém a matrícula de um estudante em um curso
	FindEnrollmentByStudentIDAndCourseID(ctx context.Context, studentID, courseID string) (*model.Enrollment, error)

	// ExistsEnrollmentForStudentAtCourse informa se o estudante está matriculado no curso
	ExistsEnrollmentForStudentAtCourse(ctx context.Context, studentID, courseID string) (bool, error)

	// SetHasRatedCourseByID marca a matrícula como já tendo avaliado o curso
	SetHasRatedCourseByID(ctx context.Context, enrollmentID string) (*model.Enrollment, error)
}
