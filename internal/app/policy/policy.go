// Package policy concentra as decisões de autorização por recurso.
// Cada política é uma função pura sobre (usuário resolvido, recurso alvo).
package policy

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// RequirePrivilege exige que o usuário tenha o privilégio dado
func RequirePrivilege(user *model.User, privilege model.Privilege) error {
	if user == nil || user.Privilege != privilege {
		return apierrors.Forbidden("Acesso negado", nil)
	}
	return nil
}

// RequireCourseOwner exige que o usuário seja o dono do curso
func RequireCourseOwner(user *model.User, course *model.Course) error {
	if user == nil || course == nil || course.OwnerID != user.ID {
		return apierrors.Forbidden("Acesso negado", nil)
	}
	return nil
}

// CanAccessCourseContent decide a visibilidade do conteúdo de um curso:
// o dono sempre vê; estudantes veem se houver matrícula.
func CanAccessCourseContent(ctx context.Context, user *model.User, course *model.Course, enrollments repository.EnrollmentRepository) error {
	if user != nil && course != nil && course.OwnerID == user.ID {
		return nil
	}

	enrolled, err := enrollments.ExistsEnrollmentForStudentAtCourse(ctx, user.ID, course.ID)
	if err != nil {
		return apierrors.InternalServer("", err)
	}
	if !enrolled {
		return apierrors.Forbidden("Acesso negado", nil)
	}

	return nil
}
