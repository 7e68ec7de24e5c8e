package lesson_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/lesson"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/testutils"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc         *lesson.Service
	users       repository.UserRepository
	courses     repository.CourseRepository
	modules     repository.ModuleRepository
	enrollments repository.EnrollmentRepository
	km          *security.KeyManager
}

func newFixture(t *testing.T) *fixture {
	logger := testutils.TestLogger(t)

	users := memory.NewUserRepository()
	courses := memory.NewCourseRepository()
	modules := memory.NewModuleRepository()
	lessons := memory.NewLessonRepository()
	enrollments := memory.NewEnrollmentRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	resolver := identity.NewResolver(km, users, logger)
	svc := lesson.NewService(users, courses, modules, lessons, enrollments, resolver, logger)

	return &fixture{svc: svc, users: users, courses: courses, modules: modules, enrollments: enrollments, km: km}
}

func (f *fixture) seedUser(t *testing.T, username string, privilege model.Privilege) (*model.User, string) {
	user, err := f.users.CreateUser(context.Background(), &model.User{
		Email:     username + "@example.com",
		Username:  username,
		Password:  "hash-" + username,
		Privilege: privilege,
	})
	require.NoError(t, err)

	token, err := f.km.GenerateToken(user.ID, user.Password, string(user.Privilege), time.Minute)
	require.NoError(t, err)

	return user, token
}

func (f *fixture) seedCourseWithModule(t *testing.T, ownerID string) (*model.Course, *model.Module) {
	created, err := f.courses.CreateCourse(context.Background(), &model.Course{Name: "Go para web", OwnerID: ownerID})
	require.NoError(t, err)

	mod, err := f.modules.CreateModule(context.Background(), &model.Module{CourseID: created.ID, Name: "Fundamentos"})
	require.NoError(t, err)

	return created, mod
}

func newLessonRequest(name string) lesson.CreateLessonRequest {
	return lesson.CreateLessonRequest{
		Name:        name,
		Description: "Aula introdutória",
		URL:         "https://videos.example.com/" + name,
	}
}

func TestLessonService_CreateLesson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, mallToken := f.seedUser(t, "mallory", model.PrivilegeAdministrator)
	_, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)

	_, mod := f.seedCourseWithModule(t, alice.ID)

	t.Run("dono cria aula", func(t *testing.T) {
		created, err := f.svc.CreateLesson(ctx, aliceToken, mod.ID, newLessonRequest("hello-world"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, mod.ID, created.ModuleID)
	})

	t.Run("nome repetido no módulo retorna 409", func(t *testing.T) {
		_, err := f.svc.CreateLesson(ctx, aliceToken, mod.ID, newLessonRequest("hello-world"))
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("admin que não é dono recebe 403", func(t *testing.T) {
		_, err := f.svc.CreateLesson(ctx, mallToken, mod.ID, newLessonRequest("invasao"))
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("estudante recebe 403", func(t *testing.T) {
		_, err := f.svc.CreateLesson(ctx, bobToken, mod.ID, newLessonRequest("qualquer"))
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("módulo inexistente retorna 404", func(t *testing.T) {
		_, err := f.svc.CreateLesson(ctx, aliceToken, "nao-existe", newLessonRequest("x"))
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})
}

func TestLessonService_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	bob, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)
	_, carolToken := f.seedUser(t, "carol", model.PrivilegeStudent)

	created, mod := f.seedCourseWithModule(t, alice.ID)

	_, err := f.enrollments.CreateEnrollment(ctx, &model.Enrollment{StudentID: bob.ID, CourseID: created.ID})
	require.NoError(t, err)

	l, err := f.svc.CreateLesson(ctx, aliceToken, mod.ID, newLessonRequest("hello-world"))
	require.NoError(t, err)

	t.Run("dono vê a aula", func(t *testing.T) {
		got, err := f.svc.GetLessonByID(ctx, aliceToken, l.ID)
		require.NoError(t, err)
		assert.Equal(t, l.ID, got.ID)
	})

	t.Run("estudante matriculado vê a aula", func(t *testing.T) {
		got, err := f.svc.GetLessonByID(ctx, bobToken, l.ID)
		require.NoError(t, err)
		assert.Equal(t, l.URL, got.URL)
	})

	t.Run("estudante sem matrícula recebe 403", func(t *testing.T) {
		_, err := f.svc.GetLessonByID(ctx, carolToken, l.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("listagem por módulo segue a mesma regra", func(t *testing.T) {
		lessons, err := f.svc.GetAllLessonsByModuleID(ctx, bobToken, mod.ID)
		require.NoError(t, err)
		assert.Len(t, lessons, 1)

		_, err = f.svc.GetAllLessonsByModuleID(ctx, carolToken, mod.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("aula inexistente retorna 404", func(t *testing.T) {
		_, err := f.svc.GetLessonByID(ctx, aliceToken, "nao-existe")
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})
}
