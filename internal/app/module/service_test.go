package module_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/module"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/testutils"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc         *module.Service
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	km          *security.KeyManager
}

func newFixture(t *testing.T) *fixture {
	logger := testutils.TestLogger(t)

	users := memory.NewUserRepository()
	courses := memory.NewCourseRepository()
	modules := memory.NewModuleRepository()
	enrollments := memory.NewEnrollmentRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	resolver := identity.NewResolver(km, users, logger)
	svc := module.NewService(users, courses, modules, enrollments, resolver, logger)

	return &fixture{svc: svc, users: users, courses: courses, enrollments: enrollments, km: km}
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

func (f *fixture) seedCourse(t *testing.T, name, ownerID string) *model.Course {
	created, err := f.courses.CreateCourse(context.Background(), &model.Course{Name: name, OwnerID: ownerID})
	require.NoError(t, err)
	return created
}

func (f *fixture) enroll(t *testing.T, studentID, courseID string) {
	_, err := f.enrollments.CreateEnrollment(context.Background(), &model.Enrollment{StudentID: studentID, CourseID: courseID})
	require.NoError(t, err)
}

func TestModuleService_CreateModule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, mallToken := f.seedUser(t, "mallory", model.PrivilegeAdministrator)
	_, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)

	created := f.seedCourse(t, "Go para web", alice.ID)

	t.Run("dono cria módulo", func(t *testing.T) {
		mod, err := f.svc.CreateModule(ctx, aliceToken, created.ID, module.CreateModuleRequest{
			Name:        "Fundamentos",
			Description: "Sintaxe e tipos",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, mod.ID)
		assert.Equal(t, created.ID, mod.CourseID)
	})

	t.Run("nome repetido no mesmo curso retorna 409", func(t *testing.T) {
		_, err := f.svc.CreateModule(ctx, aliceToken, created.ID, module.CreateModuleRequest{Name: "Fundamentos"})
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("mesmo nome em outro curso é permitido", func(t *testing.T) {
		other := f.seedCourse(t, "Outro curso", alice.ID)
		_, err := f.svc.CreateModule(ctx, aliceToken, other.ID, module.CreateModuleRequest{Name: "Fundamentos"})
		assert.NoError(t, err)
	})

	t.Run("admin que não é dono recebe 403", func(t *testing.T) {
		_, err := f.svc.CreateModule(ctx, mallToken, created.ID, module.CreateModuleRequest{Name: "Invasão"})
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("estudante recebe 403", func(t *testing.T) {
		_, err := f.svc.CreateModule(ctx, bobToken, created.ID, module.CreateModuleRequest{Name: "Qualquer"})
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("curso inexistente retorna 404", func(t *testing.T) {
		_, err := f.svc.CreateModule(ctx, aliceToken, "nao-existe", module.CreateModuleRequest{Name: "X"})
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})
}

func TestModuleService_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	bob, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)
	_, carolToken := f.seedUser(t, "carol", model.PrivilegeStudent)
	_, mallToken := f.seedUser(t, "mallory", model.PrivilegeAdministrator)

	created := f.seedCourse(t, "Go para web", alice.ID)
	f.enroll(t, bob.ID, created.ID)

	mod, err := f.svc.CreateModule(ctx, aliceToken, created.ID, module.CreateModuleRequest{Name: "Fundamentos"})
	require.NoError(t, err)

	t.Run("dono vê o módulo", func(t *testing.T) {
		got, err := f.svc.GetModuleByID(ctx, aliceToken, mod.ID)
		require.NoError(t, err)
		assert.Equal(t, mod.ID, got.ID)
	})

	t.Run("estudante matriculado vê o módulo", func(t *testing.T) {
		got, err := f.svc.GetModuleByID(ctx, bobToken, mod.ID)
		require.NoError(t, err)
		assert.Equal(t, mod.ID, got.ID)
	})

	t.Run("estudante sem matrícula recebe 403", func(t *testing.T) {
		_, err := f.svc.GetModuleByID(ctx, carolToken, mod.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("admin que não é dono nem matriculado recebe 403", func(t *testing.T) {
		_, err := f.svc.GetModuleByID(ctx, mallToken, mod.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("listagem segue a mesma regra", func(t *testing.T) {
		mods, err := f.svc.GetModulesByCourseID(ctx, bobToken, created.ID)
		require.NoError(t, err)
		assert.Len(t, mods, 1)

		_, err = f.svc.GetModulesByCourseID(ctx, carolToken, created.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))

		_, err = f.svc.GetModulesByCourseID(ctx, mallToken, created.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("módulo inexistente retorna 404", func(t *testing.T) {
		_, err := f.svc.GetModuleByID(ctx, aliceToken, "nao-existe")
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})
}

func TestModuleService_UpdateModuleByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, mallToken := f.seedUser(t, "mallory", model.PrivilegeAdministrator)

	created := f.seedCourse(t, "Go para web", alice.ID)
	mod, err := f.svc.CreateModule(ctx, aliceToken, created.ID, module.CreateModuleRequest{
		Name:        "Fundamentos",
		Description: "Sintaxe",
	})
	require.NoError(t, err)

	t.Run("campos vazios não alteram nada", func(t *testing.T) {
		updated, err := f.svc.UpdateModuleByID(ctx, aliceToken, mod.ID, module.UpdateModuleRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Fundamentos", updated.Name)
		assert.Equal(t, "Sintaxe", updated.Description)
	})

	t.Run("dono atualiza nome e descrição", func(t *testing.T) {
		updated, err := f.svc.UpdateModuleByID(ctx, aliceToken, mod.ID, module.UpdateModuleRequest{
			Name:        "Fundamentos de Go",
			Description: "Sintaxe, tipos e pacotes",
		})
		require.NoError(t, err)
		assert.Equal(t, "Fundamentos de Go", updated.Name)
		assert.Equal(t, "Sintaxe, tipos e pacotes", updated.Description)
	})

	t.Run("admin que não é dono recebe 403", func(t *testing.T) {
		_, err := f.svc.UpdateModuleByID(ctx, mallToken, mod.ID, module.UpdateModuleRequest{Name: "X"})
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("módulo inexistente retorna 400", func(t *testing.T) {
		_, err := f.svc.UpdateModuleByID(ctx, aliceToken, "nao-existe", module.UpdateModuleRequest{Name: "X"})
		assert.True(t, apierrors.IsStatus(err, http.StatusBadRequest))
	})
}
