package course_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/course"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/mocks"
	"github.com/diillson/course-platform-go/internal/testutils"
	"github.com/diillson/course-platform-go/pkg/cache"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc         *course.Service
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	km          *security.KeyManager
}

func newFixture(t *testing.T, cacheProvider cache.Cache) *fixture {
	logger := testutils.TestLogger(t)

	users := memory.NewUserRepository()
	courses := memory.NewCourseRepository()
	enrollments := memory.NewEnrollmentRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	resolver := identity.NewResolver(km, users, logger)
	svc := course.NewService(users, courses, enrollments, resolver, cacheProvider, nil, logger)

	return &fixture{svc: svc, users: users, courses: courses, enrollments: enrollments, km: km}
}

// seedUser grava um usuário direto no repositório e devolve um token válido
func (f *fixture) seedUser(t *testing.T, username string, privilege model.Privilege) (*model.User, string) {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-de-teste"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := f.users.CreateUser(context.Background(), &model.User{
		Email:     username + "@example.com",
		Username:  username,
		CPF:       "000.000.000-" + username[:2],
		Password:  string(hash),
		Privilege: privilege,
	})
	require.NoError(t, err)

	token, err := f.km.GenerateToken(user.ID, user.Password, string(user.Privilege), time.Minute)
	require.NoError(t, err)

	return user, token
}

func TestCourseService_CreateCourse(t *testing.T) {
	f := newFixture(t, &cache.NoOpCache{})
	ctx := context.Background()

	admin, adminToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, studentToken := f.seedUser(t, "bob", model.PrivilegeStudent)

	t.Run("admin cria curso", func(t *testing.T) {
		created, err := f.svc.CreateCourse(ctx, adminToken, course.CreateCourseRequest{
			Name:  "Go do zero",
			Photo: "https://example.com/go.png",
			Price: 49.90,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, admin.ID, created.OwnerID)
		assert.Zero(t, created.NumberOfRatings)
	})

	t.Run("nome repetido retorna 409", func(t *testing.T) {
		_, err := f.svc.CreateCourse(ctx, adminToken, course.CreateCourseRequest{Name: "Go do zero"})
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("estudante não cria curso", func(t *testing.T) {
		_, err := f.svc.CreateCourse(ctx, studentToken, course.CreateCourseRequest{Name: "Curso do Bob"})
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("token inválido retorna 401", func(t *testing.T) {
		_, err := f.svc.CreateCourse(ctx, "token-podre", course.CreateCourseRequest{Name: "X"})
		assert.True(t, apierrors.IsStatus(err, http.StatusUnauthorized))
	})
}

func TestCourseService_GetAllCourses_Cache(t *testing.T) {
	mockCache := new(mocks.MockCache)
	f := newFixture(t, mockCache)
	ctx := context.Background()

	_, adminToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)

	mockCache.On("Delete", mock.Anything, "courses").Return(nil)

	created, err := f.svc.CreateCourse(ctx, adminToken, course.CreateCourseRequest{Name: "Go avançado"})
	require.NoError(t, err)

	t.Run("cache miss busca no repositório e preenche o cache", func(t *testing.T) {
		mockCache.On("Get", mock.Anything, "courses", mock.AnythingOfType("*[]*model.Course")).
			Return(false, nil).Once()
		mockCache.On("Set", mock.Anything, "courses", mock.AnythingOfType("[]*model.Course"), 5*time.Minute).
			Return(nil).Once()

		courses, err := f.svc.GetAllCourses(ctx)
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, created.ID, courses[0].ID)

		mockCache.AssertExpectations(t)
	})

	t.Run("cache hit não toca o repositório", func(t *testing.T) {
		cached := []*model.Course{{ID: "do-cache", Name: "Curso em cache"}}

		mockCache.On("Get", mock.Anything, "courses", mock.AnythingOfType("*[]*model.Course")).
			Run(func(args mock.Arguments) {
				dest := args.Get(2).(*[]*model.Course)
				*dest = cached
			}).
			Return(true, nil).Once()

		courses, err := f.svc.GetAllCourses(ctx)
		require.NoError(t, err)
		assert.Equal(t, cached, courses)

		mockCache.AssertExpectations(t)
	})
}

func TestCourseService_UpdateCourse(t *testing.T) {
	f := newFixture(t, &cache.NoOpCache{})
	ctx := context.Background()

	_, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, mallToken := f.seedUser(t, "mallory", model.PrivilegeAdministrator)

	created, err := f.svc.CreateCourse(ctx, aliceToken, course.CreateCourseRequest{Name: "Go básico", Price: 10})
	require.NoError(t, err)

	other, err := f.svc.CreateCourse(ctx, aliceToken, course.CreateCourseRequest{Name: "Go intermediário"})
	require.NoError(t, err)

	t.Run("dono atualiza campos não vazios", func(t *testing.T) {
		updated, err := f.svc.UpdateCourse(ctx, aliceToken, created.ID, course.UpdateCourseRequest{
			Photo: "https://example.com/nova.png",
			Price: 25,
		})
		require.NoError(t, err)
		assert.Equal(t, "Go básico", updated.Name)
		assert.Equal(t, "https://example.com/nova.png", updated.Photo)
		assert.Equal(t, 25.0, updated.Price)
	})

	t.Run("renomear para nome em uso é ignorado", func(t *testing.T) {
		updated, err := f.svc.UpdateCourse(ctx, aliceToken, created.ID, course.UpdateCourseRequest{
			Name: other.Name,
		})
		require.NoError(t, err)
		assert.Equal(t, "Go básico", updated.Name)
	})

	t.Run("admin que não é dono recebe 403", func(t *testing.T) {
		_, err := f.svc.UpdateCourse(ctx, mallToken, created.ID, course.UpdateCourseRequest{Price: 1})
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("curso inexistente retorna 404", func(t *testing.T) {
		_, err := f.svc.UpdateCourse(ctx, aliceToken, "nao-existe", course.UpdateCourseRequest{Price: 1})
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})
}

func TestCourseService_RateCourse(t *testing.T) {
	f := newFixture(t, &cache.NoOpCache{})
	ctx := context.Background()

	_, adminToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	bob, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)
	carol, carolToken := f.seedUser(t, "carol", model.PrivilegeStudent)

	created, err := f.svc.CreateCourse(ctx, adminToken, course.CreateCourseRequest{Name: "Go para web"})
	require.NoError(t, err)

	_, err = f.enrollments.CreateEnrollment(ctx, &model.Enrollment{StudentID: bob.ID, CourseID: created.ID})
	require.NoError(t, err)
	_, err = f.enrollments.CreateEnrollment(ctx, &model.Enrollment{StudentID: carol.ID, CourseID: created.ID})
	require.NoError(t, err)

	t.Run("sem matrícula retorna 400", func(t *testing.T) {
		_, daveToken := f.seedUser(t, "dave", model.PrivilegeStudent)
		_, err := f.svc.RateCourse(ctx, daveToken, created.ID, 5)
		assert.True(t, apierrors.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("avaliações entram nos agregados", func(t *testing.T) {
		rated, err := f.svc.RateCourse(ctx, bobToken, created.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, rated.NumberOfRatings)
		assert.Equal(t, 4.0, rated.AverageRating())

		rated, err = f.svc.RateCourse(ctx, carolToken, created.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 2, rated.NumberOfRatings)
		assert.Equal(t, 4.5, rated.AverageRating())
	})

	t.Run("segunda avaliação da mesma matrícula retorna 409", func(t *testing.T) {
		_, err := f.svc.RateCourse(ctx, bobToken, created.ID, 1)
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("admin não avalia", func(t *testing.T) {
		_, err := f.svc.RateCourse(ctx, adminToken, created.ID, 5)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})
}

func TestCourseService_DeleteCourse(t *testing.T) {
	f := newFixture(t, &cache.NoOpCache{})
	ctx := context.Background()

	_, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, mallToken := f.seedUser(t, "mallory", model.PrivilegeAdministrator)

	created, err := f.svc.CreateCourse(ctx, aliceToken, course.CreateCourseRequest{Name: "Efêmero"})
	require.NoError(t, err)

	t.Run("só o dono remove", func(t *testing.T) {
		err := f.svc.DeleteCourse(ctx, mallToken, created.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("dono remove e o curso some", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteCourse(ctx, aliceToken, created.ID))

		_, err := f.svc.GetCourseByID(ctx, created.ID)
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})
}

func TestCourseService_GetCoursesByOwner(t *testing.T) {
	f := newFixture(t, &cache.NoOpCache{})
	ctx := context.Background()

	_, aliceToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, eveToken := f.seedUser(t, "evelyn", model.PrivilegeAdministrator)

	_, err := f.svc.CreateCourse(ctx, aliceToken, course.CreateCourseRequest{Name: "Curso A"})
	require.NoError(t, err)
	_, err = f.svc.CreateCourse(ctx, eveToken, course.CreateCourseRequest{Name: "Curso B"})
	require.NoError(t, err)

	mine, err := f.svc.GetCoursesByOwner(ctx, aliceToken)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Curso A", mine[0].Name)
}
