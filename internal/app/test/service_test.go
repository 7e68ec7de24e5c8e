package test_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/test"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/testutils"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   *test.Service
	users repository.UserRepository
	km    *security.KeyManager
}

func newFixture(t *testing.T) *fixture {
	logger := testutils.TestLogger(t)

	users := memory.NewUserRepository()
	tests := memory.NewTestRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	resolver := identity.NewResolver(km, users, logger)
	svc := test.NewService(users, tests, resolver, logger)

	return &fixture{svc: svc, users: users, km: km}
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

func newTestRequest(moduleID, question string) test.CreateTestRequest {
	return test.CreateTestRequest{
		ModuleID:      moduleID,
		Question:      question,
		Answers:       []string{"goroutine", "thread", "processo"},
		CorrectAnswer: "goroutine",
	}
}

func TestTestService_CreateTest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, adminToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	_, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)

	t.Run("admin cria teste", func(t *testing.T) {
		created, err := f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-1", "O que o go roda em cada requisição?"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "mod-1", created.ModuleID)
		assert.Len(t, created.Answers, 3)
	})

	t.Run("pergunta repetida no mesmo módulo retorna 409", func(t *testing.T) {
		_, err := f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-1", "O que o go roda em cada requisição?"))
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("mesma pergunta em outro módulo é permitida", func(t *testing.T) {
		_, err := f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-2", "O que o go roda em cada requisição?"))
		assert.NoError(t, err)
	})

	t.Run("estudante não cria teste", func(t *testing.T) {
		_, err := f.svc.CreateTest(ctx, bobToken, newTestRequest("mod-1", "Outra pergunta"))
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})
}

func TestTestService_Queries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, adminToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)

	created, err := f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-1", "Pergunta A"))
	require.NoError(t, err)
	_, err = f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-1", "Pergunta B"))
	require.NoError(t, err)
	_, err = f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-2", "Pergunta A"))
	require.NoError(t, err)

	t.Run("por id", func(t *testing.T) {
		got, err := f.svc.GetTestByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pergunta A", got.Question)

		_, err = f.svc.GetTestByID(ctx, "nao-existe")
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})

	t.Run("por módulo", func(t *testing.T) {
		tests, err := f.svc.GetAllTestsByModuleID(ctx, "mod-1")
		require.NoError(t, err)
		assert.Len(t, tests, 2)
	})

	t.Run("módulo sem testes retorna lista vazia", func(t *testing.T) {
		tests, err := f.svc.GetAllTestsByModuleID(ctx, "mod-vazio")
		require.NoError(t, err)
		require.NotNil(t, tests)
		assert.Empty(t, tests)
	})

	t.Run("por pergunta", func(t *testing.T) {
		tests, err := f.svc.GetAllTestsByQuestion(ctx, "Pergunta A")
		require.NoError(t, err)
		assert.Len(t, tests, 2)
	})

	t.Run("pergunta desconhecida retorna lista vazia", func(t *testing.T) {
		tests, err := f.svc.GetAllTestsByQuestion(ctx, "Pergunta inexistente")
		require.NoError(t, err)
		require.NotNil(t, tests)
		assert.Empty(t, tests)
	})
}

func TestTestService_Answers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, adminToken := f.seedUser(t, "alice", model.PrivilegeAdministrator)
	bob, bobToken := f.seedUser(t, "bob", model.PrivilegeStudent)
	_, carolToken := f.seedUser(t, "carol", model.PrivilegeStudent)

	created, err := f.svc.CreateTest(ctx, adminToken, newTestRequest("mod-1", "Pergunta A"))
	require.NoError(t, err)

	t.Run("estudante responde", func(t *testing.T) {
		answer, err := f.svc.CreateAnswer(ctx, bobToken, test.CreateAnswerRequest{
			TestID: created.ID,
			Answer: "goroutine",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, answer.ID)
		assert.Equal(t, bob.ID, answer.UserID)
		assert.Equal(t, created.ID, answer.TestID)
	})

	t.Run("responder de novo é permitido", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, bobToken, test.CreateAnswerRequest{
			TestID: created.ID,
			Answer: "thread",
		})
		assert.NoError(t, err)
	})

	t.Run("teste inexistente retorna 404", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, bobToken, test.CreateAnswerRequest{TestID: "nao-existe", Answer: "x"})
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})

	t.Run("admin não responde", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, adminToken, test.CreateAnswerRequest{TestID: created.ID, Answer: "x"})
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("cada usuário vê só as próprias respostas", func(t *testing.T) {
		answers, err := f.svc.GetAllAnswersByUserAndTestID(ctx, bobToken, created.ID)
		require.NoError(t, err)
		assert.Len(t, answers, 2)
	})

	t.Run("quem ainda não respondeu recebe lista vazia", func(t *testing.T) {
		answers, err := f.svc.GetAllAnswersByUserAndTestID(ctx, carolToken, created.ID)
		require.NoError(t, err)
		require.NotNil(t, answers)
		assert.Empty(t, answers)
	})
}
