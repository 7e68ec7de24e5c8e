package user_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/user"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/testutils"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/diillson/course-platform-go/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *user.Service {
	logger := testutils.TestLogger(t)
	users := memory.NewUserRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	resolver := identity.NewResolver(km, users, logger)
	return user.NewService(users, resolver, km, validation.AcceptAllCPFValidator{}, nil, logger)
}

func adminRequest(suffix string) user.CreateUserRequest {
	return user.CreateUserRequest{
		Email:     "admin" + suffix + "@example.com",
		Username:  "admin" + suffix,
		CPF:       "111.222.333-0" + suffix,
		FirstName: "Admin",
		LastName:  "Root",
		Password:  "senha-forte",
	}
}

func TestUserService_CreateAdministrator_Bootstrap(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	// Sem nenhum administrador cadastrado o primeiro entra sem token
	created, err := svc.CreateAdministrator(ctx, "", "", adminRequest("1"))
	require.NoError(t, err)
	assert.Equal(t, model.PrivilegeAdministrator, created.Privilege)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "senha-forte", created.Password, "senha deve ser armazenada como hash")
}

func TestUserService_CreateAdministrator_RequiresActingAdmin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateAdministrator(ctx, "", "", adminRequest("1"))
	require.NoError(t, err)

	login, err := svc.Login(ctx, "admin1@example.com", "senha-forte")
	require.NoError(t, err)
	adminToken := login.Tokens.AccessToken

	t.Run("sem token retorna 400", func(t *testing.T) {
		_, err := svc.CreateAdministrator(ctx, "", "senha-forte", adminRequest("2"))
		assert.True(t, apierrors.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("senha do admin agente errada retorna 403", func(t *testing.T) {
		_, err := svc.CreateAdministrator(ctx, adminToken, "senha-errada", adminRequest("2"))
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("token de estudante retorna 403", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, user.CreateUserRequest{
			Email:     "bob@example.com",
			Username:  "bob",
			CPF:       "999.888.777-66",
			FirstName: "Bob",
			LastName:  "Silva",
			Password:  "senha-do-bob",
		})
		require.NoError(t, err)

		studentLogin, err := svc.Login(ctx, "bob@example.com", "senha-do-bob")
		require.NoError(t, err)

		_, err = svc.CreateAdministrator(ctx, studentLogin.Tokens.AccessToken, "senha-do-bob", adminRequest("2"))
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("admin autenticado com a própria senha cria outro admin", func(t *testing.T) {
		created, err := svc.CreateAdministrator(ctx, adminToken, "senha-forte", adminRequest("2"))
		require.NoError(t, err)
		assert.Equal(t, model.PrivilegeAdministrator, created.Privilege)
	})
}

func TestUserService_CreateStudent_Conflicts(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	base := user.CreateUserRequest{
		Email:     "carol@example.com",
		Username:  "carol",
		CPF:       "123.456.789-00",
		FirstName: "Carol",
		LastName:  "Souza",
		Password:  "senha-da-carol",
	}

	_, err := svc.CreateStudent(ctx, base)
	require.NoError(t, err)

	t.Run("e-mail repetido", func(t *testing.T) {
		dup := base
		dup.Username = "carol2"
		dup.CPF = "123.456.789-01"
		_, err := svc.CreateStudent(ctx, dup)
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("username repetido", func(t *testing.T) {
		dup := base
		dup.Email = "carol2@example.com"
		dup.CPF = "123.456.789-02"
		_, err := svc.CreateStudent(ctx, dup)
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("cpf repetido", func(t *testing.T) {
		dup := base
		dup.Email = "carol3@example.com"
		dup.Username = "carol3"
		_, err := svc.CreateStudent(ctx, dup)
		assert.True(t, apierrors.IsStatus(err, http.StatusConflict))
	})

	t.Run("cpf com formato inválido", func(t *testing.T) {
		bad := base
		bad.Email = "dave@example.com"
		bad.Username = "dave"
		bad.CPF = "12345678900"
		_, err := svc.CreateStudent(ctx, bad)
		assert.True(t, apierrors.IsStatus(err, http.StatusBadRequest))
	})
}

func TestUserService_Login(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, user.CreateUserRequest{
		Email:     "erin@example.com",
		Username:  "erin",
		CPF:       "222.333.444-55",
		FirstName: "Erin",
		LastName:  "Lima",
		Password:  "senha-da-erin",
	})
	require.NoError(t, err)

	t.Run("e-mail desconhecido retorna 404", func(t *testing.T) {
		_, err := svc.Login(ctx, "ninguem@example.com", "qualquer")
		assert.True(t, apierrors.IsStatus(err, http.StatusNotFound))
	})

	t.Run("senha errada retorna 403", func(t *testing.T) {
		_, err := svc.Login(ctx, "erin@example.com", "senha-errada")
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})

	t.Run("credenciais corretas emitem o par de tokens", func(t *testing.T) {
		resp, err := svc.Login(ctx, "erin@example.com", "senha-da-erin")
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, "erin@example.com", resp.Me.Email)

		me, err := svc.GetMe(ctx, resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "erin", me.Username)
	})
}

func TestUserService_Refresh(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, user.CreateUserRequest{
		Email:     "frank@example.com",
		Username:  "frank",
		CPF:       "333.444.555-66",
		FirstName: "Frank",
		LastName:  "Costa",
		Password:  "senha-do-frank",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, "frank@example.com", "senha-do-frank")
	require.NoError(t, err)

	tokens, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = svc.Refresh(ctx, "token-invalido")
	assert.True(t, apierrors.IsStatus(err, http.StatusUnauthorized))
}

func TestUserService_UpdateUser_PasswordChangeRevokesOldTokens(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, user.CreateUserRequest{
		Email:     "grace@example.com",
		Username:  "grace",
		CPF:       "444.555.666-77",
		FirstName: "Grace",
		LastName:  "Alves",
		Password:  "senha-antiga",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, "grace@example.com", "senha-antiga")
	require.NoError(t, err)
	oldToken := login.Tokens.AccessToken

	newToken, err := svc.UpdateUser(ctx, oldToken, user.UpdateUserRequest{Password: "senha-nova"})
	require.NoError(t, err)
	require.NotEmpty(t, newToken)

	// O token antigo carrega o hash anterior: deixa de resolver
	_, err = svc.GetMe(ctx, oldToken)
	assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))

	me, err := svc.GetMe(ctx, newToken)
	require.NoError(t, err)
	assert.Equal(t, "grace", me.Username)

	_, err = svc.Login(ctx, "grace@example.com", "senha-nova")
	assert.NoError(t, err)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, user.CreateUserRequest{
		Email:     "heidi@example.com",
		Username:  "heidi",
		CPF:       "555.666.777-88",
		FirstName: "Heidi",
		LastName:  "Ramos",
		Password:  "senha-da-heidi",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, "heidi@example.com", "senha-da-heidi")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, login.Tokens.AccessToken))

	_, err = svc.GetMe(ctx, login.Tokens.AccessToken)
	assert.True(t, apierrors.IsStatus(err, http.StatusUnauthorized))
}
