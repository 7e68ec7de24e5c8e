package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/user"
	"github.com/diillson/course-platform-go/internal/testutils"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/diillson/course-platform-go/pkg/validation"
)

func setupUserRouter(t *testing.T) *gin.Engine {
	logger := testutils.TestLogger(t)
	users := memory.NewUserRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	resolver := identity.NewResolver(km, users, logger)
	svc := user.NewService(users, resolver, km, validation.AcceptAllCPFValidator{}, nil, logger)
	handler := NewUserHandler(svc, time.Hour, false, logger)

	router := testutils.SetupTestRouter(t)
	router.POST("/login", handler.Login)
	router.POST("/refresh", handler.Refresh)
	router.POST("/logout", handler.Logout)
	router.POST("/users/students", handler.CreateStudent)
	router.GET("/users/me", handler.GetMe)
	router.PATCH("/users/me", handler.UpdateMe)
	router.DELETE("/users/me", handler.DeleteMe)

	return router
}

func studentBody(email, username string) map[string]any {
	return map[string]any{
		"email":     email,
		"username":  username,
		"cpf":       "123.456.789-00",
		"firstName": "Ana",
		"lastName":  "Silva",
		"password":  "senha-da-ana",
	}
}

func TestUserHandler_SignupLoginAndMe(t *testing.T) {
	router := setupUserRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/students", studentBody("ana@example.com", "ana"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var created struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	testutils.ParseResponse(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ana@example.com", created.Email)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
		"email":    "ana@example.com",
		"password": "senha-da-ana",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var login struct {
		AccessToken string `json:"accessToken"`
		Me          struct {
			Username string `json:"username"`
		} `json:"me"`
	}
	testutils.ParseResponse(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "ana", login.Me.Username)

	// O refresh token vai em cookie httpOnly, nunca no corpo
	cookie := testutils.ResponseCookie(resp, refreshCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users/me", nil, testutils.BearerHeader(login.AccessToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var me struct {
		Email string `json:"email"`
	}
	testutils.ParseResponse(t, resp, &me)
	assert.Equal(t, "ana@example.com", me.Email)
}

func TestUserHandler_LoginFailures(t *testing.T) {
	router := setupUserRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/students", studentBody("ana@example.com", "ana"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	t.Run("corpo inválido", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{"email": "nao-e-email"}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("usuário desconhecido", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
			"email":    "ninguem@example.com",
			"password": "qualquer",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

		var body struct {
			Error string `json:"error"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.NotEmpty(t, body.Error)
	})

	t.Run("senha errada", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
			"email":    "ana@example.com",
			"password": "senha-errada",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})
}

func TestUserHandler_Refresh(t *testing.T) {
	router := setupUserRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/students", studentBody("ana@example.com", "ana"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
		"email":    "ana@example.com",
		"password": "senha-da-ana",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	cookie := testutils.ResponseCookie(resp, refreshCookieName)
	require.NotNil(t, cookie)

	t.Run("sem cookie retorna 401", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/refresh", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("com cookie reemite o access token", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/refresh", nil, map[string]string{
			"Cookie": refreshCookieName + "=" + cookie.Value,
		})
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body struct {
			AccessToken string `json:"accessToken"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.NotEmpty(t, body.AccessToken)

		// Um novo cookie de refresh acompanha a resposta
		renewed := testutils.ResponseCookie(resp, refreshCookieName)
		require.NotNil(t, renewed)
		assert.NotEmpty(t, renewed.Value)
	})
}

func TestUserHandler_DeleteMe(t *testing.T) {
	router := setupUserRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/students", studentBody("ana@example.com", "ana"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
		"email":    "ana@example.com",
		"password": "senha-da-ana",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	testutils.ParseResponse(t, resp, &login)

	resp = testutils.MakeRequest(t, router, http.MethodDelete, "/users/me", nil, testutils.BearerHeader(login.AccessToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusNoContent)

	// O cookie de refresh é descartado junto
	cleared := testutils.ResponseCookie(resp, refreshCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users/me", nil, testutils.BearerHeader(login.AccessToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
}
