package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/app/user"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

const refreshCookieName = "refreshToken"

// UserHandler expõe os endpoints de usuários e autenticação
type UserHandler struct {
	service       *user.Service
	refreshTTL    time.Duration
	secureCookies bool
	logger        *zap.Logger
}

// NewUserHandler cria um novo handler de usuários
func NewUserHandler(service *user.Service, refreshTTL time.Duration, secureCookies bool, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service:       service,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// CreateUserRequest contém o corpo de cadastro de um usuário
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	CPF       string `json:"cpf" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// CreateAdministrator atende POST /users/administrators
func (h *UserHandler) CreateAdministrator(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateAdministrator(c.Request.Context(), bearerToken(c), req.Password, user.CreateUserRequest{
		Email:     req.Email,
		Username:  req.Username,
		CPF:       req.CPF,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created.ToDTO())
}

// CreateStudent atende POST /users/students
func (h *UserHandler) CreateStudent(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateStudent(c.Request.Context(), user.CreateUserRequest{
		Email:     req.Email,
		Username:  req.Username,
		CPF:       req.CPF,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created.ToDTO())
}

// LoginRequest contém as credenciais de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login atende POST /login. O token de acesso vai no corpo; o refresh
// token vai em cookie httpOnly, fora do alcance de script.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setRefreshCookie(c, resp.Tokens.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"me":          resp.Me,
		"accessToken": resp.Tokens.AccessToken,
	})
}

// Refresh atende POST /refresh, reemitindo o par de tokens a partir do
// cookie de refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	rawRefresh, err := c.Cookie(refreshCookieName)
	if err != nil {
		respondError(c, h.logger, apierrors.Unauthorized("Refresh token não fornecido", nil))
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), rawRefresh)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"accessToken": tokens.AccessToken})
}

// GetMe atende GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.service.GetMe(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, me)
}

// UpdateUserRequest contém o corpo de atualização parcial do usuário
type UpdateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password" binding:"omitempty,min=6"`
}

// UpdateMe atende PATCH /users/me. Como a senha pode ter mudado, o token
// reemitido volta no corpo da resposta.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	newToken, err := h.service.UpdateUser(c.Request.Context(), bearerToken(c), user.UpdateUserRequest{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": newToken})
}

// DeleteMe atende DELETE /users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// Logout atende POST /logout, apenas descartando o cookie de refresh
func (h *UserHandler) Logout(c *gin.Context) {
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(h.refreshTTL.Seconds()), "/", "", h.secureCookies, true)
}

func (h *UserHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.secureCookies, true)
}
