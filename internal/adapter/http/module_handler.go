package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/app/module"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// ModuleHandler expõe os endpoints de módulos
type ModuleHandler struct {
	service *module.Service
	logger  *zap.Logger
}

// NewModuleHandler cria um novo handler de módulos
func NewModuleHandler(service *module.Service, logger *zap.Logger) *ModuleHandler {
	return &ModuleHandler{service: service, logger: logger}
}

// CreateModuleRequest contém o corpo de criação de um módulo
type CreateModuleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateModule atende POST /courses/:id/modules
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateModule(c.Request.Context(), bearerToken(c), c.Param("id"), module.CreateModuleRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetModule atende GET /modules/:id
func (h *ModuleHandler) GetModule(c *gin.Context) {
	found, err := h.service.GetModuleByID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// GetModulesByCourse atende GET /courses/:id/modules
func (h *ModuleHandler) GetModulesByCourse(c *gin.Context) {
	modules, err := h.service.GetModulesByCourseID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, modules)
}

// UpdateModuleRequest contém o corpo de atualização parcial de um módulo
type UpdateModuleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateModule atende PATCH /modules/:id
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	var req UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	updated, err := h.service.UpdateModuleByID(c.Request.Context(), bearerToken(c), c.Param("id"), module.UpdateModuleRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
