package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/app/lesson"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// LessonHandler expõe os endpoints de aulas
type LessonHandler struct {
	service *lesson.Service
	logger  *zap.Logger
}

// NewLessonHandler cria um novo handler de aulas
func NewLessonHandler(service *lesson.Service, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{service: service, logger: logger}
}

// CreateLessonRequest contém o corpo de criação de uma aula
type CreateLessonRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,url"`
}

// CreateLesson atende POST /modules/:id/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateLesson(c.Request.Context(), bearerToken(c), c.Param("id"), lesson.CreateLessonRequest{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetLesson atende GET /lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	found, err := h.service.GetLessonByID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// GetLessonsByModule atende GET /modules/:id/lessons
func (h *LessonHandler) GetLessonsByModule(c *gin.Context) {
	lessons, err := h.service.GetAllLessonsByModuleID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, lessons)
}
