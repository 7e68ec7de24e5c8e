package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/app/course"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// CourseHandler expõe os endpoints de cursos
type CourseHandler struct {
	service *course.Service
	logger  *zap.Logger
}

// NewCourseHandler cria um novo handler de cursos
func NewCourseHandler(service *course.Service, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{service: service, logger: logger}
}

// CreateCourseRequest contém o corpo de criação de um curso
type CreateCourseRequest struct {
	Name  string  `json:"name" binding:"required"`
	Photo string  `json:"photo"`
	Price float64 `json:"price" binding:"gte=0"`
}

// CreateCourse atende POST /courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateCourse(c.Request.Context(), bearerToken(c), course.CreateCourseRequest{
		Name:  req.Name,
		Photo: req.Photo,
		Price: req.Price,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetCourse atende GET /courses/:id; endpoint público
func (h *CourseHandler) GetCourse(c *gin.Context) {
	found, err := h.service.GetCourseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// GetAllCourses atende GET /courses; endpoint público
func (h *CourseHandler) GetAllCourses(c *gin.Context) {
	courses, err := h.service.GetAllCourses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetMyCourses atende GET /courses/mine, listando os cursos do
// administrador autenticado
func (h *CourseHandler) GetMyCourses(c *gin.Context) {
	courses, err := h.service.GetCoursesByOwner(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// UpdateCourseRequest contém o corpo de atualização parcial de um curso
type UpdateCourseRequest struct {
	Name  string  `json:"name"`
	Photo string  `json:"photo"`
	Price float64 `json:"price" binding:"gte=0"`
}

// UpdateCourse atende PATCH /courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	updated, err := h.service.UpdateCourse(c.Request.Context(), bearerToken(c), c.Param("id"), course.UpdateCourseRequest{
		Name:  req.Name,
		Photo: req.Photo,
		Price: req.Price,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RateCourseRequest contém a nota dada pelo estudante
type RateCourseRequest struct {
	Rating float64 `json:"rating" binding:"required,gte=0,lte=5"`
}

// RateCourse atende POST /courses/:id/ratings
func (h *CourseHandler) RateCourse(c *gin.Context) {
	var req RateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	rated, err := h.service.RateCourse(c.Request.Context(), bearerToken(c), c.Param("id"), req.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            rated.ID,
		"name":          rated.Name,
		"averageRating": rated.AverageRating(),
	})
}

// DeleteCourse atende DELETE /courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.service.DeleteCourse(c.Request.Context(), bearerToken(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
