package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/app/enrollment"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// EnrollmentHandler expõe os endpoints de matrículas
type EnrollmentHandler struct {
	service *enrollment.Service
	logger  *zap.Logger
}

// NewEnrollmentHandler cria um novo handler de matrículas
func NewEnrollmentHandler(service *enrollment.Service, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{service: service, logger: logger}
}

// CreateEnrollmentRequest contém o curso em que o estudante se matricula
type CreateEnrollmentRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// CreateEnrollment atende POST /enrollments
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateEnrollment(c.Request.Context(), bearerToken(c), req.CourseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMyEnrollments atende GET /enrollments
func (h *EnrollmentHandler) GetMyEnrollments(c *gin.Context) {
	enrollments, err := h.service.FindEnrollmentsByStudent(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}
