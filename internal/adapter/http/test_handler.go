package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/app/test"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// TestHandler expõe os endpoints de testes e respostas
type TestHandler struct {
	service *test.Service
	logger  *zap.Logger
}

// NewTestHandler cria um novo handler de testes
func NewTestHandler(service *test.Service, logger *zap.Logger) *TestHandler {
	return &TestHandler{service: service, logger: logger}
}

// CreateTestRequest contém o corpo de criação de um teste
type CreateTestRequest struct {
	ModuleID      string   `json:"moduleId" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Answers       []string `json:"answers" binding:"required,min=2"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// CreateTest atende POST /tests
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateTest(c.Request.Context(), bearerToken(c), test.CreateTestRequest{
		ModuleID:      req.ModuleID,
		Question:      req.Question,
		Answers:       req.Answers,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetTest atende GET /tests/:id. Com o parâmetro question presente na
// query de GET /tests, a busca é por pergunta.
func (h *TestHandler) GetTest(c *gin.Context) {
	found, err := h.service.GetTestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// GetTestsByQuestion atende GET /tests?question=...
func (h *TestHandler) GetTestsByQuestion(c *gin.Context) {
	question := c.Query("question")
	if question == "" {
		respondError(c, h.logger, apierrors.BadRequest("Parâmetro question é obrigatório", nil))
		return
	}

	tests, err := h.service.GetAllTestsByQuestion(c.Request.Context(), question)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}

// GetTestsByModule atende GET /modules/:id/tests
func (h *TestHandler) GetTestsByModule(c *gin.Context) {
	tests, err := h.service.GetAllTestsByModuleID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}

// CreateAnswerRequest contém a resposta enviada pelo estudante
type CreateAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// CreateAnswer atende POST /tests/:id/answers
func (h *TestHandler) CreateAnswer(c *gin.Context) {
	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apierrors.BadRequest("Dados inválidos", err))
		return
	}

	created, err := h.service.CreateAnswer(c.Request.Context(), bearerToken(c), test.CreateAnswerRequest{
		TestID: c.Param("id"),
		Answer: req.Answer,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMyAnswers atende GET /tests/:id/answers, listando as respostas do
// usuário autenticado para o teste
func (h *TestHandler) GetMyAnswers(c *gin.Context) {
	answers, err := h.service.GetAllAnswersByUserAndTestID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, answers)
}
