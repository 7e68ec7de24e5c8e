package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/diillson/course-platform-go/pkg/errors"
)

// respondError traduz um erro da aplicação para a resposta HTTP. Erros
// que não são APIError viram 500 sem vazar detalhes internos.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		logger.Error("erro não mapeado no handler",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if apiErr.Code >= http.StatusInternalServerError {
		logger.Error("erro interno",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}

	body := gin.H{"error": apiErr.Message}
	if apiErr.Details != nil {
		body["details"] = apiErr.Details
	}
	c.JSON(apiErr.Code, body)
}

// bearerToken extrai o token do cabeçalho Authorization. Retorna string
// vazia quando ausente ou malformado; os serviços tratam token vazio.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
