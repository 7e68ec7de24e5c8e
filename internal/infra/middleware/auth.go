package middleware

import (
	"net/http"
	"strings"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware protege rotas operacionais (métricas, health detalhado)
// que ficam fora do fluxo normal dos serviços, onde a autorização
// acontece dentro de cada caso de uso.
type AuthMiddleware struct {
	resolver *identity.Resolver
	logger   *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(resolver *identity.Resolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// RequireAdmin exige token válido de administrador
func (m *AuthMiddleware) RequireAdmin(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato inválido do token"})
		return
	}

	user, err := m.resolver.Resolve(c.Request.Context(), tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	if user.Privilege != model.PrivilegeAdministrator {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado: permissão de administrador necessária"})
		return
	}

	c.Set("user", user)
	c.Next()
}
