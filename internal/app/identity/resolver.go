package identity

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"go.uber.org/zap"
)

// Resolver resolve o usuário vivo a partir de um bearer token. Está no
// caminho quente de quase toda operação autenticada: não tem efeitos
// colaterais e é determinístico para o mesmo token e estado do repositório.
type Resolver struct {
	keyManager *security.KeyManager
	users      repository.UserRepository
	logger     *zap.Logger
}

// NewResolver cria um novo resolvedor de identidade
func NewResolver(keyManager *security.KeyManager, users repository.UserRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		keyManager: keyManager,
		users:      users,
		logger:     logger,
	}
}

// Resolve verifica o token, carrega o usuário e compara o hash de senha
// embutido no token com o hash vigente. O hash viaja no token justamente
// para que uma troca de senha invalide todos os tokens anteriores sem
// lista de revogação: a comparação é byte a byte contra o hash armazenado,
// nunca um novo hash-and-compare.
func (r *Resolver) Resolve(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := r.keyManager.VerifyToken(rawToken)
	if err != nil {
		return nil, apierrors.Unauthorized("Token inválido ou expirado", err)
	}

	user, err := r.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		r.logger.Error("falha ao buscar usuário do token",
			zap.String("user_id", claims.Subject),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}
	if user == nil {
		// Cobre o caso de usuário removido apresentando um token outrora válido
		return nil, apierrors.Unauthorized("Não foi possível autenticar o usuário", nil)
	}

	if claims.Password != user.Password {
		return nil, apierrors.Forbidden("Acesso negado", nil)
	}

	return user, nil
}
