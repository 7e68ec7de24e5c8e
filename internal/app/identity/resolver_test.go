package identity_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/testutils"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolverFixture(t *testing.T) (*identity.Resolver, *security.KeyManager, func(*model.User) *model.User) {
	logger := testutils.TestLogger(t)
	users := memory.NewUserRepository()

	km, err := security.NewKeyManager([]byte("um-segredo-de-teste-com-mais-de-32-bytes"), 30*time.Second, time.Hour, logger)
	require.NoError(t, err)

	seed := func(u *model.User) *model.User {
		created, err := users.CreateUser(context.Background(), u)
		require.NoError(t, err)
		return created
	}

	return identity.NewResolver(km, users, logger), km, seed
}

func TestResolver_Resolve(t *testing.T) {
	resolver, km, seed := newResolverFixture(t)
	ctx := context.Background()

	alice := seed(&model.User{
		Email:     "alice@example.com",
		Username:  "alice",
		CPF:       "111.222.333-44",
		Password:  "$2a$10$hash-vigente",
		Privilege: model.PrivilegeStudent,
	})

	t.Run("token válido resolve o usuário", func(t *testing.T) {
		token, err := km.GenerateToken(alice.ID, alice.Password, string(alice.Privilege), time.Minute)
		require.NoError(t, err)

		user, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
		assert.Equal(t, alice.Email, user.Email)
	})

	t.Run("token inválido retorna 401", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "nao-e-um-token")
		assert.True(t, apierrors.IsStatus(err, http.StatusUnauthorized))
	})

	t.Run("usuário removido retorna 401", func(t *testing.T) {
		token, err := km.GenerateToken("id-inexistente", "hash", "student", time.Minute)
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		assert.True(t, apierrors.IsStatus(err, http.StatusUnauthorized))
	})

	t.Run("hash divergente retorna 403", func(t *testing.T) {
		// Token emitido antes de uma troca de senha
		token, err := km.GenerateToken(alice.ID, "$2a$10$hash-antigo", string(alice.Privilege), time.Minute)
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		assert.True(t, apierrors.IsStatus(err, http.StatusForbidden))
	})
}
