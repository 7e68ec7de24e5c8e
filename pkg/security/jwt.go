package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidToken é retornado quando o token não pode ser verificado:
// assinatura inválida, payload malformado ou expiração.
var ErrInvalidToken = errors.New("token inválido")

// Claims carrega a identidade embutida no token. O hash da senha vigente
// no momento da emissão viaja junto: trocar a senha invalida todos os
// tokens anteriores sem necessidade de lista de revogação.
type Claims struct {
	Password  string `json:"password"`
	Privilege string `json:"privilege"`
	jwt.RegisteredClaims
}

// TokenPair agrupa o token de acesso de curta duração e o refresh token
// de longa duração emitidos juntos no login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// KeyManager assina e verifica tokens com segredo simétrico compartilhado
type KeyManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewKeyManager cria um gerenciador de chaves JWT
func NewKeyManager(secretKey []byte, accessTTL, refreshTTL time.Duration, logger *zap.Logger) (*KeyManager, error) {
	if len(secretKey) < 32 {
		return nil, errors.New("jwt secret key muito curta")
	}

	if accessTTL <= 0 {
		accessTTL = 30 * time.Second
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &KeyManager{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}, nil
}

// GenerateToken emite um token assinado para o usuário com a duração dada.
// passwordHash é o hash armazenado da senha, nunca o texto plano.
func (km *KeyManager) GenerateToken(userID, passwordHash, privilege string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		Password:  passwordHash,
		Privilege: privilege,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

// GenerateTokenPair emite o token de acesso e o refresh token de uma vez
func (km *KeyManager) GenerateTokenPair(userID, passwordHash, privilege string) (*TokenPair, error) {
	access, err := km.GenerateToken(userID, passwordHash, privilege, km.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := km.GenerateToken(userID, passwordHash, privilege, km.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshTTL retorna a duração do refresh token
func (km *KeyManager) RefreshTTL() time.Duration {
	return km.refreshTTL
}

// VerifyToken valida a assinatura e a expiração do token e retorna as claims
func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
