package security

import (
	"os"
)

// GetJWTSecret obtém o segredo JWT de diferentes fontes na seguinte ordem:
// 1. Variável de ambiente JWT_SECRET_KEY
// 2. Variável de ambiente CP_AUTH_JWT_SECRET_KEY (prefixo do viper)
// O segredo nunca deve sair do processo; quem o possui pode cunhar tokens.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret != "" {
		return []byte(secret)
	}

	secret = os.Getenv("CP_AUTH_JWT_SECRET_KEY")
	if secret != "" {
		return []byte(secret)
	}

	return nil
}
