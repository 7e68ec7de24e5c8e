package repository

import (
	"context"

	"github.com/diillson/course-platform-go/internal/domain/model"
)

// UserRepository define a interface para armazenamento de usuários.
// Métodos de busca retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	// CreateUser persiste um novo usuário
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// DeleteUser remove um usuário pelo id
	DeleteUser(ctx context.Context, id string) error

	// ExistsAdmin informa se já existe ao menos um administrador
	ExistsAdmin(ctx context.Context) (bool, error)

	// GetUserByID obtém um usuário pelo id
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// GetUserByUsername obtém um usuário pelo username
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// GetUserByEmail obtém um usuário pelo e-mail
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByCPF obtém um usuário pelo CPF
	GetUserByCPF(ctx context.Context, cpf string) (*model.User, error)

	// ReplaceUserByID substitui integralmente os dados de um usuário
	ReplaceUserByID(ctx context.Context, id string, user *model.User) (*model.User, error)
}
