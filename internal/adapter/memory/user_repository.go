// Package memory fornece implementações em memória dos repositórios,
// usadas pelo driver "memory" e pelos testes de serviço.
package memory

import (
	"context"
	"sync"

	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/google/uuid"
)

// UserRepository implementa repository.UserRepository em memória
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewUserRepository cria um repositório de usuários em memória
func NewUserRepository() repository.UserRepository {
	return &UserRepository{users: make(map[string]*model.User)}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *UserRepository) ExistsAdmin(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Privilege == model.PrivilegeAdministrator {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	result := *user
	return &result, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Username == username })
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Email == email })
}

func (r *UserRepository) GetUserByCPF(ctx context.Context, cpf string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.CPF == cpf })
}

func (r *UserRepository) findBy(match func(*model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			result := *user
			return &result, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) ReplaceUserByID(ctx context.Context, id string, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return nil, nil
	}

	stored := *user
	stored.ID = id
	r.users[id] = &stored

	result := stored
	return &result, nil
}
