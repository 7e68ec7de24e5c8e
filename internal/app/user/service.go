package user

import (
	"context"
	"time"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/domain/model"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/infra/metrics"
	apierrors "github.com/diillson/course-platform-go/pkg/errors"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/diillson/course-platform-go/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserRequest contém os dados de cadastro de um usuário
type CreateUserRequest struct {
	Email     string
	Username  string
	CPF       string
	FirstName string
	LastName  string
	Password  string
}

// UpdateUserRequest contém os campos de atualização parcial do próprio
// usuário; campos vazios são ignorados.
type UpdateUserRequest struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// LoginResponse agrupa o retorno do login
type LoginResponse struct {
	Me     *model.UserDTO
	Tokens *security.TokenPair
}

// Service implementa os casos de uso de usuários
type Service struct {
	users        repository.UserRepository
	resolver     *identity.Resolver
	keyManager   *security.KeyManager
	cpfValidator validation.CPFValidator
	metrics      *metrics.APIMetrics
	logger       *zap.Logger
}

// NewService cria um novo serviço de usuários
func NewService(users repository.UserRepository, resolver *identity.Resolver, keyManager *security.KeyManager, cpfValidator validation.CPFValidator, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *Service {
	return &Service{
		users:        users,
		resolver:     resolver,
		keyManager:   keyManager,
		cpfValidator: cpfValidator,
		metrics:      apiMetrics,
		logger:       logger,
	}
}

// CreateAdministrator cadastra um administrador. Enquanto não existir
// nenhum administrador o cadastro dispensa token; a partir do primeiro,
// exige token de administrador válido cuja senha apresentada confira com
// o hash armazenado do admin que está agindo: uma checagem explícita de
// senha além da verificação normal do token, por ser escalação de
// privilégio.
func (s *Service) CreateAdministrator(ctx context.Context, rawToken string, actingPassword string, req CreateUserRequest) (*model.User, error) {
	hasAdmin, err := s.users.ExistsAdmin(ctx)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	if hasAdmin {
		if rawToken == "" {
			return nil, apierrors.BadRequest("Token não fornecido", nil)
		}

		actingAdmin, err := s.resolver.Resolve(ctx, rawToken)
		if err != nil {
			return nil, err
		}

		if actingAdmin.Privilege != model.PrivilegeAdministrator {
			return nil, apierrors.Forbidden("Acesso negado", nil)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(actingAdmin.Password), []byte(actingPassword)); err != nil {
			return nil, apierrors.Forbidden("Acesso negado", nil)
		}
	}

	return s.createUser(ctx, req, model.PrivilegeAdministrator)
}

// CreateStudent cadastra um estudante; não exige autenticação
func (s *Service) CreateStudent(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	return s.createUser(ctx, req, model.PrivilegeStudent)
}

func (s *Service) createUser(ctx context.Context, req CreateUserRequest, privilege model.Privilege) (*model.User, error) {
	sameEmail, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if sameEmail != nil {
		return nil, apierrors.Conflict("Usuário já existe", nil)
	}

	sameUsername, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if sameUsername != nil {
		return nil, apierrors.Conflict("Usuário já existe", nil)
	}

	if !validation.IsValidCPF(req.CPF, s.cpfValidator) {
		return nil, apierrors.BadRequest("CPF inválido", nil)
	}

	sameCPF, err := s.users.GetUserByCPF(ctx, req.CPF)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if sameCPF != nil {
		return nil, apierrors.Conflict("Usuário já existe", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("erro ao gerar hash da senha", zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	now := time.Now()
	newUser, err := s.users.CreateUser(ctx, &model.User{
		Email:        req.Email,
		Username:     req.Username,
		CPF:          req.CPF,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     string(hashedPassword),
		Privilege:    privilege,
		IssuedAt:     now,
		LastAccessAt: now,
	})
	if err != nil {
		s.logger.Error("erro ao criar usuário",
			zap.String("username", req.Username),
			zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.logger.Info("usuário criado",
		zap.String("id", newUser.ID),
		zap.String("privilege", string(privilege)))

	return newUser, nil
}

// Login autentica por e-mail e senha e emite o par de tokens. O token
// carrega o hash da senha vigente como prova de revogação.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if user == nil {
		s.recordLogin("failure")
		return nil, apierrors.NotFound("Usuário", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordLogin("failure")
		return nil, apierrors.Forbidden("Não foi possível entrar na conta", nil)
	}

	tokens, err := s.keyManager.GenerateTokenPair(user.ID, user.Password, string(user.Privilege))
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	s.recordLogin("success")
	s.logger.Info("login bem-sucedido", zap.String("user_id", user.ID))

	return &LoginResponse{
		Me:     user.ToDTO(),
		Tokens: tokens,
	}, nil
}

func (s *Service) recordLogin(result string) {
	if s.metrics != nil {
		s.metrics.LoginAttempt(result)
	}
}

// Refresh reemite o par de tokens a partir de um refresh token válido
func (s *Service) Refresh(ctx context.Context, rawRefreshToken string) (*security.TokenPair, error) {
	user, err := s.resolver.Resolve(ctx, rawRefreshToken)
	if err != nil {
		return nil, err
	}

	tokens, err := s.keyManager.GenerateTokenPair(user.ID, user.Password, string(user.Privilege))
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return tokens, nil
}

// GetMe retorna a projeção pública do usuário autenticado
func (s *Service) GetMe(ctx context.Context, rawToken string) (*model.UserDTO, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	return user.ToDTO(), nil
}

// UpdateUser aplica atualização parcial nos dados do próprio usuário.
// Campos vazios não alteram nada; uma atualização vazia é um no-op
// silencioso. Como a senha pode mudar, um novo token é emitido.
func (s *Service) UpdateUser(ctx context.Context, rawToken string, req UpdateUserRequest) (string, error) {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return "", err
	}

	if req.Email != "" {
		user.Email = req.Email
	}

	if req.Username != "" {
		user.Username = req.Username
	}

	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return "", apierrors.InternalServer("", err)
		}
		user.Password = string(hashedPassword)
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}

	if req.LastName != "" {
		user.LastName = req.LastName
	}

	if _, err := s.users.ReplaceUserByID(ctx, user.ID, user); err != nil {
		s.logger.Error("erro ao atualizar usuário", zap.String("id", user.ID), zap.Error(err))
		return "", apierrors.InternalServer("", err)
	}

	newToken, err := s.keyManager.GenerateToken(user.ID, user.Password, string(user.Privilege), s.keyManager.RefreshTTL())
	if err != nil {
		return "", apierrors.InternalServer("", err)
	}

	return newToken, nil
}

// DeleteUser remove a própria conta do usuário autenticado
func (s *Service) DeleteUser(ctx context.Context, rawToken string) error {
	user, err := s.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return err
	}

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		s.logger.Error("erro ao remover usuário", zap.String("id", user.ID), zap.Error(err))
		return apierrors.InternalServer("", err)
	}

	s.logger.Info("usuário removido", zap.String("id", user.ID))
	return nil
}
