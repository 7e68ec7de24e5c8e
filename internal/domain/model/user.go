package model

import "time"

// Privilege representa o nível de acesso de um usuário na plataforma
type Privilege string

const (
	PrivilegeAdministrator Privilege = "administrator"
	PrivilegeStudent       Privilege = "student"
)

// IsValid verifica se o privilégio é um dos valores conhecidos
func (p Privilege) IsValid() bool {
	return p == PrivilegeAdministrator || p == PrivilegeStudent
}

// User representa um usuário do sistema (administrador ou estudante)
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email,omitempty"`
	Username     string    `json:"username"`
	CPF          string    `json:"cpf,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Password     string    `json:"-"`
	Privilege    Privilege `json:"privilege"`
	IssuedAt     time.Time `json:"-"`
	LastAccessAt time.Time `json:"-"`
}

// UserEntity é a representação de banco de dados de um usuário
type UserEntity struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"uniqueIndex;not null;size:100"`
	Username     string    `gorm:"uniqueIndex;not null;size:50"`
	CPF          string    `gorm:"column:cpf;uniqueIndex;not null;size:14"`
	FirstName    string    `gorm:"not null;size:50"`
	LastName     string    `gorm:"not null;size:50"`
	Password     string    `gorm:"not null"`
	Privilege    string    `gorm:"not null;default:student;size:20"`
	IssuedAt     time.Time `gorm:"autoCreateTime"`
	LastAccessAt time.Time
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}

// ToModel converte a entidade em modelo de domínio
func (e *UserEntity) ToModel() *User {
	return &User{
		ID:           e.ID,
		Email:        e.Email,
		Username:     e.Username,
		CPF:          e.CPF,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Password:     e.Password,
		Privilege:    Privilege(e.Privilege),
		IssuedAt:     e.IssuedAt,
		LastAccessAt: e.LastAccessAt,
	}
}

// ToEntity converte o modelo de domínio em entidade de banco
func (u *User) ToEntity() *UserEntity {
	return &UserEntity{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		CPF:          u.CPF,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Password:     u.Password,
		Privilege:    string(u.Privilege),
		IssuedAt:     u.IssuedAt,
		LastAccessAt: u.LastAccessAt,
	}
}

// UserDTO é a projeção pública de um usuário, sem dados sensíveis
type UserDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Privilege Privilege `json:"privilege"`
}

// ToDTO projeta o usuário para a representação pública
func (u *User) ToDTO() *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Privilege: u.Privilege,
	}
}
