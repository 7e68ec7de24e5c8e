package model

import "time"

// Module representa um módulo de conteúdo dentro de um curso
type Module struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ModuleEntity é a representação de banco de dados de um módulo.
// O nome é único dentro do curso, não globalmente.
type ModuleEntity struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CourseID    string `gorm:"index;not null;type:uuid;uniqueIndex:idx_course_module_name"`
	Name        string `gorm:"not null;size:100;uniqueIndex:idx_course_module_name"`
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName define o nome da tabela
func (ModuleEntity) TableName() string {
	return "modules"
}

// ToModel converte a entidade em modelo de domínio
func (e *ModuleEntity) ToModel() *Module {
	return &Module{
		ID:          e.ID,
		CourseID:    e.CourseID,
		Name:        e.Name,
		Description: e.Description,
	}
}

// ToEntity converte o modelo de domínio em entidade de banco
func (m *Module) ToEntity() *ModuleEntity {
	return &ModuleEntity{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Name:        m.Name,
		Description: m.Description,
	}
}
