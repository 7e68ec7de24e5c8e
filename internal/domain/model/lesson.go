package model

import "time"

// Lesson representa uma aula dentro de um módulo
type Lesson struct {
	ID          string `json:"id"`
	ModuleID    string `json:"moduleId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// LessonEntity é a representação de banco de dados de uma aula.
// O nome é único dentro do módulo.
type LessonEntity struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	ModuleID    string `gorm:"index;not null;type:uuid;uniqueIndex:idx_module_lesson_name"`
	Name        string `gorm:"not null;size:100;uniqueIndex:idx_module_lesson_name"`
	Description string `gorm:"size:500"`
	URL         string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName define o nome da tabela
func (LessonEntity) TableName() string {
	return "lessons"
}

// ToModel converte a entidade em modelo de domínio
func (e *LessonEntity) ToModel() *Lesson {
	return &Lesson{
		ID:          e.ID,
		ModuleID:    e.ModuleID,
		Name:        e.Name,
		Description: e.Description,
		URL:         e.URL,
	}
}

// ToEntity converte o modelo de domínio em entidade de banco
func (l *Lesson) ToEntity() *LessonEntity {
	return &LessonEntity{
		ID:          l.ID,
		ModuleID:    l.ModuleID,
		Name:        l.Name,
		Description: l.Description,
		URL:         l.URL,
	}
}
