package model

import "time"

// Enrollment vincula um estudante a um curso em que ele está matriculado
type Enrollment struct {
	ID             string `json:"id"`
	StudentID      string `json:"studentId"`
	CourseID       string `json:"courseId"`
	HasRatedCourse bool   `json:"hasRatedCourse"`
}

// EnrollmentEntity é a representação de banco de dados de uma matrícula.
// O índice composto garante no máximo uma matrícula por (estudante, curso),
// mesmo sob requisições concorrentes que passem pela checagem da aplicação.
type EnrollmentEntity struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	StudentID      string `gorm:"not null;type:uuid;uniqueIndex:idx_student_course"`
	CourseID       string `gorm:"not null;type:uuid;uniqueIndex:idx_student_course"`
	HasRatedCourse bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
}

// TableName define o nome da tabela
func (EnrollmentEntity) TableName() string {
	return "enrollments"
}

// ToModel converte a entidade em modelo de domínio
func (e *EnrollmentEntity) ToModel() *Enrollment {
	return &Enrollment{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		HasRatedCourse: e.HasRatedCourse,
	}
}

// ToEntity converte o modelo de domínio em entidade de banco
func (en *Enrollment) ToEntity() *EnrollmentEntity {
	return &EnrollmentEntity{
		ID:             en.ID,
		StudentID:      en.StudentID,
		CourseID:       en.CourseID,
		HasRatedCourse: en.HasRatedCourse,
	}
}
