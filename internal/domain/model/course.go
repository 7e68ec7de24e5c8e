package model

import "time"

// Course representa um curso criado por um administrador
type Course struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Photo             string  `json:"photo"`
	Price             float64 `json:"price"`
	OwnerID           string  `json:"ownerId"`
	Rating            float64 `json:"rating"`
	NumberOfRatings   int     `json:"numberOfRatings"`
	EnrollmentsNumber int     `json:"enrollmentsNumber"`
}

// AverageRating calcula a média das avaliações do curso
func (c *Course) AverageRating() float64 {
	if c.NumberOfRatings == 0 {
		return 0
	}
	return c.Rating / float64(c.NumberOfRatings)
}

// CourseEntity é a representação de banco de dados de um curso
type CourseEntity struct {
	ID                string  `gorm:"primaryKey;type:uuid"`
	Name              string  `gorm:"uniqueIndex;not null;size:100"`
	Photo             string  `gorm:"size:255"`
	Price             float64 `gorm:"not null"`
	OwnerID           string  `gorm:"index;not null;type:uuid"`
	Rating            float64 `gorm:"not null;default:0"`
	NumberOfRatings   int     `gorm:"not null;default:0"`
	EnrollmentsNumber int     `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName define o nome da tabela
func (CourseEntity) TableName() string {
	return "courses"
}

// ToModel converte a entidade em modelo de domínio
func (e *CourseEntity) ToModel() *Course {
	return &Course{
		ID:                e.ID,
		Name:              e.Name,
		Photo:             e.Photo,
		Price:             e.Price,
		OwnerID:           e.OwnerID,
		Rating:            e.Rating,
		NumberOfRatings:   e.NumberOfRatings,
		EnrollmentsNumber: e.EnrollmentsNumber,
	}
}

// ToEntity converte o modelo de domínio em entidade de banco
func (c *Course) ToEntity() *CourseEntity {
	return &CourseEntity{
		ID:                c.ID,
		Name:              c.Name,
		Photo:             c.Photo,
		Price:             c.Price,
		OwnerID:           c.OwnerID,
		Rating:            c.Rating,
		NumberOfRatings:   c.NumberOfRatings,
		EnrollmentsNumber: c.EnrollmentsNumber,
	}
}
