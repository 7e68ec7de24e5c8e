package model

import (
	"encoding/json"
	"time"
)

// Test representa uma questão de múltipla escolha de um módulo
type Test struct {
	ID            string   `json:"id"`
	ModuleID      string   `json:"moduleId"`
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Answer representa a resposta de um usuário a um teste
type Answer struct {
	ID     string `json:"id"`
	TestID string `json:"testId"`
	UserID string `json:"userId"`
	Answer string `json:"answer"`
}

// TestEntity é a representação de banco de dados de um teste.
// As alternativas são serializadas em JSON na coluna answers.
type TestEntity struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	ModuleID      string `gorm:"index;not null;type:uuid"`
	Question      string `gorm:"not null;size:500"`
	AnswersJSON   string `gorm:"column:answers;type:json;not null"`
	CorrectAnswer string `gorm:"not null;size:255"`
	CreatedAt     time.Time
}

// TableName define o nome da tabela
func (TestEntity) TableName() string {
	return "tests"
}

// ToModel converte a entidade em modelo de domínio
func (e *TestEntity) ToModel() (*Test, error) {
	var answers []string
	if e.AnswersJSON != "" {
		if err := json.Unmarshal([]byte(e.AnswersJSON), &answers); err != nil {
			return nil, err
		}
	}

	return &Test{
		ID:            e.ID,
		ModuleID:      e.ModuleID,
		Question:      e.Question,
		Answers:       answers,
		CorrectAnswer: e.CorrectAnswer,
	}, nil
}

// ToEntity converte o modelo de domínio em entidade de banco
func (t *Test) ToEntity() (*TestEntity, error) {
	answersJSON, err := json.Marshal(t.Answers)
	if err != nil {
		return nil, err
	}

	return &TestEntity{
		ID:            t.ID,
		ModuleID:      t.ModuleID,
		Question:      t.Question,
		AnswersJSON:   string(answersJSON),
		CorrectAnswer: t.CorrectAnswer,
	}, nil
}

// AnswerEntity é a representação de banco de dados de uma resposta
type AnswerEntity struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	TestID    string `gorm:"index;not null;type:uuid"`
	UserID    string `gorm:"index;not null;type:uuid"`
	Answer    string `gorm:"not null;size:255"`
	CreatedAt time.Time
}

// TableName define o nome da tabela
func (AnswerEntity) TableName() string {
	return "answers"
}

// ToModel converte a entidade em modelo de domínio
func (e *AnswerEntity) ToModel() *Answer {
	return &Answer{
		ID:     e.ID,
		TestID: e.TestID,
		UserID: e.UserID,
		Answer: e.Answer,
	}
}

// ToEntity converte o modelo de domínio em entidade de banco
func (a *Answer) ToEntity() *AnswerEntity {
	return &AnswerEntity{
		ID:     a.ID,
		TestID: a.TestID,
		UserID: a.UserID,
		Answer: a.Answer,
	}
}
