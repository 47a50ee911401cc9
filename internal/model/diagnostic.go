package model

import (
	"encoding/json"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// swagger:model Diagnostic
type Diagnostic struct {
	BaseModel
	Title       string               `gorm:"size:255;not null" json:"title"`
	Description string               `gorm:"type:text" json:"description"`
	Subject     string               `gorm:"size:100" json:"subject"`
	GradeBand   string               `gorm:"size:20" json:"gradeBand"`
	IsPublished bool                 `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time           `json:"publishedAt,omitempty"`
	Questions   []DiagnosticQuestion `gorm:"foreignKey:DiagnosticID" json:"questions,omitempty"`
}

func (Diagnostic) TableName() string {
	return "diagnostics"
}

// DiagnosticQuestion is one item of a fixed ordered question battery.
// Concept is the free-text topical tag correctness is grouped by,
// e.g. "Ecuaciones cuadráticas". Difficulty is informational only and
// carries no scoring weight.
// swagger:model DiagnosticQuestion
type DiagnosticQuestion struct {
	BaseModel
	DiagnosticID uint               `gorm:"index;type:bigint unsigned" json:"diagnosticId"`
	Prompt       string             `gorm:"type:text;not null" json:"prompt"`
	Concept      string             `gorm:"size:100;not null" json:"concept"`
	Difficulty   Difficulty         `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Order        int                `gorm:"default:0" json:"order"`
	Options      []DiagnosticOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (DiagnosticQuestion) TableName() string {
	return "diagnostic_questions"
}

// Invariant: exactly one option per question has Correct = true.
// swagger:model DiagnosticOption
type DiagnosticOption struct {
	BaseModel
	QuestionID  uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text        string `gorm:"type:text;not null" json:"text"`
	Correct     bool   `gorm:"default:false" json:"-"`
	Explanation string `gorm:"type:text" json:"explanation,omitempty"`
}

func (DiagnosticOption) TableName() string {
	return "diagnostic_options"
}

// DiagnosticAttempt is the persisted snapshot of a finalized session.
// One logical row per (user, diagnostic); a re-taken diagnostic
// overwrites the previous attempt.
// swagger:model DiagnosticAttempt
type DiagnosticAttempt struct {
	UUIDBase
	UserID            uint            `gorm:"index:idx_user_diagnostic,unique;type:bigint unsigned" json:"userId"`
	DiagnosticID      uint            `gorm:"index:idx_user_diagnostic,unique;type:bigint unsigned" json:"diagnosticId"`
	Answers           json.RawMessage `gorm:"type:json" json:"answers"`
	CorrectCount      int             `gorm:"default:0" json:"correctCount"`
	IncorrectCount    int             `gorm:"default:0" json:"incorrectCount"`
	SkippedCount      int             `gorm:"default:0" json:"skippedCount"`
	PercentageCorrect int             `gorm:"default:0" json:"percentageCorrect"`
	Strengths         []string        `gorm:"serializer:json;type:json" json:"strengths"`
	Weaknesses        []string        `gorm:"serializer:json;type:json" json:"weaknesses"`
	Recommendations   []string        `gorm:"serializer:json;type:json" json:"recommendations"`
	FinalizedAt       time.Time       `json:"finalizedAt"`
}

func (DiagnosticAttempt) TableName() string {
	return "diagnostic_attempts"
}
