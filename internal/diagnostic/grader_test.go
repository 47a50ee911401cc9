package diagnostic

import (
	"testing"

	"tutoria_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	q := &model.DiagnosticQuestion{
		BaseModel: model.BaseModel{ID: 1},
		Prompt:    "2 + 2",
		Concept:   "Aritmética",
		Options: []model.DiagnosticOption{
			{BaseModel: model.BaseModel{ID: 10}, Text: "3"},
			{BaseModel: model.BaseModel{ID: 11}, Text: "4", Correct: true},
			{BaseModel: model.BaseModel{ID: 12}, Text: "5"},
		},
	}

	assert.True(t, Grade(q, 11))
	assert.False(t, Grade(q, 10))
	assert.False(t, Grade(q, 12))
}

func TestGradeForeignOptionIsIncorrectNotFatal(t *testing.T) {
	q := &model.DiagnosticQuestion{
		BaseModel: model.BaseModel{ID: 1},
		Options: []model.DiagnosticOption{
			{BaseModel: model.BaseModel{ID: 10}, Correct: true},
		},
	}

	// An option id from some other question grades as incorrect.
	assert.False(t, Grade(q, 999))
}
