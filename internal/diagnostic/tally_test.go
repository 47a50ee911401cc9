package diagnostic

import (
	"testing"

	"tutoria_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(id uint, concept string, correctOption uint, others ...uint) model.DiagnosticQuestion {
	opts := []model.DiagnosticOption{
		{BaseModel: model.BaseModel{ID: correctOption}, Correct: true},
	}
	for _, o := range others {
		opts = append(opts, model.DiagnosticOption{BaseModel: model.BaseModel{ID: o}})
	}
	return model.DiagnosticQuestion{
		BaseModel: model.BaseModel{ID: id},
		Concept:   concept,
		Order:     int(id),
		Options:   opts,
	}
}

func TestTallyCountsEveryQuestionTowardTotal(t *testing.T) {
	questions := []model.DiagnosticQuestion{
		question(1, "Álgebra", 10, 11),
		question(2, "Álgebra", 20, 21),
		question(3, "Geometría", 30, 31),
	}

	// Question 1 answered correctly, question 2 incorrectly, question 3
	// never touched.
	answers := map[uint]Answer{
		1: {Kind: Selected, OptionID: 10},
		2: {Kind: Selected, OptionID: 21},
	}

	tally := Tally(questions, answers)

	require.Contains(t, tally, "Álgebra")
	require.Contains(t, tally, "Geometría")

	assert.Equal(t, 2, tally["Álgebra"].Total)
	assert.Equal(t, 1, tally["Álgebra"].Correct)

	// Untouched questions still count toward the concept total.
	assert.Equal(t, 1, tally["Geometría"].Total)
	assert.Equal(t, 0, tally["Geometría"].Correct)

	sum := 0
	for _, score := range tally {
		sum += score.Total
	}
	assert.Equal(t, len(questions), sum)
}

func TestTallySkippedConceptShowsZeroOverN(t *testing.T) {
	questions := []model.DiagnosticQuestion{
		question(1, "Fracciones", 10),
		question(2, "Fracciones", 20),
	}
	answers := map[uint]Answer{
		1: {Kind: Skipped},
		2: {Kind: Skipped},
	}

	tally := Tally(questions, answers)

	assert.Equal(t, 2, tally["Fracciones"].Total)
	assert.Equal(t, 0, tally["Fracciones"].Correct)
}
