package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		strength bool
		weakness bool
	}{
		{"exactly 70 percent is a strength", 7, 10, true, false},
		{"above 70 percent is a strength", 9, 10, true, false},
		{"between bands is neither", 5, 10, false, false},
		{"forty percent of ten is neutral", 4, 10, false, false},
		{"exactly 40 percent is neutral", 2, 5, false, false},
		{"just below 40 percent is a weakness", 3, 10, false, true},
		{"zero correct is a weakness", 0, 4, false, true},
		{"perfect is a strength", 3, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := ConceptTally{
				"tema": &ConceptScore{Total: tt.total, Correct: tt.correct},
			}
			strengths, weaknesses := Classify(tally)

			assert.Equal(t, tt.strength, len(strengths) == 1, "strengths: %v", strengths)
			assert.Equal(t, tt.weakness, len(weaknesses) == 1, "weaknesses: %v", weaknesses)
		})
	}
}

func TestClassifyIgnoresEmptyConcepts(t *testing.T) {
	tally := ConceptTally{
		"vacío": &ConceptScore{Total: 0, Correct: 0},
	}
	strengths, weaknesses := Classify(tally)

	assert.Empty(t, strengths)
	assert.Empty(t, weaknesses)
}

func TestClassifyOutputIsSorted(t *testing.T) {
	tally := ConceptTally{
		"Geometría":   &ConceptScore{Total: 2, Correct: 2},
		"Álgebra":     &ConceptScore{Total: 2, Correct: 2},
		"Fracciones":  &ConceptScore{Total: 3, Correct: 0},
		"Estadística": &ConceptScore{Total: 3, Correct: 0},
	}

	strengths, weaknesses := Classify(tally)

	assert.Equal(t, []string{"Geometría", "Álgebra"}, strengths)
	assert.Equal(t, []string{"Estadística", "Fracciones"}, weaknesses)
}
