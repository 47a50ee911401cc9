package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		lessons   []uint
		completed map[uint]bool
		want      int
	}{
		{"empty lesson list is zero, not a fault", nil, nil, 0},
		{"nothing completed", []uint{1, 2, 3}, nil, 0},
		{"all completed", []uint{1, 2, 3}, map[uint]bool{1: true, 2: true, 3: true}, 100},
		{"one of three rounds to 33", []uint{1, 2, 3}, map[uint]bool{1: true}, 33},
		{"two of three rounds to 67", []uint{1, 2, 3}, map[uint]bool{1: true, 2: true}, 67},
		{"half", []uint{1, 2, 3, 4}, map[uint]bool{2: true, 4: true}, 50},
		{"false entries count as incomplete", []uint{1, 2}, map[uint]bool{1: true, 2: false}, 50},
		{"five of six rounds to 83", []uint{1, 2, 3, 4, 5, 6}, map[uint]bool{1: true, 2: true, 3: true, 4: true, 5: true}, 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.lessons, tt.completed))
		})
	}
}

func TestNextLessonFirstIncomplete(t *testing.T) {
	lessons := []uint{10, 20, 30}

	// Completing out of order still points at the earliest gap.
	next, review := NextLesson(lessons, map[uint]bool{10: true, 30: true})
	assert.Equal(t, uint(20), next)
	assert.False(t, review)

	next, review = NextLesson(lessons, nil)
	assert.Equal(t, uint(10), next)
	assert.False(t, review)
}

func TestNextLessonWrapsToFirstWhenDone(t *testing.T) {
	lessons := []uint{10, 20, 30}

	next, review := NextLesson(lessons, map[uint]bool{10: true, 20: true, 30: true})
	assert.Equal(t, uint(10), next)
	assert.True(t, review)
}

func TestNextLessonEmptyList(t *testing.T) {
	next, review := NextLesson(nil, nil)
	assert.Equal(t, uint(0), next)
	assert.False(t, review)
}
