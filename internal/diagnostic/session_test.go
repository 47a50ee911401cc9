package diagnostic

import (
	"testing"

	"tutoria_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// battery builds a ten question diagnostic: four on Álgebra, three on
// Fracciones, three on Geometría. Option ids are question id * 10 for
// the correct one and +1, +2 for distractors.
func battery() *model.Diagnostic {
	diag := &model.Diagnostic{BaseModel: model.BaseModel{ID: 1}}
	concepts := []string{
		"Álgebra", "Álgebra", "Álgebra", "Álgebra",
		"Fracciones", "Fracciones", "Fracciones",
		"Geometría", "Geometría", "Geometría",
	}
	for i, concept := range concepts {
		id := uint(i + 1)
		diag.Questions = append(diag.Questions, question(id, concept, id*10, id*10+1, id*10+2))
	}
	return diag
}

func correctOption(id uint) uint { return id * 10 }
func wrongOption(id uint) uint   { return id*10 + 1 }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession("sess-1", 42, battery(), ruleTable())
}

func TestSessionFullTraversal(t *testing.T) {
	sess := newTestSession(t)

	// Álgebra: three correct, one wrong.
	require.NoError(t, sess.Select(1, correctOption(1)))
	require.NoError(t, sess.Select(2, correctOption(2)))
	require.NoError(t, sess.Select(3, correctOption(3)))
	require.NoError(t, sess.Select(4, wrongOption(4)))

	// Fracciones: one correct, two wrong.
	require.NoError(t, sess.Select(5, correctOption(5)))
	require.NoError(t, sess.Select(6, wrongOption(6)))
	require.NoError(t, sess.Select(7, wrongOption(7)))

	// Geometría: skipped entirely.
	for _, id := range []uint{8, 9, 10} {
		_, err := sess.Skip(id)
		require.NoError(t, err)
	}

	result := sess.Finalize()
	require.NotNil(t, result)

	assert.Equal(t, 4, result.CorrectCount)
	assert.Equal(t, 3, result.IncorrectCount)
	assert.Equal(t, 3, result.SkippedCount)
	assert.Equal(t, 10, result.CorrectCount+result.IncorrectCount+result.SkippedCount)
	assert.Equal(t, 40, result.PercentageCorrect)

	// Álgebra 3/4 = 75% strength; Fracciones 1/3 and Geometría 0/3 are
	// weaknesses.
	assert.Equal(t, []string{"Álgebra"}, result.Strengths)
	assert.Equal(t, []string{"Fracciones", "Geometría"}, result.Weaknesses)

	// Geometría matches a weakness row and 3 skips exceed the
	// MinSkipped bound of 2, so both rules fire in table order.
	assert.Equal(t, []string{"Repasa geometría.", "Intenta responder más preguntas."}, result.Recommendations)
}

func TestSessionRejectsMutationAfterFinalize(t *testing.T) {
	sess := newTestSession(t)
	first := sess.Finalize()

	assert.ErrorIs(t, sess.Select(1, correctOption(1)), ErrSessionCompleted)

	_, err := sess.Skip(2)
	assert.ErrorIs(t, err, ErrSessionCompleted)

	_, err = sess.Next()
	assert.ErrorIs(t, err, ErrSessionCompleted)

	// Repeated finalize returns the same result, recomputing nothing.
	second := sess.Finalize()
	assert.Same(t, first, second)
}

func TestSessionReselectReplacesOption(t *testing.T) {
	sess := newTestSession(t)

	require.NoError(t, sess.Select(1, wrongOption(1)))
	require.NoError(t, sess.Select(1, correctOption(1)))

	assert.Equal(t, Answer{Kind: Selected, OptionID: correctOption(1)}, sess.Answer(1))

	result := sess.Finalize()
	assert.Equal(t, 1, result.CorrectCount)
}

func TestSessionSkippedIsTerminal(t *testing.T) {
	sess := newTestSession(t)

	_, err := sess.Skip(1)
	require.NoError(t, err)

	// Selecting after a skip is accepted but changes nothing.
	require.NoError(t, sess.Select(1, correctOption(1)))
	assert.Equal(t, Answer{Kind: Skipped}, sess.Answer(1))
}

func TestSessionValidatesMembership(t *testing.T) {
	sess := newTestSession(t)

	assert.ErrorIs(t, sess.Select(99, 10), ErrQuestionNotInSession)
	assert.ErrorIs(t, sess.Select(1, correctOption(2)), ErrOptionNotInQuestion)

	_, err := sess.Skip(99)
	assert.ErrorIs(t, err, ErrQuestionNotInSession)
}

func TestSessionPointerClampsAtEnd(t *testing.T) {
	sess := newTestSession(t)

	for i := 0; i < sess.QuestionCount()-1; i++ {
		atEnd, err := sess.Next()
		require.NoError(t, err)
		assert.False(t, atEnd)
	}

	assert.Equal(t, sess.QuestionCount()-1, sess.Index())

	atEnd, err := sess.Next()
	require.NoError(t, err)
	assert.True(t, atEnd)
	assert.Equal(t, sess.QuestionCount()-1, sess.Index())
}

func TestSessionUnansweredCountedAsSkipped(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.Select(1, correctOption(1)))

	result := sess.Finalize()

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 0, result.IncorrectCount)
	assert.Equal(t, 9, result.SkippedCount)
	assert.Equal(t, 10, result.PercentageCorrect)
}

func TestSessionEmptyBattery(t *testing.T) {
	diag := &model.Diagnostic{BaseModel: model.BaseModel{ID: 2}}
	sess := NewSession("sess-2", 42, diag, nil)

	assert.Nil(t, sess.Current())

	result := sess.Finalize()
	assert.Equal(t, 0, result.PercentageCorrect)
	assert.Equal(t, []string{DefaultRecommendation}, result.Recommendations)
}

func TestSessionOrdersQuestionsByOrderField(t *testing.T) {
	diag := &model.Diagnostic{BaseModel: model.BaseModel{ID: 3}}
	q1 := question(1, "A", 10)
	q1.Order = 2
	q2 := question(2, "A", 20)
	q2.Order = 1
	diag.Questions = []model.DiagnosticQuestion{q1, q2}

	sess := NewSession("sess-3", 42, diag, nil)
	require.NotNil(t, sess.Current())
	assert.Equal(t, uint(2), sess.Current().ID)
}
