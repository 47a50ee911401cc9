package diagnostic

import (
	"tutoria_backend/internal/model"
	"tutoria_backend/pkg/logger"

	"go.uber.org/zap"
)

// Grade evaluates a selected option against the question's key. Skipped
// and unanswered questions never reach the grader; they are counted as
// not-correct by the tally directly. An option id that does not belong
// to the question is graded fail-safe as incorrect with a warning,
// never a crash: by the time a selection is graded the data has already
// been admitted into the session.
func Grade(q *model.DiagnosticQuestion, optionID uint) bool {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return q.Options[i].Correct
		}
	}

	logger.Log.Warn("graded option does not belong to question",
		zap.Uint("questionId", q.ID),
		zap.Uint("optionId", optionID))
	return false
}
