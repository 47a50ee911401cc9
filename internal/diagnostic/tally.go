package diagnostic

import "tutoria_backend/internal/model"

type ConceptScore struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// ConceptTally maps a concept tag to its correct/total counts. It is
// always recomputed in full from the question set and answer states,
// never mutated incrementally.
type ConceptTally map[string]*ConceptScore

// Tally counts every question in the fixed set toward its concept's
// total, whether it was answered, skipped or never reached. Correct is
// incremented only for selected answers that grade correct, so a
// concept the user skipped entirely still shows up as 0/N.
func Tally(questions []model.DiagnosticQuestion, answers map[uint]Answer) ConceptTally {
	tally := make(ConceptTally)

	for i := range questions {
		q := &questions[i]
		score, ok := tally[q.Concept]
		if !ok {
			score = &ConceptScore{}
			tally[q.Concept] = score
		}

		score.Total++

		ans, ok := answers[q.ID]
		if ok && ans.Kind == Selected && Grade(q, ans.OptionID) {
			score.Correct++
		}
	}

	return tally
}
