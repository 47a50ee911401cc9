package diagnostic

import (
	"errors"
	"math"
	"sort"
	"time"

	"tutoria_backend/internal/model"
)

var (
	ErrSessionCompleted     = errors.New("diagnostic session already completed")
	ErrQuestionNotInSession = errors.New("question does not belong to this session")
	ErrOptionNotInQuestion  = errors.New("option does not belong to this question")
)

// AnswerKind is the per-question state. Selected and Skipped are both
// terminal kinds: revisiting a selected question may swap the stored
// option id, but the kind never changes back.
type AnswerKind int

const (
	Unanswered AnswerKind = iota
	Selected
	Skipped
)

type Answer struct {
	Kind     AnswerKind `json:"kind"`
	OptionID uint       `json:"optionId,omitempty"`
}

// Result is the sole output a finalized session hands to the outside.
// Immutable once produced.
type Result struct {
	CorrectCount      int      `json:"correctCount"`
	IncorrectCount    int      `json:"incorrectCount"`
	SkippedCount      int      `json:"skippedCount"`
	PercentageCorrect int      `json:"percentageCorrect"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Recommendations   []string `json:"recommendations"`
	FinalizedAt       time.Time `json:"finalizedAt"`
}

// Session drives one user's traversal of a fixed ordered question
// battery. All mutation goes through Select, Skip, Next and Finalize;
// the presentation layer never touches fields directly. A session is
// used by a single interactive user and needs no internal locking.
type Session struct {
	ID           string
	UserID       uint
	DiagnosticID uint

	questions []model.DiagnosticQuestion
	rules     []Rule
	answers   map[uint]Answer
	index     int
	result    *Result
}

func NewSession(id string, userID uint, diag *model.Diagnostic, rules []Rule) *Session {
	questions := make([]model.DiagnosticQuestion, len(diag.Questions))
	copy(questions, diag.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	return &Session{
		ID:           id,
		UserID:       userID,
		DiagnosticID: diag.ID,
		questions:    questions,
		rules:        rules,
		answers:      make(map[uint]Answer, len(questions)),
	}
}

func (s *Session) Completed() bool { return s.result != nil }

func (s *Session) Index() int { return s.index }

func (s *Session) QuestionCount() int { return len(s.questions) }

// Current returns the question at the session pointer, nil for an
// empty battery.
func (s *Session) Current() *model.DiagnosticQuestion {
	if len(s.questions) == 0 {
		return nil
	}
	return &s.questions[s.index]
}

func (s *Session) question(questionID uint) *model.DiagnosticQuestion {
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			return &s.questions[i]
		}
	}
	return nil
}

// Answer reports the stored state for a question.
func (s *Session) Answer(questionID uint) Answer {
	return s.answers[questionID]
}

// Answers returns a snapshot of the per-question states, keyed by
// question id. Used to persist the attempt at finalization.
func (s *Session) Answers() map[uint]Answer {
	snapshot := make(map[uint]Answer, len(s.answers))
	for id, a := range s.answers {
		snapshot[id] = a
	}
	return snapshot
}

// Select stores the chosen option for a question. Re-selecting an
// already answered question replaces the stored option id; selecting a
// skipped question is a no-op because Skipped is terminal. An option id
// from outside the question is rejected here, at the contract boundary,
// rather than graded.
func (s *Session) Select(questionID, optionID uint) error {
	if s.Completed() {
		return ErrSessionCompleted
	}

	q := s.question(questionID)
	if q == nil {
		return ErrQuestionNotInSession
	}

	valid := false
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return ErrOptionNotInQuestion
	}

	if s.answers[questionID].Kind == Skipped {
		return nil
	}

	s.answers[questionID] = Answer{Kind: Selected, OptionID: optionID}
	return nil
}

// Skip marks a question skipped and advances the pointer. Questions
// already selected or skipped keep their state; the pointer still
// moves. The returned flag is true when the pointer was already on the
// last question, which is the caller's cue to finalize.
func (s *Session) Skip(questionID uint) (atEnd bool, err error) {
	if s.Completed() {
		return false, ErrSessionCompleted
	}

	q := s.question(questionID)
	if q == nil {
		return false, ErrQuestionNotInSession
	}

	if s.answers[questionID].Kind == Unanswered {
		s.answers[questionID] = Answer{Kind: Skipped}
	}

	return s.advance(), nil
}

// Next advances the session pointer by one, clamped to the last
// question. Returns true when the pointer was already at the end.
func (s *Session) Next() (atEnd bool, err error) {
	if s.Completed() {
		return false, ErrSessionCompleted
	}
	return s.advance(), nil
}

func (s *Session) advance() bool {
	if s.index < len(s.questions)-1 {
		s.index++
		return false
	}
	return true
}

// Finalize transitions the session to Completed and derives the result:
// grade, tally, classify, recommend. It is idempotent; repeated calls
// return the result computed the first time. After finalization all
// answer mutation is rejected. Unanswered questions are counted with
// the skipped ones: the user never committed an answer either way.
func (s *Session) Finalize() *Result {
	if s.result != nil {
		return s.result
	}

	correct, incorrect, skipped := 0, 0, 0
	for i := range s.questions {
		q := &s.questions[i]
		switch ans := s.answers[q.ID]; ans.Kind {
		case Selected:
			if Grade(q, ans.OptionID) {
				correct++
			} else {
				incorrect++
			}
		default:
			skipped++
		}
	}

	percentage := 0
	if len(s.questions) > 0 {
		percentage = int(math.Round(float64(correct) / float64(len(s.questions)) * 100))
	}

	tally := Tally(s.questions, s.answers)
	strengths, weaknesses := Classify(tally)

	s.result = &Result{
		CorrectCount:      correct,
		IncorrectCount:    incorrect,
		SkippedCount:      skipped,
		PercentageCorrect: percentage,
		Strengths:         strengths,
		Weaknesses:        weaknesses,
		Recommendations:   Recommend(s.rules, weaknesses, skipped),
		FinalizedAt:       time.Now(),
	}
	return s.result
}

// Result returns the finalized result, nil while the session is active.
func (s *Session) Result() *Result { return s.result }
