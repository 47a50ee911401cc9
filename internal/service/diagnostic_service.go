package service

import (
	"encoding/json"
	"sync"
	"time"

	"tutoria_backend/internal/diagnostic"
	"tutoria_backend/internal/model"
	"tutoria_backend/internal/repository"
	"tutoria_backend/internal/util"
	"tutoria_backend/pkg/logger"
	"tutoria_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// sessionTTL bounds how long an abandoned diagnostic session is kept
// in memory before the janitor drops it.
const sessionTTL = 2 * time.Hour

type sessionEntry struct {
	session *diagnostic.Session
	touched time.Time
}

type DiagnosticService struct {
	Repo *repository.DiagnosticRepository

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewDiagnosticService(repo *repository.DiagnosticRepository) *DiagnosticService {
	return &DiagnosticService{
		Repo:     repo,
		sessions: make(map[string]*sessionEntry),
	}
}

// StudentOption strips the answer key and explanation from an option
// before it reaches the student client.
type StudentOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type StudentQuestion struct {
	ID         uint             `json:"id"`
	Prompt     string           `json:"prompt"`
	Concept    string           `json:"concept"`
	Difficulty model.Difficulty `json:"difficulty"`
	Order      int              `json:"order"`
	Options    []StudentOption  `json:"options"`
}

type SessionView struct {
	SessionID     string           `json:"sessionId"`
	DiagnosticID  uint             `json:"diagnosticId"`
	QuestionCount int              `json:"questionCount"`
	Index         int              `json:"index"`
	Question      *StudentQuestion `json:"question,omitempty"`
}

func studentQuestion(q *model.DiagnosticQuestion) *StudentQuestion {
	if q == nil {
		return nil
	}
	opts := make([]StudentOption, len(q.Options))
	for i, o := range q.Options {
		opts[i] = StudentOption{ID: o.ID, Text: o.Text}
	}
	return &StudentQuestion{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Concept:    q.Concept,
		Difficulty: q.Difficulty,
		Order:      q.Order,
		Options:    opts,
	}
}

// ListStudentQuestions returns the full battery of a published
// diagnostic with answer keys stripped.
func (s *DiagnosticService) ListStudentQuestions(diagnosticID uint) ([]StudentQuestion, error) {
	diag, err := s.Repo.FindPublishedByID(diagnosticID)
	if err != nil {
		return nil, util.ErrDiagnosticNotFound
	}

	res := make([]StudentQuestion, len(diag.Questions))
	for i := range diag.Questions {
		res[i] = *studentQuestion(&diag.Questions[i])
	}
	return res, nil
}

// StartSession creates a fresh in-memory session over the published
// battery. Starting again simply abandons the previous session; the
// janitor reclaims it.
func (s *DiagnosticService) StartSession(userID, diagnosticID uint) (*SessionView, error) {
	diag, err := s.Repo.FindPublishedByID(diagnosticID)
	if err != nil {
		return nil, util.ErrDiagnosticNotFound
	}

	ruleRows, err := s.Repo.ListRules(diagnosticID)
	if err != nil {
		return nil, err
	}
	rules := make([]diagnostic.Rule, len(ruleRows))
	for i, row := range ruleRows {
		rules[i] = diagnostic.Rule{
			Kind:       row.Kind,
			Concepts:   row.Concepts,
			MinSkipped: row.MinSkipped,
			Message:    row.Message,
		}
	}

	sess := diagnostic.NewSession(model.GenerateUUID(), userID, diag, rules)

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{session: sess, touched: time.Now()}
	s.mu.Unlock()

	return s.view(sess), nil
}

func (s *DiagnosticService) view(sess *diagnostic.Session) *SessionView {
	return &SessionView{
		SessionID:     sess.ID,
		DiagnosticID:  sess.DiagnosticID,
		QuestionCount: sess.QuestionCount(),
		Index:         sess.Index(),
		Question:      studentQuestion(sess.Current()),
	}
}

func (s *DiagnosticService) lookup(sessionID string, userID uint) (*diagnostic.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok || entry.session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	entry.touched = time.Now()
	return entry.session, nil
}

// SelectAnswer records the chosen option for a question in an active
// session. The session pointer does not move; advancing is its own
// action.
func (s *DiagnosticService) SelectAnswer(sessionID string, userID, questionID, optionID uint) (*SessionView, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Select(questionID, optionID); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Skip marks the question skipped and advances. When the pointer was
// already on the last question the session is finalized in place.
func (s *DiagnosticService) Skip(sessionID string, userID, questionID uint) (*SessionView, *diagnostic.Result, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	atEnd, err := sess.Skip(questionID)
	if err != nil {
		return nil, nil, err
	}
	if atEnd {
		result, err := s.finalize(sess)
		return s.view(sess), result, err
	}
	return s.view(sess), nil, nil
}

// Next advances the pointer; past the last question it finalizes.
func (s *DiagnosticService) Next(sessionID string, userID uint) (*SessionView, *diagnostic.Result, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	atEnd, err := sess.Next()
	if err != nil {
		return nil, nil, err
	}
	if atEnd {
		result, err := s.finalize(sess)
		return s.view(sess), result, err
	}
	return s.view(sess), nil, nil
}

// Finalize ends the session on explicit user request ("see my
// results"). Safe to call repeatedly; the stored result is returned.
func (s *DiagnosticService) Finalize(sessionID string, userID uint) (*diagnostic.Result, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.finalize(sess)
}

// finalize runs the one-shot transition and persists the attempt
// snapshot. The result is always produced; a failed persist is logged
// and does not take the results screen away from the student.
func (s *DiagnosticService) finalize(sess *diagnostic.Session) (*diagnostic.Result, error) {
	if sess.Completed() {
		return sess.Result(), nil
	}

	result := sess.Finalize()
	monitoring.DiagnosticsFinalized.Inc()

	answersJSON, _ := json.Marshal(sess.Answers())
	attempt := &model.DiagnosticAttempt{
		UserID:            sess.UserID,
		DiagnosticID:      sess.DiagnosticID,
		Answers:           answersJSON,
		CorrectCount:      result.CorrectCount,
		IncorrectCount:    result.IncorrectCount,
		SkippedCount:      result.SkippedCount,
		PercentageCorrect: result.PercentageCorrect,
		Strengths:         result.Strengths,
		Weaknesses:        result.Weaknesses,
		Recommendations:   result.Recommendations,
		FinalizedAt:       result.FinalizedAt,
	}

	if err := s.Repo.UpsertAttempt(attempt); err != nil {
		logger.Log.Error("failed to persist diagnostic attempt",
			zap.Uint("userId", sess.UserID),
			zap.Uint("diagnosticId", sess.DiagnosticID),
			zap.Error(err))
	}

	return result, nil
}

// LatestResult returns the persisted attempt for a user and
// diagnostic.
func (s *DiagnosticService) LatestResult(userID, diagnosticID uint) (*model.DiagnosticAttempt, error) {
	return s.Repo.FindAttempt(userID, diagnosticID)
}

// PruneSessions drops sessions idle past the TTL. Called from the
// background ticker.
func (s *DiagnosticService) PruneSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, entry := range s.sessions {
		if time.Since(entry.touched) > sessionTTL {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}
