package service

import (
	"errors"
	"time"

	"tutoria_backend/internal/model"
)

// ErrQuestionKey guards the battery invariant: every question carries
// exactly one correct option.
var ErrQuestionKey = errors.New("question must have exactly one correct option")

type DiagnosticRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	GradeBand   string `json:"gradeBand"`
}

type OptionRequest struct {
	Text        string `json:"text" binding:"required"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

type QuestionRequest struct {
	Prompt     string           `json:"prompt" binding:"required"`
	Concept    string           `json:"concept" binding:"required"`
	Difficulty model.Difficulty `json:"difficulty"`
	Order      int              `json:"order"`
	Options    []OptionRequest  `json:"options" binding:"required"`
}

func (req *QuestionRequest) validate() error {
	correct := 0
	for _, o := range req.Options {
		if o.Correct {
			correct++
		}
	}
	if correct != 1 {
		return ErrQuestionKey
	}
	return nil
}

func (s *DiagnosticService) CreateDiagnostic(req DiagnosticRequest) (*model.Diagnostic, error) {
	diag := &model.Diagnostic{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		GradeBand:   req.GradeBand,
	}
	if err := s.Repo.CreateDiagnostic(diag); err != nil {
		return nil, err
	}
	return diag, nil
}

func (s *DiagnosticService) ListDiagnostics(page, limit int) ([]model.Diagnostic, int64, error) {
	return s.Repo.ListDiagnostics(page, limit)
}

func (s *DiagnosticService) PublishDiagnostic(id uint) (*model.Diagnostic, error) {
	diag, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	diag.IsPublished = true
	diag.PublishedAt = &now
	if err := s.Repo.UpdateDiagnostic(diag); err != nil {
		return nil, err
	}
	return diag, nil
}

func (s *DiagnosticService) CreateQuestion(diagnosticID uint, req QuestionRequest) (*model.DiagnosticQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.Repo.FindByID(diagnosticID); err != nil {
		return nil, err
	}

	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyMedium
	}

	q := &model.DiagnosticQuestion{
		DiagnosticID: diagnosticID,
		Prompt:       req.Prompt,
		Concept:      req.Concept,
		Difficulty:   req.Difficulty,
		Order:        req.Order,
	}
	for _, o := range req.Options {
		q.Options = append(q.Options, model.DiagnosticOption{
			Text:        o.Text,
			Correct:     o.Correct,
			Explanation: o.Explanation,
		})
	}

	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// AuthorOption is the teacher-facing view of an option, answer key
// included.
type AuthorOption struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

type AuthorQuestion struct {
	ID         uint             `json:"id"`
	Prompt     string           `json:"prompt"`
	Concept    string           `json:"concept"`
	Difficulty model.Difficulty `json:"difficulty"`
	Order      int              `json:"order"`
	Options    []AuthorOption   `json:"options"`
}

func (s *DiagnosticService) ListQuestions(diagnosticID uint) ([]AuthorQuestion, error) {
	qs, err := s.Repo.ListQuestions(diagnosticID)
	if err != nil {
		return nil, err
	}

	res := make([]AuthorQuestion, len(qs))
	for i, q := range qs {
		aq := AuthorQuestion{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Concept:    q.Concept,
			Difficulty: q.Difficulty,
			Order:      q.Order,
		}
		for _, o := range q.Options {
			aq.Options = append(aq.Options, AuthorOption{
				ID:          o.ID,
				Text:        o.Text,
				Correct:     o.Correct,
				Explanation: o.Explanation,
			})
		}
		res[i] = aq
	}
	return res, nil
}

func (s *DiagnosticService) DeleteQuestion(id uint) error {
	return s.Repo.DeleteQuestion(id)
}
