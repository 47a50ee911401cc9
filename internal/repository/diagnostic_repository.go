package repository

import (
	"tutoria_backend/internal/model"

	"gorm.io/gorm"
)

type DiagnosticRepository struct {
	DB *gorm.DB
}

func NewDiagnosticRepository(db *gorm.DB) *DiagnosticRepository {
	return &DiagnosticRepository{DB: db}
}

// FindPublishedByID loads a published diagnostic with its full battery:
// questions in fixed order, each with its options and answer key.
func (r *DiagnosticRepository) FindPublishedByID(id uint) (*model.Diagnostic, error) {
	var diag model.Diagnostic
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("diagnostic_questions.order ASC")
		}).
		Preload("Questions.Options").
		Where("is_published = ?", true).
		First(&diag, id).Error
	if err != nil {
		return nil, err
	}
	return &diag, nil
}

func (r *DiagnosticRepository) FindByID(id uint) (*model.Diagnostic, error) {
	var diag model.Diagnostic
	err := r.DB.First(&diag, id).Error
	if err != nil {
		return nil, err
	}
	return &diag, nil
}

func (r *DiagnosticRepository) ListDiagnostics(page, limit int) ([]model.Diagnostic, int64, error) {
	var diags []model.Diagnostic
	var total int64

	if err := r.DB.Model(&model.Diagnostic{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&diags).Error
	return diags, total, err
}

func (r *DiagnosticRepository) CreateDiagnostic(diag *model.Diagnostic) error {
	return r.DB.Create(diag).Error
}

func (r *DiagnosticRepository) UpdateDiagnostic(diag *model.Diagnostic) error {
	return r.DB.Save(diag).Error
}

func (r *DiagnosticRepository) CreateQuestion(q *model.DiagnosticQuestion) error {
	return r.DB.Create(q).Error
}

func (r *DiagnosticRepository) FindQuestionByID(id uint) (*model.DiagnosticQuestion, error) {
	var q model.DiagnosticQuestion
	err := r.DB.Preload("Options").First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *DiagnosticRepository) UpdateQuestion(q *model.DiagnosticQuestion) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(q).Error
}

func (r *DiagnosticRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.DiagnosticQuestion{}, id).Error
}

func (r *DiagnosticRepository) ListQuestions(diagnosticID uint) ([]model.DiagnosticQuestion, error) {
	var qs []model.DiagnosticQuestion
	err := r.DB.Preload("Options").
		Where("diagnostic_id = ?", diagnosticID).
		Order("`order` ASC").
		Find(&qs).Error
	return qs, err
}

// ListRules returns the enabled recommendation rules for a diagnostic,
// shared defaults (diagnostic_id 0) included, in table order.
func (r *DiagnosticRepository) ListRules(diagnosticID uint) ([]model.RecommendationRule, error) {
	var rules []model.RecommendationRule
	err := r.DB.Where("enabled = ? AND diagnostic_id IN ?", true, []uint{0, diagnosticID}).
		Order("`order` ASC").
		Find(&rules).Error
	return rules, err
}

// UpsertAttempt stores the finalized result snapshot. Re-taking a
// diagnostic overwrites the previous attempt for the same user rather
// than accumulating rows.
func (r *DiagnosticRepository) UpsertAttempt(attempt *model.DiagnosticAttempt) error {
	var existing model.DiagnosticAttempt
	err := r.DB.Where("user_id = ? AND diagnostic_id = ?", attempt.UserID, attempt.DiagnosticID).
		First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.DB.Create(attempt).Error
		}
		return err
	}

	attempt.ID = existing.ID
	attempt.CreatedAt = existing.CreatedAt
	return r.DB.Save(attempt).Error
}

func (r *DiagnosticRepository) FindAttempt(userID, diagnosticID uint) (*model.DiagnosticAttempt, error) {
	var attempt model.DiagnosticAttempt
	err := r.DB.Where("user_id = ? AND diagnostic_id = ?", userID, diagnosticID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
