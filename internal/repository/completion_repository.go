package repository

import (
	"time"
	"tutoria_backend/internal/model"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// Upsert writes the single completion record keyed by (user, scope
// kind, scope id). A later write for the same key supersedes the
// earlier one; writing the value already stored is a no-op. Completed
// may flip back to false; last write wins, there is no append-only
// history.
func (r *CompletionRepository) Upsert(userID uint, kind model.ScopeKind, scopeID uint, completed bool, score int) (*model.CompletionRecord, error) {
	tx := r.DB.Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()

	var existing model.CompletionRecord
	err := tx.Where("user_id = ? AND scope_kind = ? AND scope_id = ?", userID, kind, scopeID).
		First(&existing).Error

	now := time.Now()

	if err != nil {
		record := &model.CompletionRecord{
			UserID:    userID,
			ScopeKind: kind,
			ScopeID:   scopeID,
			Completed: completed,
			Score:     score,
		}
		if completed {
			record.CompletedAt = &now
		}
		if err := tx.Create(record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		return record, tx.Commit().Error
	}

	if existing.Completed == completed && existing.Score == score {
		tx.Rollback()
		return &existing, nil
	}

	existing.Completed = completed
	existing.Score = score
	if completed {
		existing.CompletedAt = &now
	} else {
		existing.CompletedAt = nil
	}

	if err := tx.Save(&existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &existing, tx.Commit().Error
}

func (r *CompletionRepository) Get(userID uint, kind model.ScopeKind, scopeID uint) (*model.CompletionRecord, error) {
	var record model.CompletionRecord
	err := r.DB.Where("user_id = ? AND scope_kind = ? AND scope_id = ?", userID, kind, scopeID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// LessonCompletions returns the completed flag for each of the given
// lessons. Lessons without a record are simply absent from the map.
func (r *CompletionRepository) LessonCompletions(userID uint, lessonIDs []uint) (map[uint]bool, error) {
	if len(lessonIDs) == 0 {
		return map[uint]bool{}, nil
	}

	var records []model.CompletionRecord
	err := r.DB.Where("user_id = ? AND scope_kind = ? AND scope_id IN ?", userID, model.ScopeLesson, lessonIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	statusMap := make(map[uint]bool, len(records))
	for _, record := range records {
		statusMap[record.ScopeID] = record.Completed
	}

	return statusMap, nil
}

func (r *CompletionRepository) ListByUser(userID uint) ([]model.CompletionRecord, error) {
	var records []model.CompletionRecord
	err := r.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&records).Error
	return records, err
}
