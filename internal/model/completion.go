package model

import (
	"time"

	"gorm.io/gorm"
)

// ScopeKind is the unit a completion fact applies to.
type ScopeKind string

const (
	ScopeLesson      ScopeKind = "lesson"
	ScopeActivity    ScopeKind = "activity"
	ScopeQuizAttempt ScopeKind = "quiz_attempt"
)

// CompletionRecord is the single durable progress fact. One logical row
// per (user, scope kind, scope id); writes are upserts, last write wins.
// swagger:model CompletionRecord
type CompletionRecord struct {
	gorm.Model
	UserID      uint      `gorm:"index:idx_user_scope,unique" json:"userId"`
	ScopeKind   ScopeKind `gorm:"size:20;index:idx_user_scope,unique" json:"scopeKind"`
	ScopeID     uint      `gorm:"index:idx_user_scope,unique" json:"scopeId"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Score       int       `gorm:"default:0" json:"score"` // quiz attempts only, percentage 0..100
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}

// ModuleProgress and CourseProgress are wholly derived values. They are
// never the source of truth; the cached copy is always safe to discard
// and recompute from the completion records.
// swagger:model ModuleProgress
type ModuleProgress struct {
	ModuleID   uint `json:"moduleId"`
	Percentage int  `json:"percentage"`
}

// swagger:model CourseProgress
type CourseProgress struct {
	CourseID     uint `json:"courseId"`
	Percentage   int  `json:"percentage"`
	NextLessonID uint `json:"nextLessonId"`
	Review       bool `json:"review"` // all lessons done, pointer wrapped to the first
}
