package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutoria_backend/internal/model"
	"tutoria_backend/internal/progress"
	"tutoria_backend/internal/util"
	"tutoria_backend/pkg/logger"
	"tutoria_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// QuizPassThreshold is the minimum percentage score that marks a quiz
// lesson complete. Chosen independently of the diagnostic classifier
// cutoffs; do not derive one from the other.
const QuizPassThreshold = 70

const progressCacheTTL = 10 * time.Minute

// completionStore is the slice of CompletionRepository the progress
// service depends on.
type completionStore interface {
	Upsert(userID uint, kind model.ScopeKind, scopeID uint, completed bool, score int) (*model.CompletionRecord, error)
	LessonCompletions(userID uint, lessonIDs []uint) (map[uint]bool, error)
}

// catalogStore supplies the lesson/module/course membership lists. The
// mapping is owned by the catalog, not by this service.
type catalogStore interface {
	FindLessonByID(id uint) (*model.Lesson, error)
	ModuleLessonIDs(moduleID uint) ([]uint, error)
	CourseLessonIDs(courseID uint) ([]uint, error)
	ExistingLessonIDs(lessonIDs []uint) ([]uint, error)
	LessonParents(lessonID uint) (moduleID, courseID uint, err error)
}

type ProgressService struct {
	Completions completionStore
	Catalog     catalogStore
	Redis       *redis.Client
}

func NewProgressService(completions completionStore, catalog catalogStore, rdb *redis.Client) *ProgressService {
	return &ProgressService{
		Completions: completions,
		Catalog:     catalog,
		Redis:       rdb,
	}
}

// RecordLessonCompletion upserts the lesson completion fact and
// invalidates the derived progress for the owning module and course.
// completed=false is a legitimate write: it uncompletes the lesson.
func (s *ProgressService) RecordLessonCompletion(userID, lessonID uint, completed bool) (*model.CompletionRecord, error) {
	moduleID, courseID, err := s.Catalog.LessonParents(lessonID)
	if err != nil {
		return nil, util.ErrUnknownScope
	}

	record, err := s.Completions.Upsert(userID, model.ScopeLesson, lessonID, completed, 0)
	if err != nil {
		return nil, err
	}

	monitoring.CompletionWrites.WithLabelValues(string(model.ScopeLesson)).Inc()
	s.invalidate(userID, moduleID, courseID)
	return record, nil
}

// RecordActivitySubmission records a practice activity submission. The
// activity fact is kept on its own scope; submitting also completes
// the owning practice lesson.
func (s *ProgressService) RecordActivitySubmission(userID, lessonID uint) (*model.CompletionRecord, error) {
	moduleID, courseID, err := s.Catalog.LessonParents(lessonID)
	if err != nil {
		return nil, util.ErrUnknownScope
	}

	if _, err := s.Completions.Upsert(userID, model.ScopeActivity, lessonID, true, 0); err != nil {
		return nil, err
	}
	record, err := s.Completions.Upsert(userID, model.ScopeLesson, lessonID, true, 0)
	if err != nil {
		return nil, err
	}

	monitoring.CompletionWrites.WithLabelValues(string(model.ScopeActivity)).Inc()
	s.invalidate(userID, moduleID, courseID)
	return record, nil
}

// QuizOutcome is what the presentation layer renders after a quiz
// submission.
type QuizOutcome struct {
	Score  int  `json:"score"` // percentage 0..100
	Passed bool `json:"passed"`
}

// RecordQuizAttempt stores a quiz attempt and marks the quiz lesson
// complete when the score reaches the pass threshold. A later failing
// attempt flips the lesson back to incomplete: the record set is
// last-write-wins, not append-only.
func (s *ProgressService) RecordQuizAttempt(userID, lessonID uint, scorePct int) (*QuizOutcome, error) {
	moduleID, courseID, err := s.Catalog.LessonParents(lessonID)
	if err != nil {
		return nil, util.ErrUnknownScope
	}

	passed := scorePct >= QuizPassThreshold

	if _, err := s.Completions.Upsert(userID, model.ScopeQuizAttempt, lessonID, passed, scorePct); err != nil {
		return nil, err
	}
	if _, err := s.Completions.Upsert(userID, model.ScopeLesson, lessonID, passed, 0); err != nil {
		return nil, err
	}

	monitoring.CompletionWrites.WithLabelValues(string(model.ScopeQuizAttempt)).Inc()
	s.invalidate(userID, moduleID, courseID)
	return &QuizOutcome{Score: scorePct, Passed: passed}, nil
}

// ModuleProgressFor recomputes the module percentage from the
// completion records, going through the cache. The cached value is
// only ever discarded and recomputed, never patched.
func (s *ProgressService) ModuleProgressFor(userID, moduleID uint) (*model.ModuleProgress, error) {
	key := moduleProgressKey(userID, moduleID)

	var cached model.ModuleProgress
	if s.cacheGet(key, &cached) {
		return &cached, nil
	}

	lessonIDs, err := s.Catalog.ModuleLessonIDs(moduleID)
	if err != nil {
		return nil, err
	}

	pct, err := s.percentFor(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	result := &model.ModuleProgress{ModuleID: moduleID, Percentage: pct}
	s.cacheSet(key, result)
	return result, nil
}

// CourseProgressFor recomputes course percentage plus the
// next-incomplete-lesson pointer across all the course's modules.
func (s *ProgressService) CourseProgressFor(userID, courseID uint) (*model.CourseProgress, error) {
	key := courseProgressKey(userID, courseID)

	var cached model.CourseProgress
	if s.cacheGet(key, &cached) {
		return &cached, nil
	}

	lessonIDs, err := s.Catalog.CourseLessonIDs(courseID)
	if err != nil {
		return nil, err
	}

	known, err := s.knownLessons(lessonIDs)
	if err != nil {
		return nil, err
	}

	completed, err := s.Completions.LessonCompletions(userID, known)
	if err != nil {
		return nil, err
	}

	next, review := progress.NextLesson(known, completed)
	result := &model.CourseProgress{
		CourseID:     courseID,
		Percentage:   progress.Percent(known, completed),
		NextLessonID: next,
		Review:       review,
	}
	s.cacheSet(key, result)
	return result, nil
}

func (s *ProgressService) percentFor(userID uint, lessonIDs []uint) (int, error) {
	known, err := s.knownLessons(lessonIDs)
	if err != nil {
		return 0, err
	}

	completed, err := s.Completions.LessonCompletions(userID, known)
	if err != nil {
		return 0, err
	}

	return progress.Percent(known, completed), nil
}

// knownLessons drops lesson ids that are no longer in the catalog. A
// stale reference is a logged anomaly, excluded from the denominator
// rather than failed on.
func (s *ProgressService) knownLessons(lessonIDs []uint) ([]uint, error) {
	existing, err := s.Catalog.ExistingLessonIDs(lessonIDs)
	if err != nil {
		return nil, err
	}
	if len(existing) == len(lessonIDs) {
		return lessonIDs, nil
	}

	known := make(map[uint]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	filtered := make([]uint, 0, len(existing))
	for _, id := range lessonIDs {
		if known[id] {
			filtered = append(filtered, id)
		} else {
			logger.Log.Warn("lesson list references unknown lesson, excluding from progress",
				zap.Uint("lessonId", id))
		}
	}
	return filtered, nil
}

func moduleProgressKey(userID, moduleID uint) string {
	return fmt.Sprintf("progress:module:%d:%d", userID, moduleID)
}

func courseProgressKey(userID, courseID uint) string {
	return fmt.Sprintf("progress:course:%d:%d", userID, courseID)
}

func (s *ProgressService) cacheGet(key string, out interface{}) bool {
	if s.Redis == nil {
		return false
	}

	val, err := s.Redis.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (s *ProgressService) cacheSet(key string, val interface{}) {
	if s.Redis == nil {
		return
	}

	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), key, data, progressCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache derived progress", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProgressService) invalidate(userID, moduleID, courseID uint) {
	if s.Redis == nil {
		return
	}

	ctx := context.Background()
	s.Redis.Del(ctx, moduleProgressKey(userID, moduleID))
	s.Redis.Del(ctx, courseProgressKey(userID, courseID))
}
