package service

import (
	"fmt"
	"testing"
	"time"

	"tutoria_backend/internal/model"
	"tutoria_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCompletions struct {
	records map[string]*model.CompletionRecord
}

func newFakeCompletions() *fakeCompletions {
	return &fakeCompletions{records: make(map[string]*model.CompletionRecord)}
}

func recordKey(userID uint, kind model.ScopeKind, scopeID uint) string {
	return fmt.Sprintf("%d:%s:%d", userID, kind, scopeID)
}

func (f *fakeCompletions) Upsert(userID uint, kind model.ScopeKind, scopeID uint, completed bool, score int) (*model.CompletionRecord, error) {
	rec := &model.CompletionRecord{
		UserID:    userID,
		ScopeKind: kind,
		ScopeID:   scopeID,
		Completed: completed,
		Score:     score,
	}
	if completed {
		now := time.Now()
		rec.CompletedAt = &now
	}
	f.records[recordKey(userID, kind, scopeID)] = rec
	return rec, nil
}

func (f *fakeCompletions) LessonCompletions(userID uint, lessonIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	for _, id := range lessonIDs {
		if rec, ok := f.records[recordKey(userID, model.ScopeLesson, id)]; ok && rec.Completed {
			out[id] = true
		}
	}
	return out, nil
}

type fakeCatalog struct {
	// lesson id -> [moduleID, courseID]
	parents       map[uint][2]uint
	moduleLessons map[uint][]uint
	courseLessons map[uint][]uint
}

func (f *fakeCatalog) FindLessonByID(id uint) (*model.Lesson, error) {
	if _, ok := f.parents[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Lesson{BaseModel: model.BaseModel{ID: id}, ModuleID: f.parents[id][0]}, nil
}

func (f *fakeCatalog) ModuleLessonIDs(moduleID uint) ([]uint, error) {
	return f.moduleLessons[moduleID], nil
}

func (f *fakeCatalog) CourseLessonIDs(courseID uint) ([]uint, error) {
	return f.courseLessons[courseID], nil
}

func (f *fakeCatalog) ExistingLessonIDs(lessonIDs []uint) ([]uint, error) {
	var out []uint
	for _, id := range lessonIDs {
		if _, ok := f.parents[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeCatalog) LessonParents(lessonID uint) (uint, uint, error) {
	p, ok := f.parents[lessonID]
	if !ok {
		return 0, 0, gorm.ErrRecordNotFound
	}
	return p[0], p[1], nil
}

// testCatalog is a course with two modules: module 1 holds lessons
// 1-3, module 2 holds lessons 4-5.
func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		parents: map[uint][2]uint{
			1: {1, 1}, 2: {1, 1}, 3: {1, 1},
			4: {2, 1}, 5: {2, 1},
		},
		moduleLessons: map[uint][]uint{
			1: {1, 2, 3},
			2: {4, 5},
		},
		courseLessons: map[uint][]uint{
			1: {1, 2, 3, 4, 5},
		},
	}
}

func newTestProgressService() (*ProgressService, *fakeCompletions) {
	completions := newFakeCompletions()
	return NewProgressService(completions, testCatalog(), nil), completions
}

func TestRecordLessonCompletionUnknownLesson(t *testing.T) {
	svc, _ := newTestProgressService()

	_, err := svc.RecordLessonCompletion(7, 999, true)
	assert.ErrorIs(t, err, util.ErrUnknownScope)
}

func TestRecordLessonCompletionDrivesModuleProgress(t *testing.T) {
	svc, _ := newTestProgressService()

	_, err := svc.RecordLessonCompletion(7, 1, true)
	require.NoError(t, err)

	mp, err := svc.ModuleProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 33, mp.Percentage)

	_, err = svc.RecordLessonCompletion(7, 2, true)
	require.NoError(t, err)

	mp, err = svc.ModuleProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 67, mp.Percentage)
}

func TestRecordLessonCompletionIsIdempotent(t *testing.T) {
	svc, _ := newTestProgressService()

	_, err := svc.RecordLessonCompletion(7, 1, true)
	require.NoError(t, err)
	_, err = svc.RecordLessonCompletion(7, 1, true)
	require.NoError(t, err)

	mp, err := svc.ModuleProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 33, mp.Percentage)
}

func TestRecordLessonUncompletion(t *testing.T) {
	svc, _ := newTestProgressService()

	_, err := svc.RecordLessonCompletion(7, 1, true)
	require.NoError(t, err)
	_, err = svc.RecordLessonCompletion(7, 1, false)
	require.NoError(t, err)

	mp, err := svc.ModuleProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, mp.Percentage)
}

func TestRecordActivitySubmissionCompletesLesson(t *testing.T) {
	svc, completions := newTestProgressService()

	_, err := svc.RecordActivitySubmission(7, 3)
	require.NoError(t, err)

	// Both the activity fact and the lesson completion exist.
	assert.Contains(t, completions.records, recordKey(7, model.ScopeActivity, 3))
	assert.Contains(t, completions.records, recordKey(7, model.ScopeLesson, 3))

	mp, err := svc.ModuleProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 33, mp.Percentage)
}

func TestRecordQuizAttemptThreshold(t *testing.T) {
	svc, _ := newTestProgressService()

	outcome, err := svc.RecordQuizAttempt(7, 4, 70)
	require.NoError(t, err)
	assert.True(t, outcome.Passed)

	mp, err := svc.ModuleProgressFor(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 50, mp.Percentage)

	outcome, err = svc.RecordQuizAttempt(7, 4, 69)
	require.NoError(t, err)
	assert.False(t, outcome.Passed)

	// A later failing attempt flips the lesson back to incomplete:
	// last write wins.
	mp, err = svc.ModuleProgressFor(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, mp.Percentage)
}

func TestCourseProgressNextLesson(t *testing.T) {
	svc, _ := newTestProgressService()

	for _, id := range []uint{1, 2} {
		_, err := svc.RecordLessonCompletion(7, id, true)
		require.NoError(t, err)
	}

	cp, err := svc.CourseProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 40, cp.Percentage)
	assert.Equal(t, uint(3), cp.NextLessonID)
	assert.False(t, cp.Review)
}

func TestCourseProgressReviewWrap(t *testing.T) {
	svc, _ := newTestProgressService()

	for _, id := range []uint{1, 2, 3, 4, 5} {
		_, err := svc.RecordLessonCompletion(7, id, true)
		require.NoError(t, err)
	}

	cp, err := svc.CourseProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, cp.Percentage)
	assert.Equal(t, uint(1), cp.NextLessonID)
	assert.True(t, cp.Review)
}

func TestStaleLessonExcludedFromDenominator(t *testing.T) {
	completions := newFakeCompletions()
	catalog := testCatalog()
	// The course list references lesson 6 which the catalog no longer
	// knows about.
	catalog.courseLessons[1] = []uint{1, 2, 6}
	svc := NewProgressService(completions, catalog, nil)

	_, err := svc.RecordLessonCompletion(7, 1, true)
	require.NoError(t, err)

	cp, err := svc.CourseProgressFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, cp.Percentage)
}
