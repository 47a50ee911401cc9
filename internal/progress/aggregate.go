// Package progress derives module and course completion from the set
// of completion records. Everything here is a pure function of its
// inputs; derived percentages are recomputed from scratch on every
// call and cached copies are invalidated, never patched incrementally.
package progress

import "math"

// Percent computes rounded percentage completion for an ordered lesson
// id list against the lessons the user has completed. An empty lesson
// list is defined as 0%, not a division fault. Lesson ids missing from
// the completed map simply count as incomplete.
func Percent(lessonIDs []uint, completed map[uint]bool) int {
	if len(lessonIDs) == 0 {
		return 0
	}

	done := 0
	for _, id := range lessonIDs {
		if completed[id] {
			done++
		}
	}

	return int(math.Round(float64(done) / float64(len(lessonIDs)) * 100))
}

// NextLesson scans lessons in course order and returns the first one
// without a completed record. When every lesson is complete the pointer
// wraps to the first lesson again (review mode), deliberately not the
// most recently completed one. The second return is the review flag;
// an empty list returns (0, false).
func NextLesson(lessonIDs []uint, completed map[uint]bool) (uint, bool) {
	if len(lessonIDs) == 0 {
		return 0, false
	}

	for _, id := range lessonIDs {
		if !completed[id] {
			return id, false
		}
	}

	return lessonIDs[0], true
}
