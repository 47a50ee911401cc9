package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDiagnosticNotFound = errors.New("diagnostic not found or not published")
	ErrSessionNotFound    = errors.New("diagnostic session not found")
	ErrUnknownScope       = errors.New("completion scope has no known parent")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrModuleNotFound       = errors.New("module not found")
)
