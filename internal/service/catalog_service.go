package service

import (
	"tutoria_backend/internal/model"
	"tutoria_backend/internal/repository"
)

type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) ListCourses() ([]model.Course, error) {
	return s.Repo.ListCourses()
}

func (s *CatalogService) GetCourse(id uint) (*model.Course, error) {
	return s.Repo.FindCourseByID(id)
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	GradeBand   string `json:"gradeBand"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"isPublished"`
}

func (s *CatalogService) CreateCourse(req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		GradeBand:   req.GradeBand,
		Order:       req.Order,
		IsPublished: req.IsPublished,
	}
	if err := s.Repo.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

type ModuleRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (s *CatalogService) CreateModule(req ModuleRequest) (*model.CourseModule, error) {
	if _, err := s.Repo.FindCourseByID(req.CourseID); err != nil {
		return nil, err
	}

	module := &model.CourseModule{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.Repo.CreateModule(module); err != nil {
		return nil, err
	}
	return module, nil
}

type LessonRequest struct {
	ModuleID    uint             `json:"moduleId" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Kind        model.LessonKind `json:"kind"`
	Order       int              `json:"order"`
	VideoURL    string           `json:"videoUrl"`
	Description string           `json:"description"`
}

func (s *CatalogService) CreateLesson(req LessonRequest) (*model.Lesson, error) {
	if _, err := s.Repo.FindModuleByID(req.ModuleID); err != nil {
		return nil, err
	}

	if req.Kind == "" {
		req.Kind = model.LessonVideo
	}

	lesson := &model.Lesson{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Kind:        req.Kind,
		Order:       req.Order,
		VideoURL:    req.VideoURL,
		Description: req.Description,
	}
	if err := s.Repo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
