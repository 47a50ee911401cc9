package repository

import (
	"tutoria_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListCourses() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_published = ?", true).Order("`order` ASC").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) FindCourseByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.order ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepository) FindModuleByID(id uint) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order ASC")
		}).
		First(&module, id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *CatalogRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ModuleLessonIDs returns the module's lesson ids in course order.
func (r *CatalogRepository) ModuleLessonIDs(moduleID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Order("`order` ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// CourseLessonIDs returns every lesson id across the course's modules,
// ordered by module order then lesson order. This defines the scan
// order the next-lesson pointer follows.
func (r *CatalogRepository) CourseLessonIDs(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Order("course_modules.order ASC, lessons.order ASC").
		Pluck("lessons.id", &ids).Error
	return ids, err
}

// ExistingLessonIDs filters a lesson id list down to the ids actually
// present in the catalog. Callers use the difference to spot stale
// references.
func (r *CatalogRepository) ExistingLessonIDs(lessonIDs []uint) ([]uint, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Where("id IN ?", lessonIDs).
		Pluck("id", &ids).Error
	return ids, err
}

// LessonParents resolves the owning module and course for a lesson,
// used to invalidate cached progress after a completion write.
func (r *CatalogRepository) LessonParents(lessonID uint) (moduleID, courseID uint, err error) {
	var lesson model.Lesson
	if err = r.DB.First(&lesson, lessonID).Error; err != nil {
		return 0, 0, err
	}

	var module model.CourseModule
	if err = r.DB.First(&module, lesson.ModuleID).Error; err != nil {
		return 0, 0, err
	}

	return module.ID, module.CourseID, nil
}

func (r *CatalogRepository) CreateCourse(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CatalogRepository) CreateModule(module *model.CourseModule) error {
	return r.DB.Create(module).Error
}

func (r *CatalogRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}
