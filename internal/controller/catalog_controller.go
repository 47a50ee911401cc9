package controller

import (
	"errors"

	"tutoria_backend/internal/service"
	"tutoria_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

// @Summary List published courses
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.Service.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Course detail with modules and lessons
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.Service.GetCourse(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Create a course
// @Tags catalog-authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "course"
// @Success 201 {object} util.Response
// @Router /teacher/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CreateCourse(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Create a module
// @Tags catalog-authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ModuleRequest true "module"
// @Success 201 {object} util.Response
// @Router /teacher/modules [post]
func (c *CatalogController) CreateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.Service.CreateModule(req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.BadRequest(ctx, "course does not exist")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary Create a lesson
// @Tags catalog-authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.LessonRequest true "lesson"
// @Success 201 {object} util.Response
// @Router /teacher/lessons [post]
func (c *CatalogController) CreateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Service.CreateLesson(req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.BadRequest(ctx, "module does not exist")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}
