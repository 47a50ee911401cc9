package controller

import (
	"errors"

	"tutoria_backend/internal/model"
	"tutoria_backend/internal/service"
	"tutoria_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

type CompletionRequest struct {
	ScopeKind model.ScopeKind `json:"scopeKind" binding:"required"`
	ScopeID   uint            `json:"scopeId" binding:"required"`
	Completed *bool           `json:"completed"` // lesson scope
	Score     *int            `json:"score"`     // quiz attempts, percentage 0..100
}

// @Summary Record a completion fact
// @Description Upserts the single completion record for the scope.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CompletionRequest true "completion"
// @Success 200 {object} util.Response
// @Router /progress/completions [post]
func (c *ProgressController) RecordCompletion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var payload interface{}
	var err error

	switch req.ScopeKind {
	case model.ScopeLesson:
		completed := true
		if req.Completed != nil {
			completed = *req.Completed
		}
		payload, err = c.Service.RecordLessonCompletion(user.UserID, req.ScopeID, completed)
	case model.ScopeActivity:
		payload, err = c.Service.RecordActivitySubmission(user.UserID, req.ScopeID)
	case model.ScopeQuizAttempt:
		if req.Score == nil || *req.Score < 0 || *req.Score > 100 {
			util.BadRequest(ctx, "quiz attempts require a score between 0 and 100")
			return
		}
		payload, err = c.Service.RecordQuizAttempt(user.UserID, req.ScopeID, *req.Score)
	default:
		util.BadRequest(ctx, "unknown scope kind")
		return
	}

	if err != nil {
		if errors.Is(err, util.ErrUnknownScope) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary Module progress percentage
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /modules/{id}/progress [get]
func (c *ProgressController) GetModuleProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Service.ModuleProgressFor(user.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Course progress with next-lesson pointer
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /courses/{id}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Service.CourseProgressFor(user.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Next lesson to study in a course
// @Description Returns the first incomplete lesson, or the first lesson in review mode once everything is done.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /courses/{id}/next-lesson [get]
func (c *ProgressController) GetNextLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Service.CourseProgressFor(user.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"courseId":     result.CourseID,
		"nextLessonId": result.NextLessonID,
		"review":       result.Review,
	})
}
