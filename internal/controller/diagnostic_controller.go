package controller

import (
	"errors"
	"strconv"

	"tutoria_backend/internal/diagnostic"
	"tutoria_backend/internal/service"
	"tutoria_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DiagnosticController struct {
	Service *service.DiagnosticService
}

func NewDiagnosticController(svc *service.DiagnosticService) *DiagnosticController {
	return &DiagnosticController{Service: svc}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary Student view of a diagnostic battery
// @Tags diagnostics
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "diagnostic id"
// @Success 200 {object} util.Response
// @Router /diagnostics/{id}/questions [get]
func (c *DiagnosticController) GetStudentQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	qs, err := c.Service.ListStudentQuestions(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, qs)
}

// @Summary Start a diagnostic session
// @Tags diagnostics
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "diagnostic id"
// @Success 201 {object} util.Response
// @Router /diagnostics/{id}/start [post]
func (c *DiagnosticController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.Service.StartSession(user.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrDiagnosticNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

type AnswerRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	OptionID   uint `json:"optionId" binding:"required"`
}

// sessionError maps engine and lookup errors onto the response
// envelope. Late mutation of a completed session is a conflict, not a
// server fault.
func sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, diagnostic.ErrSessionCompleted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, diagnostic.ErrQuestionNotInSession),
		errors.Is(err, diagnostic.ErrOptionNotInQuestion):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Select an answer for a question
// @Tags diagnostics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "session id"
// @Param body body AnswerRequest true "selection"
// @Success 200 {object} util.Response
// @Router /diagnostics/sessions/{sessionId}/answer [post]
func (c *DiagnosticController) SelectAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Service.SelectAnswer(ctx.Param("sessionId"), user.UserID, req.QuestionID, req.OptionID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type SkipRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
}

type stepResponse struct {
	Session *service.SessionView `json:"session"`
	Result  *diagnostic.Result   `json:"result,omitempty"`
}

// @Summary Skip the current question
// @Tags diagnostics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "session id"
// @Param body body SkipRequest true "question to skip"
// @Success 200 {object} util.Response
// @Router /diagnostics/sessions/{sessionId}/skip [post]
func (c *DiagnosticController) Skip(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SkipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, result, err := c.Service.Skip(ctx.Param("sessionId"), user.UserID, req.QuestionID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, stepResponse{Session: view, Result: result})
}

// @Summary Advance to the next question
// @Tags diagnostics
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "session id"
// @Success 200 {object} util.Response
// @Router /diagnostics/sessions/{sessionId}/next [post]
func (c *DiagnosticController) Next(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, result, err := c.Service.Next(ctx.Param("sessionId"), user.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, stepResponse{Session: view, Result: result})
}

// @Summary Finalize the session and compute results
// @Tags diagnostics
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "session id"
// @Success 200 {object} util.Response
// @Router /diagnostics/sessions/{sessionId}/finalize [post]
func (c *DiagnosticController) Finalize(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.Finalize(ctx.Param("sessionId"), user.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Latest persisted diagnostic result
// @Tags diagnostics
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "diagnostic id"
// @Success 200 {object} util.Response
// @Router /diagnostics/{id}/result [get]
func (c *DiagnosticController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.Service.LatestResult(user.UserID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// Teacher-side authoring endpoints.

// @Summary Create a diagnostic
// @Tags diagnostics-authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.DiagnosticRequest true "diagnostic"
// @Success 201 {object} util.Response
// @Router /teacher/diagnostics [post]
func (c *DiagnosticController) CreateDiagnostic(ctx *gin.Context) {
	var req service.DiagnosticRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	diag, err := c.Service.CreateDiagnostic(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, diag)
}

// @Summary List diagnostics
// @Tags diagnostics-authoring
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /teacher/diagnostics [get]
func (c *DiagnosticController) ListDiagnostics(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	diags, total, err := c.Service.ListDiagnostics(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: diags, Total: total, Page: page, Limit: limit})
}

// @Summary Publish a diagnostic
// @Tags diagnostics-authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "diagnostic id"
// @Success 200 {object} util.Response
// @Router /teacher/diagnostics/{id}/publish [post]
func (c *DiagnosticController) PublishDiagnostic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	diag, err := c.Service.PublishDiagnostic(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, diag)
}

// @Summary Add a question to a diagnostic
// @Tags diagnostics-authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "diagnostic id"
// @Param body body service.QuestionRequest true "question with options"
// @Success 201 {object} util.Response
// @Router /teacher/diagnostics/{id}/questions [post]
func (c *DiagnosticController) CreateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(id, req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionKey) {
			util.BadRequest(ctx, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary List questions with answer keys
// @Tags diagnostics-authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "diagnostic id"
// @Success 200 {object} util.Response
// @Router /teacher/diagnostics/{id}/questions [get]
func (c *DiagnosticController) ListQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	qs, err := c.Service.ListQuestions(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, qs)
}

// @Summary Delete a question
// @Tags diagnostics-authoring
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /teacher/diagnostics/questions/{questionId} [delete]
func (c *DiagnosticController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
