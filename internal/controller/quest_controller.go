package controller

import (
	"careerquest_portal/internal/service"
	"careerquest_portal/internal/session"
	"careerquest_portal/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestController struct {
	QuestService *service.QuestService
}

func NewQuestController(questService *service.QuestService) *QuestController {
	return &QuestController{QuestService: questService}
}

// AnswerRequest 单个任务的作答内容
// swagger:model AnswerRequest
type AnswerRequest struct {
	Answer string `json:"answer"`
}

func (c *QuestController) controller(ctx *gin.Context) (*session.Controller, bool) {
	ctrl, err := c.QuestService.Controller(ctx.Request.Context(), sessionKey(ctx))
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}
	return ctrl, true
}

func (c *QuestController) respond(ctx *gin.Context, view session.Snapshot, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Start godoc
// @Summary 开始测评
// @Description 从仪表盘进入答题页
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Failure 409 {object} util.Response "当前页面不允许该操作"
// @Router /quest/start [post]
func (c *QuestController) Start(ctx *gin.Context) {
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	view, err := ctrl.StartAssessment()
	c.respond(ctx, view, err)
}

// OpenTask godoc
// @Summary 切换任务
// @Description 打开指定任务并开始计时
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "任务ID"
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Failure 404 {object} util.Response "任务不存在"
// @Failure 423 {object} util.Response "正在提交"
// @Router /quest/tasks/{id}/open [post]
func (c *QuestController) OpenTask(ctx *gin.Context) {
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	view, err := ctrl.OpenTask(ctx.Param("id"))
	c.respond(ctx, view, err)
}

// SaveAnswer godoc
// @Summary 保存作答
// @Description 按任务ID覆盖保存答案
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "任务ID"
// @Param   body body AnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "任务不存在"
// @Failure 423 {object} util.Response "正在提交"
// @Router /quest/answers/{id} [put]
func (c *QuestController) SaveAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	if err := ctrl.RecordAnswer(ctx.Param("id"), req.Answer); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Complete godoc
// @Summary 提交测评
// @Description 提交全部答案并生成报告。后端失败时使用本地报告，总能进入结果页
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Failure 409 {object} util.Response "当前页面不允许该操作"
// @Failure 423 {object} util.Response "正在提交"
// @Router /quest/complete [post]
func (c *QuestController) Complete(ctx *gin.Context) {
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	view, err := ctrl.CompleteAssessment(ctx.Request.Context())
	c.respond(ctx, view, err)
}

// Cancel godoc
// @Summary 放弃测评
// @Description 丢弃本次作答并回到仪表盘
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /quest/cancel [post]
func (c *QuestController) Cancel(ctx *gin.Context) {
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	view, err := ctrl.CancelAssessment()
	c.respond(ctx, view, err)
}

// ReturnToDashboard godoc
// @Summary 返回仪表盘
// @Description 从结果页返回仪表盘，保留最近一次报告
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /results/return [post]
func (c *QuestController) ReturnToDashboard(ctx *gin.Context) {
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	view, err := ctrl.ReturnToDashboard()
	c.respond(ctx, view, err)
}

// DashboardStats godoc
// @Summary 仪表盘统计
// @Description 已完成测评次数与技能时间线，后端不可用时由本次会话推算
// @Tags 仪表盘
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.DashboardStats}
// @Router /dashboard/stats [get]
func (c *QuestController) DashboardStats(ctx *gin.Context) {
	ctrl, ok := c.controller(ctx)
	if !ok {
		return
	}
	stats, err := ctrl.DashboardStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
