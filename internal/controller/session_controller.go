package controller

import (
	"careerquest_portal/internal/model"
	"careerquest_portal/internal/service"
	"careerquest_portal/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	QuestService *service.QuestService
	CookieName   string
	IsRelease    bool // 生产环境下 cookie 仅通过 https 发送
}

func NewSessionController(questService *service.QuestService, cookieName string, isRelease bool) *SessionController {
	return &SessionController{
		QuestService: questService,
		CookieName:   cookieName,
		IsRelease:    isRelease,
	}
}

// LoginRequest 登录表单
// swagger:model LoginRequest
type LoginRequest struct {
	Name string `json:"name"`
	// 年级下拉框提交的是字符串，未选择时为 ""
	Grade model.FlexInt `json:"grade" swaggertype:"integer"`
}

func sessionKey(ctx *gin.Context) string {
	if claims := util.GetSessionFromContext(ctx); claims != nil {
		return claims.SessionKey
	}
	return ""
}

// Login godoc
// @Summary 登录
// @Description 使用姓名与年级登录。后端不可用时自动使用模拟会话，登录总能进入仪表盘
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "姓名与年级(1-12)"
// @Success 200 {object} util.Response{data=service.LoginResult} "登录成功"
// @Failure 400 {object} util.Response "表单校验失败"
// @Router /session/login [post]
func (c *SessionController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.QuestService.Login(ctx.Request.Context(), req.Name, int(req.Grade), sessionKey(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, res.Token, maxAge, "/", "", c.IsRelease, true)
	util.Success(ctx, res)
}

// Logout godoc
// @Summary 退出登录
// @Description 清空当前会话并回到登录页
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /session/logout [post]
func (c *SessionController) Logout(ctx *gin.Context) {
	view := c.QuestService.Logout(ctx.Request.Context(), sessionKey(ctx))
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, view)
}

// Page godoc
// @Summary 当前页面
// @Description 返回当前页面的视图数据，未登录或会话失效时返回登录页
// @Tags 会话
// @Produce  json
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /page [get]
func (c *SessionController) Page(ctx *gin.Context) {
	util.Success(ctx, c.QuestService.View(ctx.Request.Context(), sessionKey(ctx)))
}

// Connection godoc
// @Summary 后端连通性
// @Description 探测外部分析后端，只用于登录页的状态提示
// @Tags 会话
// @Produce  json
// @Success 200 {object} util.Response{data=model.ConnectionStatus}
// @Router /connection [get]
func (c *SessionController) Connection(ctx *gin.Context) {
	key := sessionKey(ctx)
	if key != "" {
		if ctrl, err := c.QuestService.Controller(ctx.Request.Context(), key); err == nil {
			util.Success(ctx, ctrl.ConnectionCheck(ctx.Request.Context()))
			return
		}
	}
	util.Success(ctx, c.QuestService.ConnectionCheck(ctx.Request.Context()))
}
