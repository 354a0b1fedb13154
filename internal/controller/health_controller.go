package controller

import (
	"careerquest_portal/internal/service"
	"careerquest_portal/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	QuestService *service.QuestService
}

func NewHealthController(questService *service.QuestService) *HealthController {
	return &HealthController{QuestService: questService}
}

// @Summary 健康检查
// @Description 检查门户服务与会话缓存状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response "会话缓存不可用"
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.QuestService.Ping(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Session store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":          "ok",
		"active_sessions": c.QuestService.ActiveSessions(),
		"components": gin.H{
			"session_store": "up",
		},
	})
}
