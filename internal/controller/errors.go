package controller

import (
	"careerquest_portal/internal/session"
	"careerquest_portal/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把会话层错误映射为 HTTP 状态码
func respondError(ctx *gin.Context, err error) {
	var validationErr *session.ValidationError
	switch {
	case errors.As(err, &validationErr):
		util.ValidationFailed(ctx, validationErr.Field, validationErr.Message)
	case errors.Is(err, session.ErrInvalidTransition):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrInterrupted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, session.ErrUnknownTask):
		util.NotFound(ctx, "Task not found")
	case errors.Is(err, session.ErrSubmitting):
		util.Locked(ctx, err.Error())
	case errors.Is(err, session.ErrNoSession), errors.Is(err, util.ErrSessionExpired):
		util.Error(ctx, http.StatusUnauthorized, util.ErrSessionExpired.Error())
	case errors.Is(err, util.ErrStoreDisabled):
		util.ServiceUnavailable(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
