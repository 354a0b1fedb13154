package session

import (
	"careerquest_portal/internal/model"
	"fmt"
)

// edges 页面之间允许的跳转。退出登录可从任意页面回到 login
var edges = map[model.Page][]model.Page{
	model.PageLogin:     {model.PageDashboard},
	model.PageDashboard: {model.PageTasks},
	model.PageTasks:     {model.PageResults, model.PageDashboard},
	model.PageResults:   {model.PageDashboard},
}

func canTransition(from, to model.Page) bool {
	if to == model.PageLogin {
		return true
	}
	for _, p := range edges[from] {
		if p == to {
			return true
		}
	}
	return false
}

func transitionError(from, to model.Page) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
