package model

// Page 前端当前所处页面
type Page string

const (
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
	PageTasks     Page = "tasks"
	PageResults   Page = "results"
)

func (p Page) String() string {
	return string(p)
}
