package session

import "errors"

// ValidationError 登录表单校验失败，Message 直接展示给用户
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNameRequired  = &ValidationError{Field: "name", Message: "Please enter your name"}
	ErrGradeRequired = &ValidationError{Field: "grade", Message: "Please select your grade"}
	ErrGradeInvalid  = &ValidationError{Field: "grade", Message: "Grade must be between 1 and 12"}
)

var (
	ErrInvalidTransition = errors.New("invalid page transition")
	ErrUnknownTask       = errors.New("unknown task")
	ErrSubmitting        = errors.New("assessment is being submitted")
	ErrBusy              = errors.New("another operation is in progress")
	ErrNoSession         = errors.New("no active session")
	// ErrInterrupted 请求进行中用户已退出登录，结果被丢弃
	ErrInterrupted = errors.New("session was reset while the operation was running")
)
