package model

const NoAnswerProvided = "No answer provided"

// AnswerRecord 用户对单个任务的作答
type AnswerRecord struct {
	TaskID         string `json:"task_id"`
	TaskTitle      string `json:"task_title"`
	Answer         string `json:"answer"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// SaveAnswersRequest /save-answers 请求体
type SaveAnswersRequest struct {
	Name    string         `json:"name"`
	Answers []AnswerRecord `json:"answers"`
}
