package model

import "errors"

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrNoTasks          = errors.New("task list is empty")
)
