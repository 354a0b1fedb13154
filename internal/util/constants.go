package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const TokenIssuer = "careerquest-portal"

// gin.Context 中使用的 key
const (
	ContextConfigKey  = "config"
	ContextSessionKey = "session"
)
