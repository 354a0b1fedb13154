package model

import "time"

const (
	ConnectionChecking    = "Checking backend connection..."
	ConnectionOK          = "Backend connected"
	ConnectionServerError = "Backend connection failed - Server error"
	ConnectionTimeout     = "Backend connection failed - Timeout (server not responding)"
	ConnectionUnreachable = "Backend connection failed - Check server and CORS"
)

// ConnectionStatus 登录页展示的后端连通性指示
type ConnectionStatus struct {
	Available bool      `json:"available"`
	Message   string    `json:"message"`
	CheckedAt time.Time `json:"checked_at"`
}
