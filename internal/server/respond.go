package server

import "github.com/gin-gonic/gin"

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

type envelope struct {
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
}

func respond(c *gin.Context, code int, data any, message string) {
	status := statusSuccess
	if code >= 400 {
		status = statusFailed
	}
	c.JSON(code, envelope{
		Data:       data,
		Message:    message,
		Status:     status,
		StatusCode: code,
	})
}
