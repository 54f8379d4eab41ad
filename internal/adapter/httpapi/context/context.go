package context

import (
	"scriptgen/config"

	"github.com/gin-gonic/gin"
)

const (
	requestIDKey = "request_id"
	modelKey     = "model"
)

func SetRequestID(c *gin.Context, id string) {
	c.Set(requestIDKey, id)
	c.Writer.Header().Set(config.RequestIDHeader, id)
}

func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// SetModel 记录本次请求使用的模型，便于日志关联
func SetModel(c *gin.Context, model string) {
	c.Set(modelKey, model)
}

func GetModel(c *gin.Context) string {
	if v, ok := c.Get(modelKey); ok {
		if model, ok := v.(string); ok {
			return model
		}
	}
	return ""
}
