package middleware

import (
	"scriptgen/config"
	"scriptgen/internal/adapter/httpapi/context"
	"scriptgen/utils"

	"github.com/gin-gonic/gin"
)

// maxRequestIDLength 客户端传入的请求ID超过该长度时重新生成
const maxRequestIDLength = 128

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(config.RequestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = utils.GenerateRequestID()
		}
		context.SetRequestID(c, rid)
		c.Next()
	}
}
