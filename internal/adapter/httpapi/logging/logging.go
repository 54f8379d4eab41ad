package logging

import (
	srvcontext "scriptgen/internal/adapter/httpapi/context"
	"scriptgen/logger"

	"github.com/gin-gonic/gin"
)

func AddFields(c *gin.Context, fields ...logger.Field) []logger.Field {
	rid := srvcontext.GetRequestID(c)
	model := srvcontext.GetModel(c)
	out := make([]logger.Field, 0, len(fields)+2)
	if rid != "" {
		out = append(out, logger.String("request_id", rid))
	}
	if model != "" {
		out = append(out, logger.String("model", model))
	}
	out = append(out, fields...)
	return out
}
