package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. When the auth
// middleware did not run, writes a 401 and returns false; the caller should
// return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, i18n.MsgLoginRequired)
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, i18n.MsgLoginRequired)
		return "", false
	}
	return s, true
}
