package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the single wire shape every endpoint answers with. Exactly one
// of Data or Error is set.
type Envelope struct {
	Ok    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Error any  `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Ok:   true,
		Data: data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, Envelope{
		Ok: false,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Replay writes a previously cached success body without re-running the
// handler. Used by the idempotency middleware.
func Replay(c *gin.Context, status int, data any) {
	c.AbortWithStatusJSON(status, Envelope{
		Ok:   true,
		Data: data,
	})
}
