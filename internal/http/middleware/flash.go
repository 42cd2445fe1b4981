package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

const CtxKeyFlash = "flash"

// Flash moves a pending flash from its cookie into the request context and
// clears the cookie, valid or not.
func Flash(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if f := codec.Pop(c); f != nil {
			c.Set(CtxKeyFlash, f)
		}
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	if v, ok := c.Get(CtxKeyFlash); ok {
		if f, ok := v.(*view.Flash); ok {
			return f
		}
	}
	return nil
}
