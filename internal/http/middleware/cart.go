package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/cookie"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

const (
	CtxKeyCartID    = "cart_id"
	CtxKeyCart      = "cart"
	CtxKeyCartCount = "cart_count"
)

type CartLoader interface {
	Retrieve(ctx context.Context, cartID string) (*medusa.Cart, error)
}

// CurrentCart loads the cart named by the cart cookie for the header badge
// and the handlers. A cookie pointing at a vanished cart is dropped; backend
// failures leave the request cart-less instead of failing it.
func CurrentCart(codec *cookie.Codec, loader CartLoader, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := codec.Get(c)
		if !ok {
			c.Next()
			return
		}
		c.Set(CtxKeyCartID, id)

		cart, err := loader.Retrieve(c.Request.Context(), id)
		switch {
		case err != nil:
			l.WarnContext(c.Request.Context(), "cart_load_failed",
				"request_id", GetRequestID(c), "cart_id", id, "error", err)
		case cart == nil:
			codec.Clear(c)
			c.Set(CtxKeyCartID, "")
		default:
			c.Set(CtxKeyCart, cart)
			c.Set(CtxKeyCartCount, cart.ItemCount())
		}
		c.Next()
	}
}

func GetCartID(c *gin.Context) string { return c.GetString(CtxKeyCartID) }

func GetCart(c *gin.Context) *medusa.Cart {
	if v, ok := c.Get(CtxKeyCart); ok {
		if cart, ok := v.(*medusa.Cart); ok {
			return cart
		}
	}
	return nil
}

func GetCartCount(c *gin.Context) int { return c.GetInt(CtxKeyCartCount) }

// SetCart replaces the request's cart after a mutation.
func SetCart(c *gin.Context, cart *medusa.Cart) {
	if cart == nil {
		return
	}
	c.Set(CtxKeyCartID, cart.ID)
	c.Set(CtxKeyCart, cart)
	c.Set(CtxKeyCartCount, cart.ItemCount())
}
