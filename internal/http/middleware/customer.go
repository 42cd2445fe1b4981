package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/cookie"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

const CtxKeyCustomerToken = "customer_token"

// CustomerToken puts the signed-in customer's token on the request context
// so Store API calls made for this request are authenticated.
func CustomerToken(codec *cookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := codec.Get(c); ok {
			c.Set(CtxKeyCustomerToken, token)
			c.Request = c.Request.WithContext(medusa.WithToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

func HasCustomerToken(c *gin.Context) bool {
	return c.GetString(CtxKeyCustomerToken) != ""
}

// RequireCustomer sends anonymous visitors to the login page:
// HTML requests get a flash and a redirect, JSON clients a 401.
func RequireCustomer(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if HasCustomerToken(c) {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		flashCodec.Set(c, view.Flash{Kind: view.FlashWarning, Message: "Please sign in to continue."})
		returnTo := c.Request.URL.RequestURI()
		c.Redirect(http.StatusFound, "/"+GetCountryCode(c)+"/account/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}
