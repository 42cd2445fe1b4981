// Package cookie stores HMAC-signed values (cart id, customer token) in
// HttpOnly cookies.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CartName  = "_medusa_cart_id"
	TokenName = "_medusa_jwt"
)

var ErrInvalid = errors.New("invalid signed cookie")

type Codec struct {
	Secret []byte
	Name   string
	MaxAge time.Duration
	Secure bool
}

func New(secret []byte, name string, maxAge time.Duration, secure bool) *Codec {
	return &Codec{Secret: secret, Name: name, MaxAge: maxAge, Secure: secure}
}

func NewCart(secret []byte, secure bool) *Codec {
	return New(secret, CartName, 7*24*time.Hour, secure)
}

func NewToken(secret []byte, secure bool) *Codec {
	return New(secret, TokenName, 7*24*time.Hour, secure)
}

// Encode returns value.base64(hmac(value)). The value may contain dots.
func (c *Codec) Encode(value string) string {
	return value + "." + sign(c.Secret, value)
}

func (c *Codec) Decode(v string) (string, error) {
	i := strings.LastIndexByte(v, '.')
	if i <= 0 {
		return "", ErrInvalid
	}
	value, sig := v[:i], v[i+1:]
	if !verify(c.Secret, value, sig) {
		return "", ErrInvalid
	}
	return value, nil
}

// Get returns the verified value; a tampered cookie is cleared.
func (c *Codec) Get(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.Name)
	if err != nil || v == "" {
		return "", false
	}
	value, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return value, true
}

func (c *Codec) Set(ctx *gin.Context, value string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, c.Encode(value), int(c.MaxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
