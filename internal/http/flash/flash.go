// Package flash carries one-shot notices across a redirect in a signed cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/cookie"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

const CookieName = "_flash"

var ErrInvalid = errors.New("invalid flash cookie")

type Codec struct {
	signed *cookie.Codec
}

func NewCodec(secret []byte, secure bool) *Codec {
	return &Codec{signed: cookie.New(secret, CookieName, 2*time.Minute, secure)}
}

func (c *Codec) Name() string { return c.signed.Name }

// value format: base64(json).base64(hmac)
func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return c.signed.Encode(base64.RawURLEncoding.EncodeToString(b)), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, err := c.signed.Decode(v)
	if err != nil {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	return &f, nil
}

func (c *Codec) Set(ctx *gin.Context, f view.Flash) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.signed.Set(ctx, base64.RawURLEncoding.EncodeToString(b))
}

// Pop reads and clears the flash cookie.
func (c *Codec) Pop(ctx *gin.Context) *view.Flash {
	v, err := ctx.Cookie(c.signed.Name)
	if err != nil || v == "" {
		return nil
	}
	c.signed.Clear(ctx)
	f, err := c.Decode(v)
	if err != nil {
		return nil
	}
	return f
}
