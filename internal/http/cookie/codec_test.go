package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	c := NewCart([]byte("secret"), false)

	v := c.Encode("cart_01H")
	got, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "cart_01H", got)

	// JWTs carry dots
	jwt := "eyJhbGciOi.eyJzdWIiOi.sig"
	got, err = NewToken([]byte("secret"), false).Decode(NewToken([]byte("secret"), false).Encode(jwt))
	require.NoError(t, err)
	assert.Equal(t, jwt, got)
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := NewCart([]byte("secret"), false)
	other := NewCart([]byte("other"), false)

	for _, v := range []string{"", "nodot", ".sig", "cart_1.bad", other.Encode("cart_1")} {
		_, err := c.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid, v)
	}
}

func TestGetSetClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := NewCart([]byte("secret"), true)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	codec.Set(ctx, "cart_1")

	res := w.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.Equal(t, CartName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, 7*24*3600, ck.MaxAge)

	w2 := httptest.NewRecorder()
	ctx2, _ := gin.CreateTestContext(w2)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	ctx2.Request = req
	id, ok := codec.Get(ctx2)
	require.True(t, ok)
	assert.Equal(t, "cart_1", id)

	w3 := httptest.NewRecorder()
	ctx3, _ := gin.CreateTestContext(w3)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CartName, Value: "cart_1.forged"})
	ctx3.Request = req
	_, ok = codec.Get(ctx3)
	assert.False(t, ok)
	require.Len(t, w3.Result().Cookies(), 1)
	assert.Equal(t, -1, w3.Result().Cookies()[0].MaxAge)
}
