package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("missing"), http.StatusNotFound},
		{UnauthorizedErr("login"), http.StatusUnauthorized},
		{ForbiddenErr("no"), http.StatusForbidden},
		{ConflictErr("dup"), http.StatusConflict},
		{RateLimitedErr("slow down"), http.StatusTooManyRequests},
		{UnavailableErr("down", errors.New("dial")), http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFoundErr("x")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestWrapKeepsAppErrors(t *testing.T) {
	nf := NotFoundErr("Product not found")
	assert.Same(t, nf, Wrap(nf))
	assert.Nil(t, Wrap(nil))

	cause := errors.New("boom")
	w := Wrap(cause)
	require.NotNil(t, w)
	assert.Equal(t, Internal, w.Kind)
	assert.ErrorIs(t, w, cause)
	assert.Equal(t, defaultPublicMsg, PublicMessage(w))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Invalid email", PublicMessage(InvalidErr("Invalid email", nil)))
	assert.Equal(t, defaultPublicMsg, PublicMessage(errors.New("secret detail")))
}
