package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/cookie"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/customer"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

type AccountHandler struct {
	customers   *customer.Service
	carts       *cart.Service
	layouts     *Layouts
	tokenCookie *cookie.Codec
	cartCookie  *cookie.Codec
	flash       *flash.Codec
}

func NewAccountHandler(customers *customer.Service, carts *cart.Service, layouts *Layouts, tokenCookie, cartCookie *cookie.Codec, flashCodec *flash.Codec) *AccountHandler {
	return &AccountHandler{
		customers:   customers,
		carts:       carts,
		layouts:     layouts,
		tokenCookie: tokenCookie,
		cartCookie:  cartCookie,
		flash:       flashCodec,
	}
}

func (h *AccountHandler) accountPath(c *gin.Context) string {
	return "/" + middleware.GetCountryCode(c) + "/account"
}

// LoginForm: GET /:countryCode/account/login
func (h *AccountHandler) LoginForm(c *gin.Context) {
	if middleware.HasCustomerToken(c) {
		render.Redirect(c, h.accountPath(c))
		return
	}
	p := view.LoginPage{
		Layout:   h.layouts.Build(c, "Sign in"),
		ReturnTo: safeReturnTo(c.Query("return_to"), ""),
	}
	render.Component(c, http.StatusOK, pages.Login(p))
}

// Login: POST /:countryCode/account/login. On success the anonymous cart is
// transferred to the customer.
func (h *AccountHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	email := c.PostForm("email")
	returnTo := safeReturnTo(c.PostForm("return_to"), h.accountPath(c))

	token, err := h.customers.Login(ctx, email, c.PostForm("password"))
	if err != nil {
		status := http.StatusUnauthorized
		msg := customer.ErrInvalidCredentials.Error()
		if !errors.Is(err, customer.ErrInvalidCredentials) {
			status = http.StatusBadGateway
			msg = flashMessage(err)
		}
		p := view.LoginPage{
			Layout:   h.layouts.Build(c, "Sign in"),
			Email:    email,
			ReturnTo: safeReturnTo(c.PostForm("return_to"), ""),
			Errors:   map[string]string{"_": msg},
		}
		render.Component(c, status, pages.Login(p))
		return
	}

	h.tokenCookie.Set(c, token)
	if cartID := middleware.GetCartID(c); cartID != "" {
		if err := h.carts.Transfer(medusa.WithToken(ctx, token), cartID); err != nil {
			h.layouts.Logger.WarnContext(ctx, "cart_transfer_failed",
				"request_id", middleware.GetRequestID(c), "cart_id", cartID, "error", err)
		}
	}
	render.RedirectWithFlash(c, h.flash, returnTo, view.FlashSuccess, "Welcome back!")
}

// Account: GET /:countryCode/account, behind RequireCustomer.
func (h *AccountHandler) Account(c *gin.Context) {
	cust := h.customers.Retrieve(c.Request.Context())
	if cust == nil {
		// the token expired or was revoked
		h.tokenCookie.Clear(c)
		render.RedirectWithFlash(c, h.flash, h.accountPath(c)+"/login", view.FlashWarning, "Please sign in to continue.")
		return
	}
	p := view.AccountPage{
		Layout:    h.layouts.Build(c, "Account"),
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		Email:     cust.Email,
		Phone:     cust.Phone,
	}
	render.Component(c, http.StatusOK, pages.Account(p))
}

// Logout: POST /:countryCode/account/logout. The cart belongs to the
// customer now, so it is dropped too.
func (h *AccountHandler) Logout(c *gin.Context) {
	h.tokenCookie.Clear(c)
	h.cartCookie.Clear(c)
	render.RedirectWithFlash(c, h.flash, "/"+middleware.GetCountryCode(c), view.FlashInfo, "You have been signed out.")
}
