// Package http wires the storefront's middleware and routes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/cookie"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/flash"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/handlers"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/metrics"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/customer"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/payments"
	"github.com/LeroySteding/medusajs-yn-railway/internal/storage"
	"github.com/LeroySteding/medusajs-yn-railway/static"
)

type Deps struct {
	Config    config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Catalog   *catalog.Service
	Carts     *cart.Service
	Customers *customer.Service
	Orders    handlers.OrderRetriever
	Payments  *payments.Registry
	Storage   storage.Storage
	// Newsletter is nil when no database is configured.
	Newsletter  handlers.Subscriber
	RateLimiter *middleware.RateLimiter
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	secret := []byte(cfg.App.CookieSecret)
	secure := cfg.App.SecureCookies

	cartCookie := cookie.NewCart(secret, secure)
	tokenCookie := cookie.NewToken(secret, secure)
	flashCodec := flash.NewCodec(secret, secure)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(d.Logger))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	// ErrorHandler must wrap Recovery so a panic still renders a page.
	r.Use(
		middleware.ErrorHandler(d.Logger, render.ErrorPage(cfg.App.DefaultCountryCode)),
		middleware.Recovery(d.Logger),
	)

	r.NoRoute(handlers.NotFound)

	r.StaticFS("/static", http.FS(static.FS))
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.LocalURL, cfg.Storage.LocalDir)
	}
	r.GET("/healthz", handlers.Health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	limit := func(c *gin.Context) { c.Next() }
	if d.RateLimiter != nil {
		limit = d.RateLimiter.Handler()
	}

	layouts := &handlers.Layouts{Catalog: d.Catalog, Customer: d.Customers, Storage: d.Storage, Logger: d.Logger}
	catalogH := handlers.NewCatalogHandler(d.Catalog, layouts, d.Storage)
	cartH := handlers.NewCartHandler(d.Carts, layouts, cartCookie, flashCodec)
	checkoutH := handlers.NewCheckoutHandler(handlers.CheckoutOptions{
		Carts:      d.Carts,
		Payments:   d.Payments,
		Layouts:    layouts,
		CartCookie: cartCookie,
		Flash:      flashCodec,
		Metrics:    d.Metrics,
		BaseURL:    cfg.App.BaseURL,
	})
	orderH := handlers.NewOrderHandler(d.Orders, layouts)
	regionH := handlers.NewRegionHandler(d.Carts, flashCodec)
	accountH := handlers.NewAccountHandler(d.Customers, d.Carts, layouts, tokenCookie, cartCookie, flashCodec)
	newsletterH := handlers.NewNewsletterHandler(d.Newsletter, flashCodec, d.Logger)

	site := r.Group("/",
		middleware.Flash(flashCodec),
		middleware.CustomerToken(tokenCookie),
	)
	site.GET("", handlers.RootRedirect(cfg.App.DefaultCountryCode))
	site.POST("/newsletter", limit, newsletterH.Subscribe)
	site.POST("/newsletter/unsubscribe", limit, newsletterH.Unsubscribe)

	store := site.Group("/:"+middleware.ParamCountryCode,
		middleware.Region(d.Catalog),
		middleware.CurrentCart(cartCookie, d.Carts, d.Logger),
	)
	{
		store.GET("", catalogH.Home)
		store.GET("/categories/:handle", catalogH.Category)
		store.GET("/collections/:handle", catalogH.Collection)
		store.GET("/products/:handle", catalogH.Product)

		store.GET("/cart", cartH.Show)
		store.GET("/cart/badge", cartH.Badge)
		store.POST("/cart/line-items", limit, cartH.AddLineItem)
		store.POST("/cart/line-items/:id", limit, cartH.UpdateLineItem)
		store.POST("/cart/line-items/:id/delete", limit, cartH.DeleteLineItem)
		store.POST("/cart/promotions", limit, cartH.ApplyPromotion)
		store.POST("/cart/promotions/remove", limit, cartH.RemovePromotion)

		store.GET("/checkout", checkoutH.Show)
		store.GET("/checkout/return", checkoutH.Return)
		store.POST("/checkout/email", limit, checkoutH.Email)
		store.POST("/checkout/addresses", limit, checkoutH.Addresses)
		store.POST("/checkout/shipping-method", limit, checkoutH.ShippingMethod)
		store.POST("/checkout/payment-session", limit, checkoutH.PaymentSession)
		store.POST("/checkout/place-order", limit, checkoutH.PlaceOrder)

		store.GET("/checkout-single", checkoutH.SingleCheckout)
		store.POST("/checkout-single", limit, checkoutH.SaveSingleCheckout)

		store.GET("/checkout-v2", checkoutH.PaymentFlow)
		store.POST("/checkout-v2/method", limit, checkoutH.SelectMethod)

		store.GET("/order/confirmed/:id", orderH.Confirmed)

		store.POST("/region", limit, regionH.Update)

		store.GET("/account/login", accountH.LoginForm)
		store.POST("/account/login", limit, accountH.Login)
		store.POST("/account/logout", limit, accountH.Logout)
		store.GET("/account", middleware.RequireCustomer(flashCodec), accountH.Account)
	}

	return r
}
