package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/checkout"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

type OrderRetriever interface {
	RetrieveOrder(ctx context.Context, id string) (*medusa.Order, error)
}

type OrderHandler struct {
	orders  OrderRetriever
	layouts *Layouts
}

func NewOrderHandler(orders OrderRetriever, layouts *Layouts) *OrderHandler {
	return &OrderHandler{orders: orders, layouts: layouts}
}

// Confirmed: GET /:countryCode/order/confirmed/:id
func (h *OrderHandler) Confirmed(c *gin.Context) {
	cc := middleware.GetCountryCode(c)
	o, err := h.orders.RetrieveOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}

	p := view.OrderConfirmedPage{
		Layout:          h.layouts.Build(c, "Order confirmed"),
		OrderID:         o.ID,
		DisplayID:       o.DisplayID,
		Date:            o.CreatedAt.Format("January 2, 2006"),
		Email:           o.Email,
		Lines:           lineViews(o.Items, o.CurrencyCode, cc),
		Summary:         checkout.OrderSummary(o),
		ShippingAddress: addressLines(o.ShippingAddress),
		ContinueHref:    "/" + cc,
	}
	if len(o.ShippingMethods) > 0 {
		p.ShippingMethod = o.ShippingMethods[0].Name
	}
	render.Component(c, http.StatusOK, pages.OrderConfirmed(p))
}
