package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/render"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
	"github.com/LeroySteding/medusajs-yn-railway/internal/storage"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
	"github.com/LeroySteding/medusajs-yn-railway/templates/pages"
)

const (
	featuredLimit = 8
	relatedLimit  = 4
)

type heroSlide struct {
	image, title, subtitle, cta, path string
}

var heroSlides = []heroSlide{
	{"hero/summer.jpg", "Summer Collection", "Discover our latest arrivals for the season", "Shop Now", "#featured"},
	{"hero/accessories.jpg", "New Accessories", "Complete your look with our trendy accessories", "Explore", "#featured"},
	{"hero/sale.jpg", "Sale Up to 50% Off", "Don't miss out on our biggest sale of the year", "Shop Sale", "#featured"},
}

type CatalogHandler struct {
	catalog *catalog.Service
	layouts *Layouts
	storage storage.Storage
}

func NewCatalogHandler(cat *catalog.Service, layouts *Layouts, store storage.Storage) *CatalogHandler {
	return &CatalogHandler{catalog: cat, layouts: layouts, storage: store}
}

func (h *CatalogHandler) slides(cc string) []view.HeroSlide {
	out := make([]view.HeroSlide, 0, len(heroSlides))
	for _, s := range heroSlides {
		slide := view.HeroSlide{Title: s.title, Subtitle: s.subtitle, CTA: s.cta, Href: "/" + cc + s.path}
		if h.storage != nil {
			slide.ImageURL = h.storage.URL(s.image)
		}
		out = append(out, slide)
	}
	return out
}

// Home: GET /:countryCode
func (h *CatalogHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)
	region := middleware.GetRegion(c)

	var (
		cats        []medusa.Category
		collections []medusa.Collection
		featured    []medusa.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cats, err = h.catalog.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		collections, err = h.catalog.Collections(gctx)
		return err
	})
	g.Go(func() (err error) {
		featured, err = h.catalog.FeaturedProducts(gctx, region.ID, featuredLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}

	p := view.HomePage{
		Layout:   h.layouts.Build(c, "Home"),
		Slides:   h.slides(cc),
		Featured: productCards(featured, cc),
	}
	for _, cat := range cats {
		p.Categories = append(p.Categories, view.Link{Label: cat.Name, Href: "/" + cc + "/categories/" + cat.Handle})
	}
	for _, col := range collections {
		if l := collectionLink(cc, &col); l != nil {
			p.Collections = append(p.Collections, *l)
		}
	}
	render.Component(c, http.StatusOK, pages.Home(p))
}

// Category: GET /:countryCode/categories/:handle?page=&sortBy=
func (h *CatalogHandler) Category(c *gin.Context) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	cat, err := h.catalog.CategoryByHandle(ctx, c.Param("handle"))
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}

	base := "/" + cc + "/categories/" + cat.Handle
	p, err := h.listing(c, base, catalog.ListParams{CategoryID: cat.ID})
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}
	p.Layout = h.layouts.Build(c, cat.Name)
	p.Heading = cat.Name
	p.Description = cat.Description
	for _, child := range cat.CategoryChildren {
		p.Children = append(p.Children, view.Link{Label: child.Name, Href: "/" + cc + "/categories/" + child.Handle})
	}
	render.Component(c, http.StatusOK, pages.ProductList(*p))
}

// Collection: GET /:countryCode/collections/:handle?page=&sortBy=
func (h *CatalogHandler) Collection(c *gin.Context) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)

	col, err := h.catalog.CollectionByHandle(ctx, c.Param("handle"))
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}

	p, err := h.listing(c, "/"+cc+"/collections/"+col.Handle, catalog.ListParams{CollectionID: col.ID})
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}
	p.Layout = h.layouts.Build(c, col.Title)
	p.Heading = col.Title
	render.Component(c, http.StatusOK, pages.ProductList(*p))
}

// listing fills the product grid, sort links and pagination of a list page.
func (h *CatalogHandler) listing(c *gin.Context, base string, params catalog.ListParams) (*view.ProductListPage, error) {
	cc := middleware.GetCountryCode(c)
	sortBy := catalog.ParseSortBy(c.Query("sortBy"))

	params.RegionID = middleware.GetRegion(c).ID
	params.Page = parsePage(c.Query("page"))
	params.SortBy = sortBy

	res, err := h.catalog.ListProductsPage(c.Request.Context(), params)
	if err != nil {
		return nil, err
	}

	p := &view.ProductListPage{
		Products:   productCards(res.Products, cc),
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Count:      res.Count,
	}
	for _, opt := range catalog.SortOptions {
		p.SortOptions = append(p.SortOptions, view.SortOption{
			Label:    opt.Label(),
			Href:     listHref(base, opt, 1),
			Selected: opt == sortBy,
		})
	}
	if res.Page > 1 {
		p.PrevHref = listHref(base, sortBy, res.Page-1)
	}
	if res.Page < res.TotalPages {
		p.NextHref = listHref(base, sortBy, res.Page+1)
	}
	return p, nil
}

func listHref(base string, sortBy catalog.SortBy, page int) string {
	q := url.Values{}
	if sortBy != catalog.SortCreatedAt {
		q.Set("sortBy", string(sortBy))
	}
	if page > 1 {
		q.Set("page", fmt.Sprint(page))
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// Product: GET /:countryCode/products/:handle?variant=
func (h *CatalogHandler) Product(c *gin.Context) {
	ctx := c.Request.Context()
	cc := middleware.GetCountryCode(c)
	region := middleware.GetRegion(c)

	prod, err := h.catalog.ProductByHandle(ctx, c.Param("handle"), region.ID)
	if err != nil {
		middleware.Fail(c, pageErr(err))
		return
	}

	p := view.ProductDetailPage{
		Layout:  h.layouts.Build(c, prod.Title),
		Product: productDetail(prod, cc, c.Query("variant")),
		Related: h.related(c, prod, region.ID),
	}
	render.Component(c, http.StatusOK, pages.Product(p))
}

// related lists other products of the same collection. Failures only hide
// the section.
func (h *CatalogHandler) related(c *gin.Context, prod *medusa.Product, regionID string) []view.ProductCard {
	if prod.CollectionID == "" {
		return nil
	}
	res, err := h.catalog.ListProductsPage(c.Request.Context(), catalog.ListParams{
		CollectionID: prod.CollectionID,
		RegionID:     regionID,
		Page:         1,
	})
	if err != nil {
		h.layouts.Logger.WarnContext(c.Request.Context(), "related_products_failed",
			"request_id", middleware.GetRequestID(c), "product_id", prod.ID, "error", err)
		return nil
	}
	var out []medusa.Product
	for _, p := range res.Products {
		if p.ID == prod.ID {
			continue
		}
		out = append(out, p)
		if len(out) == relatedLimit {
			break
		}
	}
	return productCards(out, middleware.GetCountryCode(c))
}

// productDetail preselects the requested variant, else the first one in stock.
func productDetail(prod *medusa.Product, cc, variantID string) view.ProductDetail {
	d := view.ProductDetail{
		ID:          prod.ID,
		Title:       prod.Title,
		Subtitle:    prod.Subtitle,
		Description: prod.Description,
		Collection:  collectionLink(cc, prod.Collection),
	}
	for _, img := range prod.Images {
		d.Images = append(d.Images, img.URL)
	}
	if len(d.Images) == 0 && prod.Thumbnail != "" {
		d.Images = []string{prod.Thumbnail}
	}

	selected := -1
	for i, v := range prod.Variants {
		if v.ID == variantID {
			selected = i
			break
		}
	}
	if selected < 0 {
		for i, v := range prod.Variants {
			if v.InStock() {
				selected = i
				break
			}
		}
	}

	for i, v := range prod.Variants {
		choice := view.VariantChoice{ID: v.ID, Title: v.Title, InStock: v.InStock(), Selected: i == selected}
		if price, ok := catalog.VariantPrice(v); ok {
			choice.Price = view.FormatAmount(price.Amount, price.Currency)
			if choice.Selected {
				d.Price = choice.Price
			}
		}
		d.Variants = append(d.Variants, choice)
	}
	if d.Price == "" {
		if price, ok := catalog.CheapestPrice(*prod); ok {
			d.Price = "From " + view.FormatAmount(price.Amount, price.Currency)
		}
	}
	return d
}
