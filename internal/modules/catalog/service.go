// Package catalog serves regions, categories, collections and products,
// cached by tag.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/cache"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

const (
	PageSize = 12

	// MaxPage bounds requested page numbers, keeping offsets and cache keys finite.
	MaxPage = 10000

	// price sorts happen in memory over this many products
	priceSortWindow = 100
)

type Backend interface {
	ListRegions(ctx context.Context) ([]medusa.Region, error)
	ListCategories(ctx context.Context) ([]medusa.Category, error)
	CategoriesByHandle(ctx context.Context, handle string) ([]medusa.Category, error)
	ListCollections(ctx context.Context, handle string) ([]medusa.Collection, error)
	ListProducts(ctx context.Context, q medusa.ProductQuery) (*medusa.ProductList, error)
}

type Service struct {
	backend Backend
	cache   *cache.Cache
	logger  *slog.Logger
}

func NewService(backend Backend, c *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, cache: c, logger: logger}
}

func (s *Service) Regions(ctx context.Context) ([]medusa.Region, error) {
	return cache.Fetch(ctx, s.cache, "regions:list", []string{cache.TagRegions}, s.backend.ListRegions)
}

// GetRegion finds the region serving countryCode.
func (s *Service) GetRegion(ctx context.Context, countryCode string) (*medusa.Region, error) {
	regions, err := s.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	cc := strings.ToLower(countryCode)
	for i := range regions {
		for _, c := range regions[i].Countries {
			if strings.ToLower(c.ISO2) == cc {
				return &regions[i], nil
			}
		}
	}
	return nil, ErrRegionNotFound
}

type Country struct {
	Code     string
	Name     string
	RegionID string
	Currency string
}

// Countries lists every country served by a region, sorted by name.
func (s *Service) Countries(ctx context.Context) ([]Country, error) {
	regions, err := s.Regions(ctx)
	if err != nil {
		return nil, err
	}
	var out []Country
	for _, r := range regions {
		for _, c := range r.Countries {
			name := c.DisplayName
			if name == "" {
				name = strings.ToUpper(c.ISO2)
			}
			out = append(out, Country{Code: strings.ToLower(c.ISO2), Name: name, RegionID: r.ID, Currency: r.CurrencyCode})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Categories returns the top-level categories.
func (s *Service) Categories(ctx context.Context) ([]medusa.Category, error) {
	all, err := cache.Fetch(ctx, s.cache, "categories:list", []string{cache.TagCategories}, s.backend.ListCategories)
	if err != nil {
		return nil, err
	}
	out := make([]medusa.Category, 0, len(all))
	for _, c := range all {
		if c.ParentCategoryID == "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) CategoryByHandle(ctx context.Context, handle string) (*medusa.Category, error) {
	cats, err := cache.Fetch(ctx, s.cache, "categories:handle:"+handle, []string{cache.TagCategories},
		func(ctx context.Context) ([]medusa.Category, error) {
			return s.backend.CategoriesByHandle(ctx, handle)
		})
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, ErrNotFound
	}
	return &cats[0], nil
}

func (s *Service) Collections(ctx context.Context) ([]medusa.Collection, error) {
	return cache.Fetch(ctx, s.cache, "collections:list", []string{cache.TagCollections},
		func(ctx context.Context) ([]medusa.Collection, error) {
			return s.backend.ListCollections(ctx, "")
		})
}

func (s *Service) CollectionByHandle(ctx context.Context, handle string) (*medusa.Collection, error) {
	cols, err := cache.Fetch(ctx, s.cache, "collections:handle:"+handle, []string{cache.TagCollections},
		func(ctx context.Context) ([]medusa.Collection, error) {
			return s.backend.ListCollections(ctx, handle)
		})
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNotFound
	}
	return &cols[0], nil
}

func (s *Service) listProducts(ctx context.Context, key string, q medusa.ProductQuery) (*medusa.ProductList, error) {
	return cache.Fetch(ctx, s.cache, key, []string{cache.TagProducts},
		func(ctx context.Context) (*medusa.ProductList, error) {
			return s.backend.ListProducts(ctx, q)
		})
}

func (s *Service) ProductByHandle(ctx context.Context, handle, regionID string) (*medusa.Product, error) {
	list, err := s.listProducts(ctx, "products:handle:"+regionID+":"+handle, medusa.ProductQuery{Handle: handle, RegionID: regionID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(list.Products) == 0 {
		return nil, ErrNotFound
	}
	return &list.Products[0], nil
}

func (s *Service) ProductsByIDs(ctx context.Context, ids []string, regionID string) ([]medusa.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	key := "products:ids:" + regionID + ":" + strings.Join(sorted, ",")
	list, err := s.listProducts(ctx, key, medusa.ProductQuery{IDs: sorted, RegionID: regionID, Limit: len(sorted)})
	if err != nil {
		return nil, err
	}
	return list.Products, nil
}

// FeaturedProducts returns the newest products of the region.
func (s *Service) FeaturedProducts(ctx context.Context, regionID string, limit int) ([]medusa.Product, error) {
	key := fmt.Sprintf("products:featured:%s:%d", regionID, limit)
	list, err := s.listProducts(ctx, key, medusa.ProductQuery{RegionID: regionID, Limit: limit, Order: "-created_at"})
	if err != nil {
		return nil, err
	}
	return list.Products, nil
}

type ListParams struct {
	CategoryID   string
	CollectionID string
	RegionID     string
	Page         int
	SortBy       SortBy
}

type ProductPage struct {
	Products   []medusa.Product
	Count      int
	Page       int
	TotalPages int
}

// ListProductsPage returns one page of PageSize products. Price sorts are
// applied in memory because the Store API cannot order by calculated price.
func (s *Service) ListProductsPage(ctx context.Context, p ListParams) (*ProductPage, error) {
	page := min(max(p.Page, 1), MaxPage)
	base := medusa.ProductQuery{CategoryID: p.CategoryID, CollectionID: p.CollectionID, RegionID: p.RegionID}
	keyBase := fmt.Sprintf("products:list:%s:%s:%s", p.RegionID, p.CategoryID, p.CollectionID)

	if p.SortBy == SortPriceAsc || p.SortBy == SortPriceDesc {
		q := base
		q.Limit = priceSortWindow
		list, err := s.listProducts(ctx, keyBase+":window", q)
		if err != nil {
			return nil, err
		}
		products := append([]medusa.Product(nil), list.Products...)
		SortProducts(products, p.SortBy)

		start := (page - 1) * PageSize
		end := start + PageSize
		if start > len(products) {
			start = len(products)
		}
		if end > len(products) {
			end = len(products)
		}
		return &ProductPage{
			Products:   products[start:end],
			Count:      len(products),
			Page:       page,
			TotalPages: totalPages(len(products)),
		}, nil
	}

	q := base
	q.Limit = PageSize
	q.Offset = (page - 1) * PageSize
	q.Order = "-created_at"
	list, err := s.listProducts(ctx, fmt.Sprintf("%s:page:%d", keyBase, page), q)
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Products:   list.Products,
		Count:      list.Count,
		Page:       page,
		TotalPages: totalPages(list.Count),
	}, nil
}

func totalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}
