package view

type ProductCard struct {
	Title          string
	Href           string
	Thumbnail      string
	Price          string
	OriginalPrice  string
	OnSale         bool
	PercentageDiff int
	Collection     *Link
}

type VariantChoice struct {
	ID       string
	Title    string
	Price    string
	InStock  bool
	Selected bool
}

type ProductDetail struct {
	ID          string
	Title       string
	Subtitle    string
	Description string
	Images      []string
	Price       string
	Collection  *Link
	Variants    []VariantChoice
}

type ProductDetailPage struct {
	Layout  Layout
	Product ProductDetail
	Related []ProductCard
	Errors  map[string]string
}

type HeroSlide struct {
	Title    string
	Subtitle string
	ImageURL string
	Href     string
	CTA      string
}

type HomePage struct {
	Layout      Layout
	Slides      []HeroSlide
	Categories  []Link
	Featured    []ProductCard
	Collections []Link
}

type SortOption struct {
	Label    string
	Href     string
	Selected bool
}

type ProductListPage struct {
	Layout      Layout
	Heading     string
	Description string
	Children    []Link
	Products    []ProductCard
	SortOptions []SortOption
	Page        int
	TotalPages  int
	PrevHref    string
	NextHref    string
	Count       int
}
