package view

// Layout is shared by every full page.
type Layout struct {
	Title       string
	CountryCode string
	CurrentPath string
	Flash       *Flash
	Nav         []Link
	Regions     []RegionOption
	CartCount   int
	Customer    *CustomerBadge
	LogoURL     string
	RequestID   string
	Year        int
}

type Link struct {
	Label string
	Href  string
}

type RegionOption struct {
	CountryCode string
	Label       string
	Selected    bool
}

type CustomerBadge struct {
	FirstName string
	Email     string
}

type ErrorPage struct {
	Layout    Layout
	Status    int
	Title     string
	Message   string
	RequestID string
}

type LoginPage struct {
	Layout   Layout
	Email    string
	ReturnTo string
	Errors   map[string]string
}

type AccountPage struct {
	Layout    Layout
	FirstName string
	LastName  string
	Email     string
	Phone     string
}
