package view

type CheckoutStep struct {
	Name   string
	Label  string
	Href   string
	Active bool
	Done   bool
}

type AddressForm struct {
	Email         string
	FirstName     string
	LastName      string
	Company       string
	Address1      string
	City          string
	PostalCode    string
	Province      string
	CountryCode   string
	Phone         string
	SameAsBilling bool

	BillingFirstName   string
	BillingLastName    string
	BillingCompany     string
	BillingAddress1    string
	BillingCity        string
	BillingPostalCode  string
	BillingProvince    string
	BillingCountryCode string
	BillingPhone       string
}

type ShippingOption struct {
	ID       string
	Name     string
	Price    string
	Selected bool
}

type PaymentMethod struct {
	ID       string
	Label    string
	Selected bool
}

// PaymentWidget configures the browser payment SDK on the review step.
// Kind is one of "card", "ideal", "paypal", "manual".
type PaymentWidget struct {
	Kind       string
	ConfigJSON string
	Disabled   bool
}

type CheckoutPage struct {
	Layout          Layout
	Step            string
	Steps           []CheckoutStep
	Address         AddressForm
	Countries       []RegionOption
	ShippingOptions []ShippingOption
	PaymentMethods  []PaymentMethod
	Widget          *PaymentWidget
	Lines           []CartLine
	Summary         Summary
	PromoCodes      []string
	NotReady        bool
	Errors          map[string]string
	ActionBase      string
}

// PaymentFlowPage renders the method selection → details → confirmation flow.
type PaymentFlowPage struct {
	Layout   Layout
	Step     string
	Methods  []PaymentMethod
	Widget   *PaymentWidget
	Summary  Summary
	NotReady bool
	Error    string
}

type SingleCheckoutPage struct {
	Layout          Layout
	Address         AddressForm
	Countries       []RegionOption
	ShippingOptions []ShippingOption
	Widget          *PaymentWidget
	Lines           []CartLine
	Summary         Summary
	Error           string
	Errors          map[string]string
}

type OrderConfirmedPage struct {
	Layout          Layout
	OrderID         string
	DisplayID       int
	Date            string
	Email           string
	Lines           []CartLine
	Summary         Summary
	ShippingAddress []string
	ShippingMethod  string
	ContinueHref    string
}
