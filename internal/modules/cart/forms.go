package cart

import (
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

type EmailInput struct {
	Email       string `form:"email"`
	CountryCode string `form:"country_code"`
}

// AddressInput mirrors the checkout address form. Billing fields are only
// read when SameAsBilling is off.
type AddressInput struct {
	Email       string `form:"email" binding:"required,email"`
	FirstName   string `form:"shipping_address.first_name" binding:"required,max=100"`
	LastName    string `form:"shipping_address.last_name" binding:"required,max=100"`
	Company     string `form:"shipping_address.company" binding:"max=100"`
	Address1    string `form:"shipping_address.address_1" binding:"required,max=200"`
	City        string `form:"shipping_address.city" binding:"required,max=100"`
	PostalCode  string `form:"shipping_address.postal_code" binding:"required,max=20"`
	Province    string `form:"shipping_address.province" binding:"max=100"`
	CountryCode string `form:"shipping_address.country_code" binding:"required,len=2"`
	Phone       string `form:"shipping_address.phone" binding:"max=40"`

	SameAsBilling string `form:"same_as_billing"`

	BillingFirstName   string `form:"billing_address.first_name" binding:"required_unless=SameAsBilling on,max=100"`
	BillingLastName    string `form:"billing_address.last_name" binding:"required_unless=SameAsBilling on,max=100"`
	BillingCompany     string `form:"billing_address.company" binding:"max=100"`
	BillingAddress1    string `form:"billing_address.address_1" binding:"required_unless=SameAsBilling on,max=200"`
	BillingCity        string `form:"billing_address.city" binding:"required_unless=SameAsBilling on,max=100"`
	BillingPostalCode  string `form:"billing_address.postal_code" binding:"required_unless=SameAsBilling on,max=20"`
	BillingProvince    string `form:"billing_address.province" binding:"max=100"`
	BillingCountryCode string `form:"billing_address.country_code" binding:"required_unless=SameAsBilling on,omitempty,len=2"`
	BillingPhone       string `form:"billing_address.phone" binding:"max=40"`
}

func (in AddressInput) UsesShippingAsBilling() bool {
	return in.SameAsBilling == "on"
}

func (in AddressInput) ShippingAddress() *medusa.Address {
	return &medusa.Address{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Company:     strings.TrimSpace(in.Company),
		Address1:    strings.TrimSpace(in.Address1),
		City:        strings.TrimSpace(in.City),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		Province:    strings.TrimSpace(in.Province),
		CountryCode: strings.ToLower(strings.TrimSpace(in.CountryCode)),
		Phone:       strings.TrimSpace(in.Phone),
	}
}

func (in AddressInput) BillingAddress() *medusa.Address {
	if in.UsesShippingAsBilling() {
		return in.ShippingAddress()
	}
	return &medusa.Address{
		FirstName:   strings.TrimSpace(in.BillingFirstName),
		LastName:    strings.TrimSpace(in.BillingLastName),
		Company:     strings.TrimSpace(in.BillingCompany),
		Address1:    strings.TrimSpace(in.BillingAddress1),
		City:        strings.TrimSpace(in.BillingCity),
		PostalCode:  strings.TrimSpace(in.BillingPostalCode),
		Province:    strings.TrimSpace(in.BillingProvince),
		CountryCode: strings.ToLower(strings.TrimSpace(in.BillingCountryCode)),
		Phone:       strings.TrimSpace(in.BillingPhone),
	}
}
