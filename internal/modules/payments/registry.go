package payments

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/pkg/view"
)

type Keys struct {
	StripePublishableKey string
	StripeAccountID      string
	PayPalClientID       string
}

// Registry knows which browser SDKs are configured.
type Registry struct {
	keys Keys
}

func NewRegistry(keys Keys) *Registry {
	return &Registry{keys: keys}
}

func (r *Registry) StripeEnabled() bool { return r.keys.StripePublishableKey != "" }
func (r *Registry) PayPalEnabled() bool { return r.keys.PayPalClientID != "" }

// Offered reports whether the storefront can collect payments of kind.
func (r *Registry) Offered(k Kind) bool {
	switch k {
	case KindCard, KindIdeal:
		return r.StripeEnabled()
	case KindPayPal:
		return r.PayPalEnabled()
	case KindManual:
		return true
	}
	return false
}

type Method struct {
	ID    string // backend provider id
	Kind  Kind
	Label string
}

// Methods filters the region's providers down to the ones this storefront
// can complete in the browser.
func (r *Registry) Methods(available []medusa.PaymentProvider) []Method {
	out := make([]Method, 0, len(available))
	for _, p := range available {
		k := KindOf(p.ID)
		if !r.Offered(k) {
			continue
		}
		out = append(out, Method{ID: p.ID, Kind: k, Label: k.Label()})
	}
	return out
}

// PickerMethods is the fixed picker of the payment flow: iDEAL and card when
// Stripe is configured, PayPal when PayPal is configured.
func (r *Registry) PickerMethods() []Method {
	var out []Method
	if r.StripeEnabled() {
		out = append(out,
			Method{ID: AliasStripeIdeal, Kind: KindIdeal, Label: "iDEAL"},
			Method{ID: AliasStripe, Kind: KindCard, Label: "Credit Card"},
		)
	}
	if r.PayPalEnabled() {
		out = append(out, Method{ID: AliasPayPal, Kind: KindPayPal, Label: "PayPal"})
	}
	return out
}

// ResolveProvider maps a picker alias (or a raw provider id) onto one of
// the region's provider ids.
func (r *Registry) ResolveProvider(alias string, available []medusa.PaymentProvider) (string, error) {
	want := KindOf(alias)
	if want == KindUnknown {
		return "", ErrUnknownMethod
	}
	if !r.Offered(want) {
		return "", ErrNotOffered
	}
	for _, p := range available {
		if strings.EqualFold(p.ID, alias) {
			return p.ID, nil
		}
	}
	for _, p := range available {
		if KindOf(p.ID) == want {
			return p.ID, nil
		}
	}
	return "", ErrNotOffered
}

type WidgetOptions struct {
	// ReturnURL is where redirect-based methods (iDEAL) send the shopper back.
	ReturnURL string
	// PlaceOrderURL receives the form post once the SDK confirmed the payment.
	PlaceOrderURL string
	NotReady      bool
}

// Widget builds the browser SDK configuration for the cart's pending session.
func (r *Registry) Widget(c *medusa.Cart, opts WidgetOptions) (*view.PaymentWidget, error) {
	session := PendingSession(c)
	if session == nil {
		return nil, ErrNoSession
	}
	kind := KindOf(session.ProviderID)

	var cfg any
	switch kind {
	case KindCard, KindIdeal:
		if !r.StripeEnabled() {
			return nil, ErrNotOffered
		}
		cfg = r.stripeConfig(c, session, kind, opts)
	case KindPayPal:
		if !r.PayPalEnabled() {
			return nil, ErrNotOffered
		}
		cfg = r.paypalConfig(c, session, opts)
	case KindManual:
		cfg = map[string]string{"placeOrderUrl": opts.PlaceOrderURL}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, session.ProviderID)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal widget config: %w", err)
	}
	return &view.PaymentWidget{Kind: string(kind), ConfigJSON: string(raw), Disabled: opts.NotReady}, nil
}
