package medusa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	mu    sync.Mutex
	calls []string
	codes []int
}

func (o *observed) fn(op string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op)
	o.codes = append(o.codes, status)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *observed) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &observed{}
	return New(Options{BaseURL: srv.URL + "/", PublishableKey: "pk_test", Observer: obs.fn}), obs
}

func TestRetrieveCartSendsHeaders(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/store/carts/cart_1", r.URL.Path)
		assert.Equal(t, "pk_test", r.Header.Get(HeaderPublishableKey))
		assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Query().Get("fields"), "*items")
		_, _ = w.Write([]byte(`{"cart":{"id":"cart_1","email":"a@b.nl","region":{"id":"reg_1","currency_code":"eur"},"items":[{"id":"li_1","quantity":2},{"id":"li_2","quantity":1}]}}`))
	})

	ctx := WithToken(context.Background(), "jwt-1")
	cart, err := c.RetrieveCart(ctx, "cart_1")
	require.NoError(t, err)
	assert.Equal(t, "cart_1", cart.ID)
	assert.Equal(t, "eur", cart.Currency())
	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, []string{"carts.retrieve"}, obs.calls)
	assert.Equal(t, []int{200}, obs.codes)
}

func TestRetrieveCartFractionalTotals(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cart":{"id":"cart_1","tax_total":420.0000000001,"subtotal":"1999.5","total":2419.5,` +
			`"discount_total":null,"items":[{"id":"li_1","quantity":1,"unit_price":1999.4999}],` +
			`"shipping_methods":[{"id":"sm_1","amount":4.95e2}]}}`))
	})

	cart, err := c.RetrieveCart(context.Background(), "cart_1")
	require.NoError(t, err)
	assert.Equal(t, Amount(420), cart.TaxTotal)
	assert.Equal(t, Amount(2000), cart.Subtotal)
	assert.Equal(t, Amount(2420), cart.Total)
	assert.Equal(t, Amount(0), cart.DiscountTotal)
	assert.Equal(t, Amount(1999), cart.Items[0].UnitPrice)
	assert.Equal(t, Amount(495), cart.ShippingMethods[0].Amount)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]Amount{"12": 12, "12.5": 13, "-12.5": -13, "0.49": 0, "1e3": 1000}
	for in, want := range cases {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAmount("abc")
	assert.Error(t, err)

	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`{}`), &a))
}

func TestNoTokenNoAuthorization(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"regions":[{"id":"reg_1","countries":[{"iso_2":"nl"}]}]}`))
	})
	regions, err := c.ListRegions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "nl", regions[0].Countries[0].ISO2)
}

func TestErrorBodyIsParsed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"not_found","message":"Cart id not found: cart_x"}`))
	})

	_, err := c.RetrieveCart(context.Background(), "cart_x")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Cart id not found: cart_x", Message(err))

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestNonJSONErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})
	_, err := c.ListRegions(context.Background())
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.Equal(t, "bad_gateway", apiErr.Type)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	obs := &observed{}
	c := New(Options{BaseURL: srv.URL, Observer: obs.fn})

	_, err := c.ListRegions(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, []int{0}, obs.codes)
}

func TestUpdateCartBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.nl", body["email"])
		assert.Equal(t, []any{}, body["promo_codes"])
		assert.NotContains(t, body, "region_id")
		assert.NotContains(t, body, "shipping_address")
		_, _ = w.Write([]byte(`{"cart":{"id":"cart_1","email":"a@b.nl"}}`))
	})

	cart, err := c.UpdateCart(context.Background(), "cart_1", CartUpdate{Email: String("a@b.nl"), PromoCodes: Codes()})
	require.NoError(t, err)
	assert.Equal(t, "a@b.nl", cart.Email)
}

func TestInitiatePaymentSessionCreatesCollection(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/store/payment-collections":
			_, _ = w.Write([]byte(`{"payment_collection":{"id":"paycol_1"}}`))
		case "/store/payment-collections/paycol_1/payment-sessions":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "pp_stripe_stripe", body["provider_id"])
			_, _ = w.Write([]byte(`{"payment_collection":{"id":"paycol_1","payment_sessions":[{"id":"ps_1","provider_id":"pp_stripe_stripe","status":"pending","data":{"client_secret":"pi_secret"}}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	pc, err := c.InitiatePaymentSession(context.Background(), &Cart{ID: "cart_1"}, "pp_stripe_stripe", nil)
	require.NoError(t, err)
	require.Len(t, pc.PaymentSessions, 1)
	assert.Equal(t, "pi_secret", pc.PaymentSessions[0].ClientSecret())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/store/payment-collections", "/store/payment-collections/paycol_1/payment-sessions"}, paths)
}

func TestInitiatePaymentSessionReusesCollection(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/store/payment-collections/paycol_9/payment-sessions", r.URL.Path)
		_, _ = w.Write([]byte(`{"payment_collection":{"id":"paycol_9"}}`))
	})
	cart := &Cart{ID: "cart_1", PaymentCollection: &PaymentCollection{ID: "paycol_9"}}
	_, err := c.InitiatePaymentSession(context.Background(), cart, "pp_paypal_paypal", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteCart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/carts/cart_1/complete", r.URL.Path)
		_, _ = w.Write([]byte(`{"type":"order","order":{"id":"order_1","display_id":12,"shipping_address":{"country_code":"nl"}}}`))
	})
	res, err := c.CompleteCart(context.Background(), "cart_1")
	require.NoError(t, err)
	assert.True(t, res.IsOrder())
	assert.Equal(t, 12, res.Order.DisplayID)
}

func TestListProductsQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"prod_1", "prod_2"}, q["id[]"])
		assert.Equal(t, "cat_1", q.Get("category_id[]"))
		assert.Equal(t, "reg_1", q.Get("region_id"))
		assert.Equal(t, "12", q.Get("limit"))
		assert.Equal(t, "24", q.Get("offset"))
		assert.Equal(t, "-created_at", q.Get("order"))
		_, _ = w.Write([]byte(`{"products":[{"id":"prod_1","handle":"shirt"}],"count":1,"offset":24,"limit":12}`))
	})
	list, err := c.ListProducts(context.Background(), ProductQuery{
		IDs: []string{"prod_1", "prod_2"}, CategoryID: "cat_1", RegionID: "reg_1",
		Limit: 12, Offset: 24, Order: "-created_at",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "shirt", list.Products[0].Handle)
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/customer/emailpass" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"type":"unauthorized","message":"Invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"jwt-abc"}`))
	})

	tok, err := c.Login(context.Background(), "a@b.nl", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", tok)

	_, err = c.Login(context.Background(), "a@b.nl", "wrong")
	assert.True(t, IsUnauthorized(err))
}
