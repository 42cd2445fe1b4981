package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	for _, name := range []string{"css/store.css", "js/payments.js"} {
		b, err := FS.ReadFile(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, b, name)
	}
}

// The PayPal order is created with intent CAPTURE, so approval must
// capture it; authorizing a capture-intent order is rejected by PayPal.
func TestPaymentsScriptCapturesPayPalOrders(t *testing.T) {
	b, err := FS.ReadFile("js/payments.js")
	require.NoError(t, err)
	js := string(b)

	assert.Contains(t, js, `intent: "CAPTURE"`)
	assert.Contains(t, js, "actions.order.capture()")
	assert.NotContains(t, js, "actions.order.authorize()")
	assert.Contains(t, js, `order.status !== "COMPLETED"`)
}

func TestPaymentsScriptPlacesOrderForAuthorizedCardErrors(t *testing.T) {
	b, err := FS.ReadFile("js/payments.js")
	require.NoError(t, err)
	js := string(b)

	assert.Contains(t, js, "result.error.payment_intent")
	assert.Contains(t, js, `status === "requires_capture"`)
}
