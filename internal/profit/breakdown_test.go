package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testChannel = ChannelProfile{
	Code:               "amazon_de",
	Currency:           "EUR",
	PlatformFeePercent: 15,
	PaymentFeePercent:  2,
	ShippingCost:       4.50,
}

func TestBreakdown_FinalAndGrossPrice(t *testing.T) {
	b := NewBreakdown(40, 80, 10, 5, 16.15, testChannel)

	assert.InDelta(t, 85.00, b.FinalPrice(), 1e-9)
	assert.InDelta(t, 101.15, b.GrossPrice(), 1e-9)
	assert.InDelta(t, 85*0.15, b.PlatformFee, 1e-9)
	assert.InDelta(t, 85*0.02, b.PaymentFee, 1e-9)
}

func TestBreakdown_DiscountClampsAtZero(t *testing.T) {
	b := NewBreakdown(10, 20, 0, 50, 0, testChannel)
	assert.Equal(t, 0.0, b.FinalPrice())
	assert.Equal(t, 0.0, b.PlatformFee)
}

func TestBreakdown_AnalysisConsistency(t *testing.T) {
	b := NewBreakdown(40, 80, 10, 5, 0, testChannel)
	a := b.Analysis()

	assert.InDelta(t, b.FinalPrice(), a.Revenue, 1e-9)
	assert.InDelta(t, 40+4.50+b.PlatformFee+b.PaymentFee, a.TotalCosts(), 1e-9)
	assert.InDelta(t, b.Profit(), a.Profit(), 1e-9)
}

func TestBreakdown_WithDiscount(t *testing.T) {
	b := NewBreakdown(40, 80, 10, 0, 0, testChannel)
	discounted := b.WithDiscount(10)

	// original is untouched
	assert.InDelta(t, 90, b.FinalPrice(), 1e-9)
	assert.InDelta(t, 80, discounted.FinalPrice(), 1e-9)
	// fees follow the lower net price
	assert.InDelta(t, 80*0.15, discounted.PlatformFee, 1e-9)
}

func TestBreakdown_ForChannel(t *testing.T) {
	other := ChannelProfile{
		Code:               "ebay_us",
		Currency:           "USD",
		PlatformFeePercent: 13,
		PaymentFeePercent:  3,
		ShippingCost:       7,
	}

	b := NewBreakdown(40, 80, 10, 5, 0, testChannel).ForChannel(other)

	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, other, b.Channel)
	assert.InDelta(t, 7, b.ShippingCost, 1e-9)
	assert.InDelta(t, 85*0.13, b.PlatformFee, 1e-9)
}
