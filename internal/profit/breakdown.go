package profit

import "github.com/merchantkit/pricora/internal/money"

// ChannelProfile is the slice of a sales channel the breakdown needs.
type ChannelProfile struct {
	Code               string  `json:"code"`
	Currency           string  `json:"currency"`
	PlatformFeePercent float64 `json:"platform_fee_percent"`
	PaymentFeePercent  float64 `json:"payment_fee_percent"`
	ShippingCost       float64 `json:"shipping_cost"`
}

// Fees converts the profile into a solver fee context.
func (p ChannelProfile) Fees() FeeContext {
	return FeeContext{
		PlatformFeePercent: p.PlatformFeePercent,
		PaymentFeePercent:  p.PaymentFeePercent,
		ShippingCost:       p.ShippingCost,
	}
}

// Breakdown is an immutable decomposition of a channel price. The final
// price is VAT-exclusive; GrossPrice adds the VAT amount back.
type Breakdown struct {
	BaseCostPrice   float64        `json:"base_cost_price"`
	BaseRetailPrice float64        `json:"base_retail_price"`
	ChannelMarkup   float64        `json:"channel_markup"`
	DiscountAmount  float64        `json:"discount_amount"`
	ShippingCost    float64        `json:"shipping_cost"`
	PlatformFee     float64        `json:"platform_fee"`
	PaymentFee      float64        `json:"payment_fee"`
	VATAmount       float64        `json:"vat_amount"`
	Currency        string         `json:"currency"`
	Channel         ChannelProfile `json:"channel"`
}

// NewBreakdown assembles a breakdown for a channel, deriving the
// percentage fees from the net selling price.
func NewBreakdown(baseCost, baseRetail, markup, discount, vatAmount float64, ch ChannelProfile) Breakdown {
	net := netPrice(baseRetail, markup, discount)
	return Breakdown{
		BaseCostPrice:   baseCost,
		BaseRetailPrice: baseRetail,
		ChannelMarkup:   markup,
		DiscountAmount:  discount,
		ShippingCost:    ch.ShippingCost,
		PlatformFee:     net * ch.PlatformFeePercent / 100,
		PaymentFee:      net * ch.PaymentFeePercent / 100,
		VATAmount:       vatAmount,
		Currency:        ch.Currency,
		Channel:         ch,
	}
}

// FinalPrice is base retail plus markup minus discount, clamped at zero
// and rounded to the currency's minor unit.
func (b Breakdown) FinalPrice() float64 {
	return money.RoundToMinor(netPrice(b.BaseRetailPrice, b.ChannelMarkup, b.DiscountAmount), b.Currency)
}

// GrossPrice is the final price with VAT added back.
func (b Breakdown) GrossPrice() float64 {
	return money.RoundToMinor(b.FinalPrice()+b.VATAmount, b.Currency)
}

// Costs returns the cost breakdown used for profitability.
func (b Breakdown) Costs() CostBreakdown {
	return CostBreakdown{
		BaseCost:    b.BaseCostPrice,
		Shipping:    b.ShippingCost,
		PlatformFee: b.PlatformFee,
		PaymentFee:  b.PaymentFee,
		VAT:         b.VATAmount,
	}
}

// Analysis derives the profitability view of this breakdown.
func (b Breakdown) Analysis() Analysis {
	return Calculate(b.FinalPrice(), b.Costs())
}

// Profit is a convenience for Analysis().Profit().
func (b Breakdown) Profit() float64 {
	return b.Analysis().Profit()
}

// Margin is a convenience for Analysis().Margin().
func (b Breakdown) Margin() float64 {
	return b.Analysis().Margin()
}

// WithDiscount derives a new breakdown with an additional discount
// amount. Percentage fees are recomputed from the new net price.
func (b Breakdown) WithDiscount(amount float64) Breakdown {
	return NewBreakdown(
		b.BaseCostPrice,
		b.BaseRetailPrice,
		b.ChannelMarkup,
		b.DiscountAmount+amount,
		b.VATAmount,
		b.Channel,
	)
}

// ForChannel derives a new breakdown under another channel's fee,
// shipping and currency profile. The markup and discount carry over.
func (b Breakdown) ForChannel(ch ChannelProfile) Breakdown {
	return NewBreakdown(
		b.BaseCostPrice,
		b.BaseRetailPrice,
		b.ChannelMarkup,
		b.DiscountAmount,
		b.VATAmount,
		ch,
	)
}

func netPrice(baseRetail, markup, discount float64) float64 {
	net := baseRetail + markup - discount
	if net < 0 {
		return 0
	}
	return net
}
