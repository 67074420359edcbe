package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
	"github.com/merchantkit/pricora/internal/money"
	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
	"github.com/merchantkit/pricora/internal/profit"
)

// readChunkSize bounds the id lists sent to the storage layer.
const readChunkSize = 500

// state is the resolved snapshot a terminal operation works from.
type state struct {
	variants []catalogdomain.Variant
	channel  *channeldomain.Channel
	records  map[snowflake.ID]*channelpricedomain.PricingRecord
	source   map[snowflake.ID]*channelpricedomain.PricingRecord
}

func (sc *scope) resolveVariantIDs(ctx context.Context) ([]snowflake.ID, error) {
	if sc.err != nil {
		return nil, sc.err
	}
	ids := sc.variantIDs
	if len(ids) == 0 && sc.productID == 0 && len(sc.bulk) > 0 {
		for id := range sc.bulk {
			ids = append(ids, id)
		}
	}
	if sc.productID != 0 {
		resolved, err := sc.svc.catalog.IDsByProduct(ctx, sc.svc.db, sc.productID)
		if err != nil {
			return nil, err
		}
		ids = resolved
	}
	if len(ids) == 0 {
		return nil, pricingdomain.ErrEmptyScope
	}
	return ids, nil
}

func (sc *scope) resolveChannel(ctx context.Context) (*channeldomain.Channel, error) {
	if sc.useBase {
		return nil, nil
	}
	if sc.channel != nil {
		return sc.channel, nil
	}
	var (
		ch  *channeldomain.Channel
		err error
	)
	if sc.channelCode != "" {
		ch, err = sc.svc.channels.Resolve(ctx, sc.channelCode)
	} else {
		ch, err = sc.svc.channels.ResolveMarketplace(ctx, sc.marketplace, sc.account)
	}
	if err != nil {
		return nil, err
	}
	sc.channel = ch
	sc.channelCode = ch.Code
	return ch, nil
}

// loadState resolves the scope and loads every variant with its channel
// record (and the copy-source records when CopyFrom is configured). The
// singular-scope restriction for direct field overrides is enforced
// here, after lazy resolution.
func (sc *scope) loadState(ctx context.Context) (*state, error) {
	ids, err := sc.resolveVariantIDs(ctx)
	if err != nil {
		return nil, err
	}
	if sc.hasSingularOverride() && len(ids) != 1 {
		return nil, fmt.Errorf("%w: %d variants resolved", pricingdomain.ErrScopeNotSingular, len(ids))
	}

	st := &state{}

	for _, chunk := range chunkIDs(ids, readChunkSize) {
		variants, err := sc.svc.catalog.FindByIDs(ctx, sc.svc.db, chunk)
		if err != nil {
			return nil, err
		}
		st.variants = append(st.variants, variants...)
	}
	if len(st.variants) != len(ids) {
		return nil, fmt.Errorf("%w: resolved %d of %d", catalogdomain.ErrVariantNotFound, len(st.variants), len(ids))
	}

	ch, err := sc.resolveChannel(ctx)
	if err != nil {
		return nil, err
	}
	st.channel = ch

	if ch != nil {
		st.records, err = sc.loadRecords(ctx, ids, ch.ID)
		if err != nil {
			return nil, err
		}
	}

	if sc.copyFromCode != "" {
		sourceChannel, err := sc.svc.channels.Resolve(ctx, sc.copyFromCode)
		if err != nil {
			return nil, err
		}
		st.source, err = sc.loadRecords(ctx, ids, sourceChannel.ID)
		if err != nil {
			return nil, err
		}
	}

	return st, nil
}

func (sc *scope) loadRecords(ctx context.Context, ids []snowflake.ID, channelID snowflake.ID) (map[snowflake.ID]*channelpricedomain.PricingRecord, error) {
	out := make(map[snowflake.ID]*channelpricedomain.PricingRecord, len(ids))
	for _, chunk := range chunkIDs(ids, readChunkSize) {
		records, err := sc.svc.records.FindByVariants(ctx, sc.svc.db, chunk, channelID)
		if err != nil {
			return nil, err
		}
		for i := range records {
			record := records[i]
			out[record.VariantID] = &record
		}
	}
	return out, nil
}

// row converts one variant of the loaded state into its Get view.
func (st *state) row(v catalogdomain.Variant) pricingdomain.VariantPricing {
	out := pricingdomain.VariantPricing{
		VariantID:      v.ID,
		SKU:            v.SKU,
		BasePrice:      v.BasePrice,
		EffectivePrice: v.BasePrice,
		DiscountPrice:  v.DiscountPrice,
		Currency:       v.Currency,
	}
	if st.channel != nil {
		out.Currency = st.channel.DefaultCurrency
		out.DiscountPrice = nil
		if record, ok := st.records[v.ID]; ok {
			price := record.Price
			out.ChannelPrice = &price
			out.EffectivePrice = price
			out.DiscountPrice = record.DiscountPrice
			out.CostPrice = record.CostPrice
		}
	}
	return out
}

func (sc *scope) Get(ctx context.Context) ([]pricingdomain.VariantPricing, error) {
	st, err := sc.loadState(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]pricingdomain.VariantPricing, 0, len(st.variants))
	for _, v := range st.variants {
		rows = append(rows, st.row(v))
	}
	return rows, nil
}

// pipeline runs the queued operations for one variant: starting price →
// adjustments in order → explicit override → rounding.
func (sc *scope) pipeline(v catalogdomain.Variant, st *state) pricingdomain.PreviewRow {
	row := st.row(v)

	start := row.EffectivePrice
	if st.source != nil {
		if record, ok := st.source[v.ID]; ok {
			start = record.Price
		}
	}

	adjusted := start
	for _, adjustment := range sc.adjustments {
		adjusted = adjustment.Apply(adjusted)
	}
	if sc.priceOverride != nil {
		adjusted = *sc.priceOverride
	}

	return pricingdomain.PreviewRow{
		VariantID: v.ID,
		Before:    row.EffectivePrice,
		Adjusted:  adjusted,
		After:     sc.applyRounding(adjusted, row.Currency),
		Currency:  row.Currency,
	}
}

// applyRounding runs the configured strategy, or plain minor-unit
// normalization when none was selected.
func (sc *scope) applyRounding(value float64, currency string) float64 {
	if sc.strategySet {
		rounded, err := money.Apply(sc.strategy, value, currency)
		if err == nil {
			return rounded
		}
		// Round() already validated the name; this cannot happen.
	}
	return money.RoundToMinor(value, currency)
}

func (sc *scope) Preview(ctx context.Context) ([]pricingdomain.PreviewRow, error) {
	st, err := sc.loadState(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]pricingdomain.PreviewRow, 0, len(st.variants))
	for _, v := range st.variants {
		rows = append(rows, sc.pipeline(v, st))
	}
	return rows, nil
}

func (sc *scope) Stats(ctx context.Context) (*pricingdomain.Stats, error) {
	rows, err := sc.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats := &pricingdomain.Stats{Count: len(rows)}
	var sum float64
	for i, row := range rows {
		price := row.EffectivePrice
		sum += price
		if i == 0 || price < stats.MinPrice {
			stats.MinPrice = price
		}
		if price > stats.MaxPrice {
			stats.MaxPrice = price
		}
		if row.DiscountPrice != nil {
			stats.OnDiscount++
		}
	}
	if stats.Count > 0 {
		stats.AveragePrice = sum / float64(stats.Count)
	}
	return stats, nil
}

// feeContext picks the fee context for profitability: an explicit
// WithFees wins, then the resolved channel's profile.
func (sc *scope) feeContext(st *state) profit.FeeContext {
	if sc.fees != nil {
		return *sc.fees
	}
	if st.channel != nil {
		return st.channel.Fees()
	}
	return profit.FeeContext{}
}

func (sc *scope) Profits(ctx context.Context) ([]pricingdomain.VariantProfit, error) {
	st, err := sc.loadState(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]pricingdomain.VariantProfit, 0, len(st.variants))
	for _, v := range st.variants {
		row := st.row(v)

		discount := 0.0
		if row.DiscountPrice != nil {
			discount = row.EffectivePrice - *row.DiscountPrice
		}

		baseCost := 0.0
		if sc.costOverride != nil {
			baseCost = *sc.costOverride
		} else if row.CostPrice != nil {
			baseCost = *row.CostPrice
		}

		breakdown := profit.NewBreakdown(baseCost, row.EffectivePrice, 0, discount, 0, sc.channelProfile(st, row.Currency))
		out = append(out, pricingdomain.NewVariantProfit(v.ID, breakdown.Analysis()))
	}
	return out, nil
}

// channelProfile picks the fee profile for breakdowns: the resolved
// channel's, unless WithFees supplied an override; base-mode scopes
// carry a zero-fee profile in the row's currency.
func (sc *scope) channelProfile(st *state, currency string) profit.ChannelProfile {
	if sc.fees == nil && st.channel != nil {
		return st.channel.Profile()
	}
	fees := sc.feeContext(st)
	return profit.ChannelProfile{
		Currency:           currency,
		PlatformFeePercent: fees.PlatformFeePercent,
		PaymentFeePercent:  fees.PaymentFeePercent,
		ShippingCost:       fees.ShippingCost,
	}
}

func (sc *scope) SolvePrice(ctx context.Context) (float64, error) {
	if sc.targetMargin == nil {
		return 0, pricingdomain.ErrNoTargetMargin
	}

	st, err := sc.loadState(ctx)
	if err != nil {
		return 0, err
	}
	if len(st.variants) != 1 {
		return 0, fmt.Errorf("%w: %d variants resolved", pricingdomain.ErrScopeNotSingular, len(st.variants))
	}

	if sc.fees == nil && st.channel == nil {
		return 0, pricingdomain.ErrNoFeeContext
	}
	fees := sc.feeContext(st)

	row := st.row(st.variants[0])
	var cost float64
	switch {
	case sc.costOverride != nil:
		cost = *sc.costOverride
	case row.CostPrice != nil:
		cost = *row.CostPrice
	default:
		return 0, fmt.Errorf("%w: variant %s", pricingdomain.ErrMissingCost, row.VariantID)
	}

	price, err := profit.SolveTargetMargin(cost+fees.ShippingCost, *sc.targetMargin, fees)
	if err != nil {
		return 0, err
	}

	sc.priceOverride = &price
	return price, nil
}

func chunkIDs(ids []snowflake.ID, size int) [][]snowflake.ID {
	if len(ids) <= size {
		return [][]snowflake.ID{ids}
	}
	chunks := make([][]snowflake.ID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
