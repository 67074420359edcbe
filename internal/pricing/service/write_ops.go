package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
)

func (sc *scope) Save(ctx context.Context) (*pricingdomain.SaveSummary, error) {
	if sc.isClearOnly() {
		return sc.clearOnly(ctx)
	}

	st, err := sc.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if err := sc.checkBulkScope(st); err != nil {
		return nil, err
	}

	summary := &pricingdomain.SaveSummary{Target: sc.target(st)}
	var updated []snowflake.ID

	for _, v := range st.variants {
		if len(sc.bulk) > 0 {
			fields, ok := sc.bulk[v.ID]
			if !ok {
				continue
			}
			summary.Requested++
			err = sc.writeBulk(ctx, v, st, fields)
		} else {
			summary.Requested++
			err = sc.writePipeline(ctx, v, st)
		}
		if err != nil {
			sc.svc.log.Warn("variant write failed",
				zap.String("variant_id", v.ID.String()),
				zap.Error(err))
			summary.Failed = append(summary.Failed, pricingdomain.FailedVariant{
				VariantID: v.ID,
				Reason:    err.Error(),
			})
			continue
		}
		summary.Updated++
		updated = append(updated, v.ID)
	}

	sc.enqueueRecalc(ctx, st, updated)
	return summary, nil
}

// checkBulkScope rejects bulk entries for variants the scope did not
// resolve; silently dropping them would leave the summary unable to
// account for every requested write.
func (sc *scope) checkBulkScope(st *state) error {
	if len(sc.bulk) == 0 {
		return nil
	}
	inScope := make(map[snowflake.ID]struct{}, len(st.variants))
	for _, v := range st.variants {
		inScope[v.ID] = struct{}{}
	}
	for id := range sc.bulk {
		if _, ok := inScope[id]; !ok {
			return fmt.Errorf("%w: variant %s not in scope", pricingdomain.ErrInvalidBulkMap, id)
		}
	}
	return nil
}

// isClearOnly reports whether the scope asks for nothing but a discount
// wipe, which the storage layer can do in one statement per chunk.
func (sc *scope) isClearOnly() bool {
	return sc.clearDiscount &&
		len(sc.adjustments) == 0 &&
		!sc.hasSingularOverride() &&
		len(sc.bulk) == 0 &&
		sc.copyFromCode == "" &&
		!sc.strategySet
}

func (sc *scope) clearOnly(ctx context.Context) (*pricingdomain.SaveSummary, error) {
	ids, err := sc.resolveVariantIDs(ctx)
	if err != nil {
		return nil, err
	}
	ch, err := sc.resolveChannel(ctx)
	if err != nil {
		return nil, err
	}

	for _, chunk := range chunkIDs(ids, readChunkSize) {
		if ch != nil {
			err = sc.svc.records.ClearDiscount(ctx, sc.svc.db, chunk, ch.ID)
		} else {
			err = sc.svc.catalog.ClearDiscount(ctx, sc.svc.db, chunk)
		}
		if err != nil {
			return nil, err
		}
	}

	summary := &pricingdomain.SaveSummary{
		Target:    pricingdomain.TargetBase,
		Requested: len(ids),
		Updated:   len(ids),
	}
	if ch != nil {
		summary.Target = ch.Code
	}
	sc.enqueueRecalc(ctx, &state{channel: ch}, ids)
	return summary, nil
}

func (sc *scope) target(st *state) string {
	if st.channel != nil {
		return st.channel.Code
	}
	return pricingdomain.TargetBase
}

// writePipeline persists the pipeline result for one variant.
func (sc *scope) writePipeline(ctx context.Context, v catalogdomain.Variant, st *state) error {
	row := sc.pipeline(v, st)

	if st.channel == nil {
		return sc.svc.catalog.UpdateBasePrice(ctx, sc.svc.db, catalogdomain.BasePriceUpdate{
			VariantID:     v.ID,
			Price:         row.After,
			DiscountPrice: sc.resolveDiscount(v.DiscountPrice, nil),
		})
	}

	record := st.records[v.ID]
	var source *channelpricedomain.PricingRecord
	if st.source != nil {
		source = st.source[v.ID]
	}

	var existingDiscount, existingCost *float64
	if record != nil {
		existingDiscount = record.DiscountPrice
		existingCost = record.CostPrice
	}

	return sc.svc.records.Upsert(ctx, sc.svc.db, sc.svc.genID.Generate(), channelpricedomain.Upsert{
		VariantID:     v.ID,
		ChannelID:     st.channel.ID,
		Price:         row.After,
		DiscountPrice: sc.resolveDiscount(existingDiscount, source),
		CostPrice:     sc.resolveCost(existingCost, source),
		Currency:      st.channel.DefaultCurrency,
	})
}

// writeBulk persists one explicit field map; unset fields keep their
// persisted value.
func (sc *scope) writeBulk(ctx context.Context, v catalogdomain.Variant, st *state, fields pricingdomain.FieldUpdate) error {
	row := st.row(v)

	price := row.EffectivePrice
	if fields.Price != nil {
		price = *fields.Price
	}
	price = sc.applyRounding(price, row.Currency)

	discount := row.DiscountPrice
	if fields.DiscountPrice != nil {
		discount = fields.DiscountPrice
	}
	if sc.clearDiscount {
		discount = nil
	}

	if st.channel == nil {
		return sc.svc.catalog.UpdateBasePrice(ctx, sc.svc.db, catalogdomain.BasePriceUpdate{
			VariantID:     v.ID,
			Price:         price,
			DiscountPrice: discount,
		})
	}

	cost := row.CostPrice
	if fields.CostPrice != nil {
		cost = fields.CostPrice
	}

	return sc.svc.records.Upsert(ctx, sc.svc.db, sc.svc.genID.Generate(), channelpricedomain.Upsert{
		VariantID:     v.ID,
		ChannelID:     st.channel.ID,
		Price:         price,
		DiscountPrice: discount,
		CostPrice:     cost,
		Currency:      st.channel.DefaultCurrency,
	})
}

// resolveDiscount picks the discount to persist: an explicit clear wins,
// then the singular override, then the copy source, then what is already
// stored.
func (sc *scope) resolveDiscount(existing *float64, source *channelpricedomain.PricingRecord) *float64 {
	if sc.clearDiscount {
		return nil
	}
	if sc.discountOverride != nil {
		return sc.discountOverride
	}
	if source != nil && source.DiscountPrice != nil {
		return source.DiscountPrice
	}
	return existing
}

func (sc *scope) resolveCost(existing *float64, source *channelpricedomain.PricingRecord) *float64 {
	if sc.costOverride != nil {
		return sc.costOverride
	}
	if source != nil && source.CostPrice != nil {
		return source.CostPrice
	}
	return existing
}

// enqueueRecalc schedules the profitability refresh after a channel-mode
// save. A scheduling failure is logged and swallowed: the write already
// landed and the snapshot can be rebuilt later.
func (sc *scope) enqueueRecalc(ctx context.Context, st *state, updated []snowflake.ID) {
	if st.channel == nil || sc.svc.dispatcher == nil || len(updated) == 0 {
		return
	}
	if err := sc.svc.dispatcher.EnqueueProfitRecalc(ctx, updated, st.channel.Code); err != nil {
		sc.svc.log.Warn("profit recalc enqueue failed",
			zap.String("channel", st.channel.Code),
			zap.Int("variants", len(updated)),
			zap.Error(err))
	}
}

func (sc *scope) Push(ctx context.Context) (string, error) {
	if sc.err != nil {
		return "", sc.err
	}
	if sc.useBase {
		return "", pricingdomain.ErrNoChannel
	}

	ids, err := sc.resolveVariantIDs(ctx)
	if err != nil {
		return "", err
	}
	ch, err := sc.resolveChannel(ctx)
	if err != nil {
		return "", err
	}
	if sc.svc.dispatcher == nil {
		return "", pricingdomain.ErrSyncUnavailable
	}

	pushID, err := sc.svc.dispatcher.EnqueuePush(ctx, ids, ch.Code)
	if err != nil {
		return "", err
	}
	sc.svc.log.Info("price push enqueued",
		zap.String("push_id", pushID),
		zap.String("channel", ch.Code),
		zap.Int("variants", len(ids)))
	return pushID, nil
}

func (sc *scope) PreviewPush(ctx context.Context) (*pricingdomain.PushPreview, error) {
	if sc.err != nil {
		return nil, sc.err
	}
	if sc.useBase {
		return nil, pricingdomain.ErrNoChannel
	}

	st, err := sc.loadState(ctx)
	if err != nil {
		return nil, err
	}

	preview := &pricingdomain.PushPreview{ChannelCode: st.channel.Code}
	for _, v := range st.variants {
		row := st.row(v)
		preview.Items = append(preview.Items, pricingdomain.PushItem{
			VariantID:     v.ID,
			SKU:           v.SKU,
			Price:         row.EffectivePrice,
			DiscountPrice: row.DiscountPrice,
			Currency:      row.Currency,
		})
	}
	return preview, nil
}
