package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hibiken/asynq"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
	"github.com/merchantkit/pricora/internal/jobs/tasks"
	"github.com/merchantkit/pricora/internal/profit"
	profitcachedomain "github.com/merchantkit/pricora/internal/profitcache/domain"
	syncdomain "github.com/merchantkit/pricora/internal/sync/domain"
	"github.com/merchantkit/pricora/pkg/telemetry"
)

type HandlerParams struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Catalog   catalogdomain.Repository
	Records   channelpricedomain.Repository
	Channels  channeldomain.Service
	Snapshots profitcachedomain.Repository
	Gateway   syncdomain.Gateway
	Metrics   *telemetry.Metrics `optional:"true"`
}

// Handlers processes the queued pricing tasks.
type Handlers struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	catalog   catalogdomain.Repository
	records   channelpricedomain.Repository
	channels  channeldomain.Service
	snapshots profitcachedomain.Repository
	gateway   syncdomain.Gateway
	metrics   *telemetry.Metrics
}

func NewHandlers(p HandlerParams) *Handlers {
	return &Handlers{
		db:        p.DB,
		log:       p.Log.Named("jobs"),
		genID:     p.GenID,
		catalog:   p.Catalog,
		records:   p.Records,
		channels:  p.Channels,
		snapshots: p.Snapshots,
		gateway:   p.Gateway,
		metrics:   p.Metrics,
	}
}

// HandlePricePush loads the current channel prices for the payload's
// variants and hands them to the marketplace gateway.
func (h *Handlers) HandlePricePush(ctx context.Context, t *asynq.Task) error {
	var payload tasks.PricePushPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.log.Error("malformed push payload", zap.Error(err))
		return asynq.SkipRetry
	}

	ch, err := h.channels.Resolve(ctx, payload.ChannelCode)
	if err != nil {
		return err
	}

	variants, records, err := h.loadState(ctx, payload.VariantIDs, ch.ID)
	if err != nil {
		return err
	}

	items := make([]syncdomain.PushItem, 0, len(variants))
	for _, v := range variants {
		item := syncdomain.PushItem{
			VariantID: v.ID,
			SKU:       v.SKU,
			Price:     v.BasePrice,
			Currency:  ch.DefaultCurrency,
		}
		if record, ok := records[v.ID]; ok {
			item.Price = record.Price
			item.DiscountPrice = record.DiscountPrice
		}
		items = append(items, item)
	}

	if err := h.gateway.PublishPrices(ctx, ch.Code, items); err != nil {
		return err
	}

	h.log.Info("price push published",
		zap.String("push_id", payload.PushID),
		zap.String("channel", ch.Code),
		zap.Int("items", len(items)))
	return nil
}

// HandleProfitRecalc recomputes the profitability snapshot for every
// (variant, channel) pair in the payload.
func (h *Handlers) HandleProfitRecalc(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ProfitRecalcPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.log.Error("malformed recalc payload", zap.Error(err))
		return asynq.SkipRetry
	}

	ch, err := h.channels.Resolve(ctx, payload.ChannelCode)
	if err != nil {
		h.recordRecalc("error")
		return err
	}

	_, records, err := h.loadState(ctx, payload.VariantIDs, ch.ID)
	if err != nil {
		h.recordRecalc("error")
		return err
	}

	fees := ch.Fees()
	now := time.Now().UTC()
	for _, record := range records {
		revenue := record.Price
		if record.DiscountPrice != nil {
			revenue = *record.DiscountPrice
		}

		baseCost := 0.0
		if record.CostPrice != nil {
			baseCost = *record.CostPrice
		}

		analysis := profit.Calculate(revenue, profit.CostBreakdown{
			BaseCost:    baseCost,
			Shipping:    fees.ShippingCost,
			PlatformFee: revenue * fees.PlatformFeePercent / 100,
			PaymentFee:  revenue * fees.PaymentFeePercent / 100,
		})

		snapshot := &profitcachedomain.Snapshot{
			ID:         h.genID.Generate(),
			VariantID:  record.VariantID,
			ChannelID:  ch.ID,
			Revenue:    analysis.Revenue,
			TotalCosts: analysis.TotalCosts(),
			Profit:     analysis.Profit(),
			Margin:     analysis.Margin(),
			ROI:        analysis.ROI(),
			Currency:   record.Currency,
			ComputedAt: now,
		}
		if err := h.snapshots.Upsert(ctx, h.db, snapshot); err != nil {
			h.recordRecalc("error")
			return err
		}
	}

	h.recordRecalc("ok")
	h.log.Info("profit snapshots refreshed",
		zap.String("channel", ch.Code),
		zap.Int("variants", len(records)))
	return nil
}

func (h *Handlers) loadState(ctx context.Context, rawIDs []string, channelID snowflake.ID) ([]catalogdomain.Variant, map[snowflake.ID]*channelpricedomain.PricingRecord, error) {
	ids := make([]snowflake.ID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, nil, asynq.SkipRetry
		}
		ids = append(ids, id)
	}

	variants, err := h.catalog.FindByIDs(ctx, h.db, ids)
	if err != nil {
		return nil, nil, err
	}

	records, err := h.records.FindByVariants(ctx, h.db, ids, channelID)
	if err != nil {
		return nil, nil, err
	}
	byVariant := make(map[snowflake.ID]*channelpricedomain.PricingRecord, len(records))
	for i := range records {
		byVariant[records[i].VariantID] = &records[i]
	}
	return variants, byVariant, nil
}

func (h *Handlers) recordRecalc(status string) {
	if h.metrics != nil {
		h.metrics.RecordProfitRecalc(status)
	}
}
