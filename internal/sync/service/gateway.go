package service

import (
	"context"

	"go.uber.org/zap"

	syncdomain "github.com/merchantkit/pricora/internal/sync/domain"
)

// LogGateway is the default marketplace gateway: it records what would be
// sent. Real marketplace adapters replace it in deployment wiring.
type LogGateway struct {
	log *zap.Logger
}

func NewLogGateway(log *zap.Logger) syncdomain.Gateway {
	return &LogGateway{log: log.Named("sync.gateway")}
}

func (g *LogGateway) PublishPrices(ctx context.Context, channelCode string, items []syncdomain.PushItem) error {
	for _, item := range items {
		fields := []zap.Field{
			zap.String("channel", channelCode),
			zap.String("variant_id", item.VariantID.String()),
			zap.String("sku", item.SKU),
			zap.Float64("price", item.Price),
			zap.String("currency", item.Currency),
		}
		if item.DiscountPrice != nil {
			fields = append(fields, zap.Float64("discount_price", *item.DiscountPrice))
		}
		g.log.Info("price published", fields...)
	}
	return nil
}
