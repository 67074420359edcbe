package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/merchantkit/pricora/internal/config"
	"github.com/merchantkit/pricora/internal/jobs/tasks"
	syncdomain "github.com/merchantkit/pricora/internal/sync/domain"
)

type Params struct {
	fx.In

	Lc  fx.Lifecycle
	Log *zap.Logger
	Cfg config.Config
}

// Dispatcher enqueues push and recalc tasks on the asynq queue.
type Dispatcher struct {
	log    *zap.Logger
	client *asynq.Client
}

func New(p Params) syncdomain.Dispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     p.Cfg.RedisAddr,
		Password: p.Cfg.RedisPassword,
		DB:       p.Cfg.RedisDB,
	})
	p.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return &Dispatcher{
		log:    p.Log.Named("sync.dispatcher"),
		client: client,
	}
}

func (d *Dispatcher) EnqueuePush(ctx context.Context, variantIDs []snowflake.ID, channelCode string) (string, error) {
	if len(variantIDs) == 0 {
		return "", syncdomain.ErrEmptyPush
	}

	pushID := uuid.NewString()
	task, err := tasks.NewPricePush(tasks.PricePushPayload{
		PushID:      pushID,
		VariantIDs:  idsToStrings(variantIDs),
		ChannelCode: channelCode,
	})
	if err != nil {
		return "", err
	}

	info, err := d.client.EnqueueContext(ctx, task, asynq.Queue(tasks.QueueDefault))
	if err != nil {
		return "", fmt.Errorf("enqueue price push for channel %s: %w", channelCode, err)
	}

	d.log.Info("price push enqueued",
		zap.String("push_id", pushID),
		zap.String("channel", channelCode),
		zap.Int("variants", len(variantIDs)),
		zap.String("task_id", info.ID),
	)
	return pushID, nil
}

func (d *Dispatcher) EnqueueProfitRecalc(ctx context.Context, variantIDs []snowflake.ID, channelCode string) error {
	if len(variantIDs) == 0 {
		return nil
	}

	task, err := tasks.NewProfitRecalc(tasks.ProfitRecalcPayload{
		VariantIDs:  idsToStrings(variantIDs),
		ChannelCode: channelCode,
	})
	if err != nil {
		return err
	}

	if _, err := d.client.EnqueueContext(ctx, task, asynq.Queue(tasks.QueueDefault)); err != nil {
		return fmt.Errorf("enqueue profit recalc: %w", err)
	}
	return nil
}

func idsToStrings(ids []snowflake.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
