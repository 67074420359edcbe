package jobs

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/merchantkit/pricora/internal/catalog"
	"github.com/merchantkit/pricora/internal/channel"
	"github.com/merchantkit/pricora/internal/channelprice"
	"github.com/merchantkit/pricora/internal/config"
	"github.com/merchantkit/pricora/internal/jobs/tasks"
	"github.com/merchantkit/pricora/internal/profitcache"
	syncmod "github.com/merchantkit/pricora/internal/sync"
)

// WorkerModule wires the queue consumer: repositories, handlers, and the
// asynq server lifecycle.
var WorkerModule = fx.Module("jobs.worker",
	catalog.Module,
	channel.Module,
	channelprice.Module,
	profitcache.Module,
	syncmod.Module,
	fx.Provide(NewHandlers),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, cfg config.Config, handlers *Handlers, log *zap.Logger) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues: map[string]int{
			tasks.QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePricePush, handlers.HandlePricePush)
	mux.HandleFunc(tasks.TypeProfitRecalc, handlers.HandleProfitRecalc)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("worker starting",
				zap.String("redis", cfg.RedisAddr),
				zap.Int("concurrency", cfg.WorkerConcurrency))
			go func() {
				if err := srv.Run(mux); err != nil {
					log.Error("worker stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			srv.Shutdown()
			return nil
		},
	})
}
