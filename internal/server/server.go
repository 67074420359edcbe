package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/merchantkit/pricora/internal/catalog"
	"github.com/merchantkit/pricora/internal/channel"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	"github.com/merchantkit/pricora/internal/channelprice"
	"github.com/merchantkit/pricora/internal/config"
	"github.com/merchantkit/pricora/internal/pricing"
	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
	"github.com/merchantkit/pricora/internal/profitcache"
	syncmod "github.com/merchantkit/pricora/internal/sync"
	"github.com/merchantkit/pricora/pkg/telemetry"
)

var Module = fx.Module("http.server",
	fx.Provide(telemetry.NewMetrics),
	fx.Provide(registerGin),
	catalog.Module,
	channel.Module,
	channelprice.Module,
	profitcache.Module,
	syncmod.Module,
	pricing.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *telemetry.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggerMiddleware(log.Named("http")))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *telemetry.Metrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	pricingSvc pricingdomain.Service
	channelSvc channeldomain.Service
	metrics    *telemetry.Metrics
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	PricingSvc pricingdomain.Service
	ChannelSvc channeldomain.Service
	Metrics    *telemetry.Metrics
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		log:        p.Log.Named("http.server"),
		genID:      p.GenID,
		pricingSvc: p.PricingSvc,
		channelSvc: p.ChannelSvc,
		metrics:    p.Metrics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	v1.GET("/channels", s.ListChannels)
	v1.GET("/channels/:code", s.GetChannel)

	pricing := v1.Group("/pricing")
	pricing.GET("", s.GetPricing)
	pricing.GET("/stats", s.GetPricingStats)
	pricing.GET("/profits", s.GetProfits)
	pricing.POST("/preview", s.PreviewPricing)
	pricing.POST("/save", s.SavePricing)
	pricing.POST("/solve", s.SolvePrice)
	pricing.POST("/push", s.PushPrices)
	pricing.POST("/push/preview", s.PreviewPushPrices)
}
