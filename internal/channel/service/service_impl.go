package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	"github.com/merchantkit/pricora/internal/config"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Repo  channeldomain.Repository
	Redis *redis.Client `optional:"true"`
}

// Service is the channel resolver: database-backed with a read-through
// redis cache. Redis failures fall back to the database silently.
type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     channeldomain.Repository
	redis    *redis.Client
	cacheTTL time.Duration
}

func New(p Params) channeldomain.Service {
	client := p.Redis
	if client == nil && strings.TrimSpace(p.Cfg.RedisAddr) != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     p.Cfg.RedisAddr,
			Password: p.Cfg.RedisPassword,
			DB:       p.Cfg.RedisDB,
		})
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("channel.service"),
		repo:     p.Repo,
		redis:    client,
		cacheTTL: time.Duration(p.Cfg.ChannelCacheTTLSeconds) * time.Second,
	}
}

func (s *Service) Resolve(ctx context.Context, code string) (*channeldomain.Channel, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, channeldomain.ErrInvalidChannel
	}

	if cached := s.fromCache(ctx, cacheKeyCode(code)); cached != nil {
		return cached, nil
	}

	ch, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, fmt.Errorf("%w: %s", channeldomain.ErrChannelNotFound, code)
	}

	s.toCache(ctx, cacheKeyCode(code), ch)
	return ch, nil
}

func (s *Service) ResolveMarketplace(ctx context.Context, marketplace, account string) (*channeldomain.Channel, error) {
	marketplace = strings.TrimSpace(marketplace)
	if marketplace == "" {
		return nil, channeldomain.ErrInvalidChannel
	}
	account = strings.TrimSpace(account)

	key := cacheKeyMarketplace(marketplace, account)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	ch, err := s.repo.FindByMarketplace(ctx, s.db, marketplace, account)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, fmt.Errorf("%w: %s/%s", channeldomain.ErrChannelNotFound, marketplace, account)
	}

	s.toCache(ctx, key, ch)
	return ch, nil
}

func (s *Service) List(ctx context.Context) ([]channeldomain.Channel, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) fromCache(ctx context.Context, key string) *channeldomain.Channel {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Debug("channel cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var ch channeldomain.Channel
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		s.log.Debug("channel cache payload corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &ch
}

func (s *Service) toCache(ctx context.Context, key string, ch *channeldomain.Channel) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(ch)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.log.Debug("channel cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKeyCode(code string) string {
	return "pricora:channel:code:" + code
}

func cacheKeyMarketplace(marketplace, account string) string {
	return "pricora:channel:mkt:" + marketplace + ":" + account
}
