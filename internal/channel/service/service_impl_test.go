package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	channelrepo "github.com/merchantkit/pricora/internal/channel/repository"
	"github.com/merchantkit/pricora/internal/config"
)

func setupService(t *testing.T) (channeldomain.Service, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&channeldomain.Channel{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Cfg:   config.Config{ChannelCacheTTLSeconds: 300},
		Repo:  channelrepo.Provide(),
		Redis: client,
	})
	return svc, db, mr
}

func seedChannel(t *testing.T, db *gorm.DB, code, marketplace, account string) {
	t.Helper()
	require.NoError(t, db.Create(&channeldomain.Channel{
		ID:                 1001,
		Code:               code,
		Marketplace:        marketplace,
		Account:            account,
		DefaultCurrency:    "EUR",
		PlatformFeePercent: 15,
		PaymentFeePercent:  2,
		BaseShippingCost:   4.5,
		Active:             true,
	}).Error)
}

func TestResolve_ByCode(t *testing.T) {
	svc, db, _ := setupService(t)
	seedChannel(t, db, "amazon_de", "amazon", "de-main")

	ch, err := svc.Resolve(context.Background(), "amazon_de")
	require.NoError(t, err)
	assert.Equal(t, "amazon_de", ch.Code)
	assert.Equal(t, 15.0, ch.PlatformFeePercent)
}

func TestResolve_Unknown(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, channeldomain.ErrChannelNotFound)
}

func TestResolve_EmptyCode(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Resolve(context.Background(), "  ")
	assert.ErrorIs(t, err, channeldomain.ErrInvalidChannel)
}

func TestResolveMarketplace(t *testing.T) {
	svc, db, _ := setupService(t)
	seedChannel(t, db, "amazon_de", "amazon", "de-main")

	ch, err := svc.ResolveMarketplace(context.Background(), "amazon", "de-main")
	require.NoError(t, err)
	assert.Equal(t, "amazon_de", ch.Code)

	_, err = svc.ResolveMarketplace(context.Background(), "amazon", "other")
	assert.ErrorIs(t, err, channeldomain.ErrChannelNotFound)
}

func TestResolve_ServesFromCacheAfterFirstHit(t *testing.T) {
	svc, db, mr := setupService(t)
	seedChannel(t, db, "ebay_us", "ebay", "us-main")

	_, err := svc.Resolve(context.Background(), "ebay_us")
	require.NoError(t, err)
	assert.True(t, mr.Exists("pricora:channel:code:ebay_us"))

	// row removed; the cached profile still resolves until the TTL expires
	require.NoError(t, db.Exec("DELETE FROM channels").Error)
	ch, err := svc.Resolve(context.Background(), "ebay_us")
	require.NoError(t, err)
	assert.Equal(t, "ebay_us", ch.Code)

	mr.FastForward(svc.(*Service).cacheTTL * 2)
	_, err = svc.Resolve(context.Background(), "ebay_us")
	assert.ErrorIs(t, err, channeldomain.ErrChannelNotFound)
}
