package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	catalogrepo "github.com/merchantkit/pricora/internal/catalog/repository"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
	channelpricerepo "github.com/merchantkit/pricora/internal/channelprice/repository"
	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
	"github.com/merchantkit/pricora/internal/profit"
	syncdomain "github.com/merchantkit/pricora/internal/sync/domain"
)

// stubChannels resolves channels from a fixed map, standing in for the
// cached channel service.
type stubChannels struct {
	channels []channeldomain.Channel
}

func (s *stubChannels) Resolve(_ context.Context, code string) (*channeldomain.Channel, error) {
	for i := range s.channels {
		if s.channels[i].Code == code {
			return &s.channels[i], nil
		}
	}
	return nil, channeldomain.ErrChannelNotFound
}

func (s *stubChannels) ResolveMarketplace(_ context.Context, marketplace, account string) (*channeldomain.Channel, error) {
	for i := range s.channels {
		if s.channels[i].Marketplace == marketplace && s.channels[i].Account == account {
			return &s.channels[i], nil
		}
	}
	return nil, channeldomain.ErrChannelNotFound
}

func (s *stubChannels) List(_ context.Context) ([]channeldomain.Channel, error) {
	return s.channels, nil
}

// stubDispatcher records hand-offs instead of touching a queue.
type stubDispatcher struct {
	pushed   [][]snowflake.ID
	recalced [][]snowflake.ID
	failPush bool
}

func (s *stubDispatcher) EnqueuePush(_ context.Context, variantIDs []snowflake.ID, _ string) (string, error) {
	if s.failPush {
		return "", errors.New("queue down")
	}
	s.pushed = append(s.pushed, variantIDs)
	return "push-1", nil
}

func (s *stubDispatcher) EnqueueProfitRecalc(_ context.Context, variantIDs []snowflake.ID, _ string) error {
	s.recalced = append(s.recalced, variantIDs)
	return nil
}

// flakyRecords refuses the write for one variant and delegates the rest.
type flakyRecords struct {
	channelpricedomain.Repository
	refuse snowflake.ID
}

func (f *flakyRecords) Upsert(ctx context.Context, db *gorm.DB, id snowflake.ID, up channelpricedomain.Upsert) error {
	if up.VariantID == f.refuse {
		return errors.New("write refused")
	}
	return f.Repository.Upsert(ctx, db, id, up)
}

type fixture struct {
	svc        pricingdomain.Service
	db         *gorm.DB
	dispatcher *stubDispatcher
	records    channelpricedomain.Repository
}

func setupPricing(t *testing.T, mutate func(*Params)) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Variant{},
		&channeldomain.Channel{},
		&channelpricedomain.PricingRecord{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	dispatcher := &stubDispatcher{}
	params := Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Catalog: catalogrepo.Provide(),
		Records: channelpricerepo.Provide(),
		Channels: &stubChannels{channels: []channeldomain.Channel{
			{
				ID: 9001, Code: "amazon_de", Marketplace: "amazon", Account: "de-main",
				DefaultCurrency: "EUR", PlatformFeePercent: 10, PaymentFeePercent: 3,
				BaseShippingCost: 0, Active: true,
			},
			{
				ID: 9002, Code: "ebay_us", Marketplace: "ebay", Account: "us-main",
				DefaultCurrency: "USD", PlatformFeePercent: 12, PaymentFeePercent: 2.5,
				BaseShippingCost: 3, Active: true,
			},
		}},
		Dispatcher: dispatcher,
	}
	if mutate != nil {
		mutate(&params)
	}

	return &fixture{
		svc:        New(params),
		db:         db,
		dispatcher: dispatcher,
		records:    params.Records,
	}
}

func (f *fixture) seedVariant(t *testing.T, id snowflake.ID, sku string, basePrice float64) {
	t.Helper()
	require.NoError(t, f.db.Create(&catalogdomain.Variant{
		ID: id, ProductID: 500, SKU: sku, BasePrice: basePrice, Currency: "EUR",
	}).Error)
}

func (f *fixture) seedRecord(t *testing.T, rec channelpricedomain.PricingRecord) {
	t.Helper()
	require.NoError(t, f.db.Create(&rec).Error)
}

func (f *fixture) record(t *testing.T, variantID, channelID snowflake.ID) *channelpricedomain.PricingRecord {
	t.Helper()
	records, err := f.records.FindByVariants(context.Background(), f.db, []snowflake.ID{variantID}, channelID)
	require.NoError(t, err)
	if len(records) == 0 {
		return nil
	}
	return &records[0]
}

func ptr(v float64) *float64 { return &v }

func TestForVariants_InvalidID(t *testing.T) {
	f := setupPricing(t, nil)

	_, err := f.svc.ForVariants("not-a-number").Get(context.Background())
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidVariant)
}

func TestGet_BaseScope(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	rows, err := f.svc.ForVariants("1").Get(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50.0, rows[0].BasePrice)
	assert.Equal(t, 50.0, rows[0].EffectivePrice)
	assert.Nil(t, rows[0].ChannelPrice)
	assert.Equal(t, "EUR", rows[0].Currency)
}

func TestGet_ChannelFallsBackToBase(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	rows, err := f.svc.ForVariants("1").SalesChannel("ebay_us").Get(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ChannelPrice)
	assert.Equal(t, 50.0, rows[0].EffectivePrice)
	assert.Equal(t, "USD", rows[0].Currency)
}

func TestGet_ChannelRecordWins(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 64.99,
		DiscountPrice: ptr(59.99), Currency: "EUR",
	})

	rows, err := f.svc.ForVariants("1").SalesChannel("amazon_de").Get(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].ChannelPrice)
	assert.Equal(t, 64.99, *rows[0].ChannelPrice)
	assert.Equal(t, 64.99, rows[0].EffectivePrice)
	assert.Equal(t, 59.99, *rows[0].DiscountPrice)
}

func TestGet_UnknownVariant(t *testing.T) {
	f := setupPricing(t, nil)

	_, err := f.svc.ForVariants("1").Get(context.Background())
	assert.ErrorIs(t, err, catalogdomain.ErrVariantNotFound)
}

func TestPreview_MarkupThenCharmRounding(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	rows, err := f.svc.ForVariants("1").
		MarkupPercent(20).
		Round("nearest_0_99").
		Preview(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50.0, rows[0].Before)
	assert.InDelta(t, 60.0, rows[0].Adjusted, 1e-9)
	assert.Equal(t, 59.99, rows[0].After)
}

func TestPreview_OverrideSupersedesAdjustments(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	rows, err := f.svc.ForVariants("1").
		DiscountPercent(50).
		Price(42).
		Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, rows[0].After)
}

func TestPreview_AdjustmentsApplyInOrder(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 100)

	// (100 + 10%) − 10 = 100, not (100 − 10) + 10% = 99
	rows, err := f.svc.ForVariants("1").
		MarkupPercent(10).
		DiscountAmount(10).
		Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, rows[0].After)
}

func TestPreview_DiscountClampsAtZero(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 5)

	rows, err := f.svc.ForVariants("1").
		DiscountAmount(10).
		MarkupAmount(3).
		Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5.0, rows[0].Before)
	assert.Equal(t, 3.0, rows[0].After) // clamped to 0, then +3
}

func TestSave_MatchesPreview(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	scope := func() pricingdomain.Scope {
		return f.svc.ForVariants("1").
			SalesChannel("amazon_de").
			MarkupPercent(20).
			Round("nearest_0_99")
	}

	preview, err := scope().Preview(context.Background())
	require.NoError(t, err)

	summary, err := scope().Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, "amazon_de", summary.Target)

	record := f.record(t, 1, 9001)
	require.NotNil(t, record)
	assert.Equal(t, preview[0].After, record.Price)
	assert.Equal(t, "EUR", record.Currency)
}

func TestSave_BaseScope(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	summary, err := f.svc.ForVariants("1").
		MarkupAmount(5).
		Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pricingdomain.TargetBase, summary.Target)
	assert.Equal(t, 1, summary.Updated)

	var v catalogdomain.Variant
	require.NoError(t, f.db.First(&v, "id = ?", 1).Error)
	assert.Equal(t, 55.0, v.BasePrice)
}

func TestSave_UpsertsNotDuplicates(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	for range [2]int{} {
		_, err := f.svc.ForVariants("1").
			SalesChannel("amazon_de").
			Price(64.99).
			Save(context.Background())
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, f.db.Model(&channelpricedomain.PricingRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSave_SingularOverrideRejectsMultiScope(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedVariant(t, 2, "SKU-2", 60)

	_, err := f.svc.ForVariants("1", "2").
		Price(42).
		Save(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrScopeNotSingular)
}

func TestSave_BulkPartialFailure(t *testing.T) {
	f := setupPricing(t, func(p *Params) {
		p.Records = &flakyRecords{Repository: p.Records, refuse: 2}
	})
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedVariant(t, 2, "SKU-2", 60)
	f.seedVariant(t, 3, "SKU-3", 70)

	summary, err := f.svc.ForVariants("1", "2", "3").
		SalesChannel("amazon_de").
		BulkUpdate(map[string]pricingdomain.FieldUpdate{
			"1": {Price: ptr(55)},
			"2": {Price: ptr(65)},
			"3": {Price: ptr(75)},
		}).
		Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Requested)
	assert.Equal(t, 2, summary.Updated)
	require.Len(t, summary.Failed, 1)
	assert.EqualValues(t, 2, summary.Failed[0].VariantID)
	assert.Equal(t, "write refused", summary.Failed[0].Reason)
}

func TestSave_BulkKeysDefineScope(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	summary, err := f.svc.ForVariants().
		BulkUpdate(map[string]pricingdomain.FieldUpdate{"1": {Price: ptr(44)}}).
		Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	var v catalogdomain.Variant
	require.NoError(t, f.db.First(&v, "id = ?", 1).Error)
	assert.Equal(t, 44.0, v.BasePrice)
}

func TestSave_BulkKeyOutsideScopeRejected(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	_, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		BulkUpdate(map[string]pricingdomain.FieldUpdate{
			"1": {Price: ptr(44)},
			"2": {Price: ptr(45)},
		}).
		Save(context.Background())
	require.ErrorIs(t, err, pricingdomain.ErrInvalidBulkMap)

	var count int64
	require.NoError(t, f.db.Model(&channelpricedomain.PricingRecord{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSave_ClearDiscountOnly(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 64.99,
		DiscountPrice: ptr(59.99), Currency: "EUR",
	})

	summary, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		ClearDiscount().
		Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	record := f.record(t, 1, 9001)
	require.NotNil(t, record)
	assert.Nil(t, record.DiscountPrice)
	assert.Equal(t, 64.99, record.Price)
}

func TestSave_CopyFromChannel(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 80,
		DiscountPrice: ptr(70), CostPrice: ptr(40), Currency: "EUR",
	})

	summary, err := f.svc.ForVariants("1").
		SalesChannel("ebay_us").
		CopyFrom("amazon_de").
		Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	record := f.record(t, 1, 9002)
	require.NotNil(t, record)
	assert.Equal(t, 80.0, record.Price)
	require.NotNil(t, record.DiscountPrice)
	assert.Equal(t, 70.0, *record.DiscountPrice)
	require.NotNil(t, record.CostPrice)
	assert.Equal(t, 40.0, *record.CostPrice)
	assert.Equal(t, "USD", record.Currency)
}

func TestSave_EnqueuesProfitRecalc(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	_, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		MarkupPercent(10).
		Save(context.Background())
	require.NoError(t, err)
	require.Len(t, f.dispatcher.recalced, 1)
	assert.EqualValues(t, []snowflake.ID{1}, f.dispatcher.recalced[0])

	// base-target saves do not touch channel profitability
	_, err = f.svc.ForVariants("1").MarkupPercent(10).Save(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.dispatcher.recalced, 1)
}

func TestSave_UnknownChannelFailsWhole(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	_, err := f.svc.ForVariants("1").
		SalesChannel("walmart_us").
		MarkupPercent(10).
		Save(context.Background())
	assert.ErrorIs(t, err, channeldomain.ErrChannelNotFound)
}

func TestForProduct_ResolvesLazily(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedVariant(t, 2, "SKU-2", 60)

	rows, err := f.svc.ForProduct("500").Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// the singular restriction applies to the resolved set
	_, err = f.svc.ForProduct("500").Price(42).Save(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrScopeNotSingular)
}

func TestForProduct_EmptyScope(t *testing.T) {
	f := setupPricing(t, nil)

	_, err := f.svc.ForProduct("777").Get(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrEmptyScope)
}

func TestStats(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedVariant(t, 2, "SKU-2", 70)
	require.NoError(t, f.db.Model(&catalogdomain.Variant{}).
		Where("id = ?", 2).
		Update("discount_price", 65).Error)

	stats, err := f.svc.ForVariants("1", "2").Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 60.0, stats.AveragePrice)
	assert.Equal(t, 50.0, stats.MinPrice)
	assert.Equal(t, 70.0, stats.MaxPrice)
	assert.Equal(t, 1, stats.OnDiscount)
}

func TestProfits_UsesChannelFees(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 100,
		CostPrice: ptr(60), Currency: "EUR",
	})

	profits, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		Profits(context.Background())
	require.NoError(t, err)
	require.Len(t, profits, 1)

	// 100 − 60 − 10 (platform) − 3 (payment) = 27
	assert.InDelta(t, 27.0, profits[0].Profit, 1e-9)
	assert.InDelta(t, 27.0, profits[0].Margin, 1e-9)
}

func TestProfits_ExplicitFeesOverrideChannel(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 100,
		DiscountPrice: ptr(80), CostPrice: ptr(60), Currency: "EUR",
	})

	profits, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		WithFees(profit.FeeContext{PlatformFeePercent: 10, ShippingCost: 4}).
		Profits(context.Background())
	require.NoError(t, err)
	require.Len(t, profits, 1)

	// revenue is the discounted 80: 80 − 60 − 8 (platform) − 4 (shipping) = 8
	assert.InDelta(t, 80.0, profits[0].Revenue, 1e-9)
	assert.InDelta(t, 4.0, profits[0].Costs.Shipping, 1e-9)
	assert.InDelta(t, 8.0, profits[0].Costs.PlatformFee, 1e-9)
	assert.InDelta(t, 0.0, profits[0].Costs.PaymentFee, 1e-9)
	assert.InDelta(t, 8.0, profits[0].Profit, 1e-9)
	assert.InDelta(t, 10.0, profits[0].Margin, 1e-9)
}

func TestSolvePrice_HitsTargetMargin(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 80,
		CostPrice: ptr(60), Currency: "EUR",
	})

	scope := f.svc.ForVariants("1").SalesChannel("amazon_de").TargetMargin(25)
	price, err := scope.SolvePrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 60.0/0.62, price, 1e-9)

	// the solved price is the scope's override, so Save persists it
	summary, err := scope.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	record := f.record(t, 1, 9001)
	require.NotNil(t, record)
	assert.InDelta(t, price, record.Price, 0.01)
}

func TestSolvePrice_ExplicitFeesAndCost(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	price, err := f.svc.ForVariants("1").
		Cost(60).
		WithFees(profit.FeeContext{PlatformFeePercent: 10, PaymentFeePercent: 3}).
		TargetMargin(25).
		SolvePrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 60.0/0.62, price, 1e-9)
}

func TestSolvePrice_RequiredInputs(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	_, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		SolvePrice(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrNoTargetMargin)

	_, err = f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		TargetMargin(25).
		SolvePrice(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrMissingCost)

	_, err = f.svc.ForVariants("1").
		Cost(60).
		TargetMargin(25).
		SolvePrice(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrNoFeeContext)
}

func TestPush(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	pushID, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "push-1", pushID)
	require.Len(t, f.dispatcher.pushed, 1)
}

func TestPush_RequiresChannel(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)

	_, err := f.svc.ForVariants("1").Push(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrNoChannel)
}

func TestPush_NoDispatcher(t *testing.T) {
	f := setupPricing(t, func(p *Params) { p.Dispatcher = nil })
	f.seedVariant(t, 1, "SKU-1", 50)

	_, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		Push(context.Background())
	assert.ErrorIs(t, err, pricingdomain.ErrSyncUnavailable)
}

func TestPreviewPush(t *testing.T) {
	f := setupPricing(t, nil)
	f.seedVariant(t, 1, "SKU-1", 50)
	f.seedRecord(t, channelpricedomain.PricingRecord{
		ID: 100, VariantID: 1, ChannelID: 9001, Price: 64.99,
		DiscountPrice: ptr(59.99), Currency: "EUR",
	})

	preview, err := f.svc.ForVariants("1").
		SalesChannel("amazon_de").
		PreviewPush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "amazon_de", preview.ChannelCode)
	require.Len(t, preview.Items, 1)
	assert.Equal(t, "SKU-1", preview.Items[0].SKU)
	assert.Equal(t, 64.99, preview.Items[0].Price)
	require.NotNil(t, preview.Items[0].DiscountPrice)
	assert.Equal(t, 59.99, *preview.Items[0].DiscountPrice)
	assert.Empty(t, f.dispatcher.pushed)
}

var _ syncdomain.Dispatcher = (*stubDispatcher)(nil)
