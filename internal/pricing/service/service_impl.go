package service

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
	"github.com/merchantkit/pricora/internal/money"
	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
	"github.com/merchantkit/pricora/internal/profit"
	syncdomain "github.com/merchantkit/pricora/internal/sync/domain"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Catalog    catalogdomain.Repository
	Records    channelpricedomain.Repository
	Channels   channeldomain.Service
	Dispatcher syncdomain.Dispatcher `optional:"true"`
}

// Service builds pricing scopes over its injected collaborators. All
// computation happens inside the scope; the service itself is stateless.
type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	catalog    catalogdomain.Repository
	records    channelpricedomain.Repository
	channels   channeldomain.Service
	dispatcher syncdomain.Dispatcher
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("pricing.service"),
		genID:      p.GenID,
		catalog:    p.Catalog,
		records:    p.Records,
		channels:   p.Channels,
		dispatcher: p.Dispatcher,
	}
}

func (s *Service) ForVariants(ids ...string) pricingdomain.Scope {
	sc := newScope(s)
	sc.useBase = true
	for _, raw := range ids {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			sc.fail(catalogdomain.ErrInvalidVariant)
			return sc
		}
		sc.variantIDs = append(sc.variantIDs, id)
	}
	return sc
}

func (s *Service) ForProduct(productID string) pricingdomain.Scope {
	sc := newScope(s)
	sc.useBase = true
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		sc.fail(catalogdomain.ErrInvalidVariant)
		return sc
	}
	sc.productID = id
	return sc
}

// scope carries one invocation's configuration. Fluent methods mutate and
// return the same scope; the first configuration error sticks and aborts
// the terminal operation.
type scope struct {
	svc *Service

	variantIDs []snowflake.ID
	productID  snowflake.ID

	useBase     bool
	channelCode string
	marketplace string
	account     string
	channel     *channeldomain.Channel

	adjustments      []pricingdomain.Adjustment
	priceOverride    *float64
	discountOverride *float64
	costOverride     *float64
	clearDiscount    bool

	bulk         map[snowflake.ID]pricingdomain.FieldUpdate
	copyFromCode string

	strategy    money.Strategy
	strategySet bool

	fees         *profit.FeeContext
	targetMargin *float64

	err error
}

func newScope(svc *Service) *scope {
	return &scope{svc: svc}
}

func (sc *scope) fail(err error) {
	if sc.err == nil {
		sc.err = err
	}
}

func (sc *scope) SalesChannel(code string) pricingdomain.Scope {
	code = strings.TrimSpace(code)
	if code == "" {
		sc.fail(channeldomain.ErrInvalidChannel)
		return sc
	}
	sc.useBase = false
	sc.channelCode = code
	sc.marketplace = ""
	sc.account = ""
	sc.channel = nil
	return sc
}

func (sc *scope) Marketplace(name, account string) pricingdomain.Scope {
	name = strings.TrimSpace(name)
	if name == "" {
		sc.fail(channeldomain.ErrInvalidChannel)
		return sc
	}
	sc.useBase = false
	sc.channelCode = ""
	sc.marketplace = name
	sc.account = strings.TrimSpace(account)
	sc.channel = nil
	return sc
}

func (sc *scope) Base() pricingdomain.Scope {
	sc.useBase = true
	return sc
}

func (sc *scope) Price(value float64) pricingdomain.Scope {
	sc.requireSingularHint()
	sc.priceOverride = &value
	return sc
}

func (sc *scope) Discount(value float64) pricingdomain.Scope {
	sc.requireSingularHint()
	sc.discountOverride = &value
	return sc
}

func (sc *scope) Cost(value float64) pricingdomain.Scope {
	sc.requireSingularHint()
	sc.costOverride = &value
	return sc
}

func (sc *scope) ClearDiscount() pricingdomain.Scope {
	sc.clearDiscount = true
	return sc
}

func (sc *scope) DiscountPercent(percent float64) pricingdomain.Scope {
	return sc.queue(pricingdomain.DiscountPercent, percent)
}

func (sc *scope) DiscountAmount(amount float64) pricingdomain.Scope {
	return sc.queue(pricingdomain.DiscountAmount, amount)
}

func (sc *scope) MarkupPercent(percent float64) pricingdomain.Scope {
	return sc.queue(pricingdomain.MarkupPercent, percent)
}

func (sc *scope) MarkupAmount(amount float64) pricingdomain.Scope {
	return sc.queue(pricingdomain.MarkupAmount, amount)
}

func (sc *scope) AdjustAmount(delta float64) pricingdomain.Scope {
	return sc.queue(pricingdomain.AdjustAmount, delta)
}

func (sc *scope) queue(kind pricingdomain.AdjustmentKind, value float64) pricingdomain.Scope {
	sc.adjustments = append(sc.adjustments, pricingdomain.Adjustment{Kind: kind, Value: value})
	return sc
}

func (sc *scope) BulkUpdate(updates map[string]pricingdomain.FieldUpdate) pricingdomain.Scope {
	parsed := make(map[snowflake.ID]pricingdomain.FieldUpdate, len(updates))
	for raw, fields := range updates {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			sc.fail(pricingdomain.ErrInvalidBulkMap)
			return sc
		}
		parsed[id] = fields
	}
	sc.bulk = parsed
	return sc
}

func (sc *scope) CopyFrom(channelCode string) pricingdomain.Scope {
	channelCode = strings.TrimSpace(channelCode)
	if channelCode == "" {
		sc.fail(channeldomain.ErrInvalidChannel)
		return sc
	}
	sc.copyFromCode = channelCode
	return sc
}

func (sc *scope) Round(strategy string) pricingdomain.Scope {
	parsed, err := money.ParseStrategy(strategy)
	if err != nil {
		sc.fail(err)
		return sc
	}
	sc.strategy = parsed
	sc.strategySet = true
	return sc
}

func (sc *scope) WithFees(fees profit.FeeContext) pricingdomain.Scope {
	sc.fees = &fees
	return sc
}

func (sc *scope) TargetMargin(percent float64) pricingdomain.Scope {
	sc.targetMargin = &percent
	return sc
}

// requireSingularHint fails fast when the scope is already known to hold
// more than one variant. Product scopes resolve lazily, so the terminal
// operation re-checks after resolution.
func (sc *scope) requireSingularHint() {
	if len(sc.variantIDs) > 1 {
		sc.fail(pricingdomain.ErrScopeNotSingular)
	}
}

func (sc *scope) hasSingularOverride() bool {
	return sc.priceOverride != nil || sc.discountOverride != nil || sc.costOverride != nil
}
