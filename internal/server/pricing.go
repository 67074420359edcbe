package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
	"github.com/merchantkit/pricora/internal/profit"
)

type scopeRequest struct {
	VariantIDs  []string `json:"variant_ids"`
	ProductID   string   `json:"product_id"`
	Channel     string   `json:"channel"`
	Marketplace string   `json:"marketplace"`
	Account     string   `json:"account"`
}

type adjustmentRequest struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

type pricingRequest struct {
	scopeRequest
	Adjustments   []adjustmentRequest                  `json:"adjustments"`
	Price         *float64                             `json:"price"`
	Discount      *float64                             `json:"discount"`
	Cost          *float64                             `json:"cost"`
	ClearDiscount bool                                 `json:"clear_discount"`
	Bulk          map[string]pricingdomain.FieldUpdate `json:"bulk"`
	CopyFrom      string                               `json:"copy_from"`
	Round         string                               `json:"round"`
	Fees          *profit.FeeContext                   `json:"fees"`
	TargetMargin  *float64                             `json:"target_margin"`
}

// scopeFromQuery builds the read-endpoint scope out of query parameters.
func (s *Server) scopeFromQuery(c *gin.Context) (pricingdomain.Scope, error) {
	req := scopeRequest{
		ProductID:   strings.TrimSpace(c.Query("product_id")),
		Channel:     strings.TrimSpace(c.Query("channel")),
		Marketplace: strings.TrimSpace(c.Query("marketplace")),
		Account:     strings.TrimSpace(c.Query("account")),
	}
	if raw := strings.TrimSpace(c.Query("variant_ids")); raw != "" {
		req.VariantIDs = strings.Split(raw, ",")
	}
	return s.buildScope(pricingRequest{scopeRequest: req})
}

// buildScope translates one request into a configured pricing scope.
// Scope-level problems (bad ids, unknown strategies) stick to the scope
// and surface from the terminal call; only shapes the scope API cannot
// express are rejected here.
func (s *Server) buildScope(req pricingRequest) (pricingdomain.Scope, error) {
	var scope pricingdomain.Scope
	if req.ProductID != "" {
		scope = s.pricingSvc.ForProduct(req.ProductID)
	} else {
		scope = s.pricingSvc.ForVariants(req.VariantIDs...)
	}

	switch {
	case req.Channel != "":
		scope = scope.SalesChannel(req.Channel)
	case req.Marketplace != "":
		scope = scope.Marketplace(req.Marketplace, req.Account)
	}

	for _, adj := range req.Adjustments {
		switch pricingdomain.AdjustmentKind(adj.Kind) {
		case pricingdomain.DiscountPercent:
			scope = scope.DiscountPercent(adj.Value)
		case pricingdomain.DiscountAmount:
			scope = scope.DiscountAmount(adj.Value)
		case pricingdomain.MarkupPercent:
			scope = scope.MarkupPercent(adj.Value)
		case pricingdomain.MarkupAmount:
			scope = scope.MarkupAmount(adj.Value)
		case pricingdomain.AdjustAmount:
			scope = scope.AdjustAmount(adj.Value)
		default:
			return nil, ErrInvalidRequest
		}
	}

	if req.Price != nil {
		scope = scope.Price(*req.Price)
	}
	if req.Discount != nil {
		scope = scope.Discount(*req.Discount)
	}
	if req.Cost != nil {
		scope = scope.Cost(*req.Cost)
	}
	if req.ClearDiscount {
		scope = scope.ClearDiscount()
	}
	if len(req.Bulk) > 0 {
		scope = scope.BulkUpdate(req.Bulk)
	}
	if req.CopyFrom != "" {
		scope = scope.CopyFrom(req.CopyFrom)
	}
	if req.Round != "" {
		scope = scope.Round(req.Round)
	}
	if req.Fees != nil {
		scope = scope.WithFees(*req.Fees)
	}
	if req.TargetMargin != nil {
		scope = scope.TargetMargin(*req.TargetMargin)
	}
	return scope, nil
}

func (s *Server) GetPricing(c *gin.Context) {
	scope, err := s.scopeFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := scope.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) GetPricingStats(c *gin.Context) {
	scope, err := s.scopeFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	stats, err := scope.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) GetProfits(c *gin.Context) {
	scope, err := s.scopeFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profits, err := scope.Profits(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profits})
}

func (s *Server) PreviewPricing(c *gin.Context) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	scope, err := s.buildScope(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := scope.Preview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) SavePricing(c *gin.Context) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	scope, err := s.buildScope(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := scope.Save(c.Request.Context())
	if err != nil {
		s.metrics.RecordSave("unknown", "error", 0)
		AbortWithError(c, err)
		return
	}

	status := "ok"
	if len(summary.Failed) > 0 {
		status = "partial"
	}
	s.metrics.RecordSave(summary.Target, status, summary.Updated)

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) SolvePrice(c *gin.Context) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	scope, err := s.buildScope(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	price, err := scope.SolvePrice(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"price": price}})
}

func (s *Server) PushPrices(c *gin.Context) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	scope, err := s.buildScope(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pushID, err := scope.Push(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.RecordPushEnqueued(req.Channel)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"push_id": pushID}})
}

func (s *Server) PreviewPushPrices(c *gin.Context) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	scope, err := s.buildScope(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	preview, err := scope.PreviewPush(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": preview})
}
