// Package tasks defines the queue task names and payloads shared by the
// enqueueing side (the sync dispatcher) and the consuming side (the
// worker handlers). It stays dependency-free so both can import it.
package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TypePricePush carries a variant scope to the marketplace gateway.
	TypePricePush = "pricing:push"
	// TypeProfitRecalc refreshes cached profitability after a save.
	TypeProfitRecalc = "pricing:recalc_profit"
)

// PricePushPayload describes an outbound price synchronization request.
// Variant ids travel as strings to survive JSON number precision limits.
type PricePushPayload struct {
	PushID      string   `json:"push_id"`
	VariantIDs  []string `json:"variant_ids"`
	ChannelCode string   `json:"channel_code"`
}

// ProfitRecalcPayload identifies the (variant, channel) pairs whose
// cached profitability must be recomputed.
type ProfitRecalcPayload struct {
	VariantIDs  []string `json:"variant_ids"`
	ChannelCode string   `json:"channel_code"`
}

// NewPricePush constructs an Asynq task for a price push.
func NewPricePush(payload PricePushPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePricePush, data), nil
}

// NewProfitRecalc constructs an Asynq task for a profit refresh.
func NewProfitRecalc(payload ProfitRecalcPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeProfitRecalc, data), nil
}
