package tasks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricePush(t *testing.T) {
	task, err := NewPricePush(PricePushPayload{
		PushID:      "push-1",
		VariantIDs:  []string{"1", "2"},
		ChannelCode: "amazon_de",
	})
	require.NoError(t, err)
	assert.Equal(t, TypePricePush, task.Type())

	var payload PricePushPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "push-1", payload.PushID)
	assert.Equal(t, []string{"1", "2"}, payload.VariantIDs)
	assert.Equal(t, "amazon_de", payload.ChannelCode)
}

func TestNewProfitRecalc(t *testing.T) {
	task, err := NewProfitRecalc(ProfitRecalcPayload{
		VariantIDs:  []string{"7"},
		ChannelCode: "ebay_us",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeProfitRecalc, task.Type())
}
