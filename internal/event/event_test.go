package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityIsDeterministic(t *testing.T) {
	a := Identity("0c6f1ef5-36df-48f6-9f0b-cf96b0ad4d62", TypeOrderCreated)
	b := Identity("0c6f1ef5-36df-48f6-9f0b-cf96b0ad4d62", TypeOrderCreated)
	assert.Equal(t, a, b)
}

func TestIdentityVariesByInput(t *testing.T) {
	base := Identity("order-1", TypeOrderCreated)
	assert.NotEqual(t, base, Identity("order-2", TypeOrderCreated))
	assert.NotEqual(t, base, Identity("order-1", TypeProductCreated))
}

func TestIdentityIgnoresPayloadBytes(t *testing.T) {
	// Two deliveries of the same logical event differ in every field except
	// the identity inputs; they must still collapse to one identity.
	first := OrderCreated{
		EventType: TypeOrderCreated,
		OrderID:   "order-1",
		Total:     30.0,
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	second := first
	second.Total = 99.0
	second.Timestamp = second.Timestamp.Add(time.Hour)

	assert.Equal(t,
		Identity(first.OrderID, first.EventType),
		Identity(second.OrderID, second.EventType),
	)
}

func TestHourBucket(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 42, 59, 123456789, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), HourBucket(ts))

	loc := time.FixedZone("UTC+7", 7*3600)
	local := time.Date(2026, 3, 1, 17, 42, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), HourBucket(local))
}

func TestOrderCreatedWireFormat(t *testing.T) {
	evt := OrderCreated{
		EventType:  TypeOrderCreated,
		OrderID:    "order-1",
		CustomerID: "customer-1",
		Items: []OrderItem{
			{ProductID: "product-1", Quantity: 3, Price: 10.0, Category: "tools"},
		},
		Total:     30.0,
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "OrderCreated", raw["eventType"])
	assert.Equal(t, "order-1", raw["orderId"])
	assert.Equal(t, "customer-1", raw["customerId"])
	assert.Equal(t, 30.0, raw["total"])
	assert.Equal(t, "2026-03-01T10:00:00Z", raw["timestamp"])

	items, ok := raw["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "product-1", item["productId"])
	assert.Equal(t, 3.0, item["quantity"])
	assert.Equal(t, 10.0, item["price"])
	assert.Equal(t, "tools", item["category"])
}

func TestEnvelopeDispatch(t *testing.T) {
	data := []byte(`{"eventType":"ProductCreated","productId":"p1","name":"Widget","category":"tools","price":10,"stock":5,"timestamp":"2026-03-01T10:00:00Z"}`)
	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, TypeProductCreated, env.EventType)
}
