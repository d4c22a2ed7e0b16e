package messaging

import (
	"context"
	"testing"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestSameSubjects(t *testing.T) {
	assert.True(t, sameSubjects([]string{"order-events", "product-events"}, []string{"product-events", "order-events"}))
	assert.False(t, sameSubjects([]string{"order-events"}, []string{"product-events"}))
	assert.False(t, sameSubjects([]string{"order-events"}, []string{"order-events", "product-events"}))
	assert.False(t, sameSubjects([]string{"order-events", "order-events"}, []string{"order-events", "product-events"}))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), config.Broker{})
	assert.Error(t, err)

	_, err = New(context.Background(), config.Broker{URL: "nats://localhost:4222"})
	assert.Error(t, err)
}

func TestNilClientIsNotReady(t *testing.T) {
	var client *Client
	assert.False(t, client.Ready())
}
