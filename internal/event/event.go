package event

import (
	"time"

	"github.com/google/uuid"
)

// Queue topics; each outbox row names the queue its payload belongs to.
const (
	TopicOrderEvents   = "order-events"
	TopicProductEvents = "product-events"
)

const (
	TypeOrderCreated   = "OrderCreated"
	TypeProductCreated = "ProductCreated"
)

// Envelope is the minimal shape every payload shares, used to dispatch on
// event type before a full decode.
type Envelope struct {
	EventType string `json:"eventType"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

type OrderCreated struct {
	EventType  string      `json:"eventType"`
	OrderID    string      `json:"orderId"`
	CustomerID string      `json:"customerId"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	Timestamp  time.Time   `json:"timestamp"`
}

type ProductCreated struct {
	EventType string    `json:"eventType"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Timestamp time.Time `json:"timestamp"`
}

// identityNamespace is fixed forever; changing it would re-open every already
// processed event for reapplication.
var identityNamespace = uuid.MustParse("7b0dfbd4-650a-4f06-a9b1-d300e5a86a9f")

// Identity is the deduplication contract: a name-based UUID over exactly the
// order id and the event type. Redeliveries of the same logical event map to
// the same identity regardless of payload byte equality or delivery count.
func Identity(orderID, eventType string) uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(orderID+":"+eventType))
}

// HourBucket truncates a timestamp to its UTC hour, the key of the hourly
// sales projection.
func HourBucket(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}
