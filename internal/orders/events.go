package orders

import (
	"encoding/json"
	"time"

	kafkax "github.com/Deoshabh/weBazaar-sub000/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated    = "OrderCreated"
	EventOrderCancelled  = "OrderCancelled"
	EventPaymentCaptured = "PaymentCaptured"
)

// Cancellation reasons carried in OrderCancelledPayload.
const (
	ReasonUserCancelled  = "user_cancelled"
	ReasonAdminCancelled = "admin_cancelled"
	ReasonPaymentTimeout = "payment_timeout"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID       string `json:"order_id"`
	PublicOrderID string `json:"public_order_id"`
	UserID        string `json:"user_id"`
	TotalCents    int64  `json:"total_cents"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
}

type OrderCancelledPayload struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type PaymentCapturedPayload struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	AmountCents   int64  `json:"amount_cents"`
}

// publisher is what the emitter needs from the kafka producer.
type publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// EventEmitter wraps the async producer with the envelope format. Emit
// is fire-and-forget: a committed order never fails because of the bus.
type EventEmitter struct {
	Producer publisher
	Service  string
}

var _ publisher = (*kafkax.Producer)(nil)

func (e *EventEmitter) Emit(eventType, orderID string, payload any) {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      e.Service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	e.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
