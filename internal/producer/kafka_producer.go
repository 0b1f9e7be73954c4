package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shoestore/internal/service"

	"github.com/segmentio/kafka-go"
)

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// EmailProducer writes email events to the notification topic. It
// implements service.EventBus.
type EmailProducer struct {
	writer *kafka.Writer
}

func NewEmailProducer(brokers []string, topic string) *EmailProducer {
	return &EmailProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}

func (p *EmailProducer) send(ctx context.Context, key string, msg EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *EmailProducer) PublishOrderConfirmed(ctx context.Context, e service.OrderConfirmedEvent) error {
	lines := make([]map[string]any, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, map[string]any{
			"product_name":     l.ProductName,
			"variant_size":     l.VariantSize,
			"quantity":         l.Quantity,
			"unit_price_cents": l.UnitPriceCents,
			"line_total_cents": l.LineTotalCents,
		})
	}
	return p.send(ctx, e.OrderID.String(), EmailMessage{
		To:       e.Email,
		Subject:  fmt.Sprintf("Order %s confirmed", e.OrderNumber),
		Template: "order_confirmed",
		Data: map[string]any{
			"order_number":      e.OrderNumber,
			"first_name":        e.FirstName,
			"lines":             lines,
			"subtotal_cents":    e.SubtotalCents,
			"shipping_cents":    e.ShippingCents,
			"grand_total_cents": e.GrandTotalCents,
			"confirmed_at":      e.ConfirmedAt,
		},
	})
}

func (p *EmailProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.send(ctx, e.OrderID.String(), EmailMessage{
		To:       e.Email,
		Subject:  fmt.Sprintf("Order %s update", e.OrderNumber),
		Template: "order_status",
		Data: map[string]any{
			"order_number": e.OrderNumber,
			"status":       e.Status,
			"changed_at":   e.ChangedAt,
		},
	})
}
