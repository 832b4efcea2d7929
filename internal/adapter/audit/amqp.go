// Package auditsink provides audit trail publishers for appointment status
// transitions. The AMQP sink feeds downstream consumers (notification and
// reporting services); the log sink is the fallback for deployments without
// a broker.
package auditsink

import (
	"context"
	"encoding/json"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"visitgate/internal/domain/audit"
)

type AMQPSink struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPSink connects, opens a channel and declares a durable topic
// exchange for audit events.
func NewAMQPSink(uri, exchange string) (*AMQPSink, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPSink{conn: conn, channel: channel, exchange: exchange}, nil
}

// Emit publishes one event. Routing key example:
// visitgate.audit.appointment.approved
func (s *AMQPSink) Emit(ctx context.Context, e audit.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := "visitgate.audit.appointment." + strings.ToLower(string(e.ToStatus))
	return s.channel.PublishWithContext(ctx, s.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.EventID,
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
}

func (s *AMQPSink) Close() error {
	if s == nil || s.channel == nil {
		return nil
	}
	if err := s.channel.Close(); err != nil {
		return err
	}
	return s.conn.Close()
}
