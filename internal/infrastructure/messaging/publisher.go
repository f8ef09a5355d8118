package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/ppic-api/internal/application/mrp"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

var _ mrp.EventPublisher = (*Publisher)(nil)

// channelPublisher subconjunto de *amqp.Channel usado para publicar.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publica eventos en un exchange topic; la routing key es el tipo de evento.
type Publisher struct {
	channel  channelPublisher
	exchange string
	source   string
	log      *logger.Logger
}

// NewPublisher declara el exchange y construye el publisher.
func NewPublisher(rmq *RabbitMQ, exchange, source string, log *logger.Logger) (*Publisher, error) {
	if err := rmq.DeclareExchange(exchange); err != nil {
		return nil, fmt.Errorf("rabbitmq: declarar exchange %s: %w", exchange, err)
	}
	return newPublisher(rmq.Channel(), exchange, source, log), nil
}

func newPublisher(ch channelPublisher, exchange, source string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{channel: ch, exchange: exchange, source: source, log: log}
}

// Publish envuelve data en un Event y lo publica como mensaje persistente.
func (p *Publisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	correlationID := CorrelationID(ctx)

	event, err := NewEvent(eventType, p.source, correlationID, data)
	if err != nil {
		return fmt.Errorf("rabbitmq: crear evento: %w", err)
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar evento: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     event.ID,
			CorrelationId: correlationID,
			Timestamp:     event.Timestamp,
			Type:          eventType,
			AppId:         p.source,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publicar %s: %w", eventType, err)
	}

	p.log.Debug().
		Str("event_type", eventType).
		Str("event_id", event.ID).
		Str("correlation_id", correlationID).
		Msg("evento publicado")
	return nil
}
