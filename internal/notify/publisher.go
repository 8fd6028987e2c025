package notify

import (
	"context"
	"fmt"
	"sync"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Publisher sends notification events to a topic exchange with the routing
// key <prefix>.<type>. The connection is opened lazily and reopened after a failure.
type Publisher struct {
	url      string
	exchange string
	prefix   string
	log      *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg utils.RabbitMQConfig, log *zap.Logger) *Publisher {
	prefix := cfg.PublishPrefix
	if prefix == "" {
		prefix = "notification"
	}
	return &Publisher{
		url:      cfg.URL,
		exchange: cfg.Exchange,
		prefix:   prefix,
		log:      log.With(zap.String("component", "rabbitmq_publisher")),
	}
}

func (p *Publisher) RoutingKey(t entity.NotificationType) string {
	return p.prefix + "." + string(t)
}

func (p *Publisher) Dispatch(ctx context.Context, n *entity.Notification) error {
	payload, err := encodeEvent(n)
	if err != nil {
		return err
	}
	return p.Publish(ctx, payload, p.RoutingKey(n.Type))
}

func (p *Publisher) Publish(ctx context.Context, payload []byte, routingKey string) error {
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.publish")
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", p.exchange),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
	)
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "connect failed")
		return err
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, amqpHeaderCarrier(headers))

	err = ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      headers,
			Body:         payload,
		},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		p.log.Error("rabbitmq publish failed", zap.Error(err), zap.String("routing_key", routingKey))
		p.reset()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	return nil
}

// channel returns the cached channel, dialing when needed. Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the cached connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
