package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type Consumer interface {
	Start(ctx context.Context) error
}

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// rabbitConsumer relays every instance's notification events into the local hub.
// Each instance binds its own exclusive queue so all of them see every event.
type rabbitConsumer struct {
	url        string
	exchange   string
	routingKey string
	hub        *Hub
	log        *zap.Logger
	retryDelay time.Duration
}

func NewConsumer(cfg utils.RabbitMQConfig, hub *Hub, log *zap.Logger) Consumer {
	if cfg.URL == "" {
		return &noopConsumer{}
	}
	prefix := cfg.PublishPrefix
	if prefix == "" {
		prefix = "notification"
	}
	return &rabbitConsumer{
		url:        cfg.URL,
		exchange:   cfg.Exchange,
		routingKey: prefix + ".#",
		hub:        hub,
		log:        log.With(zap.String("component", "rabbitmq_consumer")),
		retryDelay: 5 * time.Second,
	}
}

// Start consumes until ctx is cancelled, reconnecting after broker failures.
func (r *rabbitConsumer) Start(ctx context.Context) error {
	for {
		err := r.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.Error("RabbitMQ consumer stopped, retrying", zap.Error(err), zap.Duration("delay", r.retryDelay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.retryDelay):
		}
	}
}

func (r *rabbitConsumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}

	if err := ch.ExchangeDeclare(
		r.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	queueInfo, err := ch.QueueDeclare(
		"",
		false,
		true,
		true,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(queueInfo.Name, r.routingKey, r.exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	deliveries, err := ch.Consume(queueInfo.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	r.log.Info("RabbitMQ consumer started",
		zap.String("exchange", r.exchange),
		zap.String("queue", queueInfo.Name),
		zap.String("routing_key", r.routingKey),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq deliveries closed")
			}
			if err := r.handleMessage(ctx, msg); err != nil {
				return err
			}
		}
	}
}

// handleMessage acks malformed events so they are not redelivered forever.
func (r *rabbitConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, amqpHeaderCarrier(msg.Headers))
	_, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.handle_message")
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.exchange),
		attribute.String("messaging.rabbitmq.routing_key", msg.RoutingKey),
	)
	defer span.End()

	n, err := decodeEvent(msg.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid event")
		r.log.Warn("Dropping invalid notification event", zap.Error(err), zap.String("routing_key", msg.RoutingKey))
		return msg.Ack(false)
	}

	r.hub.Broadcast(n)
	return msg.Ack(false)
}
