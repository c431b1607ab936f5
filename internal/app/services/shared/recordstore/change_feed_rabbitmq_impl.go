package recordstore

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const exchangeKindTopic = "topic"

// changeFeed fans record changes out over a topic exchange. Every listener
// gets its own exclusive, auto-deleted queue bound to the path it watches.
type changeFeed struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
	Log      *zap.Logger
}

func NewChangeFeed(conn *amqp.Connection, exchange string, logger *zap.Logger) (contracts.ChangeFeed, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclare(err, exchange)
	}

	err = ch.ExchangeDeclare(
		exchange,          // name
		exchangeKindTopic, // kind
		true,              // durable
		false,             // autoDelete
		false,             // internal
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		ch.Close()
		return nil, exceptions.ErrRabbitMQDeclare(err, exchange)
	}

	return &changeFeed{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		Log:      logger,
	}, nil
}

func (f *changeFeed) Publish(ctx context.Context, event contracts.ChangeEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	routingKey := RoutingKey(event.Path)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	msg := amqp.Publishing{
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
		Timestamp:   event.ChangedAt,
	}
	if err := f.ch.PublishWithContext(ctx, f.exchange, routingKey, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, f.exchange)
	}

	f.Log.Debug("changeFeed.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoutingKey, routingKey),
	)
	return nil
}

func (f *changeFeed) Listen(ctx context.Context, path string) (<-chan contracts.ChangeEvent, func(), error) {
	ch, err := f.conn.Channel()
	if err != nil {
		return nil, nil, exceptions.ErrRabbitMQConsume(err, f.exchange)
	}

	queue, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		return nil, nil, exceptions.ErrRabbitMQConsume(err, f.exchange)
	}

	bindingKey := BindingKey(path)
	if err := ch.QueueBind(queue.Name, bindingKey, f.exchange, false, nil); err != nil {
		ch.Close()
		return nil, nil, exceptions.ErrRabbitMQConsume(err, f.exchange)
	}

	deliveries, err := ch.Consume(
		queue.Name, // queue
		"",         // consumer
		true,       // autoAck
		true,       // exclusive
		false,      // noLocal
		false,      // noWait
		nil,        // args
	)
	if err != nil {
		ch.Close()
		return nil, nil, exceptions.ErrRabbitMQConsume(err, f.exchange)
	}

	out := make(chan contracts.ChangeEvent, 16)
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() { close(stop) })
	}

	go func() {
		defer close(out)
		defer ch.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				var event contracts.ChangeEvent
				if err := json.Unmarshal(delivery.Body, &event); err != nil {
					f.Log.Warn("changeFeed.Listen dropping malformed event",
						zap.String(constvars.LoggingRoutingKey, delivery.RoutingKey),
						zap.Error(err),
					)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				case <-stop:
					return
				}
			}
		}
	}()

	f.Log.Info("changeFeed.Listen bound queue",
		zap.String(constvars.LoggingStorePathKey, path),
		zap.String(constvars.LoggingRoutingKey, bindingKey),
	)
	return out, cancel, nil
}
