package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/jmphair/order-up-midterm-project/internal/dal/rabbitmq"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/auditevent"
)

const auditQueueName = "orderup.audit"

// RabbitMQRepository publishes audit events to a RabbitMQ queue. Order
// mutations and customer notifications land on the same queue as distinct
// event types.
type RabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewRabbitMQRepository(client *rabbitmq.Client) *RabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       auditQueueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// Publish sends the given events to the audit queue with bounded concurrency.
func (r *RabbitMQRepository) Publish(ctx context.Context, events ...auditevent.Event) error {
	publishCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, _ := errgroup.WithContext(publishCtx)
	g.SetLimit(3)

	for _, event := range events {
		event := event
		g.Go(func() error {
			eventData, err := json.Marshal(event)
			if err != nil {
				return err
			}

			return r.client.Channel().Publish(
				"",
				r.queue.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        eventData,
				},
			)
		})
	}

	return g.Wait()
}
