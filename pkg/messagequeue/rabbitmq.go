package messagequeue

import (
	"fmt"

	"github.com/streadway/amqp"
)

// RabbitMQPublisher implements the Publisher interface using RabbitMQ.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitMQPublisher dials the broker and opens a channel.
func NewRabbitMQPublisher(url string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a RabbitMQ channel: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, channel: ch}, nil
}

// Publish declares the queue (idempotent) and sends one persistent message.
func (p *RabbitMQPublisher) Publish(queueName string, body []byte) error {
	queue, err := p.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", queueName, err)
	}

	err = p.channel.Publish(
		"", // default exchange
		queue.Name,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to queue %q: %w", queueName, err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
