// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow; a booking succeeds even when the
// print spool is down.
package queue_publisher

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog/log"

    q "boxoffice/internal/queue"
)

// PublishTicketIssued publishes a TicketIssuedEvent to the named queue.
// The connection is dialed per publish; at a booking desk's request rate
// this is cheap and avoids carrying broker state in the handler.  Messages
// are marked persistent so spooled tickets survive a broker restart.
func PublishTicketIssued(ctx context.Context, url, queueName string, event q.TicketIssuedEvent) error {
    conn, err := amqp.Dial(url)
    if err != nil {
        log.Warn().Err(err).Msg("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Warn().Err(err).Msg("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent).  Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        queueName, // name
        true,      // durable
        false,     // autoDelete
        false,     // exclusive
        false,     // noWait
        nil,       // args
    ); err != nil {
        log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",        // default exchange
        queueName, // routing key = queue name
        false,     // mandatory
        false,     // immediate
        pub,
    ); err != nil {
        log.Warn().Err(err).Msg("rabbitmq: publish failed")
        return err
    }

    return nil
}
