// Package queue contains the background consumer that listens to the
// ticket queue and writes printable ticket files into the spool directory,
// where the printer daemon picks them up.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog/log"

    "boxoffice/internal/model"
    "boxoffice/internal/ticket"
)

// StartTicketConsumer connects to RabbitMQ, declares the ticket queue
// (durable), and starts consuming messages.  Each message becomes one
// fixed-width ticket file under spoolDir.  The function runs a reconnect
// loop and keeps running across broker restarts; processing errors are
// logged and the offending message rejected without requeue so one bad
// payload cannot wedge the spool.
func StartTicketConsumer(url, queueName, spoolDir string) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Warn().Err(err).Dur("retry_in", backoff).Msg("ticket consumer: dial broker failed")
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn, queueName, spoolDir); err != nil {
            log.Warn().Err(err).Msg("ticket consumer: consume loop ended, reconnecting")
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection, queueName, spoolDir string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn().Err(err).Msg("ticket consumer: set QoS failed")
    }

    _, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body, spoolDir); err != nil {
            log.Warn().Err(err).Msg("ticket consumer: handle message failed")
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// handleMessage renders one event into a spool file.  Redelivery of the
// same booking overwrites the same file, so printing stays idempotent.
func handleMessage(body []byte, spoolDir string) error {
    var ev TicketIssuedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.BookingID == "" {
        return errors.New("event missing booking_id")
    }

    bookedAt, _ := time.Parse(time.RFC3339, ev.BookedAt)
    b := model.Booking{
        ID:           ev.BookingID,
        Date:         ev.Date,
        Show:         model.Show(ev.Show),
        Screen:       ev.Screen,
        Movie:        ev.Movie,
        ClassLabel:   ev.Class,
        PricePerSeat: ev.PricePerSeat,
        TotalPrice:   ev.TotalPrice,
        Seats:        ev.Seats,
        BookedAt:     bookedAt,
    }
    theater := model.TheaterSettings{Name: ev.Theater, Screen: ev.Screen}
    times := model.ShowtimeSettings{Times: map[model.Show]string{b.Show: ev.ShowTime}}
    text := ticket.Format(b, theater, times).Text()

    if err := os.MkdirAll(spoolDir, 0o755); err != nil {
        return fmt.Errorf("mkdir spool: %w", err)
    }
    fpath := filepath.Join(spoolDir, spoolFileName(ev))
    if err := os.WriteFile(fpath, []byte(text), 0o644); err != nil {
        return fmt.Errorf("write spool file: %w", err)
    }
    log.Info().Str("file", fpath).Str("booking_id", ev.BookingID).Msg("ticket spooled")
    return nil
}

func spoolFileName(ev TicketIssuedEvent) string {
    id := ev.BookingID
    if len(id) > 8 {
        id = id[:8]
    }
    return fmt.Sprintf("%s_%s_%s.txt", ev.Date, ev.Show, id)
}
