package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the
// booking.confirmed and booking.cancelled queues (durable), and starts
// consuming both.  Each message is appended to logs/booking.log in a
// single-line, human-friendly format.  The function runs a reconnect
// loop with capped exponential backoff; processing errors reject the
// offending message without requeueing so the server keeps operating.
func StartBookingConsumer() error {
	url := brokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{ConfirmedQueueName, CancelledQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	confirmed, err := ch.Consume(ConfirmedQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume %s: %w", ConfirmedQueueName, err)
	}
	cancelled, err := ch.Consume(CancelledQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume %s: %w", CancelledQueueName, err)
	}

	// Both delivery channels feed one loop; a closed channel means the
	// connection is gone and the caller reconnects.
	for {
		select {
		case d, ok := <-confirmed:
			if !ok {
				return errors.New("confirmed deliveries channel closed")
			}
			ack(d, handleMessage(ConfirmedQueueName, d.Body))
		case d, ok := <-cancelled:
			if !ok {
				return errors.New("cancelled deliveries channel closed")
			}
			ack(d, handleMessage(CancelledQueueName, d.Body))
		}
	}
}

func ack(d amqp.Delivery, err error) {
	if err != nil {
		log.Printf("booking-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
		return
	}
	_ = d.Ack(false)
}

// handleMessage decodes an event from the named queue and appends its
// log line to logs/booking.log.
func handleMessage(queueName string, body []byte) error {
	var line string
	switch queueName {
	case ConfirmedQueueName:
		var ev BookingConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = formatConfirmed(ev)
	case CancelledQueueName:
		var ev BookingCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = formatCancelled(ev)
	default:
		return fmt.Errorf("unknown queue %q", queueName)
	}
	return appendLog(line)
}

func formatConfirmed(ev BookingConfirmedEvent) string {
	refs := strings.Join(ev.References, ",")
	seats := make([]string, len(ev.SeatIDs))
	for i, id := range ev.SeatIDs {
		seats[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("[%s] Booking confirmed | user_id=%d | show_id=%d | theater=%q | hall=%q | movie=%q | date=%s %s | total=%.2f | seats=[%s] | refs=[%s]\n",
		ev.ConfirmedAt, ev.UserID, ev.ShowID, ev.TheaterName, ev.HallName, ev.MovieTitle,
		ev.ShowDate, ev.StartTime, ev.TotalAmount, strings.Join(seats, ","), refs)
}

func formatCancelled(ev BookingCancelledEvent) string {
	return fmt.Sprintf("[%s] Booking cancelled | booking_id=%d | user_id=%d | show_id=%d | seat_id=%d | amount=%.2f | ref=%s\n",
		ev.CancelledAt, ev.BookingID, ev.UserID, ev.ShowID, ev.SeatID, ev.AmountPaid, ev.Reference)
}

// appendLog writes one line to logs/booking.log, creating the
// directory and file on first use.
func appendLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "booking.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
