package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// Routing keys событий жизненного цикла заявки
const (
	KeyRequestSubmitted = "request.submitted"
	KeyRequestApproved  = "request.approved"
	KeyRequestRejected  = "request.rejected"
	KeyRequestExpired   = "request.expired"
)

// RequestEvent сообщение о смене состояния заявки
type RequestEvent struct {
	RequestID       string    `json:"requestId"`
	UserID          string    `json:"userId"`
	EventName       string    `json:"eventName"`
	VenueID         string    `json:"venueId"`
	VenueName       string    `json:"venueName"`
	Date            string    `json:"date"`
	SlotKey         string    `json:"slotKey"`
	Status          string    `json:"status"`
	ApprovedEventID string    `json:"approvedEventId,omitempty"`
	ResolvedBy      string    `json:"resolvedBy,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewRequestEvent строит сообщение из заявки
func NewRequestEvent(req *domain.EventRequest, occurredAt time.Time) RequestEvent {
	ev := RequestEvent{
		RequestID:  req.ID,
		UserID:     req.UserID,
		EventName:  req.EventName,
		VenueID:    req.VenueID,
		VenueName:  req.VenueName,
		Date:       req.Date.Format(domain.DateFormat),
		SlotKey:    req.SlotKey,
		Status:     string(req.Status),
		OccurredAt: occurredAt.UTC(),
	}
	if req.ResolvedBy != nil {
		ev.ResolvedBy = *req.ResolvedBy
	}
	if req.RejectionReason != nil {
		ev.Reason = *req.RejectionReason
	}
	return ev
}

// Publisher публикует события в topic exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish отправляет событие с routing key
func (p *Publisher) Publish(ctx context.Context, key string, ev RequestEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.RequestID + ":" + ev.Status,
		Timestamp:    ev.OccurredAt,
		Body:         b,
	})
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда брокер не настроен
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(ctx context.Context, key string, ev RequestEvent) error {
	return nil
}
