package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated    = "order_created"
	EventTicketBooked    = "ticket_booked"
	EventTicketUpdated   = "ticket_updated"
	EventTicketCancelled = "ticket_cancelled"
)

type BookingEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	OrderID      int64     `json:"order_id"`
	UserID       int64     `json:"user_id,omitempty"`
	TicketID     int64     `json:"ticket_id,omitempty"`
	FlightID     int64     `json:"flight_id,omitempty"`
	FlightNumber string    `json:"flight_number,omitempty"`
	Row          int       `json:"row,omitempty"`
	Seat         string    `json:"seat,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Key groups all events of one order on the same partition.
func (e BookingEvent) Key() string {
	return strconv.FormatInt(e.OrderID, 10)
}

func NewOrderEvent(order domain.Order, at time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       EventOrderCreated,
		OrderID:    order.ID,
		UserID:     order.UserID,
		OccurredAt: at,
	}
}

func NewTicketEvent(eventType string, ticket domain.Ticket, at time.Time) BookingEvent {
	e := BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    ticket.OrderID,
		TicketID:   ticket.ID,
		FlightID:   ticket.FlightID,
		Row:        ticket.Row,
		Seat:       domain.SeatLabel(ticket.Seat),
		OccurredAt: at,
	}
	if ticket.Flight != nil {
		e.FlightNumber = ticket.Flight.FlightNumber
	}
	if ticket.Order != nil {
		e.UserID = ticket.Order.UserID
	}
	return e
}

func DecodeBookingEvent(msg kafka.Message) (BookingEvent, error) {
	var e BookingEvent
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return e, fmt.Errorf("decode booking event: %w", err)
	}
	if e.Type == "" {
		return e, fmt.Errorf("decode booking event: missing type")
	}
	return e, nil
}
