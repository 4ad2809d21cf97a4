package email

import (
	"context"
	"log"

	"github.com/Domenick1991/airport/internal/kafka"
)

type Sender struct {
	logger *log.Logger
}

func NewSender(logger *log.Logger) *Sender {
	if logger == nil {
		logger = log.Default()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch event.Type {
	case kafka.EventOrderCreated:
		s.logger.Printf("email user %d: order %d created", event.UserID, event.OrderID)
	case kafka.EventTicketBooked:
		s.logger.Printf("email user %d: order %d ticket %s row %d seat %s booked",
			event.UserID, event.OrderID, event.FlightNumber, event.Row, event.Seat)
	case kafka.EventTicketUpdated:
		s.logger.Printf("email user %d: order %d ticket %d moved to %s row %d seat %s",
			event.UserID, event.OrderID, event.TicketID, event.FlightNumber, event.Row, event.Seat)
	case kafka.EventTicketCancelled:
		s.logger.Printf("email user %d: order %d ticket %d cancelled", event.UserID, event.OrderID, event.TicketID)
	default:
		s.logger.Printf("skip unknown booking event %q (%s)", event.Type, event.ID)
	}
	return nil
}
