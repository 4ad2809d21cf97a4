package booking

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/airport/internal/clock"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
)

const defaultSeatLockTTL = 10 * time.Second

type BookingUseCase interface {
	ListOrders(ctx context.Context, filter repository.OrderFilter, page repository.Page) ([]domain.Order, int, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, userID int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id, userID int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	ListTickets(ctx context.Context, filter repository.TicketFilter, page repository.Page) ([]domain.Ticket, int, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
	BookTicket(ctx context.Context, ticket *domain.Ticket) error
	UpdateTicket(ctx context.Context, ticket *domain.Ticket) error
	CancelTicket(ctx context.Context, id int64) error
}

type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, flightID int64, row, seat int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, row, seat int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	orders             repository.OrderRepository
	tickets            repository.TicketRepository
	flights            repository.FlightRepository
	locks              SeatLocker
	producer           Producer
	notificationsTopic string
	seatLockTTL        time.Duration
	clock              clock.Clock
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithSeatLockTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.seatLockTTL = ttl
	}
}

func WithClock(c clock.Clock) BookingServiceOption {
	return func(s *BookingService) {
		s.clock = c
	}
}

func NewBookingService(
	orders repository.OrderRepository,
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	locks SeatLocker,
	producer Producer,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		orders:      orders,
		tickets:     tickets,
		flights:     flights,
		locks:       locks,
		producer:    producer,
		seatLockTTL: defaultSeatLockTTL,
		clock:       clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ListOrders(ctx context.Context, filter repository.OrderFilter, page repository.Page) ([]domain.Order, int, error) {
	return s.orders.List(ctx, filter, page)
}

func (s *BookingService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// CreateOrder stamps the order with the service clock.
func (s *BookingService) CreateOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	order := &domain.Order{UserID: userID, CreatedAt: s.clock.Now()}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.NewOrderEvent(*order, s.clock.Now()))
	return order, nil
}

func (s *BookingService) UpdateOrder(ctx context.Context, id, userID int64) (*domain.Order, error) {
	if err := s.orders.UpdateUser(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

func (s *BookingService) DeleteOrder(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

func (s *BookingService) ListTickets(ctx context.Context, filter repository.TicketFilter, page repository.Page) ([]domain.Ticket, int, error) {
	return s.tickets.List(ctx, filter, page)
}

// GetTicket loads the ticket with its flight fully resolved.
func (s *BookingService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, ticket.FlightID)
	if err != nil {
		return nil, err
	}
	ticket.Flight = flight
	return ticket, nil
}

func (s *BookingService) BookTicket(ctx context.Context, ticket *domain.Ticket) error {
	release, err := s.lockSeat(ctx, ticket.FlightID, ticket.Row, ticket.Seat)
	if err != nil {
		return err
	}
	defer release()

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return err
	}

	s.publishTicket(ctx, kafka.EventTicketBooked, ticket.ID)
	return nil
}

func (s *BookingService) UpdateTicket(ctx context.Context, ticket *domain.Ticket) error {
	release, err := s.lockSeat(ctx, ticket.FlightID, ticket.Row, ticket.Seat)
	if err != nil {
		return err
	}
	defer release()

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return err
	}

	s.publishTicket(ctx, kafka.EventTicketUpdated, ticket.ID)
	return nil
}

func (s *BookingService) CancelTicket(ctx context.Context, id int64) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, kafka.NewTicketEvent(kafka.EventTicketCancelled, *ticket, s.clock.Now()))
	return nil
}

// lockSeat takes the advisory Redis lock for a seat. The unique constraint
// stays the authority, so a lock failure is logged and booking goes on.
// A lock held by another request yields ErrSeatBusy; whether the seat ends up
// taken is only known once that request commits.
func (s *BookingService) lockSeat(ctx context.Context, flightID int64, row, seat int) (func(), error) {
	noop := func() {}
	if s.locks == nil {
		return noop, nil
	}

	ok, err := s.locks.AcquireSeatLock(ctx, flightID, row, seat, s.seatLockTTL)
	if err != nil {
		log.Printf("acquire seat lock flight=%d row=%d seat=%d: %v", flightID, row, seat, err)
		return noop, nil
	}
	if !ok {
		return nil, domain.ErrSeatBusy
	}

	return func() {
		if err := s.locks.ReleaseSeatLock(context.WithoutCancel(ctx), flightID, row, seat); err != nil {
			log.Printf("release seat lock flight=%d row=%d seat=%d: %v", flightID, row, seat, err)
		}
	}, nil
}

func (s *BookingService) publishTicket(ctx context.Context, eventType string, id int64) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		log.Printf("WARNING: load ticket %d for %s event: %v", id, eventType, err)
		return
	}
	s.publish(ctx, kafka.NewTicketEvent(eventType, *ticket, s.clock.Now()))
}

// publish is best effort: the booking is already committed.
func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, event.Key(), event); err != nil {
		log.Printf("WARNING: failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
