package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderFilter struct {
	UserIDs []int64
}

type TicketFilter struct {
	OrderIDs  []int64
	FlightIDs []int64
}

type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter, page Page) ([]domain.Order, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	UpdateUser(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type TicketRepository interface {
	List(ctx context.Context, filter TicketFilter, page Page) ([]domain.Ticket, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
}

type PGOrderRepository struct {
	pgBase
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{pgBase{db: db}}
}

func (r *PGOrderRepository) List(ctx context.Context, of OrderFilter, page Page) ([]domain.Order, int, error) {
	f := &filter{}
	f.anyID("o.user_id", of.UserIDs)

	const from = `FROM orders o`
	total, err := r.count(ctx, from, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, `SELECT o.id, o.created_at, o.user_id `+from+f.where()+
		` ORDER BY o.created_at DESC, o.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.UserID); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.q(ctx).QueryRow(ctx, `SELECT id, created_at, user_id FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CreatedAt, &o.UserID)
	if err != nil {
		return nil, mapReadErr("get order", err)
	}
	return &o, nil
}

// Create stores the order with the CreatedAt already set by the caller.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	err := r.q(ctx).QueryRow(ctx, `INSERT INTO orders (created_at, user_id) VALUES ($1, $2) RETURNING id`,
		order.CreatedAt, order.UserID).Scan(&order.ID)
	if err != nil {
		return mapWriteErr("create order", err)
	}
	return nil
}

// UpdateUser reassigns the order. created_at is immutable.
func (r *PGOrderRepository) UpdateUser(ctx context.Context, id, userID int64) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE orders SET user_id=$1 WHERE id=$2`, userID, id)
	if err != nil {
		return mapWriteErr("update order", err)
	}
	return expectAffected(tag)
}

func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return expectAffected(tag)
}

type PGTicketRepository struct {
	pgBase
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{pgBase{db: db}}
}

const ticketSelect = `SELECT t.id, t.order_id, t.flight_id, t.seat_row, t.seat,
	f.id, f.flight_number, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	o.id, o.created_at, o.user_id
FROM tickets t
JOIN flights f ON f.id = t.flight_id
JOIN orders o ON o.id = t.order_id`

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	var f domain.Flight
	var o domain.Order
	err := row.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat,
		&f.ID, &f.FlightNumber, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&o.ID, &o.CreatedAt, &o.UserID)
	if err != nil {
		return t, err
	}
	t.Flight = &f
	t.Order = &o
	return t, nil
}

func (r *PGTicketRepository) List(ctx context.Context, tf TicketFilter, page Page) ([]domain.Ticket, int, error) {
	f := &filter{}
	f.anyID("t.order_id", tf.OrderIDs)
	f.anyID("t.flight_id", tf.FlightIDs)

	total, err := r.count(ctx, `FROM tickets t`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, ticketSelect+f.where()+` ORDER BY t.flight_id, t.seat_row, t.seat`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, total, rows.Err()
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	t, err := scanTicket(r.q(ctx).QueryRow(ctx, ticketSelect+` WHERE t.id=$1`, id))
	if err != nil {
		return nil, mapReadErr("get ticket", err)
	}
	return &t, nil
}

// Create books the seat. A taken seat is reported before the range check, so
// a duplicate always surfaces as ErrDuplicateSeat.
func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return r.withTx(ctx, func(ctx context.Context) error {
		if err := r.place(ctx, ticket); err != nil {
			return err
		}
		err := r.q(ctx).QueryRow(ctx, `
			INSERT INTO tickets (order_id, flight_id, seat_row, seat)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, ticket.OrderID, ticket.FlightID, ticket.Row, ticket.Seat).Scan(&ticket.ID)
		if err != nil {
			return mapTicketErr("create ticket", err)
		}
		return nil
	})
}

func (r *PGTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	return r.withTx(ctx, func(ctx context.Context) error {
		if err := r.place(ctx, ticket); err != nil {
			return err
		}
		tag, err := r.q(ctx).Exec(ctx, `
			UPDATE tickets SET order_id=$1, flight_id=$2, seat_row=$3, seat=$4
			WHERE id=$5
		`, ticket.OrderID, ticket.FlightID, ticket.Row, ticket.Seat, ticket.ID)
		if err != nil {
			return mapTicketErr("update ticket", err)
		}
		return expectAffected(tag)
	})
}

// place runs the seat checks for ticket inside the current transaction.
func (r *PGTicketRepository) place(ctx context.Context, ticket *domain.Ticket) error {
	var taken bool
	err := r.q(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tickets
			WHERE flight_id=$1 AND seat_row=$2 AND seat=$3 AND id<>$4
		)
	`, ticket.FlightID, ticket.Row, ticket.Seat, ticket.ID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check seat: %w", err)
	}
	if taken {
		return domain.ErrDuplicateSeat
	}

	var airplane domain.Airplane
	err = r.q(ctx).QueryRow(ctx, `
		SELECT a.id, a.name, a.row_count, a.seats_in_row, a.airplane_type_id
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id=$1
		FOR SHARE OF f
	`, ticket.FlightID).Scan(&airplane.ID, &airplane.Name, &airplane.Rows, &airplane.SeatsInRow, &airplane.AirplaneTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReferenceNotFound
		}
		return fmt.Errorf("load flight airplane: %w", err)
	}

	return ticket.Validate(airplane)
}

func mapTicketErr(op string, err error) error {
	if pgCode(err) == pgUniqueViolation {
		return domain.ErrDuplicateSeat
	}
	return mapWriteErr(op, err)
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return expectAffected(tag)
}

var (
	_ OrderRepository  = (*PGOrderRepository)(nil)
	_ TicketRepository = (*PGTicketRepository)(nil)
)
