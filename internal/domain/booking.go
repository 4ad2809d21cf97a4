package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
}

func (o Order) String() string {
	return fmt.Sprintf("Order %d created: %s", o.ID, o.CreatedAt.UTC().Format(time.RFC3339))
}

type Ticket struct {
	ID       int64
	OrderID  int64
	FlightID int64
	Row      int
	Seat     int

	Flight *Flight
	Order  *Order
}

func (t Ticket) String() string {
	flight := fmt.Sprintf("Flight %d", t.FlightID)
	if t.Flight != nil {
		flight = t.Flight.String()
	}
	return fmt.Sprintf("%s - %d%s", flight, t.Row, SeatLabel(t.Seat))
}

// seatLabels is the display lookup for seat positions 1..10.
var seatLabels = [...]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// MaxSeatChoice is the highest seat position that has a letter label.
const MaxSeatChoice = len(seatLabels)

// SeatLabel returns the letter for a seat position, or "" when it has none.
func SeatLabel(seat int) string {
	if seat < 1 || seat > MaxSeatChoice {
		return ""
	}
	return seatLabels[seat-1]
}

// ParseSeatLabel maps a letter back to its seat position.
func ParseSeatLabel(label string) (int, bool) {
	for i, l := range seatLabels {
		if l == label {
			return i + 1, true
		}
	}
	return 0, false
}

// ValidateTicket checks that row and seat fit inside the airplane. Both fields
// are checked; the returned ValidationError names every failing field.
func ValidateTicket(row, seat int, airplane Airplane) error {
	errs := fieldErrors{}
	for _, f := range []struct {
		value    int
		name     string
		attrName string
		count    int
	}{
		{row, "row", "rows", airplane.Rows},
		{seat, "seat", "seats_in_row", airplane.SeatsInRow},
	} {
		if f.value < 1 || f.value > f.count {
			errs.add(f.name, fmt.Sprintf(
				"%s number must be in available range: (1, %s): (1, %d)",
				f.name, f.attrName, f.count,
			))
		}
	}
	return errs.err(ErrRangeViolation)
}

// Validate runs ValidateTicket against the airplane flying the ticket's flight
// and checks that the seat has a letter label. Range failures take precedence
// over the choice check on the same field.
func (t Ticket) Validate(airplane Airplane) error {
	invalid := fieldErrors{}
	if t.OrderID <= 0 {
		invalid.add("order", "this field is required")
	}
	if t.FlightID <= 0 {
		invalid.add("flight", "this field is required")
	}
	if err := invalid.err(ErrInvalidField); err != nil {
		return err
	}

	if err := ValidateTicket(t.Row, t.Seat, airplane); err != nil {
		return err
	}
	if t.Seat > MaxSeatChoice {
		invalid.add("seat", fmt.Sprintf("%d is not a valid choice", t.Seat))
	}
	return invalid.err(ErrInvalidField)
}
