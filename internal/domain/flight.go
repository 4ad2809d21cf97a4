package domain

import (
	"fmt"
	"time"
)

// FlightTimeLayout is the display layout used for departure and arrival times.
const FlightTimeLayout = "2006-01-02 15:04:05"

type Flight struct {
	ID            int64
	FlightNumber  string
	RouteID       int64
	AirplaneID    int64
	CrewIDs       []int64
	DepartureTime time.Time
	ArrivalTime   time.Time

	Route    *Route
	Airplane *Airplane
	Crew     []Crew
}

func (f Flight) Validate() error {
	errs := fieldErrors{}
	errs.required("flight_number", f.FlightNumber)
	errs.maxLen("flight_number", f.FlightNumber, maxNameLength)
	if f.RouteID <= 0 {
		errs.add("route", "this field is required")
	}
	if f.AirplaneID <= 0 {
		errs.add("airplane", "this field is required")
	}
	if f.DepartureTime.IsZero() {
		errs.add("departure_time", "this field is required")
	}
	if f.ArrivalTime.IsZero() {
		errs.add("arrival_time", "this field is required")
	}
	return errs.err(ErrInvalidField)
}

func (f Flight) String() string {
	return fmt.Sprintf("%s Departure: %s", f.FlightNumber, f.DepartureTime.UTC().Format(FlightTimeLayout))
}

// FlightList is one page of a flight listing together with the total match count.
type FlightList struct {
	Flights []Flight
	Total   int
}
