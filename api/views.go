package api

import (
	"time"

	"github.com/Domenick1991/airport/internal/domain"
)

// view selects the output shape of an entity.
type view int

const (
	// viewBase echoes writable fields with references as ids.
	viewBase view = iota
	// viewList flattens references to display strings.
	viewList
	// viewDetail nests referenced objects.
	viewDetail
	// viewImage carries only the id and the uploaded file.
	viewImage
)

type URLResolver interface {
	URL(rel string) string
}

// presenter projects domain entities onto response shapes.
type presenter struct {
	media URLResolver
}

func (p presenter) mediaURL(rel string) *string {
	if rel == "" {
		return nil
	}
	u := rel
	if p.media != nil {
		u = p.media.URL(rel)
	}
	return &u
}

func formatTime(t time.Time) string {
	return t.UTC().Format(domain.FlightTimeLayout)
}

type countryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p presenter) country(c domain.Country) countryResponse {
	return countryResponse{ID: c.ID, Name: c.Name}
}

type cityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country any    `json:"country"`
}

func (p presenter) city(c domain.City, v view) cityResponse {
	resp := cityResponse{ID: c.ID, Name: c.Name, Country: c.CountryID}
	if c.Country == nil {
		return resp
	}
	switch v {
	case viewList:
		resp.Country = c.Country.Name
	case viewDetail:
		resp.Country = p.country(*c.Country)
	}
	return resp
}

type airportResponse struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	ClosestBigCity any    `json:"closest_big_city"`
}

func (p presenter) airport(a domain.Airport, v view) airportResponse {
	resp := airportResponse{Code: a.Code, Name: a.Name, ClosestBigCity: a.ClosestBigCityID}
	if a.ClosestBigCity == nil {
		return resp
	}
	switch v {
	case viewList:
		resp.ClosestBigCity = a.ClosestBigCity.Name
	case viewDetail:
		resp.ClosestBigCity = p.city(*a.ClosestBigCity, viewBase)
	}
	return resp
}

type routeResponse struct {
	ID          int64   `json:"id"`
	Source      any     `json:"source"`
	Destination any     `json:"destination"`
	Distance    float64 `json:"distance"`
}

func (p presenter) route(r domain.Route, v view) routeResponse {
	resp := routeResponse{ID: r.ID, Source: r.SourceCode, Destination: r.DestinationCode, Distance: r.Distance}
	switch v {
	case viewList:
		resp.Source = p.airportName(r.SourceCode, r.Source)
		resp.Destination = p.airportName(r.DestinationCode, r.Destination)
	case viewDetail:
		if r.Source != nil {
			resp.Source = p.airport(*r.Source, viewList)
		}
		if r.Destination != nil {
			resp.Destination = p.airport(*r.Destination, viewList)
		}
	}
	return resp
}

func (p presenter) airportName(code string, a *domain.Airport) string {
	if a == nil {
		return code
	}
	return a.DetailName()
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p presenter) airplaneType(t domain.AirplaneType) airplaneTypeResponse {
	return airplaneTypeResponse{ID: t.ID, Name: t.Name}
}

type airplaneResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	AirplaneType any     `json:"airplane_type"`
	Rows         int     `json:"rows"`
	SeatsInRow   int     `json:"seats_in_row"`
	Capacity     int     `json:"capacity"`
	Image        *string `json:"image"`
}

type imageResponse struct {
	ID    int64   `json:"id"`
	Image *string `json:"image,omitempty"`
	Photo *string `json:"photo,omitempty"`
}

func (p presenter) airplane(a domain.Airplane, v view) any {
	if v == viewImage {
		return imageResponse{ID: a.ID, Image: p.mediaURL(a.Image)}
	}

	resp := airplaneResponse{
		ID:           a.ID,
		Name:         a.Name,
		AirplaneType: a.AirplaneTypeID,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		Image:        p.mediaURL(a.Image),
	}
	if a.AirplaneType != nil {
		switch v {
		case viewList:
			resp.AirplaneType = a.AirplaneType.Name
		case viewDetail:
			resp.AirplaneType = p.airplaneType(*a.AirplaneType)
		}
	}
	return resp
}

type positionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p presenter) position(pos domain.Position) positionResponse {
	return positionResponse{ID: pos.ID, Name: pos.Name}
}

type crewResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	Position  any     `json:"position"`
	Photo     *string `json:"photo"`
}

func (p presenter) crew(c domain.Crew, v view) any {
	if v == viewImage {
		return imageResponse{ID: c.ID, Photo: p.mediaURL(c.Photo)}
	}

	resp := crewResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Position:  c.PositionID,
		Photo:     p.mediaURL(c.Photo),
	}
	if c.Position != nil {
		switch v {
		case viewList:
			resp.Position = c.Position.Name
		case viewDetail:
			resp.Position = p.position(*c.Position)
		}
	}
	return resp
}

type flightResponse struct {
	ID            int64  `json:"id"`
	FlightNumber  string `json:"flight_number"`
	Route         any    `json:"route"`
	Airplane      any    `json:"airplane"`
	Crew          any    `json:"crew"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

func (p presenter) flight(f domain.Flight, v view) flightResponse {
	resp := flightResponse{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Route:         f.RouteID,
		Airplane:      f.AirplaneID,
		DepartureTime: formatTime(f.DepartureTime),
		ArrivalTime:   formatTime(f.ArrivalTime),
	}

	crewIDs := f.CrewIDs
	if crewIDs == nil {
		crewIDs = make([]int64, 0, len(f.Crew))
		for _, c := range f.Crew {
			crewIDs = append(crewIDs, c.ID)
		}
	}
	resp.Crew = crewIDs

	switch v {
	case viewList:
		if f.Route != nil {
			resp.Route = f.Route.String()
		}
		if f.Airplane != nil {
			resp.Airplane = f.Airplane.Name
		}
		names := make([]string, 0, len(f.Crew))
		for _, c := range f.Crew {
			names = append(names, c.FullName())
		}
		resp.Crew = names
	case viewDetail:
		if f.Route != nil {
			resp.Route = p.route(*f.Route, viewList)
		}
		if f.Airplane != nil {
			resp.Airplane = p.airplane(*f.Airplane, viewList)
		}
		crew := make([]any, 0, len(f.Crew))
		for _, c := range f.Crew {
			crew = append(crew, p.crew(c, viewDetail))
		}
		resp.Crew = crew
	}
	return resp
}

type orderResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	User      int64     `json:"user"`
}

func (p presenter) order(o domain.Order) orderResponse {
	return orderResponse{ID: o.ID, CreatedAt: o.CreatedAt.UTC(), User: o.UserID}
}

type ticketResponse struct {
	ID        int64  `json:"id"`
	Flight    any    `json:"flight"`
	Order     any    `json:"order"`
	Row       int    `json:"row"`
	Seat      int    `json:"seat"`
	SeatLabel string `json:"seat_label"`
}

func (p presenter) ticket(t domain.Ticket, v view) ticketResponse {
	resp := ticketResponse{
		ID:        t.ID,
		Flight:    t.FlightID,
		Order:     t.OrderID,
		Row:       t.Row,
		Seat:      t.Seat,
		SeatLabel: domain.SeatLabel(t.Seat),
	}
	switch v {
	case viewList:
		if t.Flight != nil {
			resp.Flight = t.Flight.String()
		}
		if t.Order != nil {
			resp.Order = t.Order.String()
		}
	case viewDetail:
		if t.Flight != nil {
			resp.Flight = p.flight(*t.Flight, viewList)
		}
		if t.Order != nil {
			resp.Order = p.order(*t.Order)
		}
	}
	return resp
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

func (p presenter) user(u domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, IsStaff: u.IsStaff}
}

// project maps every element of items through fn.
func project[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
