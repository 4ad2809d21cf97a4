package api

import (
	"context"
	"io"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/users"
	"github.com/stretchr/testify/mock"
)

// MockGeoUseCase is a mock implementation of geo.GeoUseCase
type MockGeoUseCase struct {
	mock.Mock
}

func (m *MockGeoUseCase) ListCountries(ctx context.Context, name string, page repository.Page) ([]domain.Country, int, error) {
	args := m.Called(ctx, name, page)
	return args.Get(0).([]domain.Country), args.Int(1), args.Error(2)
}

func (m *MockGeoUseCase) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockGeoUseCase) CreateCountry(ctx context.Context, country *domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockGeoUseCase) UpdateCountry(ctx context.Context, country *domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockGeoUseCase) DeleteCountry(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGeoUseCase) ListCities(ctx context.Context, filter repository.CityFilter, page repository.Page) ([]domain.City, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.City), args.Int(1), args.Error(2)
}

func (m *MockGeoUseCase) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockGeoUseCase) CreateCity(ctx context.Context, city *domain.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockGeoUseCase) UpdateCity(ctx context.Context, city *domain.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockGeoUseCase) DeleteCity(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGeoUseCase) ListAirports(ctx context.Context, filter repository.AirportFilter, page repository.Page) ([]domain.Airport, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Airport), args.Int(1), args.Error(2)
}

func (m *MockGeoUseCase) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockGeoUseCase) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockGeoUseCase) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockGeoUseCase) DeleteAirport(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockGeoUseCase) ListRoutes(ctx context.Context, filter repository.RouteFilter, page repository.Page) ([]domain.Route, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Route), args.Int(1), args.Error(2)
}

func (m *MockGeoUseCase) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockGeoUseCase) CreateRoute(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockGeoUseCase) UpdateRoute(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockGeoUseCase) DeleteRoute(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockFleetUseCase is a mock implementation of fleet.FleetUseCase
type MockFleetUseCase struct {
	mock.Mock
}

func (m *MockFleetUseCase) ListAirplaneTypes(ctx context.Context, name string, page repository.Page) ([]domain.AirplaneType, int, error) {
	args := m.Called(ctx, name, page)
	return args.Get(0).([]domain.AirplaneType), args.Int(1), args.Error(2)
}

func (m *MockFleetUseCase) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockFleetUseCase) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockFleetUseCase) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockFleetUseCase) DeleteAirplaneType(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFleetUseCase) ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Airplane), args.Int(1), args.Error(2)
}

func (m *MockFleetUseCase) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockFleetUseCase) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return m.Called(ctx, airplane).Error(0)
}

func (m *MockFleetUseCase) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return m.Called(ctx, airplane).Error(0)
}

func (m *MockFleetUseCase) UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Airplane, error) {
	args := m.Called(ctx, id, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockFleetUseCase) DeleteAirplane(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCrewUseCase is a mock implementation of crew.CrewUseCase
type MockCrewUseCase struct {
	mock.Mock
}

func (m *MockCrewUseCase) ListPositions(ctx context.Context, name string, page repository.Page) ([]domain.Position, int, error) {
	args := m.Called(ctx, name, page)
	return args.Get(0).([]domain.Position), args.Int(1), args.Error(2)
}

func (m *MockCrewUseCase) GetPosition(ctx context.Context, id int64) (*domain.Position, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Position), args.Error(1)
}

func (m *MockCrewUseCase) CreatePosition(ctx context.Context, p *domain.Position) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCrewUseCase) UpdatePosition(ctx context.Context, p *domain.Position) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCrewUseCase) DeletePosition(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCrewUseCase) ListCrew(ctx context.Context, filter repository.CrewFilter, page repository.Page) ([]domain.Crew, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Crew), args.Int(1), args.Error(2)
}

func (m *MockCrewUseCase) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCrewUseCase) CreateCrew(ctx context.Context, c *domain.Crew) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCrewUseCase) UpdateCrew(ctx context.Context, c *domain.Crew) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCrewUseCase) UploadCrewPhoto(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Crew, error) {
	args := m.Called(ctx, id, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCrewUseCase) DeleteCrew(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter repository.FlightFilter, page repository.Page) (*domain.FlightList, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightList), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight) error {
	return m.Called(ctx, flight).Error(0)
}

func (m *MockFlightUseCase) Update(ctx context.Context, flight *domain.Flight) error {
	return m.Called(ctx, flight).Error(0)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ListOrders(ctx context.Context, filter repository.OrderFilter, page repository.Page) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockBookingUseCase) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBookingUseCase) CreateOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBookingUseCase) UpdateOrder(ctx context.Context, id, userID int64) (*domain.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBookingUseCase) DeleteOrder(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingUseCase) ListTickets(ctx context.Context, filter repository.TicketFilter, page repository.Page) ([]domain.Ticket, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Ticket), args.Int(1), args.Error(2)
}

func (m *MockBookingUseCase) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockBookingUseCase) BookTicket(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *MockBookingUseCase) UpdateTicket(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *MockBookingUseCase) CancelTicket(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserUseCase) Me(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateMe(ctx context.Context, id int64, input users.UpdateInput) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// stubTokens accepts "staff" and "user" as tokens.
type stubTokens struct{}

func (stubTokens) Parse(token string) (*auth.Claims, error) {
	switch token {
	case "staff":
		return &auth.Claims{UserID: 1, Username: "admin", IsStaff: true}, nil
	case "user":
		return &auth.Claims{UserID: 2, Username: "alice"}, nil
	}
	return nil, auth.ErrInvalidToken
}

type stubMedia struct{}

func (stubMedia) URL(rel string) string {
	return "/media/" + rel
}
