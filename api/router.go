package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/crew"
	"github.com/Domenick1991/airport/internal/service/fleet"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/geo"
	"github.com/Domenick1991/airport/internal/service/users"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Geo     geo.GeoUseCase
	Fleet   fleet.FleetUseCase
	Crew    crew.CrewUseCase
	Flights flights.FlightUseCase
	Booking booking.BookingUseCase
	Users   users.UserUseCase
	Tokens  TokenParser
	Media   URLResolver
}

// RegisterRoutes mounts the user API under /api/user and the airport API
// under /api/airport.
func RegisterRoutes(router gin.IRouter, s Services) {
	RegisterValidators()
	auth := AuthMiddleware(s.Tokens)

	userHandler := NewUserHandler(s.Users)
	user := router.Group("/api/user")
	userHandler.RegisterPublic(user)
	userHandler.RegisterPrivate(user.Group("", auth))

	airport := router.Group("/api/airport", auth)
	staff := StaffOrReadOnly()

	NewGeoHandler(s.Geo).Register(airport.Group("", staff))
	NewFleetHandler(s.Fleet, s.Media).Register(airport.Group("", staff))
	NewCrewHandler(s.Crew, s.Media).Register(airport.Group("", staff))
	NewFlightHandler(s.Flights, s.Media).Register(airport.Group("/flights", staff))

	bookings := NewBookingHandler(s.Booking)
	bookings.RegisterOrders(airport.Group("/orders", StaffOrReadOnly(http.MethodPost)))
	bookings.RegisterTickets(airport.Group("/tickets", staff))
}
