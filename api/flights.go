package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	view    presenter
}

func NewFlightHandler(service flights.FlightUseCase, media URLResolver) *FlightHandler {
	return &FlightHandler{service: service, view: presenter{media: media}}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

// flightTime accepts RFC 3339 as well as "2006-01-02 15:04:05" (UTC).
type flightTime struct {
	time.Time
}

func (t *flightTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339, domain.FlightTimeLayout, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("%w: datetime %q has wrong format", domain.ErrInvalidField, raw)
}

type flightRequest struct {
	FlightNumber  *string     `json:"flight_number" binding:"omitempty,max=255"`
	Route         *int64      `json:"route"`
	Airplane      *int64      `json:"airplane"`
	Crew          *[]int64    `json:"crew"`
	DepartureTime *flightTime `json:"departure_time"`
	ArrivalTime   *flightTime `json:"arrival_time"`
}

func (r flightRequest) apply(f *domain.Flight) {
	setString(&f.FlightNumber, r.FlightNumber)
	setInt64(&f.RouteID, r.Route)
	setInt64(&f.AirplaneID, r.Airplane)
	if r.Crew != nil {
		f.CrewIDs = *r.Crew
	}
	if r.DepartureTime != nil {
		f.DepartureTime = r.DepartureTime.Time
	}
	if r.ArrivalTime != nil {
		f.ArrivalTime = r.ArrivalTime.Time
	}
}

func (h *FlightHandler) list(c *gin.Context) {
	p := getPagination(c)
	routeIDs, ok := queryIDs(c, "route")
	if !ok {
		return
	}
	airplaneIDs, ok := queryIDs(c, "airplane")
	if !ok {
		return
	}
	filter := repository.FlightFilter{
		FlightNumber: c.Query("flight_number"),
		RouteIDs:     routeIDs,
		AirplaneIDs:  airplaneIDs,
	}

	result, err := h.service.List(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, result.Total, project(result.Flights, func(f domain.Flight) flightResponse {
		return h.view.flight(f, viewList)
	}))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.flight(*flight, viewDetail))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if !bindJSON(c, &req) {
		return
	}
	flight := domain.Flight{}
	req.apply(&flight)
	if flight.CrewIDs == nil {
		flight.CrewIDs = []int64{}
	}

	if err := h.service.Create(c.Request.Context(), &flight); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.flight(flight, viewBase))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req flightRequest
	if !bindJSON(c, &req) {
		return
	}

	flight := &domain.Flight{ID: id, CrewIDs: []int64{}}
	if partial(c) {
		current, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		flight = current
	}
	req.apply(flight)

	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.flight(*flight, viewBase))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
