package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleFlight() domain.Flight {
	route := &domain.Route{
		ID:              3,
		SourceCode:      "WAW",
		DestinationCode: "BER",
		Source:          &domain.Airport{Code: "WAW", ClosestBigCity: &domain.City{Name: "Warsaw"}},
		Destination:     &domain.Airport{Code: "BER", ClosestBigCity: &domain.City{Name: "Berlin"}},
	}
	return domain.Flight{
		ID:            1,
		FlightNumber:  "LO379",
		RouteID:       3,
		AirplaneID:    4,
		CrewIDs:       []int64{9},
		DepartureTime: time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Route:         route,
		Airplane:      &domain.Airplane{ID: 4, Name: "Embraer", Rows: 20, SeatsInRow: 4, AirplaneTypeID: 2, AirplaneType: &domain.AirplaneType{ID: 2, Name: "Regional"}},
		Crew:          []domain.Crew{{ID: 9, FirstName: "John", LastName: "Doe", PositionID: 1, Position: &domain.Position{ID: 1, Name: "Pilot"}}},
	}
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, stubMedia{})

	c, w := newTestContext("GET", "/flights?route=3&airplane=4,5", "")

	filter := repository.FlightFilter{RouteIDs: []int64{3}, AirplaneIDs: []int64{4, 5}}
	mockService.On("List", mock.Anything, filter, repository.Page{Limit: 10}).
		Return(&domain.FlightList{Flights: []domain.Flight{sampleFlight()}, Total: 1}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, float64(1), body["count"])
	item := body["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "Embraer", item["airplane"])
	assert.Equal(t, "WAW (Warsaw) - BER (Berlin)", item["route"])
	assert.Equal(t, []any{"John Doe"}, item["crew"])
	assert.Equal(t, "2026-05-01 10:30:00", item["departure_time"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, stubMedia{})

	c, w := newTestContext("GET", "/flights/1", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	flight := sampleFlight()
	mockService.On("GetByID", mock.Anything, int64(1)).Return(&flight, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	airplane := body["airplane"].(map[string]any)
	assert.Equal(t, "Regional", airplane["airplane_type"])
	assert.Equal(t, float64(80), airplane["capacity"])
	assert.Equal(t, "WAW (Warsaw)", body["route"].(map[string]any)["source"])
	crew := body["crew"].([]any)
	require.Len(t, crew, 1)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Pilot"}, crew[0].(map[string]any)["position"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_getNotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, stubMedia{})

	c, w := newTestContext("GET", "/flights/7", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	mockService.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, stubMedia{})

	body := `{
		"flight_number": "LO379",
		"route": 3,
		"airplane": 4,
		"crew": [9, 10],
		"departure_time": "2026-05-01 10:30:00",
		"arrival_time": "2026-05-01T12:00:00Z"
	}`
	c, w := newTestContext("POST", "/flights", body)

	mockService.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.FlightNumber == "LO379" &&
			f.DepartureTime.Equal(time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)) &&
			f.ArrivalTime.Equal(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)) &&
			len(f.CrewIDs) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Flight).ID = 11
	}).Return(nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, float64(11), resp["id"])
	assert.Equal(t, []any{float64(9), float64(10)}, resp["crew"])
	assert.Equal(t, float64(3), resp["route"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_createBadTime(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, stubMedia{})

	c, w := newTestContext("POST", "/flights", `{"flight_number":"LO1","departure_time":"tomorrow"}`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_field", decodeJSON(t, w)["code"])
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightHandler_patchKeepsCrew(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, stubMedia{})

	c, w := newTestContext("PATCH", "/flights/1", `{"flight_number":"LO380"}`)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	current := sampleFlight()
	mockService.On("GetByID", mock.Anything, int64(1)).Return(&current, nil)
	mockService.On("Update", mock.Anything, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.FlightNumber == "LO380" && f.RouteID == 3 && len(f.CrewIDs) == 1 && f.CrewIDs[0] == 9
	})).Return(nil)

	handler.update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
