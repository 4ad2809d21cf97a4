package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/geo"
	"github.com/gin-gonic/gin"
)

type GeoHandler struct {
	service geo.GeoUseCase
	view    presenter
}

func NewGeoHandler(service geo.GeoUseCase) *GeoHandler {
	return &GeoHandler{service: service}
}

func (h *GeoHandler) Register(router *gin.RouterGroup) {
	countries := router.Group("/countries")
	countries.GET("", h.listCountries)
	countries.POST("", h.createCountry)
	countries.GET("/:id", h.getCountry)
	countries.PUT("/:id", h.updateCountry)
	countries.PATCH("/:id", h.updateCountry)
	countries.DELETE("/:id", h.deleteCountry)

	cities := router.Group("/cities")
	cities.GET("", h.listCities)
	cities.POST("", h.createCity)
	cities.GET("/:id", h.getCity)
	cities.PUT("/:id", h.updateCity)
	cities.PATCH("/:id", h.updateCity)
	cities.DELETE("/:id", h.deleteCity)

	airports := router.Group("/airports")
	airports.GET("", h.listAirports)
	airports.POST("", h.createAirport)
	airports.GET("/:code", h.getAirport)
	airports.PUT("/:code", h.updateAirport)
	airports.PATCH("/:code", h.updateAirport)
	airports.DELETE("/:code", h.deleteAirport)

	routes := router.Group("/routes")
	routes.GET("", h.listRoutes)
	routes.POST("", h.createRoute)
	routes.GET("/:id", h.getRoute)
	routes.PUT("/:id", h.updateRoute)
	routes.PATCH("/:id", h.updateRoute)
	routes.DELETE("/:id", h.deleteRoute)
}

type countryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

func (h *GeoHandler) listCountries(c *gin.Context) {
	p := getPagination(c)
	countries, total, err := h.service.ListCountries(c.Request.Context(), c.Query("name"), p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(countries, h.view.country))
}

func (h *GeoHandler) getCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	country, err := h.service.GetCountry(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.country(*country))
}

func (h *GeoHandler) createCountry(c *gin.Context) {
	var req countryRequest
	if !bindJSON(c, &req) {
		return
	}
	country := domain.Country{}
	setString(&country.Name, req.Name)

	if err := h.service.CreateCountry(c.Request.Context(), &country); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.country(country))
}

func (h *GeoHandler) updateCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req countryRequest
	if !bindJSON(c, &req) {
		return
	}

	country := &domain.Country{ID: id}
	if partial(c) {
		var err error
		if country, err = h.service.GetCountry(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
	}
	setString(&country.Name, req.Name)

	if err := h.service.UpdateCountry(c.Request.Context(), country); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.country(*country))
}

func (h *GeoHandler) deleteCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCountry(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type cityRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Country *int64  `json:"country"`
}

func (r cityRequest) apply(city *domain.City) {
	setString(&city.Name, r.Name)
	setInt64(&city.CountryID, r.Country)
}

func (h *GeoHandler) listCities(c *gin.Context) {
	p := getPagination(c)
	countryIDs, ok := queryIDs(c, "country")
	if !ok {
		return
	}
	filter := repository.CityFilter{Name: c.Query("name"), CountryIDs: countryIDs}

	cities, total, err := h.service.ListCities(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(cities, func(city domain.City) cityResponse {
		return h.view.city(city, viewList)
	}))
}

func (h *GeoHandler) getCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	city, err := h.service.GetCity(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.city(*city, viewDetail))
}

func (h *GeoHandler) createCity(c *gin.Context) {
	var req cityRequest
	if !bindJSON(c, &req) {
		return
	}
	city := domain.City{}
	req.apply(&city)

	if err := h.service.CreateCity(c.Request.Context(), &city); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.city(city, viewBase))
}

func (h *GeoHandler) updateCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req cityRequest
	if !bindJSON(c, &req) {
		return
	}

	city := &domain.City{ID: id}
	if partial(c) {
		var err error
		if city, err = h.service.GetCity(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
	}
	req.apply(city)

	if err := h.service.UpdateCity(c.Request.Context(), city); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.city(*city, viewBase))
}

func (h *GeoHandler) deleteCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCity(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type airportRequest struct {
	Code           *string `json:"code" binding:"omitempty,airportcode"`
	Name           *string `json:"name" binding:"omitempty,max=255"`
	ClosestBigCity *int64  `json:"closest_big_city"`
}

func (r airportRequest) apply(airport *domain.Airport) {
	setString(&airport.Name, r.Name)
	setInt64(&airport.ClosestBigCityID, r.ClosestBigCity)
}

func (h *GeoHandler) listAirports(c *gin.Context) {
	p := getPagination(c)
	cityIDs, ok := queryIDs(c, "closest_big_city")
	if !ok {
		return
	}
	filter := repository.AirportFilter{Name: c.Query("name"), Code: c.Query("code"), CityIDs: cityIDs}

	airports, total, err := h.service.ListAirports(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(airports, func(a domain.Airport) airportResponse {
		return h.view.airport(a, viewList)
	}))
}

func (h *GeoHandler) getAirport(c *gin.Context) {
	airport, err := h.service.GetAirport(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airport(*airport, viewDetail))
}

func (h *GeoHandler) createAirport(c *gin.Context) {
	var req airportRequest
	if !bindJSON(c, &req) {
		return
	}
	airport := domain.Airport{}
	setString(&airport.Code, req.Code)
	airport.Code = strings.ToUpper(airport.Code)
	req.apply(&airport)

	if err := h.service.CreateAirport(c.Request.Context(), &airport); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.airport(airport, viewBase))
}

// updateAirport never changes the code; it is taken from the path.
func (h *GeoHandler) updateAirport(c *gin.Context) {
	var req airportRequest
	if !bindJSON(c, &req) {
		return
	}

	code := strings.ToUpper(c.Param("code"))
	airport := &domain.Airport{Code: code}
	if partial(c) {
		var err error
		if airport, err = h.service.GetAirport(c.Request.Context(), code); err != nil {
			writeError(c, err)
			return
		}
	}
	req.apply(airport)

	if err := h.service.UpdateAirport(c.Request.Context(), airport); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airport(*airport, viewBase))
}

func (h *GeoHandler) deleteAirport(c *gin.Context) {
	if err := h.service.DeleteAirport(c.Request.Context(), c.Param("code")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type routeRequest struct {
	Source      *string  `json:"source" binding:"omitempty,airportcode"`
	Destination *string  `json:"destination" binding:"omitempty,airportcode"`
	Distance    *float64 `json:"distance" binding:"omitempty,gte=0"`
}

func (r routeRequest) apply(route *domain.Route) {
	if r.Source != nil {
		route.SourceCode = strings.ToUpper(*r.Source)
	}
	if r.Destination != nil {
		route.DestinationCode = strings.ToUpper(*r.Destination)
	}
	if r.Distance != nil {
		route.Distance = *r.Distance
	}
}

func (h *GeoHandler) listRoutes(c *gin.Context) {
	p := getPagination(c)
	filter := repository.RouteFilter{
		SourceCodes:      queryCodes(c, "source"),
		DestinationCodes: queryCodes(c, "destination"),
	}

	routes, total, err := h.service.ListRoutes(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(routes, func(r domain.Route) routeResponse {
		return h.view.route(r, viewList)
	}))
}

func (h *GeoHandler) getRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.route(*route, viewDetail))
}

func (h *GeoHandler) createRoute(c *gin.Context) {
	var req routeRequest
	if !bindJSON(c, &req) {
		return
	}
	route := domain.Route{}
	req.apply(&route)

	if err := h.service.CreateRoute(c.Request.Context(), &route); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.route(route, viewBase))
}

func (h *GeoHandler) updateRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req routeRequest
	if !bindJSON(c, &req) {
		return
	}

	route := &domain.Route{ID: id}
	if partial(c) {
		var err error
		if route, err = h.service.GetRoute(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
	}
	req.apply(route)

	if err := h.service.UpdateRoute(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.route(*route, viewBase))
}

func (h *GeoHandler) deleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
